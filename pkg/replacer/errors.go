package replacer

import "errors"

var (
	// ErrEmptyWord is returned when a rule is registered with an empty source word.
	ErrEmptyWord = errors.New("replacer: word must not be empty")

	// ErrNilReplacement is returned when a rule is registered with a nil replacement.
	ErrNilReplacement = errors.New("replacer: replacement must not be nil")
)
