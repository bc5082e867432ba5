package i18n

import "errors"

var (
	ErrNilAdapter          = errors.New("i18n: adapter is nil")
	ErrLoadCancelled       = errors.New("i18n: loading bundles cancelled")
	ErrFailedToReadFile    = errors.New("i18n: failed to read bundle file")
	ErrFailedToReadDir     = errors.New("i18n: failed to read bundle directory")
	ErrFailedToParseYAML   = errors.New("i18n: failed to parse YAML bundle")
	ErrFailedToParseJSON   = errors.New("i18n: failed to parse JSON bundle")
	ErrInvalidBundle       = errors.New("i18n: invalid bundle structure")
	ErrNoBundles           = errors.New("i18n: no bundle files found")
)
