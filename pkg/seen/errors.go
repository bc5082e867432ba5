package seen

import "errors"

var (
	ErrFailedToParseRedisURL = errors.New("seen: failed to parse redis connection url")
	ErrRedisNotReady         = errors.New("seen: redis did not become ready within the given time period")
	ErrStoreFailed           = errors.New("seen: store operation failed")
)
