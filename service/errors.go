package service

import "errors"

// ErrFetch is a transport level failure of a feed request
var ErrFetch = errors.New("fetch failed")

// ErrMalformed is a feed or an entry missing expected fields
var ErrMalformed = errors.New("malformed feed")

// IsRecoverable report whether the error only fails the current source
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrFetch) || errors.Is(err, ErrMalformed)
}
