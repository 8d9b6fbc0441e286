package manager

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrEmptyQuery            = errors.New("empty query")
	ErrIncompleteData        = errors.New("incomplete data")
	ErrCommunication         = errors.New("communication error")
	ErrCapabilityUnavailable = errors.New("geolocation not supported")
)
