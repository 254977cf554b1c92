package remote

import "errors"

var (
	// ErrConnectivity means the transport produced no response.
	ErrConnectivity = errors.New("connectivity")
	// ErrInvalidData means a response arrived but could not be used.
	ErrInvalidData = errors.New("invalid data")
)
