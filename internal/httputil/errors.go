package httputil

import "errors"

// Errors for request bodies that cannot be bound. Both map to HTTP 400.
var (
	ErrInvalidBody      = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
)
