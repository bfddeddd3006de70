package usecase

import "errors"

// Sentinel errors shared by all services. Handlers translate them to HTTP
// statuses; services wrap them with context via fmt.Errorf("%w: ...").
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
