// Package common defines the error kinds shared by the repositories, the
// services and the HTTP layer. Callers should use errors.Is to match them;
// services wrap a kind with a human readable reason via fmt.Errorf("%w: ...").
package common

import "errors"

var (
	// Repository-level signals.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level kinds, surfaced to the caller.
	ErrorBadRequest   = errors.New("bad request")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorConflict     = errors.New("conflict")
	ErrorInternal     = errors.New("internal error")
)
