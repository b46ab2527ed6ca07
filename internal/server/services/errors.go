package services

import (
	"fmt"

	"github.com/dmitrijs2005/habitcheck/internal/common"
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or token", common.ErrorUnauthorized)
	ErrNotAdmin           = fmt.Errorf("%w: only administrators can create users", common.ErrorForbidden)
	ErrMissingUsername    = fmt.Errorf("%w: new username is required", common.ErrorBadRequest)
	ErrUserExists         = fmt.Errorf("%w: user already exists", common.ErrorConflict)
	ErrIncompleteEntry    = fmt.Errorf("%w: date, username and token are required", common.ErrorBadRequest)
	ErrNotToday           = fmt.Errorf("%w: entries can only be edited for today", common.ErrorForbidden)
)

// internalError tags a storage failure as ErrorInternal while keeping the
// cause for logs.
func internalError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", common.ErrorInternal, op, err)
}
