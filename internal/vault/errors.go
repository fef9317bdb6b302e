package vault

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlexZinkM/bitmark-wallet/internal/auth"
	"github.com/AlexZinkM/bitmark-wallet/internal/common"
	"github.com/AlexZinkM/bitmark-wallet/internal/keystore"
)

func isUserNotAuthenticated(err error) bool {
	return errors.Is(err, keystore.ErrUserNotAuthenticated)
}

// classify maps keystore and I/O failures onto the vault's error taxonomy.
// Errors already in the taxonomy pass through unchanged.
func classify(op string, err error) error {
	var authErr *auth.Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, auth.ErrAuthenticationFailed),
		errors.Is(err, auth.ErrAuthenticationCancelled),
		errors.Is(err, auth.ErrAuthenticationRequired),
		errors.As(err, &authErr),
		errors.Is(err, common.ErrInvalidArgument),
		errors.Is(err, common.ErrIllegalState),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		common.IsUnexpectedError(err):
		return err
	case errors.Is(err, keystore.ErrKeyNotAuthorized),
		errors.Is(err, keystore.ErrUserNotAuthenticated):
		// Only reached when the single challenge did not unlock the key, or
		// the live key wants per-use authorization this call did not ask for.
		return fmt.Errorf("%w: %v", auth.ErrAuthenticationRequired, err)
	default:
		return &common.UnexpectedError{Op: op, Err: err}
	}
}
