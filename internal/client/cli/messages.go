package cli

import (
	"errors"

	"github.com/dmitrijs2005/mindcandy/internal/common"
)

// errorMessage maps account errors to the wording the app shows users.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrDuplicateEmail):
		return "Email already registered"
	case errors.Is(err, common.ErrDuplicateUsername):
		return "Username already taken"
	case errors.Is(err, common.ErrEmailNotVerified):
		return "Email not verified. Please verify your email first."
	case errors.Is(err, common.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, common.ErrInvalidPassword):
		return "Invalid password"
	case errors.Is(err, common.ErrAccountDeactivated):
		return "Account is deactivated"
	case errors.Is(err, common.ErrNoActiveSession):
		return "No user logged in"
	case errors.Is(err, common.ErrPersistence):
		return "Could not save your changes, please try again"
	default:
		return err.Error()
	}
}
