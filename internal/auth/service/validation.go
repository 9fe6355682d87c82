package service

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/AlibekovAA/event-registration/internal/common/constants"
	commonerrors "github.com/AlibekovAA/event-registration/internal/common/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type registerFields struct {
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type loginFields struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// validateRegister checks already normalized registration input.
func validateRegister(name, email, password string) error {
	if err := validate.Struct(registerFields{Name: name, Email: email, Password: password}); err != nil {
		if _, ok := firstFieldError(err); !ok {
			return commonerrors.NewInternalError("VALIDATOR_FAILED", "Server error", err)
		}
		return ErrValidationFieldsRequired
	}

	// bcrypt ignores everything past 72 bytes.
	if len(password) > constants.PasswordMaxLength {
		return ErrValidationPasswordLength
	}
	return nil
}

func validateLogin(email, password string) error {
	if err := validate.Struct(loginFields{Email: email, Password: password}); err != nil {
		if _, ok := firstFieldError(err); !ok {
			return commonerrors.NewInternalError("VALIDATOR_FAILED", "Server error", err)
		}
		return ErrValidationMissingCredentials
	}
	return nil
}

func firstFieldError(err error) (validator.FieldError, bool) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0], true
	}
	return nil, false
}
