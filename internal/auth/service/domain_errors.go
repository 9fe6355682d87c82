package service

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/event-registration/internal/common/errors"
)

var (
	ErrValidationFieldsRequired = commonerrors.NewValidationError(
		"FIELDS_REQUIRED",
		"All fields required",
	)

	ErrValidationMissingCredentials = commonerrors.NewValidationError(
		"MISSING_CREDENTIALS",
		"Missing credentials",
	)

	ErrValidationPasswordLength = commonerrors.NewValidationError(
		"PASSWORD_TOO_LONG",
		"Password is too long",
	)

	ErrEmailTaken = commonerrors.NewDomainError(
		"EMAIL_TAKEN",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"Email already registered",
	)

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"Invalid email or password",
	)

	ErrLogoutFailed = commonerrors.NewInternalError(
		"LOGOUT_FAILED",
		"Could not log out",
		nil,
	)
)
