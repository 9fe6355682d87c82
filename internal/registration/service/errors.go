package service

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/event-registration/internal/common/errors"
)

var (
	ErrValidationEventNameRequired = commonerrors.NewValidationError(
		"EVENT_NAME_REQUIRED",
		"Event name required",
	)

	ErrUserNotFound = commonerrors.NewDomainError(
		"USER_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"User not found",
	)

	ErrAlreadyRegistered = commonerrors.NewDomainError(
		"ALREADY_REGISTERED",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"Already registered for this event",
	)
)
