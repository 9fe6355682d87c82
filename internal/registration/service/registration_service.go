package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/AlibekovAA/event-registration/internal/common/clock"
	commonerrors "github.com/AlibekovAA/event-registration/internal/common/errors"
	"github.com/AlibekovAA/event-registration/internal/common/logger"
	"github.com/AlibekovAA/event-registration/internal/observability/metrics"
	userdomain "github.com/AlibekovAA/event-registration/internal/user/domain"
	userrepo "github.com/AlibekovAA/event-registration/internal/user/repository"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type eventFields struct {
	EventName string `validate:"required"`
}

type RegistrationService struct {
	repo  userrepo.Repository
	clock clock.Clock
	log   *logger.Logger
}

func NewRegistrationService(repo userrepo.Repository, clk clock.Clock, log *logger.Logger) *RegistrationService {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &RegistrationService{repo: repo, clock: clk, log: log}
}

// RegisterForEvent records that userID attends eventName. Event names match
// exactly after trimming; the duplicate check and the append are one store
// operation. It returns the user's registrations in insertion order.
func (s *RegistrationService) RegisterForEvent(ctx context.Context, userID userdomain.ID, eventName string) ([]userdomain.Registration, error) {
	eventName = userdomain.NormalizeEventName(eventName)

	fields := logger.Fields{
		"user_id":    string(userID),
		"event_name": eventName,
	}

	if err := validateEventName(eventName); err != nil {
		metrics.EventRegistrationsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		s.log.WithFields(ctx, withAction(fields, "event_register_validation_failed")).Warnf("event registration validation failed: %v", err)
		return nil, err
	}

	reg := userdomain.Registration{
		EventName:    eventName,
		RegisteredAt: s.clock.Now(),
	}

	regs, err := s.repo.AppendRegistration(ctx, userID, reg)
	if err != nil {
		switch {
		case errors.Is(err, userrepo.ErrUserNotFound):
			metrics.EventRegistrationsTotal.WithLabelValues(metrics.ResultFailure).Inc()
			s.log.WithFields(ctx, withAction(fields, "event_register_user_missing")).Warn("event registration failed: user not found")
			return nil, ErrUserNotFound
		case errors.Is(err, userrepo.ErrAlreadyRegistered):
			metrics.EventRegistrationsTotal.WithLabelValues(metrics.ResultConflict).Inc()
			s.log.WithFields(ctx, withAction(fields, "event_register_duplicate")).Info("event registration rejected: already registered")
			return nil, ErrAlreadyRegistered
		default:
			metrics.EventRegistrationsTotal.WithLabelValues(metrics.ResultFailure).Inc()
			s.log.WithFields(ctx, withAction(fields, "event_register_failed")).Errorf("event registration failed: %v", err)
			return nil, commonerrors.ErrDatabaseError.WithCause(err)
		}
	}

	metrics.EventRegistrationsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	s.log.WithFields(ctx, withAction(fields, "event_register_success")).Info("event registration success")

	return regs, nil
}

// ListAllRegistrations returns every user's name, email and registrations,
// oldest account first.
func (s *RegistrationService) ListAllRegistrations(ctx context.Context) ([]userdomain.Summary, error) {
	summaries, err := s.repo.ListSummaries(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "list_registrations_failed",
		}).Errorf("list registrations failed: %v", err)
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}

	for i := range summaries {
		if summaries[i].Registrations == nil {
			summaries[i].Registrations = []userdomain.Registration{}
		}
	}
	return summaries, nil
}

func validateEventName(eventName string) error {
	err := validate.Struct(eventFields{EventName: eventName})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return commonerrors.NewInternalError("VALIDATOR_FAILED", "Server error", err)
	}
	return ErrValidationEventNameRequired
}

func withAction(fields logger.Fields, action string) logger.Fields {
	out := make(logger.Fields, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["action"] = action
	return out
}
