package service

import (
	"context"
	"errors"

	"github.com/AlibekovAA/event-registration/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/event-registration/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/event-registration/internal/common/errors"
	"github.com/AlibekovAA/event-registration/internal/common/logger"
	"github.com/AlibekovAA/event-registration/internal/observability/metrics"
	"github.com/AlibekovAA/event-registration/internal/session"
	userdomain "github.com/AlibekovAA/event-registration/internal/user/domain"
	userrepo "github.com/AlibekovAA/event-registration/internal/user/repository"
)

// SessionManager is the part of session.Manager the auth flows use.
type SessionManager interface {
	Create(ctx context.Context, userID string) (session.Session, string, error)
	Resolve(ctx context.Context, token string) (session.Session, error)
	Destroy(ctx context.Context, token string) error
}

type AuthServiceDeps struct {
	Repo        userrepo.Repository
	Sessions    SessionManager
	Hasher      commoncrypto.PasswordHasher
	IDGenerator commoncrypto.IDGenerator
	Clock       clock.Clock
	Log         *logger.Logger
}

type AuthService struct {
	repo        userrepo.Repository
	sessions    SessionManager
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
	dummyHash   string
}

func NewAuthService(deps AuthServiceDeps) (*AuthService, error) {
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}

	// Unknown emails are compared against this hash so both login failure
	// paths spend one bcrypt comparison.
	dummyHash, err := deps.Hasher.Hash("event-registration-dummy-password")
	if err != nil {
		return nil, err
	}

	return &AuthService{
		repo:        deps.Repo,
		sessions:    deps.Sessions,
		hasher:      deps.Hasher,
		idGenerator: deps.IDGenerator,
		clock:       clk,
		log:         deps.Log,
		dummyHash:   dummyHash,
	}, nil
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	User  userdomain.Public
	Token string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	name := userdomain.NormalizeName(input.Name)
	email := userdomain.NormalizeEmail(input.Email)

	s.log.WithFields(ctx, logger.Fields{
		"email":  email,
		"action": "register_attempt",
	}).Info("register attempt")

	if err := validateRegister(name, email, input.Password); err != nil {
		recordRegistration(metrics.ResultInvalid)
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return AuthResult{}, err
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		recordRegistration(metrics.ResultConflict)
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "register_email_exists",
		}).Warn("register failed: email already registered")
		return AuthResult{}, ErrEmailTaken
	} else if !errors.Is(err, userrepo.ErrUserNotFound) {
		recordRegistration(metrics.ResultFailure)
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "register_lookup_failed",
		}).Errorf("register failed: lookup error: %v", err)
		return AuthResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		recordRegistration(metrics.ResultFailure)
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		recordRegistration(metrics.ResultFailure)
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "register_id_generation_failed",
		}).Errorf("register failed: id generation error: %v", err)
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	now := s.clock.Now()
	user := userdomain.User{
		ID:            userdomain.ID(id),
		Name:          name,
		Email:         email,
		PasswordHash:  hash,
		Registrations: []userdomain.Registration{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// A concurrent registration can win between the lookup and the insert.
		if errors.Is(err, userrepo.ErrEmailAlreadyExists) {
			recordRegistration(metrics.ResultConflict)
			s.log.WithFields(ctx, logger.Fields{
				"email":  email,
				"action": "register_email_exists",
			}).Warn("register failed: email already registered")
			return AuthResult{}, ErrEmailTaken
		}
		recordRegistration(metrics.ResultFailure)
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "register_create_failed",
		}).Errorf("register failed: %v", err)
		return AuthResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	_, token, err := s.sessions.Create(ctx, string(user.ID))
	if err != nil {
		recordRegistration(metrics.ResultFailure)
		s.log.WithFields(ctx, logger.Fields{
			"email":   email,
			"user_id": string(user.ID),
			"action":  "register_session_failed",
		}).Errorf("register failed: session error: %v", err)
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	recordRegistration(metrics.ResultSuccess)
	s.log.WithFields(ctx, logger.Fields{
		"email":   email,
		"user_id": string(user.ID),
		"action":  "register_success",
	}).Info("register success")

	return AuthResult{User: user.Public(), Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	email := userdomain.NormalizeEmail(input.Email)

	s.log.WithFields(ctx, logger.Fields{
		"email":  email,
		"action": "login_attempt",
	}).Info("login attempt")

	if err := validateLogin(email, input.Password); err != nil {
		recordLogin(metrics.ResultInvalid)
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "login_validation_failed",
		}).Warnf("login validation failed: %v", err)
		return AuthResult{}, err
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			_ = s.hasher.Compare(s.dummyHash, input.Password)
			recordLogin(metrics.ResultFailure)
			s.log.WithFields(ctx, logger.Fields{
				"email":  email,
				"action": "login_user_not_found",
			}).Warn("login failed: invalid credentials")
			return AuthResult{}, ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "login_lookup_failed",
		}).Errorf("login failed: lookup error: %v", err)
		return AuthResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		if !errors.Is(err, commoncrypto.ErrPasswordMismatch) {
			s.log.WithFields(ctx, logger.Fields{
				"email":   email,
				"user_id": string(user.ID),
				"action":  "login_compare_failed",
			}).Errorf("login failed: hash compare error: %v", err)
		}
		recordLogin(metrics.ResultFailure)
		s.log.WithFields(ctx, logger.Fields{
			"email":   email,
			"user_id": string(user.ID),
			"action":  "login_invalid_password",
		}).Warn("login failed: invalid credentials")
		return AuthResult{}, ErrInvalidCredentials
	}

	_, token, err := s.sessions.Create(ctx, string(user.ID))
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   email,
			"user_id": string(user.ID),
			"action":  "login_session_failed",
		}).Errorf("login failed: session error: %v", err)
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	recordLogin(metrics.ResultSuccess)
	s.log.WithFields(ctx, logger.Fields{
		"email":   email,
		"user_id": string(user.ID),
		"action":  "login_success",
	}).Info("login success")

	return AuthResult{User: user.Public(), Token: token}, nil
}

// Logout destroys the session named by token. Absent, malformed and already
// destroyed sessions are not errors.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Destroy(ctx, token); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "logout_failed",
		}).Errorf("logout failed: %v", err)
		return ErrLogoutFailed.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"action": "logout_success",
	}).Debug("logout success")
	return nil
}

// CurrentUser returns the signed-in user without the password hash, or nil
// when token resolves to no live session or to a user that no longer exists.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*userdomain.User, error) {
	if token == "" {
		return nil, nil
	}

	sess, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		if session.IsInvalid(err) {
			return nil, nil
		}
		s.log.WithFields(ctx, logger.Fields{
			"action": "current_user_session_failed",
		}).Errorf("current user failed: session error: %v", err)
		return nil, commonerrors.ErrInternalError.WithCause(err)
	}

	user, err := s.repo.FindByID(ctx, userdomain.ID(sess.UserID))
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": sess.UserID,
				"action":  "current_user_missing",
			}).Warn("session refers to a missing user")
			return nil, nil
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": sess.UserID,
			"action":  "current_user_lookup_failed",
		}).Errorf("current user failed: lookup error: %v", err)
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}

	safe := user.WithoutSecrets()
	return &safe, nil
}
