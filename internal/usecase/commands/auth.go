package commands

import (
	"context"
	"log/slog"

	"universe-api/internal/pkg/clock"
	"universe-api/internal/pkg/jwt"
	"universe-api/internal/pkg/password"
	"universe-api/internal/usecase/shared"
)

type LoginCommand struct {
	Email    string
	Password string
}

func (c LoginCommand) Validate() []string {
	var errors []string
	if c.Email == "" {
		errors = append(errors, "email is required")
	} else {
		errors = checkEmail(errors, "email", c.Email)
	}
	if c.Password == "" {
		errors = append(errors, "password is required")
	}
	return errors
}

type AuthCommands interface {
	Login(ctx context.Context, cmd LoginCommand) *shared.Result
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
	clock      clock.Clock
	logger     *slog.Logger
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, clock clock.Clock, logger *slog.Logger) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		jwtService: jwtService,
		clock:      clock,
		logger:     logger,
	}
}

// Login verifies credentials and issues a token. A wrong email and a wrong
// password produce the same message.
func (a *authCommandsImpl) Login(ctx context.Context, cmd LoginCommand) *shared.Result {
	if errors := cmd.Validate(); len(errors) > 0 {
		return shared.Invalid(errors, "login validation failed")
	}

	creds, err := a.uow.CommandReads().UserByEmail(ctx, cmd.Email)
	if err != nil {
		if isNotFound(err) {
			return shared.BusinessRule([]string{"invalid credentials"}, "login failed")
		}
		return shared.Fatal(err, "could not log in")
	}
	if !creds.IsActive {
		return shared.BusinessRule([]string{"user account is inactive"}, "login failed")
	}
	if err := password.Compare(creds.PasswordHash, cmd.Password); err != nil {
		return shared.BusinessRule([]string{"invalid credentials"}, "login failed")
	}

	token, err := a.jwtService.GenerateToken(creds.ID, creds.DefaultProjectID)
	if err != nil {
		return shared.Fatal(err, "could not issue token")
	}

	now := a.clock.Now()
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, creds.ID, now)
	})
	if err != nil {
		// Login already succeeded; a stale last_login is acceptable.
		a.logger.Warn("failed to update last login", slog.Int64("user_id", creds.ID), slog.String("error", err.Error()))
	}

	return shared.OK(map[string]any{
		"user_id":    creds.ID,
		"project_id": creds.DefaultProjectID,
		"token":      token,
	}, "login successful")
}
