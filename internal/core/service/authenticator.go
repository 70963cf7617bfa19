package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/userhub/user-service/internal/core/domain"
	"github.com/userhub/user-service/internal/core/ports"
)

const bearerScheme = "Bearer"

// Authenticator is the request gate: it turns an Authorization header into a
// resolved, active user or one of the domain authentication errors.
type Authenticator struct {
	tokens ports.TokenIssuer
	users  ports.UserRepository
	log    zerolog.Logger
}

func NewAuthenticator(tokens ports.TokenIssuer, users ports.UserRepository, log zerolog.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, log: log}
}

// Authenticate runs extract, verify, resolve and active check in order and
// returns the identity for the caller to attach to the request.
func (a *Authenticator) Authenticate(ctx context.Context, authorization string) (*domain.User, error) {
	raw, ok := extractBearer(authorization)
	if !ok {
		return nil, domain.ErrNoToken
	}

	payload, err := a.tokens.Verify(raw)
	if err != nil {
		a.log.Debug().Err(err).Msg("token rejected")
		return nil, domain.ErrInvalidToken
	}

	user, err := a.users.FindByID(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("resolve token subject: %w", err)
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}
	return user, nil
}

// extractBearer expects exactly "Bearer <token>".
func extractBearer(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != bearerScheme {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
