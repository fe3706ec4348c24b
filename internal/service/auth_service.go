package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pesio-ai/be-plt-directory/internal/apperr"
	"github.com/pesio-ai/be-plt-directory/internal/repository"
	"github.com/pesio-ai/be-plt-directory/pkg/password"
	"github.com/pesio-ai/be-plt-directory/pkg/token"
)

// TokenTTL is how long an issued bearer token stays valid.
const TokenTTL = 15 * 24 * time.Hour

// UserStore is the subset of the user repository the auth service needs.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*repository.User, error)
	GetByID(ctx context.Context, id string) (*repository.User, error)
}

// TokenStore records issued tokens so they can be revoked before expiry.
type TokenStore interface {
	Create(ctx context.Context, t *repository.AccessToken) error
	Get(ctx context.Context, id string) (*repository.AccessToken, error)
	Delete(ctx context.Context, id string) error
}

// AuthService verifies credentials, issues bearer tokens, and resolves tokens
// back to principals.
type AuthService struct {
	users  UserStore
	tokens TokenStore
	signer *token.Manager
	log    zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(users UserStore, tokens TokenStore, signer *token.Manager, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		signer: signer,
		log:    log,
	}
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	AccessToken string
	ExpiresIn   int64
}

// Login verifies the credentials and issues a token with unrestricted scope.
// Both an unknown email and a wrong password fail identically, with nothing
// issued or recorded.
func (s *AuthService) Login(ctx context.Context, email, pass string) (*LoginResponse, error) {
	s.log.Info().Str("email", email).Msg("Login attempt")

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.log.Warn().Str("email", email).Msg("Login failed: user not found")
		return nil, apperr.Unauthorized("invalid email or password")
	}

	valid, err := password.Verify(pass, user.PasswordHash)
	if err != nil {
		s.log.Error().Err(err).Msg("Password verification failed")
		return nil, apperr.Internal("password verification error", err)
	}
	if !valid {
		s.log.Warn().Str("user_id", user.ID).Msg("Login failed: invalid password")
		return nil, apperr.Unauthorized("invalid email or password")
	}

	issued, err := s.signer.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to issue token")
		return nil, apperr.Internal("failed to issue token", err)
	}

	err = s.tokens.Create(ctx, &repository.AccessToken{
		ID:        issued.ID,
		UserID:    user.ID,
		ExpiresAt: issued.ExpiresAt,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("token_id", issued.ID).Msg("Login successful")

	return &LoginResponse{
		AccessToken: issued.Token,
		ExpiresIn:   int64(TokenTTL.Seconds()),
	}, nil
}

// Authenticate resolves a bearer token to a principal. The token must carry a
// valid signature and be unexpired, and its record must still exist; a token
// deleted at logout is rejected immediately. Expiry is evaluated here, not by
// any background sweep, and an expired record is cleaned up on sight.
func (s *AuthService) Authenticate(ctx context.Context, bearer string) (*Principal, error) {
	claims, err := s.signer.Validate(bearer)
	if err != nil {
		return nil, apperr.Unauthenticated("Unauthenticated.")
	}

	record, err := s.tokens.Get(ctx, claims.ID)
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeNotFound {
			return nil, apperr.Unauthenticated("Unauthenticated.")
		}
		return nil, err
	}

	if time.Now().After(record.ExpiresAt) {
		if err := s.tokens.Delete(ctx, record.ID); err != nil {
			s.log.Warn().Err(err).Str("token_id", record.ID).Msg("Failed to remove expired token")
		}
		return nil, apperr.Unauthenticated("Unauthenticated.")
	}

	role, err := ParseRole(claims.Role)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", claims.UserID).Msg("Token carries unknown role")
		return nil, apperr.Unauthenticated("Unauthenticated.")
	}

	return &Principal{
		UserID:  claims.UserID,
		Email:   claims.Email,
		Role:    role,
		TokenID: claims.ID,
	}, nil
}

// Logout revokes the principal's current token, invalidating it for all
// subsequent requests.
func (s *AuthService) Logout(ctx context.Context, p *Principal) error {
	if err := s.tokens.Delete(ctx, p.TokenID); err != nil {
		return err
	}

	s.log.Info().Str("user_id", p.UserID).Str("token_id", p.TokenID).Msg("Logout successful")
	return nil
}
