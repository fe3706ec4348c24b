package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/pesio-ai/be-plt-directory/internal/apperr"
)

// TokenRepository handles issued access token records. A token is valid only
// while its row exists and is unexpired; logout deletes the row.
type TokenRepository struct {
	db  *pgxpool.Pool
	log zerolog.Logger
}

// NewTokenRepository creates a new token repository.
func NewTokenRepository(db *pgxpool.Pool, log zerolog.Logger) *TokenRepository {
	return &TokenRepository{db: db, log: log}
}

// Create records a newly issued token.
func (r *TokenRepository) Create(ctx context.Context, token *AccessToken) error {
	query := `
		INSERT INTO access_tokens (id, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		token.ID,
		token.UserID,
		token.ExpiresAt,
	).Scan(&token.CreatedAt)

	if err != nil {
		r.log.Error().Err(err).Str("user_id", token.UserID).Msg("Failed to create access token")
		return apperr.Wrap(err, apperr.CodeInternal, "failed to create access token")
	}

	return nil
}

// Get retrieves a token record by ID (jti).
func (r *TokenRepository) Get(ctx context.Context, id string) (*AccessToken, error) {
	token := &AccessToken{}

	query := `
		SELECT id, user_id, expires_at, created_at
		FROM access_tokens
		WHERE id = $1
	`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&token.ID,
		&token.UserID,
		&token.ExpiresAt,
		&token.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("access_token", id)
	}
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "failed to get access token")
	}

	return token, nil
}

// Delete revokes a token. Deleting an already-revoked token is not an error.
func (r *TokenRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM access_tokens WHERE id = $1`, id)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to delete access token")
		return apperr.Wrap(err, apperr.CodeInternal, "failed to delete access token")
	}

	return nil
}
