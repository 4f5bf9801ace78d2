// Package repository — EmailVerificationRepository'nin SQLite implementasyonu.
// Token plaintext olarak SAKLANMAZ — sadece SHA256 hash saklanır.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/balikhane/database"
	"github.com/akinalp/balikhane/models"
	"github.com/akinalp/balikhane/pkg"
)

type sqliteVerificationTokenRepo struct {
	db database.TxQuerier
}

// NewSQLiteVerificationTokenRepo, constructor.
func NewSQLiteVerificationTokenRepo(db database.TxQuerier) EmailVerificationRepository {
	return &sqliteVerificationTokenRepo{db: db}
}

func (r *sqliteVerificationTokenRepo) Create(ctx context.Context, token *models.EmailVerificationToken) error {
	query := `INSERT INTO email_verification_tokens (user_id, token_hash, expires_at)
		VALUES (?, ?, ?)`

	// expires_at UTC yazılır — DeleteExpired'daki CURRENT_TIMESTAMP (UTC)
	// karşılaştırması yerel saatle yazılmış değerlerde yanlış sonuç verir.
	_, err := r.db.ExecContext(ctx, query, token.UserID, token.TokenHash, token.ExpiresAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create verification token: %w", err)
	}

	return nil
}

func (r *sqliteVerificationTokenRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.EmailVerificationToken, error) {
	query := `SELECT id, user_id, token_hash, expires_at, created_at
		FROM email_verification_tokens WHERE token_hash = ?`

	token := &models.EmailVerificationToken{}
	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID, &token.UserID, &token.TokenHash, &token.ExpiresAt, &token.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get verification token: %w", err)
	}

	return token, nil
}

func (r *sqliteVerificationTokenRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM email_verification_tokens WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user's verification tokens: %w", err)
	}
	return nil
}

func (r *sqliteVerificationTokenRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM email_verification_tokens WHERE expires_at < CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("failed to delete expired verification tokens: %w", err)
	}
	return nil
}
