package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akinalp/balikhane/database"
	"github.com/akinalp/balikhane/models"
	"github.com/akinalp/balikhane/pkg"
)

// sqliteRefreshTokenRepo, RefreshTokenRepository'nin SQLite implementasyonu.
type sqliteRefreshTokenRepo struct {
	db database.TxQuerier
}

// NewSQLiteRefreshTokenRepo, constructor.
func NewSQLiteRefreshTokenRepo(db database.TxQuerier) RefreshTokenRepository {
	return &sqliteRefreshTokenRepo{db: db}
}

func (r *sqliteRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (id, user_id, token, expires_at)
		VALUES (?, ?, ?, ?)
		RETURNING created_at`

	// expires_at her zaman UTC yazılır — sürücü time.Time'ı metin olarak
	// saklar, yerel saat dilimiyle yazılan değer SQL tarafındaki string
	// karşılaştırmalarını bozar.
	err := r.db.QueryRowContext(ctx, query,
		token.ID,
		token.UserID,
		token.Token,
		token.ExpiresAt.UTC(),
	).Scan(&token.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}

	return nil
}

func (r *sqliteRefreshTokenRepo) GetActive(ctx context.Context, token string) (*models.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, expires_at, revoked, created_at
		FROM refresh_tokens
		WHERE token = ? AND revoked = 0`

	rt := &models.RefreshToken{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&rt.ID, &rt.UserID, &rt.Token, &rt.ExpiresAt, &rt.Revoked, &rt.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	// Süre kontrolü Go'da: SQL'deki `expires_at > ?` metin karşılaştırması
	// olurdu ve saat dilimi ekine duyarlıdır. time.Time.Before mutlak anı
	// karşılaştırır. Expired, "yok" ile aynı sonucu verir.
	if !time.Now().Before(rt.ExpiresAt) {
		return nil, pkg.ErrNotFound
	}

	return rt, nil
}

func (r *sqliteRefreshTokenRepo) Redeem(ctx context.Context, token string, now time.Time) (*models.RefreshToken, error) {
	// Compare-and-swap: revoked=0 koşulu sayesinde aynı token'ı eşzamanlı
	// tüketmeye çalışan iki istekten yalnızca biri satırı günceller.
	// RETURNING, update ile aynı statement'ta kaydı geri verir — ayrı bir
	// SELECT ile arada başka bir yazma girme riski yoktur.
	//
	// Süre kontrolü kasıtlı olarak SQL'de DEĞİL Go'da yapılır: expires_at
	// metin olarak saklandığı için `expires_at > ?` string karşılaştırması
	// olur ve saat dilimi ekleri sıralamayı bozabilir. Süresi dolmuş bir
	// token'ın burada revoke edilmesi zararsızdır — zaten kullanılamaz.
	query := `
		UPDATE refresh_tokens
		SET revoked = 1
		WHERE token = ? AND revoked = 0
		RETURNING id, user_id, token, expires_at, revoked, created_at`

	rt := &models.RefreshToken{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&rt.ID, &rt.UserID, &rt.Token, &rt.ExpiresAt, &rt.Revoked, &rt.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		// Token yok, zaten revoke edilmiş VEYA bu yarışta başka bir istek
		// kazandı — hepsi aynı sonuç.
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to redeem refresh token: %w", err)
	}

	if !now.Before(rt.ExpiresAt) {
		return nil, pkg.ErrNotFound
	}

	return rt, nil
}

func (r *sqliteRefreshTokenRepo) Revoke(ctx context.Context, token string) error {
	// Idempotent: etkilenen satır sayısına bakılmaz — zaten revoke edilmiş
	// veya hiç olmamış token için de sessizce başarılı döner.
	_, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked = 1 WHERE token = ?`, token)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (r *sqliteRefreshTokenRepo) RevokeAllByUserID(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked = 1 WHERE user_id = ? AND revoked = 0`, userID)
	if err != nil {
		return fmt.Errorf("failed to revoke user refresh tokens: %w", err)
	}
	return nil
}

func (r *sqliteRefreshTokenRepo) DeleteExpired(ctx context.Context, olderThan time.Time) error {
	// Audit penceresi: yalnızca süresi olderThan'dan da eski kayıtlar
	// fiziksel olarak silinir — yakın geçmiş replay analizi için kalır.
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at < ?`, olderThan.UTC())
	if err != nil {
		return fmt.Errorf("failed to delete expired refresh tokens: %w", err)
	}
	return nil
}
