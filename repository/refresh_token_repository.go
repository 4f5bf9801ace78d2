// Package repository — RefreshTokenRepository interface tanımı.
//
// Refresh token'ların yaşam döngüsü: Create (login/rotation) → GetActive
// (doğrulama) → Redeem (rotation'da tek seferlik tüketim) → Revoke
// (logout). Satırlar hiç silinmez; Revoke sadece flag set eder.
package repository

import (
	"context"
	"time"

	"github.com/akinalp/balikhane/models"
)

// RefreshTokenRepository, refresh token veritabanı işlemleri için interface.
type RefreshTokenRepository interface {
	// Create, yeni bir aktif refresh token kaydı oluşturur.
	Create(ctx context.Context, token *models.RefreshToken) error

	// GetActive, token değerine göre GEÇERLİ kaydı bulur.
	// Revoke edilmiş veya süresi dolmuş token, hiç var olmamış token ile
	// AYNI şekilde pkg.ErrNotFound döner — caller token'ın neden geçersiz
	// olduğunu ayırt edemez (state leakage koruması).
	GetActive(ctx context.Context, token string) (*models.RefreshToken, error)

	// Redeem, token'ı atomik olarak tüketir: revoked flag'i üzerinde
	// compare-and-swap yapar ve kaydı döner. Aynı token ile eşzamanlı iki
	// Redeem çağrısından YALNIZCA BİRİ kaydı alır; diğeri pkg.ErrNotFound
	// görür. Rotation'ın at-most-once garantisi buradadır.
	Redeem(ctx context.Context, token string, now time.Time) (*models.RefreshToken, error)

	// Revoke, token'ı iptal eder. Idempotent: zaten revoke edilmiş veya
	// hiç var olmayan token için no-op, asla error dönmez.
	Revoke(ctx context.Context, token string) error

	// RevokeAllByUserID, hesabın TÜM refresh token'larını iptal eder.
	// Şifre değişiminde çağrılır — çalınmış olabilecek oturumlar düşer.
	RevokeAllByUserID(ctx context.Context, userID string) error

	// DeleteExpired, süresi dolmuş VE revoke edilmiş eski kayıtları temizler.
	// Fırsat temizliği — ayrı bir cron job'a gerek kalmaz.
	DeleteExpired(ctx context.Context, olderThan time.Time) error
}
