// Package repository — EmailVerificationRepository interface tanımı.
package repository

import (
	"context"

	"github.com/akinalp/balikhane/models"
)

// EmailVerificationRepository, hesap doğrulama token işlemleri için interface.
type EmailVerificationRepository interface {
	// Create, yeni bir doğrulama token kaydı oluşturur.
	Create(ctx context.Context, token *models.EmailVerificationToken) error

	// GetByTokenHash, SHA256 hash'e göre token kaydını bulur.
	// Bulunamazsa pkg.ErrNotFound döner.
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.EmailVerificationToken, error)

	// DeleteByUserID, bir hesabın TÜM doğrulama token'larını siler.
	// Başarılı doğrulama sonrası ve yeni token üretmeden önce çağrılır.
	DeleteByUserID(ctx context.Context, userID string) error

	// DeleteExpired, süresi dolmuş token'ları temizler (fırsat temizliği).
	DeleteExpired(ctx context.Context) error
}
