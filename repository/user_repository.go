// Package repository, veritabanı erişim katmanını tanımlar.
//
// Repository Pattern: veritabanı işlemlerini (CRUD) soyutlayan katman.
// Service katmanı doğrudan SQL yazmaz — repository interface'i üzerinden
// çalışır. Interface olması iki şey kazandırır:
//  1. Test: fake repository ile DB olmadan service test edilebilir
//  2. Esneklik: SQLite'tan başka bir store'a geçiş sadece yeni implementasyon
//
// Go'da interface implicit'tır — struct, interface'deki tüm method'ları
// implement ediyorsa otomatik olarak o interface'i sağlar.
package repository

import (
	"context"

	"github.com/akinalp/balikhane/models"
)

// UserRepository, hesap veritabanı işlemleri için interface.
// Telefon numarası login anahtarıdır — GetByPhone auth akışının girişidir.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	// UpdatePassword, hesabın şifre hash'ini günceller.
	// AuthService.ChangePassword tarafından çağrılır — yeni bcrypt hash alır.
	UpdatePassword(ctx context.Context, userID string, newPasswordHash string) error
	// UpdateStatus, email doğrulama sonrası status'u "verified" yapar.
	UpdateStatus(ctx context.Context, userID string, status models.UserStatus) error
	Count(ctx context.Context) (int, error)
}
