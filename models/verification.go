package models

import "time"

// EmailVerificationToken, hesap doğrulama token kaydı.
// Token plaintext saklanmaz — sadece SHA256 hash'i DB'de tutulur.
// Plaintext token yalnızca doğrulama email'indeki linkte yaşar.
type EmailVerificationToken struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
