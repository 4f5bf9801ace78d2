package models

import "time"

// RefreshToken, uzun ömürlü oturum kaydını temsil eder.
//
// Access token kısa ömürlü (15dk) — sık sık yenilenir.
// Refresh token uzun ömürlü (7 gün) — access token yenilemek için kullanılır.
// Refresh token'ları DB'de tutarak:
//   - Çalınan token'ı iptal edebiliriz (revoke)
//   - Logout'ta sadece ilgili oturumu kapatabiliriz
//   - Rotation ile tek kullanımlık hale getirebiliriz
//
// Revoke edilen satırlar SİLİNMEZ — revoked flag'i set edilir. Böylece
// tüketilmiş bir token'ın tekrar denenmesi (replay) log'lardan tespit
// edilebilir. Geçerlilik kuralı: revoked == false AND now < ExpiresAt.
type RefreshToken struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"-"` // API'ye gönderilmez
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}
