package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, access token'ın içindeki veriler (payload).
//
// Access token self-verifying'dir: imza + expiry kontrolü dışında hiçbir
// store lookup'ı gerektirmez. Server her request'te token'ı doğrular ve
// DB'ye gitmeden kullanıcının kim olduğunu (ve rolünü) bilir.
//
// Bu struct models paketinde tanımlanır çünkü birden fazla katman
// (services, middleware, ws) tarafından kullanılır — her katman models'e
// bağımlı olabilir, circular dependency oluşmaz.
type TokenClaims struct {
	UserID string   `json:"user_id"`
	Phone  string   `json:"phone"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
