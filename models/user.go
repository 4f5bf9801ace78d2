// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model, veritabanındaki bir tablonun Go karşılığıdır; aynı zamanda API'den
// gelen/giden verilerin şeklini de belirler. `json:"..."` tag'leri struct
// field'larının JSON'a nasıl serialize/deserialize edileceğini söyler.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// UserStatus, hesabın email doğrulama durumunu temsil eder.
// Go'da enum yoktur — typed constant'lar kullanılır.
type UserStatus string

const (
	// UserStatusCreated — hesap açıldı, email henüz doğrulanmadı.
	UserStatusCreated UserStatus = "created"
	// UserStatusVerified — doğrulama linkine tıklandı.
	UserStatusVerified UserStatus = "verified"
)

// UserRole, hesabın yetki seviyesini temsil eder.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User, bir hesabı temsil eder. Telefon numarası login anahtarıdır (unique).
//
// PasswordHash `json:"-"` ile işaretli — API response'a ASLA dahil edilmez.
// Public görünüm istendiğinde bu struct hash'i sıfırlanarak döner.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	PasswordHash string     `json:"-"`
	Status       UserStatus `json:"status"`
	Role         UserRole   `json:"role"`
	Joined       time.Time  `json:"joined"`
}

// Public, hash'i temizlenmiş bir kopya döner.
// Handler'lara giden her User bu metodtan geçmeli.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// emailRegex — pragmatik email kontrolü, RFC 5322'nin tamamı değil.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// phoneRegex — uluslararası format, 10-15 hane, opsiyonel + prefix.
var phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// CreateUserRequest, kayıt olurken frontend'den gelen veri.
// PasswordHash yerine Password alırız — hash'leme service katmanında yapılır.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Validate, CreateUserRequest'in geçerli olup olmadığını kontrol eder.
//   - Name: 2-64 karakter
//   - Email: basit format kontrolü
//   - Phone: 10-15 hane
//   - Password: minimum 8 karakter
func (r *CreateUserRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 2 || nameLen > 64 {
		return fmt.Errorf("name must be between 2 and 64 characters")
	}

	r.Email = strings.TrimSpace(r.Email)
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}

	r.Phone = strings.TrimSpace(r.Phone)
	if !phoneRegex.MatchString(r.Phone) {
		return fmt.Errorf("invalid phone format")
	}

	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	return nil
}

// LoginRequest, giriş yaparken frontend'den gelen veri.
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Validate, LoginRequest alanlarının dolu olduğunu kontrol eder.
// Format kontrolü yapmayız — yanlış formatlı telefon zaten DB'de bulunamaz
// ve login "invalid credentials" döner; ekstra bilgi sızdırmaya gerek yok.
func (r *LoginRequest) Validate() error {
	r.Phone = strings.TrimSpace(r.Phone)
	if r.Phone == "" || r.Password == "" {
		return fmt.Errorf("phone and password are required")
	}
	return nil
}
