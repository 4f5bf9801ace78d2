// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
//
// Config struct'ı tüm ayarları tek bir yerde toplar — her yerde ayrı ayrı
// os.Getenv() çağırmak yerine tek bir Config nesnesi taşırız. Global state
// yoktur; Load() main'de bir kez çağrılır, sonuç constructor'lara geçilir.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
// Her alt bölüm ayrı bir struct — her struct tek bir concern'ü temsil eder.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Email     EmailConfig
	RateLimit RateLimitConfig
	Admin     AdminConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host string
	Port int
	// AllowedOrigins, CORS için izin verilen origin listesi.
	// CORS_ALLOWED_ORIGINS env'den virgülle ayrılmış olarak okunur.
	AllowedOrigins []string
}

// DatabaseConfig, SQLite database ayarları.
type DatabaseConfig struct {
	Path string // SQLite dosya yolu (ör: ./data/balikhane.db)
}

// JWTConfig, access/refresh token ayarları.
//
// Access token süresi role bağlıdır: normal kullanıcı kısa (15dk),
// admin oturumu panel kullanımı için daha uzun (60dk). Refresh token
// her iki rol için de gün cinsinden aynı süreyi kullanır.
type JWTConfig struct {
	Secret                 string // Token imzalama anahtarı — GİZLİ TUTULMALI
	AccessTokenExpiry      int    // Dakika cinsinden, role=user (varsayılan: 15)
	AdminAccessTokenExpiry int    // Dakika cinsinden, role=admin (varsayılan: 60)
	RefreshTokenExpiry     int    // Gün cinsinden (varsayılan: 7)
}

// EmailConfig, Resend email ayarları.
// APIKey boşsa email gönderimi devre dışı kalır — hesaplar "created"
// status'ta kalır ama sistem çalışmaya devam eder (dev ortamı kolaylığı).
type EmailConfig struct {
	ResendAPIKey string
	FromEmail    string
	AppURL       string
}

// RateLimitConfig, login brute-force koruması ayarları.
type RateLimitConfig struct {
	LoginMaxAttempts  int // Pencere başına izin verilen deneme (varsayılan: 5)
	LoginWindowMinute int // Pencere süresi dakika (varsayılan: 2)
}

// AdminConfig, bootstrap admin hesabı.
// Uygulama açılışta bu telefonla kayıtlı bir admin hesabının varlığını
// garanti eder. Password sadece hesap İLK oluşturulurken kullanılır.
type AdminConfig struct {
	Phone    string
	Password string
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler — dosya yoksa sessizce devam eder,
// production'da gerçek env variable'lar kullanılır.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	accessExpiry, err := strconv.Atoi(getEnv("JWT_ACCESS_EXPIRY_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRY_MINUTES: %w", err)
	}

	adminAccessExpiry, err := strconv.Atoi(getEnv("JWT_ADMIN_ACCESS_EXPIRY_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ADMIN_ACCESS_EXPIRY_MINUTES: %w", err)
	}

	refreshExpiry, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRY_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRY_DAYS: %w", err)
	}

	loginMax, err := strconv.Atoi(getEnv("LOGIN_RATE_MAX_ATTEMPTS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_MAX_ATTEMPTS: %w", err)
	}

	loginWindow, err := strconv.Atoi(getEnv("LOGIN_RATE_WINDOW_MINUTES", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_WINDOW_MINUTES: %w", err)
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           port,
			AllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/balikhane.db"),
		},
		JWT: JWTConfig{
			Secret:                 jwtSecret,
			AccessTokenExpiry:      accessExpiry,
			AdminAccessTokenExpiry: adminAccessExpiry,
			RefreshTokenExpiry:     refreshExpiry,
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromEmail:    getEnv("EMAIL_FROM", "noreply@balikhane.app"),
			AppURL:       getEnv("APP_URL", "http://localhost:8080"),
		},
		RateLimit: RateLimitConfig{
			LoginMaxAttempts:  loginMax,
			LoginWindowMinute: loginWindow,
		},
		Admin: AdminConfig{
			Phone:    getEnv("ADMIN_PHONE", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
	}

	return cfg, nil
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:8080").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
