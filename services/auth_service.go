// Package services, business logic katmanını barındırır.
//
// Service Layer Pattern nedir?
// Handler (HTTP) ile Repository (DB) arasında oturan katmandır.
// Tüm iş kuralları burada yaşar:
//   - Şifre hash'leme ve doğrulama
//   - JWT token oluşturma, refresh token rotation
//   - Sipariş fiyat hesabı, minimum miktar kontrolü
//
// Service ASLA http.Request/Response bilmez — sadece domain modelleri alır/verir.
// Service ASLA doğrudan SQL çalıştırmaz — Repository interface'i kullanır.
package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/akinalp/balikhane/database"
	"github.com/akinalp/balikhane/models"
	"github.com/akinalp/balikhane/pkg"
	"github.com/akinalp/balikhane/pkg/email"
	"github.com/akinalp/balikhane/repository"
)

// bcryptCost, şifre hash'lemede kullanılan maliyet faktörü.
// Her artış hash süresini ikiye katlar — 10, login gecikmesi ile brute-force
// direnci arasındaki dengedir.
const bcryptCost = 10

// verificationTokenTTL, email doğrulama linkinin geçerlilik süresi.
const verificationTokenTTL = 24 * time.Hour

// AuthService interface'i — dışarıya açık API.
// Handler bu interface'e bağımlıdır, concrete struct'a değil.
type AuthService interface {
	// Register, yeni hesap oluşturur. Token ÇİFTİ DÖNMEZ — kullanıcı
	// kayıttan sonra login olur. Email sender yapılandırılmışsa doğrulama
	// maili gönderilir.
	Register(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	// Login, telefon + şifre ile giriş yapar ve token çifti döner.
	Login(ctx context.Context, req *models.LoginRequest) (*AuthTokens, error)
	// AdminLogin, sadece admin rolündeki hesaplar için giriş yapar.
	// Admin olmayan hesap için şifre doğru olsa bile pkg.ErrForbidden döner.
	AdminLogin(ctx context.Context, req *models.LoginRequest) (*AuthTokens, error)
	// RefreshToken, refresh token'ı TÜKETİR ve yeni bir çift döner (rotation).
	// Aynı token ikinci kez kullanılamaz.
	RefreshToken(ctx context.Context, refreshToken string) (*AuthTokens, error)
	// Logout, refresh token'ı iptal eder. Idempotent — bilinmeyen token'da
	// da başarılı döner.
	Logout(ctx context.Context, refreshToken string) error
	// ValidateAccessToken, JWT imza + expiry kontrolü yapar ve claims döner.
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
	// ChangePassword, mevcut şifreyi doğrulayıp yenisini yazar ve hesabın
	// TÜM refresh token'larını iptal eder.
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	// VerifyEmail, doğrulama linkindeki token ile hesabı "verified" yapar.
	VerifyEmail(ctx context.Context, token string) error
	// EnsureAdmin, config'teki admin hesabı yoksa oluşturur (bootstrap).
	EnsureAdmin(ctx context.Context, phone, password string) error
}

// AuthTokens, login/refresh sonrası dönen token çifti.
type AuthTokens struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
}

// authService, AuthService interface'inin implementasyonu.
type authService struct {
	db               *sql.DB // Transaction desteği (WithTx) için — ChangePassword atomik çalışır
	userRepo         repository.UserRepository
	refreshRepo      repository.RefreshTokenRepository
	verificationRepo repository.EmailVerificationRepository
	emailSender      email.EmailSender // nil olabilir — email devre dışı
	jwtSecret        []byte
	accessExp        time.Duration
	adminAccessExp   time.Duration
	refreshExp       time.Duration
}

// NewAuthService, constructor.
//
// db: ChangePassword'de WithTx ile atomik işlem için doğrudan *sql.DB
// gerekir. Testlerde fake repo'larla nil geçilir — bu durumda adımlar
// sıralı çalışır.
//
// emailSender nil geçilebilir — bu durumda Register doğrulama maili
// göndermez, hesap "created" status'unda kalır ama login engellenmez.
func NewAuthService(
	db *sql.DB,
	userRepo repository.UserRepository,
	refreshRepo repository.RefreshTokenRepository,
	verificationRepo repository.EmailVerificationRepository,
	emailSender email.EmailSender,
	jwtSecret string,
	accessExpMinutes int,
	adminAccessExpMinutes int,
	refreshExpDays int,
) AuthService {
	return &authService{
		db:               db,
		userRepo:         userRepo,
		refreshRepo:      refreshRepo,
		verificationRepo: verificationRepo,
		emailSender:      emailSender,
		jwtSecret:        []byte(jwtSecret),
		accessExp:        time.Duration(accessExpMinutes) * time.Minute,
		adminAccessExp:   time.Duration(adminAccessExpMinutes) * time.Minute,
		refreshExp:       time.Duration(refreshExpDays) * 24 * time.Hour,
	}
}

// Register, yeni hesap kaydı oluşturur.
//
// Kayıt token çifti DÖNMEZ — otomatik login yoktur. Kullanıcı kayıttan
// sonra /login endpoint'inden giriş yapar. Böylece register ve login
// akışları birbirinden bağımsız test edilebilir.
func (s *authService) Register(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	// 1. Validation
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// 2. Bcrypt hash
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// 3. User oluştur
	user := &models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Status:       models.UserStatusCreated,
		Role:         models.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err // ErrAlreadyExists olabilir
	}

	// 4. Doğrulama maili — email yapılandırılmamışsa atla.
	// Mail gönderimi kayıt işlemini BLOKLAMAZ: Resend down olsa bile hesap
	// oluşur, kullanıcı daha sonra yeniden doğrulama isteyebilir.
	if s.emailSender != nil {
		if err := s.sendVerificationEmail(ctx, user); err != nil {
			log.Printf("[auth] failed to send verification email to %s: %v", user.Email, err)
		}
	}

	pub := user.Public()
	return &pub, nil
}

// Login, telefon + şifre ile giriş yapar.
//
// Hesap bulunamadı ve şifre yanlış durumları AYNI hatayı döner
// (ErrInvalidCredentials) — hangi telefonların kayıtlı olduğu response'dan
// anlaşılamaz (account enumeration koruması).
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*AuthTokens, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.GetByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid phone or password", pkg.ErrInvalidCredentials)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid phone or password", pkg.ErrInvalidCredentials)
	}

	return s.generateTokens(ctx, user)
}

// AdminLogin, admin paneli girişi.
//
// Rol kontrolü şifre kontrolünden ÖNCE yapılır: admin olmayan bir hesap
// doğru şifreyle bile bu endpoint'ten giremez. Admin access token'ı
// normal token'dan daha uzun ömürlüdür (panel oturumu).
func (s *authService) AdminLogin(ctx context.Context, req *models.LoginRequest) (*AuthTokens, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.GetByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid phone or password", pkg.ErrInvalidCredentials)
		}
		return nil, err
	}

	if user.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: admin access required", pkg.ErrForbidden)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid phone or password", pkg.ErrInvalidCredentials)
	}

	return s.generateTokens(ctx, user)
}

// RefreshToken, refresh token rotation yapar.
//
// Akış:
// 1. Redeem — token'ı ATOMİK olarak tüket (CAS). Aynı token ile yarışan
//    iki istekten yalnızca biri başarılı olur.
// 2. Kullanıcıyı YENİDEN yükle — rol veya status login'den beri değişmiş
//    olabilir; yeni access token güncel veriyle kesilir.
// 3. Yeni çift üret.
//
// Tüketilmiş token'ın tekrar kullanılması normal "invalid token" hatasıyla
// aynı şekilde reddedilir; replay ayrıca loglanmaz çünkü Redeem düzeyinde
// ayırt edilemez — DB'deki revoked satır audit için yeterlidir.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	record, err := s.refreshRepo.Redeem(ctx, refreshToken, time.Now())
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: refresh token is invalid or expired", pkg.ErrInvalidRefreshToken)
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			// Hesap silinmiş — token tüketildi, oturum kapanır.
			return nil, fmt.Errorf("%w: account no longer exists", pkg.ErrInvalidRefreshToken)
		}
		return nil, err
	}

	return s.generateTokens(ctx, user)
}

// Logout, refresh token'ı iptal eder.
//
// Idempotent: zaten revoke edilmiş veya hiç var olmamış token için de
// başarılı döner. Logout'un tekrar tekrar çağrılması zararsızdır ve
// client retry'ları hata üretmez.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	return s.refreshRepo.Revoke(ctx, refreshToken)
}

// ValidateAccessToken, JWT access token'ı doğrular ve claims'i döner.
//
// Store lookup YOKTUR — imza ve expiry yeterlidir. Bu yüzden access token
// yayınlandıktan sonra geri alınamaz; kısa ömür (15dk) bu riski sınırlar.
func (s *authService) ValidateAccessToken(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", pkg.ErrInvalidToken)
	}

	return claims, nil
}

// ChangePassword, kullanıcının şifresini değiştirir.
//
// Mevcut şifre YENİDEN doğrulanır — access token tek başına yeterli değil.
// Başarılı değişimde hesabın tüm refresh token'ları iptal edilir: şifre
// değiştirme genelde "hesabım ele geçirildi" şüphesiyle yapılır, açık
// oturumların düşmesi istenen davranıştır.
func (s *authService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", pkg.ErrBadRequest)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err // ErrNotFound olabilir
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("%w: current password is incorrect", pkg.ErrInvalidPassword)
	}

	if currentPassword == newPassword {
		return fmt.Errorf("%w: new password must be different from current password", pkg.ErrBadRequest)
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	// Şifre yazma + oturum iptali tek birimdir: "şifre değişti ama eski
	// oturumlar hâlâ açık" gibi yarım kalmış bir durum olmamalı.
	// db varsa ikisi aynı transaction'da çalışır.
	if s.db != nil {
		return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
			txUsers := repository.NewSQLiteUserRepo(tx)
			txTokens := repository.NewSQLiteRefreshTokenRepo(tx)

			if err := txUsers.UpdatePassword(ctx, userID, string(newHash)); err != nil {
				return err
			}
			if err := txTokens.RevokeAllByUserID(ctx, userID); err != nil {
				return fmt.Errorf("failed to revoke sessions: %w", err)
			}
			return nil
		})
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(newHash)); err != nil {
		return err
	}

	if err := s.refreshRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	return nil
}

// VerifyEmail, doğrulama linkindeki token ile hesabı "verified" yapar.
//
// Token DB'de SHA256 hash olarak tutulur — DB sızıntısında ham token'lar
// ele geçmez. Başarılı doğrulamada hesabın tüm doğrulama token'ları
// silinir (tek kullanımlık link).
func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: missing verification token", pkg.ErrBadRequest)
	}

	hash := sha256.Sum256([]byte(token))
	record, err := s.verificationRepo.GetByTokenHash(ctx, hex.EncodeToString(hash[:]))
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return fmt.Errorf("%w: verification token is invalid", pkg.ErrBadRequest)
		}
		return err
	}

	if time.Now().After(record.ExpiresAt) {
		return fmt.Errorf("%w: verification token expired", pkg.ErrBadRequest)
	}

	if err := s.userRepo.UpdateStatus(ctx, record.UserID, models.UserStatusVerified); err != nil {
		return err
	}

	return s.verificationRepo.DeleteByUserID(ctx, record.UserID)
}

// EnsureAdmin, config'teki admin hesabını bootstrap eder.
//
// Server her açılışta çağırır: hesap zaten varsa no-op, yoksa oluşturur.
// Admin hesabı normal register akışından geçmez — status doğrudan
// "verified", rol "admin" yazılır.
func (s *authService) EnsureAdmin(ctx context.Context, phone, password string) error {
	if phone == "" || password == "" {
		return nil // admin bootstrap yapılandırılmamış
	}

	if _, err := s.userRepo.GetByPhone(ctx, phone); err == nil {
		return nil
	} else if !errors.Is(err, pkg.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		ID:           uuid.NewString(),
		Name:         "Admin",
		Email:        "",
		Phone:        phone,
		PasswordHash: string(hash),
		Status:       models.UserStatusVerified,
		Role:         models.RoleAdmin,
	}

	if err := s.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	log.Printf("[auth] admin account created: phone=%s", phone)
	return nil
}

// ─── Private Helpers ───

// generateTokens, access + refresh token çifti üretir.
//
// Access token: HS256 imzalı JWT. Admin için daha uzun TTL kullanılır.
// Refresh token: 32 byte kriptografik rastgele değer, hex encoded —
// JWT DEĞİLDİR, içeriğinden hiçbir bilgi çıkarılamaz. Geçerliliği
// tamamen DB kaydına bağlıdır.
func (s *authService) generateTokens(ctx context.Context, user *models.User) (*AuthTokens, error) {
	now := time.Now()

	accessExp := s.accessExp
	if user.Role == models.RoleAdmin {
		accessExp = s.adminAccessExp
	}

	accessClaims := &models.TokenClaims{
		UserID: user.ID,
		Phone:  user.Phone,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(accessExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "balikhane",
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessString, err := accessToken.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshBytes := make([]byte, 32)
	if _, err := rand.Read(refreshBytes); err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	refreshString := hex.EncodeToString(refreshBytes)

	record := &models.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     refreshString,
		ExpiresAt: now.Add(s.refreshExp),
	}

	if err := s.refreshRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	// Fırsat temizliği: süresi geçmiş eski kayıtları arada sil.
	// Hata kritik değil — bir sonraki login'de tekrar denenir.
	if err := s.refreshRepo.DeleteExpired(ctx, now.Add(-30*24*time.Hour)); err != nil {
		log.Printf("[auth] failed to prune expired refresh tokens: %v", err)
	}

	return &AuthTokens{
		AccessToken:  accessString,
		RefreshToken: refreshString,
		User:         user.Public(),
	}, nil
}

// sendVerificationEmail, doğrulama token'ı üretir, hash'ini DB'ye yazar
// ve ham token'ı mail linkiyle gönderir.
func (s *authService) sendVerificationEmail(ctx context.Context, user *models.User) error {
	// Önceki bekleyen token'ları düşür — her hesapta tek aktif link olur.
	if err := s.verificationRepo.DeleteByUserID(ctx, user.ID); err != nil {
		return err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate verification token: %w", err)
	}
	token := hex.EncodeToString(raw)
	hash := sha256.Sum256([]byte(token))

	record := &models.EmailVerificationToken{
		UserID:    user.ID,
		TokenHash: hex.EncodeToString(hash[:]),
		ExpiresAt: time.Now().Add(verificationTokenTTL),
	}
	if err := s.verificationRepo.Create(ctx, record); err != nil {
		return err
	}

	return s.emailSender.SendVerification(ctx, user.Email, token)
}
