package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/balikhane/models"
	"github.com/akinalp/balikhane/pkg"
)

const testSecret = "test-secret-key"

// newTestAuthService, fake repo'larla kurulmuş bir AuthService döner.
func newTestAuthService(t *testing.T) (AuthService, *fakeUserRepo, *fakeRefreshRepo, *fakeVerificationRepo, *fakeEmailSender) {
	t.Helper()
	userRepo := newFakeUserRepo()
	refreshRepo := newFakeRefreshRepo()
	verificationRepo := newFakeVerificationRepo()
	sender := &fakeEmailSender{}
	svc := NewAuthService(nil, userRepo, refreshRepo, verificationRepo, sender, testSecret, 15, 60, 7)
	return svc, userRepo, refreshRepo, verificationRepo, sender
}

func registerTestUser(t *testing.T, svc AuthService) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), &models.CreateUserRequest{
		Name:     "Ayşe Yılmaz",
		Email:    "ayse@example.com",
		Phone:    "+905551112233",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return user
}

func TestRegister(t *testing.T) {
	svc, _, _, _, sender := newTestAuthService(t)

	user := registerTestUser(t, svc)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, models.UserStatusCreated, user.Status)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Empty(t, user.PasswordHash, "password hash must not leak out of Register")
	assert.NotEmpty(t, sender.lastToken(), "verification email should be sent")
}

func TestRegisterDuplicatePhone(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService(t)
	registerTestUser(t, svc)

	_, err := svc.Register(context.Background(), &models.CreateUserRequest{
		Name:     "Başka Biri",
		Email:    "baska@example.com",
		Phone:    "+905551112233",
		Password: "another-pass",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkg.ErrAlreadyExists))
}

func TestLogin(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService(t)
	registerTestUser(t, svc)

	tokens, err := svc.Login(context.Background(), &models.LoginRequest{
		Phone:    "+905551112233",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Empty(t, tokens.User.PasswordHash)

	claims, err := svc.ValidateAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tokens.User.ID, claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)
}

// Hesap yok ile şifre yanlış aynı hatayı dönmeli — response'dan hangi
// telefonların kayıtlı olduğu anlaşılmamalı.
func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService(t)
	registerTestUser(t, svc)

	_, errUnknown := svc.Login(context.Background(), &models.LoginRequest{
		Phone:    "+905550000000",
		Password: "whatever-pass",
	})
	_, errWrongPass := svc.Login(context.Background(), &models.LoginRequest{
		Phone:    "+905551112233",
		Password: "wrong-password",
	})

	require.Error(t, errUnknown)
	require.Error(t, errWrongPass)
	assert.True(t, errors.Is(errUnknown, pkg.ErrInvalidCredentials))
	assert.True(t, errors.Is(errWrongPass, pkg.ErrInvalidCredentials))
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService(t)
	registerTestUser(t, svc)

	tokens, err := svc.Login(context.Background(), &models.LoginRequest{
		Phone:    "+905551112233",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	// İlk refresh başarılı ve YENİ bir token çifti döner
	rotated, err := svc.RefreshToken(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	// Eski token TÜKETİLDİ — ikinci kullanım reddedilir
	_, err = svc.RefreshToken(context.Background(), tokens.RefreshToken)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkg.ErrInvalidRefreshToken))

	// Yeni token hâlâ çalışır
	_, err = svc.RefreshToken(context.Background(), rotated.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshTokenUnknown(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService(t)

	_, err := svc.RefreshToken(context.Background(), "no-such-token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkg.ErrInvalidRefreshToken))
}

func TestLogout(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService(t)
	registerTestUser(t, svc)

	tokens, err := svc.Login(context.Background(), &models.LoginRequest{
		Phone:    "+905551112233",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), tokens.RefreshToken))

	// Logout sonrası refresh reddedilir
	_, err = svc.RefreshToken(context.Background(), tokens.RefreshToken)
	assert.True(t, errors.Is(err, pkg.ErrInvalidRefreshToken))

	// Idempotent: tekrar logout ve bilinmeyen token da hata üretmez
	assert.NoError(t, svc.Logout(context.Background(), tokens.RefreshToken))
	assert.NoError(t, svc.Logout(context.Background(), "never-existed"))
}

func TestValidateAccessTokenRejectsTampered(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService(t)
	registerTestUser(t, svc)

	tokens, err := svc.Login(context.Background(), &models.LoginRequest{
		Phone:    "+905551112233",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	// İmzası bozulmuş token
	_, err = svc.ValidateAccessToken(tokens.AccessToken + "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkg.ErrInvalidToken))

	// Düpedüz çöp
	_, err = svc.ValidateAccessToken("not-a-jwt")
	assert.True(t, errors.Is(err, pkg.ErrInvalidToken))
}

func TestValidateAccessTokenRejectsExpired(t *testing.T) {
	userRepo := newFakeUserRepo()
	refreshRepo := newFakeRefreshRepo()
	verificationRepo := newFakeVerificationRepo()
	// Access TTL -1 dakika: üretilen token daha doğarken süresi geçmiş olur
	svc := NewAuthService(nil, userRepo, refreshRepo, verificationRepo, nil, testSecret, -1, -1, 7)

	_, err := svc.Register(context.Background(), &models.CreateUserRequest{
		Name:     "Ayşe Yılmaz",
		Email:    "ayse@example.com",
		Phone:    "+905551112233",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	tokens, err := svc.Login(context.Background(), &models.LoginRequest{
		Phone:    "+905551112233",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(tokens.AccessToken)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkg.ErrInvalidToken))
}

func TestChangePassword(t *testing.T) {
	svc, _, refreshRepo, _, _ := newTestAuthService(t)
	user := registerTestUser(t, svc)

	// İki oturum aç — şifre değişince ikisi de düşmeli
	_, err := svc.Login(context.Background(), &models.LoginRequest{Phone: "+905551112233", Password: "correct-horse"})
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), &models.LoginRequest{Phone: "+905551112233", Password: "correct-horse"})
	require.NoError(t, err)
	require.Equal(t, 2, refreshRepo.activeCount(user.ID))

	err = svc.ChangePassword(context.Background(), user.ID, "correct-horse", "new-password-1")
	require.NoError(t, err)

	// Tüm refresh token'lar iptal edildi
	assert.Equal(t, 0, refreshRepo.activeCount(user.ID))

	// Eski şifre artık geçmez, yenisi geçer
	_, err = svc.Login(context.Background(), &models.LoginRequest{Phone: "+905551112233", Password: "correct-horse"})
	assert.True(t, errors.Is(err, pkg.ErrInvalidCredentials))
	_, err = svc.Login(context.Background(), &models.LoginRequest{Phone: "+905551112233", Password: "new-password-1"})
	assert.NoError(t, err)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService(t)
	user := registerTestUser(t, svc)

	err := svc.ChangePassword(context.Background(), user.ID, "wrong-current", "new-password-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkg.ErrInvalidPassword))
}

func TestChangePasswordUnknownUser(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService(t)

	err := svc.ChangePassword(context.Background(), "no-such-user", "whatever", "new-password-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkg.ErrNotFound))
}

func TestAdminLogin(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService(t)
	registerTestUser(t, svc)

	require.NoError(t, svc.EnsureAdmin(context.Background(), "+905559998877", "admin-secret"))

	// Normal kullanıcı admin endpoint'inden giremez — şifre doğru olsa bile
	_, err := svc.AdminLogin(context.Background(), &models.LoginRequest{
		Phone:    "+905551112233",
		Password: "correct-horse",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkg.ErrForbidden))

	// Admin girebilir, token'da admin rolü taşınır
	tokens, err := svc.AdminLogin(context.Background(), &models.LoginRequest{
		Phone:    "+905559998877",
		Password: "admin-secret",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	// Admin access token normal token'dan uzun ömürlü (60dk > 15dk)
	assert.True(t, claims.ExpiresAt.After(time.Now().Add(30*time.Minute)))
}

func TestEnsureAdminIdempotent(t *testing.T) {
	svc, userRepo, _, _, _ := newTestAuthService(t)

	require.NoError(t, svc.EnsureAdmin(context.Background(), "+905559998877", "admin-secret"))
	require.NoError(t, svc.EnsureAdmin(context.Background(), "+905559998877", "different-pass"))

	count, err := userRepo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// İkinci çağrı şifreyi DEĞİŞTİRMEZ — ilk şifre geçerli kalır
	_, err = svc.AdminLogin(context.Background(), &models.LoginRequest{
		Phone:    "+905559998877",
		Password: "admin-secret",
	})
	assert.NoError(t, err)
}

func TestVerifyEmail(t *testing.T) {
	svc, userRepo, _, _, sender := newTestAuthService(t)
	user := registerTestUser(t, svc)

	token := sender.lastToken()
	require.NotEmpty(t, token)

	require.NoError(t, svc.VerifyEmail(context.Background(), token))

	updated, err := userRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusVerified, updated.Status)

	// Link tek kullanımlık — ikinci tıklama reddedilir
	err = svc.VerifyEmail(context.Background(), token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkg.ErrBadRequest))
}

func TestVerifyEmailInvalidToken(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService(t)

	err := svc.VerifyEmail(context.Background(), "bogus-token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkg.ErrBadRequest))

	err = svc.VerifyEmail(context.Background(), "")
	assert.True(t, errors.Is(err, pkg.ErrBadRequest))
}
