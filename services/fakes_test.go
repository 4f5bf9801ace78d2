package services

// Testlerde kullanılan in-memory fake repository'ler.
//
// Neden fake, neden mock library değil?
// Repository interface'leri küçük — elle yazılan map tabanlı fake'ler
// hem gerçek davranışı (CAS, idempotency) taşır hem de testleri
// okunur kılar. Mock framework'ün expectation DSL'ine gerek yok.

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/akinalp/balikhane/models"
	"github.com/akinalp/balikhane/pkg"
)

// ─── fakeUserRepo ───

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User // id → user
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Phone == user.Phone {
			return fmt.Errorf("%w: phone already registered", pkg.ErrAlreadyExists)
		}
		if user.Email != "" && u.Email == user.Email {
			return fmt.Errorf("%w: email already registered", pkg.ErrAlreadyExists)
		}
	}
	cp := *user
	cp.Joined = time.Now()
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user not found", pkg.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByPhone(_ context.Context, phone string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Phone == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: user not found", pkg.ErrNotFound)
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID, newPasswordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("%w: user not found", pkg.ErrNotFound)
	}
	u.PasswordHash = newPasswordHash
	return nil
}

func (r *fakeUserRepo) UpdateStatus(_ context.Context, userID string, status models.UserStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("%w: user not found", pkg.ErrNotFound)
	}
	u.Status = status
	return nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users), nil
}

// ─── fakeRefreshRepo ───

type fakeRefreshRepo struct {
	mu     sync.Mutex
	tokens map[string]*models.RefreshToken // token → record
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{tokens: make(map[string]*models.RefreshToken)}
}

func (r *fakeRefreshRepo) Create(_ context.Context, token *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *token
	cp.CreatedAt = time.Now()
	r.tokens[token.Token] = &cp
	return nil
}

func (r *fakeRefreshRepo) GetActive(_ context.Context, token string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok || t.Revoked || time.Now().After(t.ExpiresAt) {
		return nil, fmt.Errorf("%w: refresh token not found", pkg.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

func (r *fakeRefreshRepo) Redeem(_ context.Context, token string, now time.Time) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok || t.Revoked || now.After(t.ExpiresAt) {
		return nil, fmt.Errorf("%w: refresh token not found", pkg.ErrNotFound)
	}
	t.Revoked = true
	cp := *t
	return &cp, nil
}

func (r *fakeRefreshRepo) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[token]; ok {
		t.Revoked = true
	}
	return nil
}

func (r *fakeRefreshRepo) RevokeAllByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

func (r *fakeRefreshRepo) DeleteExpired(_ context.Context, olderThan time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, t := range r.tokens {
		if t.ExpiresAt.Before(olderThan) {
			delete(r.tokens, k)
		}
	}
	return nil
}

// activeCount, revoke edilmemiş token sayısını döner (test assertion'ları için).
func (r *fakeRefreshRepo) activeCount(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.tokens {
		if t.UserID == userID && !t.Revoked {
			n++
		}
	}
	return n
}

// ─── fakeVerificationRepo ───

type fakeVerificationRepo struct {
	mu     sync.Mutex
	nextID int64
	tokens map[string]*models.EmailVerificationToken // hash → record
}

func newFakeVerificationRepo() *fakeVerificationRepo {
	return &fakeVerificationRepo{tokens: make(map[string]*models.EmailVerificationToken)}
}

func (r *fakeVerificationRepo) Create(_ context.Context, token *models.EmailVerificationToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	cp := *token
	cp.ID = r.nextID
	cp.CreatedAt = time.Now()
	r.tokens[token.TokenHash] = &cp
	return nil
}

func (r *fakeVerificationRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.EmailVerificationToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[tokenHash]
	if !ok {
		return nil, fmt.Errorf("%w: verification token not found", pkg.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

func (r *fakeVerificationRepo) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, k)
		}
	}
	return nil
}

func (r *fakeVerificationRepo) DeleteExpired(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for k, t := range r.tokens {
		if now.After(t.ExpiresAt) {
			delete(r.tokens, k)
		}
	}
	return nil
}

// ─── fakeEmailSender ───

type fakeEmailSender struct {
	mu   sync.Mutex
	sent []sentEmail
}

type sentEmail struct {
	To    string
	Token string
}

func (s *fakeEmailSender) SendVerification(_ context.Context, toEmail, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentEmail{To: toEmail, Token: token})
	return nil
}

func (s *fakeEmailSender) lastToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		return ""
	}
	return s.sent[len(s.sent)-1].Token
}
