// Package email, uygulama genelinde email gönderimi için soyutlama katmanı sağlar.
//
// EmailSender interface'i ile email gönderim detayları soyutlanır.
// Şu anki implementasyon Resend API kullanır. Farklı bir sağlayıcıya geçmek
// için yeni bir implementasyon yazıp main.go'daki wire-up'ı değiştirmek yeterli.
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// EmailSender, email gönderimi için interface.
// Service katmanı bu interface'e bağımlıdır, concrete Resend implementasyonuna değil.
type EmailSender interface {
	// SendVerification, yeni kayıt olan hesaba doğrulama linki gönderir.
	// toEmail: alıcı adres, token: plaintext doğrulama token'ı (link'e gömülür).
	SendVerification(ctx context.Context, toEmail, token string) error
}

// resendSender, Resend API ile email gönderen EmailSender implementasyonu.
type resendSender struct {
	client    *resend.Client
	fromEmail string // Gönderici adresi (ör: noreply@balikhane.app)
	appURL    string // Uygulamanın public URL'i — doğrulama linklerinde kullanılır
}

// NewResendSender, Resend API client'ı ile yeni bir EmailSender oluşturur.
// apiKey: Resend dashboard'dan alınan key (re_xxxxxxxx formatında).
// fromEmail: Resend'de doğrulanmış domain altında bir adres olmalı.
func NewResendSender(apiKey, fromEmail, appURL string) EmailSender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		appURL:    appURL,
	}
}

// SendVerification, hesap doğrulama email'i gönderir.
//
// Token email'de plaintext olarak bulunur (DB'de SHA256 hash'i saklanır).
// Kullanıcı linke tıkladığında GET /api/auth/verify?token=... çağrılır,
// hesap status'u "created" → "verified" olur.
func (s *resendSender) SendVerification(ctx context.Context, toEmail, token string) error {
	verifyLink := fmt.Sprintf("%s/api/auth/verify?token=%s", s.appURL, token)

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#0f2027;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color:#0f2027;padding:40px 0;">
    <tr>
      <td align="center">
        <table width="480" cellpadding="0" cellspacing="0" style="background-color:#16303e;border-radius:8px;padding:40px;">
          <tr>
            <td>
              <h1 style="color:#e2e8f0;font-size:24px;margin:0 0 8px 0;">balıkhane</h1>
              <h2 style="color:#e2e8f0;font-size:18px;margin:0 0 24px 0;">Verify Your Account</h2>
              <p style="color:#94a3b8;font-size:15px;line-height:1.6;margin:0 0 24px 0;">
                Thanks for signing up. Click the button below to verify your email address.
              </p>
              <table cellpadding="0" cellspacing="0" style="margin:0 0 24px 0;">
                <tr>
                  <td style="background-color:#0ea5e9;border-radius:6px;padding:12px 32px;">
                    <a href="%s" style="color:#ffffff;text-decoration:none;font-size:15px;font-weight:600;">
                      Verify Email
                    </a>
                  </td>
                </tr>
              </table>
              <p style="color:#64748b;font-size:13px;line-height:1.6;margin:0 0 16px 0;">
                This link will expire in 24 hours. If you didn't create an account, you can safely ignore this email.
              </p>
              <p style="color:#475569;font-size:13px;line-height:1.6;margin:0;word-break:break-all;">
                If the button doesn't work, copy and paste this link:<br>
                <a href="%s" style="color:#0ea5e9;">%s</a>
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, verifyLink, verifyLink, verifyLink)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("balıkhane <%s>", s.fromEmail),
		To:      []string{toEmail},
		Subject: "Verify Your Account — balıkhane",
		Html:    html,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	return nil
}
