// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Go'da error'lar basit değerlerdir (string taşıyan struct'lar).
// errors.New() ile sabit error değişkenleri tanımlarız.
// Böylece error karşılaştırması string yerine referans ile yapılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
//
// Bu, typo'ya açık string karşılaştırmasından çok daha güvenlidir.
package pkg

import "errors"

// Domain-level error'lar — kapalı küme.
// Service katmanı bunları fmt.Errorf("%w: detay") ile sarıp döner,
// handler katmanı pkg.Error ile HTTP status code'larına map'ler.
//
// Auth'a özel error'lar neden ayrı?
//   - ErrInvalidCredentials: login'de "telefon kayıtlı değil" ile "şifre
//     yanlış" aynı error'dur — dış dünyadan hesabın varlığı anlaşılamaz
//     (account enumeration koruması).
//   - ErrInvalidRefreshToken: revoke edilmiş, süresi dolmuş veya hiç var
//     olmamış refresh token — üçü de dışarıdan aynı görünür.
//   - ErrInvalidToken: imzası, payload'ı bozuk veya süresi dolmuş access token.
//   - ErrInvalidPassword: şifre değiştirirken mevcut şifre tutmadı.
//     ErrNotFound'dan (hesap yok) ayrı bir durumdur.
var (
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrAlreadyExists       = errors.New("already exists")
	ErrBadRequest          = errors.New("bad request")
	ErrInternal            = errors.New("internal error")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrInvalidToken        = errors.New("invalid token")
	ErrInvalidPassword     = errors.New("invalid password")
)
