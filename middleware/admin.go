// Package middleware — AdminMiddleware, admin yetkisi kontrolü.
//
// AuthMiddleware'den SONRA çalışır — context'te user bilgisi mevcuttur.
// User.Role alanını kontrol eder. Admin değilse → 403 Forbidden.
//
// 401 ile 403 ayrımı önemlidir:
//   401 Unauthorized → kimliğin belli değil (token yok/geçersiz)
//   403 Forbidden    → kimliğin belli AMA yetkin yok
//
// Kullanım:
//
//	authMw.Require(adminMw.Require(http.HandlerFunc(adminHandler.ListOrders)))
package middleware

import (
	"net/http"

	"github.com/akinalp/balikhane/handlers"
	"github.com/akinalp/balikhane/models"
	"github.com/akinalp/balikhane/pkg"
)

// AdminMiddleware, admin rolü zorunlu kılan middleware.
type AdminMiddleware struct{}

// NewAdminMiddleware, constructor.
func NewAdminMiddleware() *AdminMiddleware {
	return &AdminMiddleware{}
}

// Require, admin rolü zorunlu kılan middleware.
// Context'teki User'ın rolü admin değilse → 403 Forbidden.
func (m *AdminMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(handlers.UserContextKey).(*models.User)
		if !ok {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
			return
		}

		if user.Role != models.RoleAdmin {
			pkg.ErrorWithMessage(w, http.StatusForbidden, "admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
