// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
// Middleware chain helper'ları burada tanımlıdır:
//   - auth: JWT token doğrulaması
//   - authAdmin: auth + admin rol kontrolü
package main

import (
	"fmt"
	"net/http"

	"github.com/akinalp/balikhane/handlers"
	"github.com/akinalp/balikhane/middleware"
	"github.com/akinalp/balikhane/repository"
	"github.com/akinalp/balikhane/services"
	"github.com/akinalp/balikhane/ws"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
//
// Go 1.22+ method pattern: "POST /api/auth/login" gibi method + path
// birlikte tanımlanır, yanlış method otomatik 405 döner.
func initRoutes(
	mux *http.ServeMux,
	authHandler *handlers.AuthHandler,
	fishHandler *handlers.FishHandler,
	orderHandler *handlers.OrderHandler,
	adminHandler *handlers.AdminHandler,
	wsHandler *ws.Handler,
	authService services.AuthService,
	userRepo repository.UserRepository,
) {
	// ─── Middleware ───
	authMw := middleware.NewAuthMiddleware(authService, userRepo)
	adminMw := middleware.NewAdminMiddleware()

	// ─── Middleware Chain Helpers ───
	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(http.HandlerFunc(handler))
	}
	authAdmin := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(adminMw.Require(http.HandlerFunc(handler)))
	}

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"balikhane"}`)
	})

	// Auth
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/verify", authHandler.VerifyEmail)

	// Me
	mux.Handle("GET /api/users/me", auth(authHandler.Me))
	mux.Handle("POST /api/users/me/password", auth(authHandler.ChangePassword))

	// Katalog — herkese açık, login gerekmez
	mux.HandleFunc("GET /api/fish", fishHandler.List)
	mux.HandleFunc("GET /api/fish/{id}", fishHandler.Get)

	// Siparişler — hesaba bağlı
	mux.Handle("POST /api/orders", auth(orderHandler.Create))
	mux.Handle("GET /api/orders", auth(orderHandler.ListMine))

	// Admin
	mux.HandleFunc("POST /api/admin/login", adminHandler.Login)
	mux.Handle("GET /api/admin/users", authAdmin(adminHandler.ListUsers))
	mux.Handle("POST /api/admin/fish", authAdmin(adminHandler.CreateFish))
	mux.Handle("PUT /api/admin/fish/{id}", authAdmin(adminHandler.UpdateFish))
	mux.Handle("DELETE /api/admin/fish/{id}", authAdmin(adminHandler.DeleteFish))
	mux.Handle("GET /api/admin/orders", authAdmin(adminHandler.ListOrders))
	mux.Handle("PUT /api/admin/orders/{id}/status", authAdmin(adminHandler.UpdateOrderStatus))
	mux.Handle("POST /api/admin/password", authAdmin(adminHandler.ChangePassword))

	// WebSocket — token query parameter ile authenticate edilir
	//
	// Neden auth middleware kullanmıyoruz?
	// WebSocket upgrade sırasında tarayıcılar custom HTTP header gönderemez.
	// Bu yüzden JWT token URL query parameter olarak gönderilir:
	//   ws://server/ws?token=JWT_TOKEN
	// WS handler kendi içinde token doğrulaması yapar.
	mux.HandleFunc("GET /ws", wsHandler.HandleConnection)
}
