// Package main, balıkhane backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//  1. Config'i yükle
//  2. Database'i başlat (embedded migration'lar ile)
//  3. Repository'leri oluştur (DB bağlantısı ile)
//  4. WebSocket Hub'ı başlat
//  5. Service'leri oluştur (repository'ler + hub ile)
//  6. Admin hesabını bootstrap et
//  7. Handler'ları oluştur (service'ler ile)
//  8. HTTP router'ı kur, route'ları bağla
//  9. CORS yapılandır
// 10. HTTP Server'ı başlat
// 11. Graceful shutdown
//
// Global değişken YOK — her şey bu fonksiyonda oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/akinalp/balikhane/config"
	"github.com/akinalp/balikhane/database"
	"github.com/akinalp/balikhane/handlers"
	"github.com/akinalp/balikhane/pkg/email"
	"github.com/akinalp/balikhane/pkg/ratelimit"
	"github.com/akinalp/balikhane/repository"
	"github.com/akinalp/balikhane/services"
	"github.com/akinalp/balikhane/ws"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] balikhane server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	// ─── 2. Database ───
	//
	// Migration'lar binary'ye gömülüdür (go:embed) — deploy tek dosyadır,
	// yanında migrations klasörü taşınmaz.
	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("[main] failed to load embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrationsFS)
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3. Repository Layer ───
	userRepo := repository.NewSQLiteUserRepo(db.Conn)
	refreshRepo := repository.NewSQLiteRefreshTokenRepo(db.Conn)
	verificationRepo := repository.NewSQLiteVerificationTokenRepo(db.Conn)
	fishRepo := repository.NewSQLiteFishRepo(db.Conn)
	orderRepo := repository.NewSQLiteOrderRepo(db.Conn)

	// ─── 4. WebSocket Hub ───
	//
	// Hub, tüm WebSocket bağlantılarını yöneten merkezi yapıdır.
	// `go hub.Run()` ayrı bir goroutine'de event loop başlatır.
	// Hub aynı zamanda EventPublisher interface'ini implement eder —
	// service'ler hub'a doğrudan bağımlı olmak yerine interface üzerinden erişir.
	hub := ws.NewHub()
	go hub.Run()

	// ─── 5. Service Layer ───
	//
	// Email sender opsiyoneldir: RESEND_API_KEY boşsa doğrulama maili
	// gönderilmez, kayıt akışı maile takılmadan çalışır.
	var emailSender email.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		emailSender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail, cfg.Email.AppURL)
		log.Println("[main] email verification enabled")
	} else {
		log.Println("[main] RESEND_API_KEY not set, email verification disabled")
	}

	authService := services.NewAuthService(
		db.Conn,
		userRepo, refreshRepo, verificationRepo, emailSender,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.AdminAccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	catalogService := services.NewCatalogService(fishRepo)
	orderService := services.NewOrderService(orderRepo, fishRepo, hub)

	// ─── 6. Admin Bootstrap ───
	//
	// Config'te admin bilgisi varsa ve hesap yoksa oluştur. Panel girişi
	// için ilk admin'in elle DB'ye yazılmasına gerek kalmaz.
	if err := authService.EnsureAdmin(context.Background(), cfg.Admin.Phone, cfg.Admin.Password); err != nil {
		log.Fatalf("[main] failed to ensure admin account: %v", err)
	}

	// ─── 7. Handler Layer ───
	loginLimiter := ratelimit.NewLoginRateLimiter(
		cfg.RateLimit.LoginMaxAttempts,
		time.Duration(cfg.RateLimit.LoginWindowMinute)*time.Minute,
	)

	authHandler := handlers.NewAuthHandler(authService, loginLimiter)
	fishHandler := handlers.NewFishHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)
	adminHandler := handlers.NewAdminHandler(authService, catalogService, orderService, userRepo)
	wsHandler := ws.NewHandler(hub, authService)

	// ─── 8. Routes ───
	mux := http.NewServeMux()
	initRoutes(mux, authHandler, fishHandler, orderHandler, adminHandler, wsHandler, authService, userRepo)

	// ─── 9. CORS ───
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := corsHandler.Handler(mux)

	// ─── 10. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 11. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	// Önce WebSocket bağlantılarını kapat, sonra HTTP server'ı:
	// yeni request kabul edilmez, mevcut request'lerin bitmesi beklenir.
	hub.Shutdown()
	loginLimiter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
