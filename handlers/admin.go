// Package handlers — AdminHandler, admin paneli endpoint'leri.
//
// AdminLogin HARİÇ tüm endpoint'ler AuthMiddleware + AdminMiddleware
// zincirinden geçer. AdminLogin herkese açıktır ama service katmanı
// admin olmayan hesapları 403 ile reddeder.
//
// Thin handler pattern: parse request → call service → return response.
// Business logic service katmanındadır.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/balikhane/models"
	"github.com/akinalp/balikhane/pkg"
	"github.com/akinalp/balikhane/repository"
	"github.com/akinalp/balikhane/services"
)

// AdminHandler, admin paneli endpoint'lerini yönetir.
type AdminHandler struct {
	authService    services.AuthService
	catalogService services.CatalogService
	orderService   services.OrderService
	userRepo       repository.UserRepository
}

// NewAdminHandler, constructor.
func NewAdminHandler(
	authService services.AuthService,
	catalogService services.CatalogService,
	orderService services.OrderService,
	userRepo repository.UserRepository,
) *AdminHandler {
	return &AdminHandler{
		authService:    authService,
		catalogService: catalogService,
		orderService:   orderService,
		userRepo:       userRepo,
	}
}

// Login — POST /api/admin/login
//
// Normal login ile aynı body, ama sadece admin rolü kabul edilir ve
// access token daha uzun ömürlüdür.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.authService.AdminLogin(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, tokens)
}

// ListUsers — GET /api/admin/users
// Tüm kayıtlı hesapları listeler (password hash'siz).
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepo.GetAll(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	public := make([]models.User, len(users))
	for i, u := range users {
		public[i] = u.Public()
	}

	pkg.JSON(w, http.StatusOK, public)
}

// CreateFish — POST /api/admin/fish
func (h *AdminHandler) CreateFish(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFishItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.catalogService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, item)
}

// UpdateFish — PUT /api/admin/fish/{id}
// Partial update: sadece gönderilen alanlar değişir.
func (h *AdminHandler) UpdateFish(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "item id is required")
		return
	}

	var req models.UpdateFishItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.catalogService.Update(r.Context(), id, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, item)
}

// DeleteFish — DELETE /api/admin/fish/{id}
func (h *AdminHandler) DeleteFish(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "item id is required")
		return
	}

	if err := h.catalogService.Delete(r.Context(), id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// ListOrders — GET /api/admin/orders
// Tüm siparişler (yeniden eskiye).
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListAll(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, orders)
}

// UpdateOrderStatus — PUT /api/admin/orders/{id}/status
// Body: { "status": "accepted" }
//
// Başarılı güncellemede sipariş sahibine WebSocket bildirimi gider.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "order id is required")
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, order)
}

// ChangePassword — POST /api/admin/password
// Admin kendi şifresini değiştirir — normal akışla aynı service çağrısı.
func (h *AdminHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.ChangePassword(r.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "password changed"})
}
