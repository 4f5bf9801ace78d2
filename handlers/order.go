// Package handlers — OrderHandler, kullanıcı sipariş endpoint'leri.
//
// Tüm endpoint'ler auth middleware gerektirir — sipariş hesaba bağlıdır.
// Kullanıcı sadece KENDİ siparişlerini görür; tüm siparişler AdminHandler'da.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/balikhane/models"
	"github.com/akinalp/balikhane/pkg"
	"github.com/akinalp/balikhane/services"
)

// OrderHandler, sipariş endpoint'lerini yönetir.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler, constructor.
func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create — POST /api/orders
// Body: { "item_id": "...", "quantity": 5 }
//
// Fiyat client'tan alınmaz — server sipariş anındaki katalog fiyatından
// hesaplar.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orderService.Create(r.Context(), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, order)
}

// ListMine — GET /api/orders
// Giriş yapmış kullanıcının kendi siparişleri (yeniden eskiye).
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	orders, err := h.orderService.ListMine(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, orders)
}
