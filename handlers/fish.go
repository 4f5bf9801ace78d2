// Package handlers — FishHandler, katalog okuma endpoint'leri.
//
// Katalog herkese açıktır: login olmadan da balık listesi görülebilir.
// Yazma işlemleri (ekle/güncelle/sil) AdminHandler'dadır.
package handlers

import (
	"net/http"

	"github.com/akinalp/balikhane/pkg"
	"github.com/akinalp/balikhane/services"
)

// FishHandler, katalog endpoint'lerini yönetir.
type FishHandler struct {
	catalogService services.CatalogService
}

// NewFishHandler, constructor.
func NewFishHandler(catalogService services.CatalogService) *FishHandler {
	return &FishHandler{catalogService: catalogService}
}

// List — GET /api/fish
func (h *FishHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalogService.List(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, items)
}

// Get — GET /api/fish/{id}
func (h *FishHandler) Get(w http.ResponseWriter, r *http.Request) {
	// r.PathValue("id") — Go 1.22+ ile gelen path parameter desteği.
	id := r.PathValue("id")
	if id == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "item id is required")
		return
	}

	item, err := h.catalogService.Get(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, item)
}
