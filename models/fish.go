package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// FishItem, katalogdaki bir balık ürününü temsil eder.
// Minimum, sipariş edilebilecek en düşük miktardır (Unit cinsinden).
type FishItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Minimum     float64   `json:"minimum"`
	Unit        string    `json:"unit"`
	Description string    `json:"description"`
	Uses        string    `json:"uses"`
	Offer       string    `json:"offer"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateFishItemRequest, admin'in yeni ürün eklerken gönderdiği veri.
type CreateFishItemRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Minimum     float64 `json:"minimum"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
	Uses        string  `json:"uses"`
	Offer       string  `json:"offer"`
}

// Validate, CreateFishItemRequest'i kontrol eder.
func (r *CreateFishItemRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 2 || nameLen > 64 {
		return fmt.Errorf("name must be between 2 and 64 characters")
	}

	if r.Price <= 0 {
		return fmt.Errorf("price must be positive")
	}

	if r.Minimum <= 0 {
		r.Minimum = 1
	}

	r.Unit = strings.TrimSpace(r.Unit)
	if r.Unit == "" {
		r.Unit = "kg"
	}

	return nil
}

// UpdateFishItemRequest, kısmi güncelleme — nil field'lar dokunulmaz.
// Pointer kullanmak "alan gönderilmedi" ile "alan sıfır değere çekildi"
// ayrımını yapabilmek için gereklidir.
type UpdateFishItemRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Minimum     *float64 `json:"minimum"`
	Unit        *string  `json:"unit"`
	Description *string  `json:"description"`
	Uses        *string  `json:"uses"`
	Offer       *string  `json:"offer"`
}

// Validate, gönderilen field'ları kontrol eder.
func (r *UpdateFishItemRequest) Validate() error {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		nameLen := utf8.RuneCountInString(name)
		if nameLen < 2 || nameLen > 64 {
			return fmt.Errorf("name must be between 2 and 64 characters")
		}
		*r.Name = name
	}

	if r.Price != nil && *r.Price <= 0 {
		return fmt.Errorf("price must be positive")
	}

	if r.Minimum != nil && *r.Minimum <= 0 {
		return fmt.Errorf("minimum must be positive")
	}

	return nil
}

// Apply, request'teki dolu field'ları mevcut item üzerine yazar.
func (r *UpdateFishItemRequest) Apply(item *FishItem) {
	if r.Name != nil {
		item.Name = *r.Name
	}
	if r.Price != nil {
		item.Price = *r.Price
	}
	if r.Minimum != nil {
		item.Minimum = *r.Minimum
	}
	if r.Unit != nil {
		item.Unit = *r.Unit
	}
	if r.Description != nil {
		item.Description = *r.Description
	}
	if r.Uses != nil {
		item.Uses = *r.Uses
	}
	if r.Offer != nil {
		item.Offer = *r.Offer
	}
}
