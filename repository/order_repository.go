// Package repository — OrderRepository interface tanımı.
package repository

import (
	"context"

	"github.com/akinalp/balikhane/models"
)

// OrderRepository, sipariş veritabanı işlemleri için interface.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	// GetByUserID, bir hesabın kendi siparişlerini döner (yeniden eskiye).
	GetByUserID(ctx context.Context, userID string) ([]models.Order, error)
	// GetAll, tüm siparişleri döner — admin paneli için.
	GetAll(ctx context.Context) ([]models.Order, error)
	// UpdateStatus, sipariş durumunu günceller. Status "delivered" ise
	// delivered_at timestamp'i de set edilir.
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error
}
