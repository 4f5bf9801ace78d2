// Package repository — FishRepository interface tanımı.
package repository

import (
	"context"

	"github.com/akinalp/balikhane/models"
)

// FishRepository, katalog (balık ürünleri) veritabanı işlemleri için interface.
type FishRepository interface {
	Create(ctx context.Context, item *models.FishItem) error
	GetByID(ctx context.Context, id string) (*models.FishItem, error)
	GetAll(ctx context.Context) ([]models.FishItem, error)
	Update(ctx context.Context, item *models.FishItem) error
	Delete(ctx context.Context, id string) error
}
