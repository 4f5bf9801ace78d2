package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/akinalp/balikhane/models"
	"github.com/akinalp/balikhane/pkg"
	"github.com/akinalp/balikhane/repository"
)

// CatalogService, katalog (balık ürünleri) iş mantığı.
//
// Listeleme herkese açıktır — login gerektirmez. Ekleme, güncelleme ve
// silme sadece admin endpoint'lerinden erişilebilir; yetki kontrolü
// middleware'de yapılır, service rol BİLMEZ.
type CatalogService interface {
	List(ctx context.Context) ([]models.FishItem, error)
	Get(ctx context.Context, id string) (*models.FishItem, error)
	Create(ctx context.Context, req *models.CreateFishItemRequest) (*models.FishItem, error)
	Update(ctx context.Context, id string, req *models.UpdateFishItemRequest) (*models.FishItem, error)
	Delete(ctx context.Context, id string) error
}

type catalogService struct {
	fishRepo repository.FishRepository
}

// NewCatalogService, constructor.
func NewCatalogService(fishRepo repository.FishRepository) CatalogService {
	return &catalogService{fishRepo: fishRepo}
}

func (s *catalogService) List(ctx context.Context) ([]models.FishItem, error) {
	return s.fishRepo.GetAll(ctx)
}

func (s *catalogService) Get(ctx context.Context, id string) (*models.FishItem, error) {
	return s.fishRepo.GetByID(ctx, id)
}

func (s *catalogService) Create(ctx context.Context, req *models.CreateFishItemRequest) (*models.FishItem, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	item := &models.FishItem{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Price:       req.Price,
		Minimum:     req.Minimum,
		Unit:        req.Unit,
		Description: req.Description,
		Uses:        req.Uses,
		Offer:       req.Offer,
	}

	if err := s.fishRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Update, partial update yapar: sadece request'te gönderilen (non-nil)
// alanlar değişir. Önce mevcut kayıt okunur, Apply ile alanlar basılır,
// sonra tamamı yazılır.
func (s *catalogService) Update(ctx context.Context, id string, req *models.UpdateFishItemRequest) (*models.FishItem, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	item, err := s.fishRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err // ErrNotFound olabilir
	}

	req.Apply(item)

	if err := s.fishRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *catalogService) Delete(ctx context.Context, id string) error {
	return s.fishRepo.Delete(ctx, id)
}
