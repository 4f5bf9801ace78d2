package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/akinalp/balikhane/models"
	"github.com/akinalp/balikhane/pkg"
	"github.com/akinalp/balikhane/repository"
	"github.com/akinalp/balikhane/ws"
)

// OrderService, sipariş iş mantığı.
//
// Fiyat CLIENT'TAN ALINMAZ — sipariş anındaki katalog fiyatından server
// hesaplar ve siparişe sabitler. Ürünün fiyatı sonradan değişse bile
// verilmiş siparişin tutarı değişmez.
type OrderService interface {
	// Create, yeni sipariş oluşturur. Miktar, ürünün minimum sipariş
	// miktarının altında olamaz.
	Create(ctx context.Context, userID string, req *models.CreateOrderRequest) (*models.Order, error)
	// ListMine, hesabın kendi siparişlerini döner.
	ListMine(ctx context.Context, userID string) ([]models.Order, error)
	// ListAll, tüm siparişleri döner — admin paneli.
	ListAll(ctx context.Context) ([]models.Order, error)
	// UpdateStatus, sipariş durumunu değiştirir ve sipariş sahibine
	// WebSocket üzerinden bildirim gönderir.
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	fishRepo  repository.FishRepository
	hub       ws.EventPublisher
}

// NewOrderService, constructor. hub nil olabilir (testlerde).
func NewOrderService(
	orderRepo repository.OrderRepository,
	fishRepo repository.FishRepository,
	hub ws.EventPublisher,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		fishRepo:  fishRepo,
		hub:       hub,
	}
}

func (s *orderService) Create(ctx context.Context, userID string, req *models.CreateOrderRequest) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	item, err := s.fishRepo.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err // ErrNotFound olabilir
	}

	if req.Quantity < item.Minimum {
		return nil, fmt.Errorf("%w: minimum order quantity for %s is %g %s",
			pkg.ErrBadRequest, item.Name, item.Minimum, item.Unit)
	}

	order := &models.Order{
		ID:       uuid.NewString(),
		UserID:   userID,
		ItemID:   item.ID,
		Quantity: req.Quantity,
		Price:    item.Price * req.Quantity,
		Status:   models.OrderStatusPending,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	// Admin paneline anlık bildirim — panel açıksa yeni sipariş anında düşer.
	if s.hub != nil {
		s.hub.BroadcastToAdmins(ws.Event{Op: ws.OpOrderCreate, Data: order})
	}

	return order, nil
}

func (s *orderService) ListMine(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(ctx, userID)
}

func (s *orderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.GetAll(ctx)
}

// UpdateStatus, sipariş durum geçişini yapar.
//
// Durum makinesine katı geçiş kuralı UYGULANMAZ — admin her durumu
// her duruma çevirebilir (yanlış tıklamayı geri almak için). Sadece
// bilinen status değerleri kabul edilir.
func (s *orderService) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown order status %q", pkg.ErrBadRequest, status)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err // ErrNotFound olabilir
	}

	// Güncel kaydı oku — delivered_at gibi DB'de set edilen alanlar da dönsün.
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// Sipariş sahibine anlık bildirim.
	if s.hub != nil {
		s.hub.BroadcastToUser(order.UserID, ws.Event{Op: ws.OpOrderStatus, Data: order})
	}

	return order, nil
}
