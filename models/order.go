package models

import (
	"fmt"
	"time"
)

// OrderStatus, bir siparişin teslimat durumunu temsil eder.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusDeclined  OrderStatus = "declined"
	OrderStatusOnAWay    OrderStatus = "onaway"
	OrderStatusDelivered OrderStatus = "delivered"
)

// ValidOrderStatus, admin'in gönderdiği status değerini kontrol eder.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusDeclined,
		OrderStatusOnAWay, OrderStatusDelivered:
		return true
	}
	return false
}

// Order, bir kullanıcının tek bir ürün siparişini temsil eder.
// Price, sipariş ANINDAKİ toplam fiyattır (birim fiyat x miktar) —
// katalog fiyatı sonradan değişse de sipariş kaydı sabit kalır.
type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	ItemID      string      `json:"item_id"`
	Quantity    float64     `json:"quantity"`
	Price       float64     `json:"price"`
	Status      OrderStatus `json:"status"`
	OrderedAt   time.Time   `json:"ordered_at"`
	DeliveredAt *time.Time  `json:"delivered_at"` // *time.Time = nullable
}

// CreateOrderRequest, sipariş oluştururken gelen veri.
// Fiyat client'tan ALINMAZ — service katmanı katalogdan hesaplar.
type CreateOrderRequest struct {
	ItemID   string  `json:"item_id"`
	Quantity float64 `json:"quantity"`
}

// Validate, CreateOrderRequest'i kontrol eder.
func (r *CreateOrderRequest) Validate() error {
	if r.ItemID == "" {
		return fmt.Errorf("item_id is required")
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	return nil
}

// UpdateOrderStatusRequest, admin'in sipariş durumu güncellerken gönderdiği veri.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status"`
}

// Validate, status değerinin tanımlı kümede olduğunu kontrol eder.
func (r *UpdateOrderStatusRequest) Validate() error {
	if !ValidOrderStatus(r.Status) {
		return fmt.Errorf("status must be one of: pending, accepted, declined, onaway, delivered")
	}
	return nil
}
