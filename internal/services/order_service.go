package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"printshop/internal/models"
	"printshop/internal/repository"
)

// OrderService backs the hosted order collection API.
type OrderService interface {
	ListOrders(ctx context.Context, filter repository.OrderFilter) ([]models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	PatchOrder(ctx context.Context, key string, patch models.OrderPatch) (*models.Order, error)
	TrackOrder(ctx context.Context, code, phone string) (*models.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

func (s *orderService) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]models.Order, error) {
	return s.orderRepo.List(ctx, filter)
}

// CreateOrder requires order code, customer name and phone. The id is
// generated when the caller leaves it empty.
func (s *orderService) CreateOrder(ctx context.Context, order *models.Order) error {
	order.OrderCode = strings.TrimSpace(order.OrderCode)
	order.CustomerName = strings.TrimSpace(order.CustomerName)
	order.Phone = strings.TrimSpace(order.Phone)
	if order.OrderCode == "" || order.CustomerName == "" || order.Phone == "" {
		return models.NewValidationError("orderCode, customerName and phone are required")
	}
	if err := validateNewOrder(*order); err != nil {
		return err
	}

	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.CreatedOn == "" {
		order.CreatedOn = time.Now().Format(models.DateLayout)
	}
	order.ApplyDefaults()
	order.RefreshPaymentStatus()

	return s.orderRepo.Create(ctx, order)
}

// PatchOrder applies patch to the order whose id or order code is key.
func (s *orderService) PatchOrder(ctx context.Context, key string, patch models.OrderPatch) (*models.Order, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	patch.Apply(order)
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// TrackOrder is the public lookup; both the code and the phone must match.
func (s *orderService) TrackOrder(ctx context.Context, code, phone string) (*models.Order, error) {
	code, phone = strings.TrimSpace(code), strings.TrimSpace(phone)
	if code == "" || phone == "" {
		return nil, models.NewValidationError("order code and phone are required")
	}
	return s.orderRepo.GetByCodeAndPhone(ctx, code, phone)
}
