package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"printshop/internal/models"

	"gorm.io/gorm"
)

// OrderFilter narrows GetAll. Empty fields do not filter.
type OrderFilter struct {
	ID     string `form:"id"`
	Code   string `form:"code"`
	Phone  string `form:"phone"`
	Search string `form:"search"`
	Status string `form:"status"`
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByKey(ctx context.Context, key string) (*models.Order, error)
	GetByCodeAndPhone(ctx context.Context, code, phone string) (*models.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// GetByKey looks an order up by id or by order code.
func (r *orderRepository) GetByKey(ctx context.Context, key string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Where("id = ? OR order_code = ?", key, key).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", models.ErrOrderNotFound, key)
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByCodeAndPhone(ctx context.Context, code, phone string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Where("order_code = ? AND phone = ?", code, phone).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", models.ErrOrderNotFound, code)
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})
	if filter.ID != "" {
		q = q.Where("id = ?", filter.ID)
	}
	if filter.Code != "" {
		q = q.Where("order_code = ?", filter.Code)
	}
	if filter.Phone != "" {
		q = q.Where("phone = ?", filter.Phone)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(customer_name) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(order_code) LIKE ?", like, like, like)
	}

	orders := []models.Order{}
	err := q.Order("created_on DESC, order_code DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Update(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}
