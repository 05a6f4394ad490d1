package repository

import (
	"context"

	"printshop/internal/models"

	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	GetAll(ctx context.Context) ([]models.Expense, error)
}

type expenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) GetAll(ctx context.Context) ([]models.Expense, error) {
	expenses := []models.Expense{}
	err := r.db.WithContext(ctx).Order("date DESC").Find(&expenses).Error
	return expenses, err
}
