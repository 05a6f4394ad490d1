package services

import (
	"context"
	"strings"

	"printshop/internal/models"
	"printshop/internal/repository"
)

type ExpenseService interface {
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetAllExpenses(ctx context.Context) ([]models.Expense, error)
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
}

func NewExpenseService(expenseRepo repository.ExpenseRepository) ExpenseService {
	return &expenseService{expenseRepo: expenseRepo}
}

func (s *expenseService) CreateExpense(ctx context.Context, expense *models.Expense) error {
	expense.Title = strings.TrimSpace(expense.Title)
	if expense.Title == "" {
		return models.NewValidationError("title is required")
	}
	if !expense.Amount.IsPositive() {
		return models.NewValidationError("amount must be positive")
	}
	if _, ok := models.ParseDate(expense.Date); !ok {
		return models.NewValidationError("date must be YYYY-MM-DD")
	}
	return s.expenseRepo.Create(ctx, expense)
}

func (s *expenseService) GetAllExpenses(ctx context.Context) ([]models.Expense, error) {
	return s.expenseRepo.GetAll(ctx)
}
