package services

import (
	"context"
	"fmt"
	"time"

	"printshop/internal/models"
	"printshop/internal/reports"
)

// ExpenseSource provides the remote-only expense records.
type ExpenseSource interface {
	ListExpenses(ctx context.Context) ([]models.Expense, error)
}

type ReportService interface {
	Summary(ctx context.Context) reports.Summary
	Monthly(ctx context.Context) []reports.MonthlyBucket
	MonthOrders(ctx context.Context, month string) []models.Order
	Customers(ctx context.Context, top int) []reports.CustomerSummary
	Profit(ctx context.Context) (*reports.ProfitReport, error)
}

type reportService struct {
	orders   OrderBook
	expenses ExpenseSource
	now      func() time.Time
}

func NewReportService(orders OrderBook, expenses ExpenseSource) ReportService {
	return &reportService{orders: orders, expenses: expenses, now: time.Now}
}

func (s *reportService) Summary(ctx context.Context) reports.Summary {
	return reports.Summarize(s.orders.List(ctx), s.now())
}

func (s *reportService) Monthly(ctx context.Context) []reports.MonthlyBucket {
	return reports.GroupByMonth(s.orders.List(ctx))
}

func (s *reportService) MonthOrders(ctx context.Context, month string) []models.Order {
	return reports.FilterMonth(s.orders.List(ctx), month)
}

// Customers returns ranked customers; top <= 0 returns all of them.
func (s *reportService) Customers(ctx context.Context, top int) []reports.CustomerSummary {
	if top <= 0 {
		top = -1
	}
	return reports.TopCustomers(s.orders.List(ctx), top)
}

// Profit fails as a whole when expenses cannot be loaded.
func (s *reportService) Profit(ctx context.Context) (*reports.ProfitReport, error) {
	if s.expenses == nil {
		return nil, fmt.Errorf("expenses are not available")
	}
	expenses, err := s.expenses.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	report := reports.Profit(s.orders.List(ctx), expenses)
	return &report, nil
}
