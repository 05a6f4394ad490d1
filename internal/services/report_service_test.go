package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/models"
)

func TestReportServiceCustomers(t *testing.T) {
	book, _ := newBook(t, nil, nil)
	reports := NewReportService(book, nil)
	ctx := context.Background()

	all := reports.Customers(ctx, 0)
	require.Len(t, all, 2)
	assert.Equal(t, "سارة أحمد", all[0].Name)
	assert.Equal(t, 2, all[0].OrdersCount)
	assert.True(t, decimal.NewFromInt(105).Equal(all[0].TotalAmount))

	assert.Len(t, reports.Customers(ctx, 1), 1)
}

func TestReportServiceMonthly(t *testing.T) {
	book, _ := newBook(t, nil, nil)
	reports := NewReportService(book, nil)
	ctx := context.Background()

	monthly := reports.Monthly(ctx)
	require.Len(t, monthly, 2)
	assert.Equal(t, "2024-02", monthly[0].Key)
	assert.Equal(t, "2024-01", monthly[1].Key)
	assert.Equal(t, 2, monthly[1].OrdersCount)

	assert.Len(t, reports.MonthOrders(ctx, "2024-01"), 2)
}

func TestReportServiceSummary(t *testing.T) {
	book, _ := newBook(t, nil, nil)
	svc := NewReportService(book, nil).(*reportService)
	svc.now = func() time.Time { return testToday }

	summary := svc.Summary(context.Background())
	assert.Equal(t, 3, summary.OrdersCount)
	assert.Equal(t, 2, summary.ByReadiness[models.ReadyLate])
}

func TestReportServiceProfit(t *testing.T) {
	book, _ := newBook(t, nil, nil)
	ctx := context.Background()

	_, err := NewReportService(book, nil).Profit(ctx)
	assert.Error(t, err)

	_, err = NewReportService(book, fakeExpenses{err: errRemoteDown}).Profit(ctx)
	assert.ErrorIs(t, err, errRemoteDown)

	report, err := NewReportService(book, fakeExpenses{expenses: []models.Expense{
		{Title: "paper", Amount: decimal.NewFromInt(45), Date: "2024-01-05"},
	}}).Profit(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(145).Equal(report.Sales))
	assert.True(t, decimal.NewFromInt(100).Equal(report.Profit))
}
