package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/models"
)

func order(name, phone, created string, total, paid int64) models.Order {
	return models.Order{
		CustomerName: name,
		Phone:        phone,
		CreatedOn:    created,
		Photos4x6:    1,
		TotalAmount:  decimal.NewFromInt(total),
		PaidAmount:   decimal.NewFromInt(paid),
		Status:       models.StatusNew,
	}
}

func TestGroupByMonthSumsBucket(t *testing.T) {
	buckets := GroupByMonth([]models.Order{
		order("a", "1", "2024-01-15", 100, 40),
		order("b", "2", "2024-01-20", 50, 50),
	})
	require.Len(t, buckets, 1)
	b := buckets[0]
	assert.Equal(t, "2024-01", b.Key)
	assert.Equal(t, 2024, b.Year)
	assert.Equal(t, 1, b.Month)
	assert.Equal(t, 2, b.OrdersCount)
	assert.True(t, decimal.NewFromInt(150).Equal(b.TotalAmount))
	assert.True(t, decimal.NewFromInt(90).Equal(b.TotalPaid))
	assert.True(t, decimal.NewFromInt(60).Equal(b.TotalUnpaid))
}

func TestGroupByMonthOrdering(t *testing.T) {
	buckets := GroupByMonth([]models.Order{
		order("a", "1", "garbage", 1, 0),
		order("a", "1", "2023-12-31", 1, 0),
		order("a", "1", "2024-02-01", 1, 0),
		order("a", "1", "", 1, 0),
		order("a", "1", "2024-11-05", 1, 0),
		order("a", "1", "2024-02-28", 1, 0),
	})
	keys := []string{}
	for _, b := range buckets {
		keys = append(keys, b.Key)
	}
	assert.Equal(t, []string{"2024-11", "2024-02", "2023-12", UnknownMonth}, keys)
	assert.Equal(t, 2, buckets[3].OrdersCount)
	assert.Zero(t, buckets[3].Year)
}

func TestGroupByCustomer(t *testing.T) {
	customers := GroupByCustomer([]models.Order{
		order("Sara", "050", "2024-01-15", 100, 100),
		order("Omar", "055", "2024-03-01", 30, 0),
		order("Sara", "050", "2024-02-10", 20, 5),
		order("sara", "050", "2024-04-01", 10, 0),
	})
	require.Len(t, customers, 3)

	sara := customers[0]
	assert.Equal(t, "Sara", sara.Name)
	assert.Equal(t, 2, sara.OrdersCount)
	assert.True(t, decimal.NewFromInt(120).Equal(sara.TotalAmount))
	assert.True(t, decimal.NewFromInt(105).Equal(sara.TotalPaid))
	assert.True(t, decimal.NewFromInt(15).Equal(sara.TotalUnpaid))
	assert.Equal(t, "2024-02-10", sara.LastOrderDate)

	assert.Equal(t, "sara", customers[2].Name, "differently cased names are distinct customers")
}

func TestTopCustomers(t *testing.T) {
	orders := []models.Order{
		order("A", "1", "2024-01-01", 10, 0),
		order("B", "2", "2024-01-01", 50, 0),
		order("C", "3", "2024-01-01", 10, 0),
		order("D", "4", "2024-01-01", 70, 0),
	}
	top := TopCustomers(orders, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "D", top[0].Name)
	assert.Equal(t, "B", top[1].Name)
	assert.Equal(t, "A", top[2].Name, "ties keep input order")

	assert.Len(t, TopCustomers(orders, -1), 4)
	assert.Len(t, TopCustomers(orders, 10), 4)
	assert.Empty(t, TopCustomers(orders, 0))
}

func TestSummarize(t *testing.T) {
	due := "2024-01-01"
	late := order("a", "1", "2023-12-01", 100, 20)
	late.DueDate = &due
	delivered := order("b", "2", "2023-12-02", 50, 50)
	delivered.Status = models.StatusDelivered

	s := Summarize([]models.Order{late, delivered}, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2, s.OrdersCount)
	assert.True(t, decimal.NewFromInt(80).Equal(s.TotalUnpaid))
	assert.Equal(t, 1, s.ByReadiness[models.ReadyLate])
	assert.Equal(t, 1, s.ByReadiness[models.ReadyDelivered])
	assert.Equal(t, 1, s.ByStatus[models.StatusDelivered])
}

func TestFilterMonth(t *testing.T) {
	orders := []models.Order{order("a", "1", "2024-01-15", 1, 0), order("b", "2", "2024-02-15", 1, 0)}
	got := FilterMonth(orders, "2024-02")
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].CustomerName)
}
