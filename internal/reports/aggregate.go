// Package reports holds the stateless reductions behind the admin reports.
package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"printshop/internal/models"
)

// UnknownMonth collects orders whose createdAt cannot be parsed.
const UnknownMonth = "unknown"

type MonthlyBucket struct {
	Key         string          `json:"key"`
	Year        int             `json:"year,omitempty"`
	Month       int             `json:"month,omitempty"`
	OrdersCount int             `json:"ordersCount"`
	Photos      int             `json:"photos"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalPaid   decimal.Decimal `json:"totalPaid"`
	TotalUnpaid decimal.Decimal `json:"totalUnpaid"`
}

type CustomerSummary struct {
	Name          string          `json:"customerName"`
	Phone         string          `json:"phone"`
	OrdersCount   int             `json:"ordersCount"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	TotalUnpaid   decimal.Decimal `json:"totalUnpaid"`
	LastOrderDate string          `json:"lastOrderDate"`
}

// MonthKey returns YYYY-MM for a YYYY-MM-DD date, or UnknownMonth.
func MonthKey(date string) string {
	t, ok := models.ParseDate(date)
	if !ok {
		return UnknownMonth
	}
	return t.Format("2006-01")
}

// GroupByMonth buckets orders by the month of createdAt, newest first,
// with the unknown bucket always last.
func GroupByMonth(orders []models.Order) []MonthlyBucket {
	buckets := map[string]*MonthlyBucket{}
	for _, o := range orders {
		key := MonthKey(o.CreatedOn)
		b, ok := buckets[key]
		if !ok {
			b = newBucket(key)
			buckets[key] = b
		}
		b.OrdersCount++
		b.Photos += o.TotalPhotos()
		b.TotalAmount = b.TotalAmount.Add(o.TotalAmount)
		b.TotalPaid = b.TotalPaid.Add(o.PaidAmount)
		b.TotalUnpaid = b.TotalAmount.Sub(b.TotalPaid)
	}

	out := make([]MonthlyBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sortMonthKeys(out, func(b MonthlyBucket) string { return b.Key })
	return out
}

func newBucket(key string) *MonthlyBucket {
	b := &MonthlyBucket{Key: key, TotalAmount: decimal.Zero, TotalPaid: decimal.Zero, TotalUnpaid: decimal.Zero}
	if t, err := time.Parse("2006-01", key); err == nil {
		b.Year, b.Month = t.Year(), int(t.Month())
	}
	return b
}

// sortMonthKeys orders YYYY-MM keys descending; UnknownMonth sorts last.
func sortMonthKeys[T any](items []T, key func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := key(items[i]), key(items[j])
		if a == UnknownMonth || b == UnknownMonth {
			return b == UnknownMonth && a != UnknownMonth
		}
		return a > b
	})
}

// FilterMonth keeps the orders created in the given YYYY-MM month.
func FilterMonth(orders []models.Order, month string) []models.Order {
	var out []models.Order
	for _, o := range orders {
		if MonthKey(o.CreatedOn) == month {
			out = append(out, o)
		}
	}
	return out
}

// GroupByCustomer aggregates orders per exact (name, phone) pair, in order
// of first appearance.
func GroupByCustomer(orders []models.Order) []CustomerSummary {
	type key struct{ name, phone string }
	index := map[key]int{}
	var out []CustomerSummary
	for _, o := range orders {
		k := key{o.CustomerName, o.Phone}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, CustomerSummary{
				Name: o.CustomerName, Phone: o.Phone,
				TotalAmount: decimal.Zero, TotalPaid: decimal.Zero, TotalUnpaid: decimal.Zero,
			})
		}
		c := &out[i]
		c.OrdersCount++
		c.TotalAmount = c.TotalAmount.Add(o.TotalAmount)
		c.TotalPaid = c.TotalPaid.Add(o.PaidAmount)
		c.TotalUnpaid = c.TotalAmount.Sub(c.TotalPaid)
		if o.CreatedOn > c.LastOrderDate {
			c.LastOrderDate = o.CreatedOn
		}
	}
	return out
}

// RankCustomers sorts by total amount, highest first. Ties keep their
// input order.
func RankCustomers(customers []CustomerSummary) []CustomerSummary {
	ranked := append([]CustomerSummary(nil), customers...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalAmount.GreaterThan(ranked[j].TotalAmount)
	})
	return ranked
}

// TopCustomers returns the first n ranked customers.
func TopCustomers(orders []models.Order, n int) []CustomerSummary {
	ranked := RankCustomers(GroupByCustomer(orders))
	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

type Summary struct {
	OrdersCount int                          `json:"ordersCount"`
	TotalAmount decimal.Decimal              `json:"totalAmount"`
	TotalPaid   decimal.Decimal              `json:"totalPaid"`
	TotalUnpaid decimal.Decimal              `json:"totalUnpaid"`
	ByStatus    map[models.OrderStatus]int   `json:"byStatus"`
	ByReadiness map[models.ReadinessCode]int `json:"byReadiness"`
}

// Summarize builds the dashboard counters.
func Summarize(orders []models.Order, today time.Time) Summary {
	s := Summary{
		TotalAmount: decimal.Zero,
		TotalPaid:   decimal.Zero,
		ByStatus:    map[models.OrderStatus]int{},
		ByReadiness: map[models.ReadinessCode]int{},
	}
	for _, o := range orders {
		s.OrdersCount++
		s.TotalAmount = s.TotalAmount.Add(o.TotalAmount)
		s.TotalPaid = s.TotalPaid.Add(o.PaidAmount)
		s.ByStatus[o.Status]++
		s.ByReadiness[models.ClassifyReadiness(o, today).Code]++
	}
	s.TotalUnpaid = s.TotalAmount.Sub(s.TotalPaid)
	return s
}
