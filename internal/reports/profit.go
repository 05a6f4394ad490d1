package reports

import (
	"github.com/shopspring/decimal"

	"printshop/internal/models"
)

type MonthProfit struct {
	Key      string          `json:"key"`
	Sales    decimal.Decimal `json:"sales"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

type ProfitReport struct {
	Sales    decimal.Decimal `json:"sales"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
	Months   []MonthProfit   `json:"months"`
}

// Profit computes sales minus expenses, overall and per month. Sales are
// the order totals.
func Profit(orders []models.Order, expenses []models.Expense) ProfitReport {
	months := map[string]*MonthProfit{}
	month := func(key string) *MonthProfit {
		m, ok := months[key]
		if !ok {
			m = &MonthProfit{Key: key, Sales: decimal.Zero, Expenses: decimal.Zero}
			months[key] = m
		}
		return m
	}

	report := ProfitReport{Sales: decimal.Zero, Expenses: decimal.Zero}
	for _, o := range orders {
		m := month(MonthKey(o.CreatedOn))
		m.Sales = m.Sales.Add(o.TotalAmount)
		report.Sales = report.Sales.Add(o.TotalAmount)
	}
	for _, e := range expenses {
		m := month(MonthKey(e.Date))
		m.Expenses = m.Expenses.Add(e.Amount)
		report.Expenses = report.Expenses.Add(e.Amount)
	}
	report.Profit = report.Sales.Sub(report.Expenses)

	report.Months = make([]MonthProfit, 0, len(months))
	for _, m := range months {
		m.Profit = m.Sales.Sub(m.Expenses)
		report.Months = append(report.Months, *m)
	}
	sortMonthKeys(report.Months, func(m MonthProfit) string { return m.Key })
	return report
}
