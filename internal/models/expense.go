package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense only lives in the backend database.
type Expense struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Title     string          `json:"title" gorm:"not null"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Date      string          `json:"date" gorm:"size:10;index"`
	CreatedAt time.Time       `json:"createdAt"`
}
