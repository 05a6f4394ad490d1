package store

import (
	"github.com/shopspring/decimal"

	"printshop/internal/models"
)

func due(date string) *string { return &date }

// SeedOrders is the fallback list shown when no orders are stored locally.
func SeedOrders() []models.Order {
	orders := []models.Order{
		{
			ID:            "OM-2024-0001",
			CustomerName:  "سارة أحمد",
			Phone:         "0501234567",
			Source:        "واتساب + معرض",
			Photos4x6:     40,
			TotalAmount:   decimal.NewFromInt(80),
			PaidAmount:    decimal.NewFromInt(80),
			PaymentMethod: models.PaymentCash,
			Status:        models.StatusReady,
			Urgency:       models.UrgencyNormal,
			OrderType:     models.OrderTypeAlbum,
			CreatedOn:     "2024-01-15",
			DueDate:       due("2024-01-18"),
		},
		{
			ID:            "OM-2024-0002",
			CustomerName:  "محمد علي",
			Phone:         "0559876543",
			Source:        "انستقرام",
			Photos4x6:     10,
			PhotosA4:      2,
			TotalAmount:   decimal.NewFromInt(40),
			PaidAmount:    decimal.NewFromInt(20),
			PaymentMethod: models.PaymentTransfer,
			Status:        models.StatusInProduction,
			Urgency:       models.UrgencyUrgent,
			OrderType:     models.OrderTypeGift,
			CreatedOn:     "2024-01-20",
			DueDate:       due("2024-01-22"),
		},
		{
			ID:            "OM-2024-0003",
			CustomerName:  "سارة أحمد",
			Phone:         "0501234567",
			Source:        "زيارة المحل",
			PhotosA4:      1,
			TotalAmount:   decimal.NewFromInt(25),
			PaymentMethod: models.PaymentCash,
			Status:        models.StatusNew,
			Urgency:       models.UrgencyNormal,
			OrderType:     models.OrderTypeWallArt,
			CreatedOn:     "2024-02-03",
		},
	}
	for i := range orders {
		orders[i].ApplyDefaults()
		orders[i].RefreshPaymentStatus()
	}
	return orders
}
