package services

import (
	"context"
	"fmt"
	"log"

	"printshop/internal/models"
	"printshop/pkg/whatsapp"
)

// Notifier tells a customer their order can be picked up.
type Notifier interface {
	NotifyReady(ctx context.Context, order models.Order) error
}

type whatsappNotifier struct {
	client   *whatsapp.Client
	shopName string
}

// NewWhatsAppNotifier returns a no-op notifier when client is nil.
func NewWhatsAppNotifier(client *whatsapp.Client, shopName string) Notifier {
	if client == nil {
		return noopNotifier{}
	}
	return &whatsappNotifier{client: client, shopName: shopName}
}

func (n *whatsappNotifier) NotifyReady(ctx context.Context, order models.Order) error {
	if order.Phone == "" {
		return nil
	}
	message := fmt.Sprintf("مرحباً %s، طلبك رقم %s جاهز للاستلام من %s.", order.CustomerName, order.OrderCode, n.shopName)
	if unpaid := order.Unpaid(); unpaid.IsPositive() {
		message += fmt.Sprintf(" المبلغ المتبقي: %s", unpaid.StringFixed(2))
	}
	if err := n.client.SendTextMessage(ctx, order.Phone, message); err != nil {
		return fmt.Errorf("failed to notify %s: %w", order.OrderCode, err)
	}
	log.Printf("Ready notification sent for order %s", order.OrderCode)
	return nil
}

type noopNotifier struct{}

func (noopNotifier) NotifyReady(context.Context, models.Order) error { return nil }
