package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"printshop/internal/models"
	"printshop/internal/services"
)

type PublicHandler struct {
	orderService services.OrderService
	localOrders  services.OrderBook
	settings     services.SettingsService
	now          func() time.Time
}

// NewPublicHandler serves the marketing page data and order tracking.
// localOrders, if set, answers tracking lookups while the backend is down.
func NewPublicHandler(orderService services.OrderService, localOrders services.OrderBook, settings services.SettingsService) *PublicHandler {
	return &PublicHandler{
		orderService: orderService,
		localOrders:  localOrders,
		settings:     settings,
		now:          time.Now,
	}
}

type trackingResponse struct {
	OrderCode     string               `json:"orderCode"`
	CustomerName  string               `json:"customerName"`
	Status        models.OrderStatus   `json:"status"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	Unpaid        string               `json:"unpaid"`
	DueDate       *string              `json:"dueDate"`
	Readiness     models.Readiness     `json:"readiness"`
}

func (h *PublicHandler) Shop(c *gin.Context) {
	settings := h.settings.Get(c.Request.Context()).Public()
	c.JSON(http.StatusOK, gin.H{
		"shopName": settings.ShopName,
		"prices":   settings.Prices,
		"sources":  models.KnownSources,
	})
}

// Track looks an order up by order code and phone number.
func (h *PublicHandler) Track(c *gin.Context) {
	code, phone := c.Query("code"), c.Query("phone")

	order, err := h.orderService.TrackOrder(c.Request.Context(), code, phone)
	if err != nil && !models.IsValidation(err) && !errors.Is(err, models.ErrOrderNotFound) && h.localOrders != nil {
		log.Printf("Warning: tracking lookup fell back to local orders: %v", err)
		order, err = h.trackLocal(c, code, phone)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, trackingResponse{
		OrderCode:     order.OrderCode,
		CustomerName:  order.CustomerName,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		Unpaid:        order.Unpaid().StringFixed(2),
		DueDate:       order.DueDate,
		Readiness:     models.ClassifyReadiness(*order, h.now()),
	})
}

func (h *PublicHandler) trackLocal(c *gin.Context, code, phone string) (*models.Order, error) {
	for _, o := range h.localOrders.List(c.Request.Context()) {
		if o.OrderCode == code && o.Phone == phone {
			order := o
			return &order, nil
		}
	}
	return nil, models.ErrOrderNotFound
}
