package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"printshop/internal/models"
	"printshop/internal/repository"
	"printshop/internal/services"
)

// APIHandler serves the hosted order collection and expenses.
type APIHandler struct {
	orderService   services.OrderService
	expenseService services.ExpenseService
}

func NewAPIHandler(orderService services.OrderService, expenseService services.ExpenseService) *APIHandler {
	return &APIHandler{
		orderService:   orderService,
		expenseService: expenseService,
	}
}

func (h *APIHandler) ListOrders(c *gin.Context) {
	var filter repository.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query"})
		return
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *APIHandler) CreateOrder(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.orderService.CreateOrder(c.Request.Context(), &order); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *APIHandler) PatchOrder(c *gin.Context) {
	var patch models.OrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	order, err := h.orderService.PatchOrder(c.Request.Context(), c.Param("key"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *APIHandler) ListExpenses(c *gin.Context) {
	expenses, err := h.expenseService.GetAllExpenses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func (h *APIHandler) CreateExpense(c *gin.Context) {
	var expense models.Expense
	if err := c.ShouldBindJSON(&expense); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.expenseService.CreateExpense(c.Request.Context(), &expense); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}
