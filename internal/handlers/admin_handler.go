package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"printshop/internal/export"
	"printshop/internal/models"
	"printshop/internal/services"
)

type AdminHandler struct {
	orderBook       services.OrderBook
	reportService   services.ReportService
	backupService   services.BackupService
	settingsService services.SettingsService
	sessionService  services.SessionService
	now             func() time.Time
}

func NewAdminHandler(
	orderBook services.OrderBook,
	reportService services.ReportService,
	backupService services.BackupService,
	settingsService services.SettingsService,
	sessionService services.SessionService,
) *AdminHandler {
	return &AdminHandler{
		orderBook:       orderBook,
		reportService:   reportService,
		backupService:   backupService,
		settingsService: settingsService,
		sessionService:  sessionService,
		now:             time.Now,
	}
}

// OrderView is an order with its derived display fields.
type OrderView struct {
	models.Order
	Readiness      models.Readiness `json:"readiness"`
	SourceChannels []string         `json:"sourceChannels"`
	SourceOther    string           `json:"sourceOther"`
}

func (h *AdminHandler) view(o models.Order) OrderView {
	channels, other := models.SplitSources(o.Source)
	if channels == nil {
		channels = []string{}
	}
	return OrderView{
		Order:          o,
		Readiness:      models.ClassifyReadiness(o, h.now()),
		SourceChannels: channels,
		SourceOther:    other,
	}
}

// Session endpoints

func (h *AdminHandler) Login(c *gin.Context) {
	var req struct {
		PIN string `json:"pin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PIN is required"})
		return
	}

	session, err := h.sessionService.Login(c.Request.Context(), req.PIN)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPIN) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid PIN"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *AdminHandler) Logout(c *gin.Context) {
	if err := h.sessionService.Logout(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

func (h *AdminHandler) SessionStatus(c *gin.Context) {
	state := h.sessionService.Status(c.Request.Context(), sessionToken(c))
	c.JSON(http.StatusOK, gin.H{"state": state})
}

// Order endpoints

func (h *AdminHandler) ListOrders(c *gin.Context) {
	status := c.Query("status")
	search := strings.ToLower(strings.TrimSpace(c.Query("search")))
	readiness := c.Query("readiness")

	views := []OrderView{}
	for _, o := range h.orderBook.List(c.Request.Context()) {
		if status != "" && string(o.Status) != status {
			continue
		}
		if search != "" && !matchesSearch(o, search) {
			continue
		}
		v := h.view(o)
		if readiness != "" && string(v.Readiness.Code) != readiness {
			continue
		}
		views = append(views, v)
	}
	c.JSON(http.StatusOK, views)
}

func matchesSearch(o models.Order, search string) bool {
	return strings.Contains(strings.ToLower(o.CustomerName), search) ||
		strings.Contains(strings.ToLower(o.Phone), search) ||
		strings.Contains(strings.ToLower(o.OrderCode), search)
}

func (h *AdminHandler) GetOrder(c *gin.Context) {
	order, err := h.orderBook.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view(order))
}

func (h *AdminHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	order, err := h.orderBook.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.view(order))
}

func (h *AdminHandler) UpdateOrder(c *gin.Context) {
	var req struct {
		models.OrderPatch
		SourceChannels []string `json:"sourceChannels"`
		SourceOther    *string  `json:"sourceOther"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	patch := req.OrderPatch
	patch.ID = c.Param("id")
	if req.SourceChannels != nil || req.SourceOther != nil {
		other := ""
		if req.SourceOther != nil {
			other = *req.SourceOther
		}
		source := models.JoinSources(req.SourceChannels, other)
		patch.Source = &source
	}

	order, err := h.orderBook.Update(c.Request.Context(), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view(order))
}

func (h *AdminHandler) SetStatus(c *gin.Context) {
	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	order, err := h.orderBook.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view(order))
}

// AppendNote adds free text or a canned template to the order notes.
func (h *AdminHandler) AppendNote(c *gin.Context) {
	var req struct {
		Note     string `json:"note"`
		Template *int   `json:"template"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var (
		order models.Order
		err   error
	)
	if req.Template != nil {
		order, err = h.orderBook.AppendTemplate(c.Request.Context(), c.Param("id"), *req.Template)
	} else {
		order, err = h.orderBook.AppendNote(c.Request.Context(), c.Param("id"), req.Note)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view(order))
}

// Sync endpoints

func (h *AdminHandler) Refresh(c *gin.Context) {
	result := h.orderBook.RefreshFromRemote(c.Request.Context())
	views := make([]OrderView, 0, len(result.Orders))
	for _, o := range result.Orders {
		views = append(views, h.view(o))
	}
	c.JSON(http.StatusOK, gin.H{
		"state":  result.State,
		"error":  result.Error,
		"orders": views,
	})
}

func (h *AdminHandler) SyncStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.orderBook.SyncStatus())
}

// Report endpoints

func (h *AdminHandler) Summary(c *gin.Context) {
	c.JSON(http.StatusOK, h.reportService.Summary(c.Request.Context()))
}

func (h *AdminHandler) Monthly(c *gin.Context) {
	c.JSON(http.StatusOK, h.reportService.Monthly(c.Request.Context()))
}

func (h *AdminHandler) Customers(c *gin.Context) {
	top, _ := strconv.Atoi(c.DefaultQuery("top", "0"))
	c.JSON(http.StatusOK, h.reportService.Customers(c.Request.Context(), top))
}

func (h *AdminHandler) Profit(c *gin.Context) {
	report, err := h.reportService.Profit(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Expenses could not be loaded"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// Export endpoints

func (h *AdminHandler) ExportOrdersCSV(c *gin.Context) {
	ctx := c.Request.Context()
	scope, orders := "all", h.orderBook.List(ctx)
	if month := c.Query("month"); month != "" {
		scope, orders = month, h.reportService.MonthOrders(ctx, month)
	}
	sendFile(c, export.Filename("orders", scope, "csv"), "text/csv; charset=utf-8", export.OrdersCSV(orders, h.now()))
}

func (h *AdminHandler) ExportCustomersCSV(c *gin.Context) {
	customers := h.reportService.Customers(c.Request.Context(), 0)
	sendFile(c, export.Filename("customers", "all", "csv"), "text/csv; charset=utf-8", export.CustomersCSV(customers))
}

func (h *AdminHandler) ExportMonthlyCSV(c *gin.Context) {
	buckets := h.reportService.Monthly(c.Request.Context())
	sendFile(c, export.Filename("monthly", "all", "csv"), "text/csv; charset=utf-8", export.MonthlyCSV(buckets))
}

func (h *AdminHandler) ExportMonthlyXLSX(c *gin.Context) {
	data, err := export.MonthlyXLSX(h.reportService.Monthly(c.Request.Context()))
	if err != nil {
		respondError(c, err)
		return
	}
	sendFile(c, export.Filename("monthly", "all", "xlsx"), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func sendFile(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// Backup endpoints

func (h *AdminHandler) ExportBackup(c *gin.Context) {
	backup := h.backupService.Export(c.Request.Context())
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename("backup", h.now().Format(models.DateLayout), "json")+`"`)
	c.JSON(http.StatusOK, backup)
}

func (h *AdminHandler) ImportBackup(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	result, err := h.backupService.Import(c.Request.Context(), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Settings endpoints

func (h *AdminHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settingsService.Get(c.Request.Context()).Public())
}

func (h *AdminHandler) SaveSettings(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	saved, err := h.settingsService.Save(c.Request.Context(), settings)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved.Public())
}
