package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"printshop/internal/services"
)

type RouterConfig struct {
	BackendAPIKey string
	CORSOrigins   []string
}

// NewRouter wires every HTTP surface. Any handler may be nil to leave its
// routes out.
func NewRouter(cfg RouterConfig, api *APIHandler, public *PublicHandler, admin *AdminHandler, sessions services.SessionService) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if api != nil {
		backend := router.Group("/api", APIKeyMiddleware(cfg.BackendAPIKey))
		{
			backend.GET("/orders", api.ListOrders)
			backend.POST("/orders", api.CreateOrder)
			backend.PATCH("/orders/:key", api.PatchOrder)
			backend.GET("/expenses", api.ListExpenses)
			backend.POST("/expenses", api.CreateExpense)
		}
	}

	if public != nil {
		pub := router.Group("/api/public")
		{
			pub.GET("/shop", public.Shop)
			pub.GET("/track", public.Track)
		}
	}

	if admin != nil {
		router.POST("/api/admin/login", admin.Login)
		router.POST("/api/admin/logout", admin.Logout)
		router.GET("/api/admin/session", admin.SessionStatus)

		adm := router.Group("/api/admin", SessionMiddleware(sessions))
		{
			adm.GET("/orders", admin.ListOrders)
			adm.POST("/orders", admin.CreateOrder)
			adm.GET("/orders/:id", admin.GetOrder)
			adm.PATCH("/orders/:id", admin.UpdateOrder)
			adm.POST("/orders/:id/status", admin.SetStatus)
			adm.POST("/orders/:id/notes", admin.AppendNote)

			adm.POST("/sync", admin.Refresh)
			adm.GET("/sync", admin.SyncStatus)

			adm.GET("/reports/summary", admin.Summary)
			adm.GET("/reports/monthly", admin.Monthly)
			adm.GET("/reports/customers", admin.Customers)
			adm.GET("/reports/profit", admin.Profit)

			adm.GET("/export/orders.csv", admin.ExportOrdersCSV)
			adm.GET("/export/customers.csv", admin.ExportCustomersCSV)
			adm.GET("/export/monthly.csv", admin.ExportMonthlyCSV)
			adm.GET("/export/monthly.xlsx", admin.ExportMonthlyXLSX)

			adm.GET("/backup", admin.ExportBackup)
			adm.POST("/backup", admin.ImportBackup)

			adm.GET("/settings", admin.GetSettings)
			adm.PUT("/settings", admin.SaveSettings)
		}
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", AdminTokenHeader, "X-API-Key"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
