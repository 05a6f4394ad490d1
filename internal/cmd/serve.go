package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"printshop/internal/config"
	"printshop/internal/database"
	"printshop/internal/handlers"
	"printshop/internal/redis"
	"printshop/internal/repository"
	"printshop/internal/services"
	"printshop/internal/store"
	"printshop/pkg/backend"
	"printshop/pkg/whatsapp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	defaults, err := cfg.ShopDefaults()
	if err != nil {
		log.Printf("Warning: %v, using built-in shop defaults", err)
	}

	// Local stores
	orderStore := store.NewOrderStore(redisClient)
	settingsStore := store.NewSettingsStore(redisClient, defaults)

	// Remote clients
	backendClient := backend.NewClient(cfg.BackendURL, cfg.BackendAPIKey)
	var whatsappClient *whatsapp.Client
	if cfg.WhatsAppAPIURL != "" {
		whatsappClient = whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppUsername, cfg.WhatsAppPassword, cfg.WhatsAppPath, cfg.WhatsAppCountry)
	}

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)

	// Initialize services
	settingsService := services.NewSettingsService(settingsStore)
	notifier := services.NewWhatsAppNotifier(whatsappClient, defaults.ShopName)
	orderBook := services.NewOrderBook(orderStore, settingsService, backendClient, notifier)
	sessionService := services.NewSessionService(redisClient, settingsService, cfg.SessionTTL)
	reportService := services.NewReportService(orderBook, backendClient)
	backupService := services.NewBackupService(orderStore, settingsService)
	orderService := services.NewOrderService(orderRepo)
	expenseService := services.NewExpenseService(expenseRepo)

	// Initialize handlers
	apiHandler := handlers.NewAPIHandler(orderService, expenseService)
	publicHandler := handlers.NewPublicHandler(orderService, orderBook, settingsService)
	adminHandler := handlers.NewAdminHandler(orderBook, reportService, backupService, settingsService, sessionService)

	router := handlers.NewRouter(handlers.RouterConfig{
		BackendAPIKey: cfg.BackendAPIKey,
		CORSOrigins:   cfg.CORSOrigins,
	}, apiHandler, publicHandler, adminHandler, sessionService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go sessionService.Watch(ctx, cfg.SessionCheck, func(state services.SessionState) {
		log.Printf("Admin session ended: %s", state)
	})

	listener, err := net.Listen("tcp", ":"+cfg.ServerPort)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	go func() {
		result := orderBook.RefreshFromRemote(ctx)
		if result.State == services.SyncError {
			log.Printf("Initial sync failed, serving %d local orders: %s", len(result.Orders), result.Error)
		}
	}()

	srv := &http.Server{Handler: router}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	log.Println("Server stopped")
	return nil
}
