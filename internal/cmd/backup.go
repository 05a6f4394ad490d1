package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"printshop/internal/config"
	"printshop/internal/redis"
	"printshop/internal/services"
	"printshop/internal/store"
)

var backupFile string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or import the admin panel's local data",
}

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write orders and settings to a JSON backup file",
	RunE: func(cmd *cobra.Command, args []string) error {
		backupService, closeFn, err := openBackupService()
		if err != nil {
			return err
		}
		defer closeFn()

		data, err := json.MarshalIndent(backupService.Export(cmd.Context()), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode backup: %w", err)
		}
		if err := os.WriteFile(backupFile, data, 0o644); err != nil {
			return fmt.Errorf("failed to write backup: %w", err)
		}
		fmt.Printf("Backup written to %s\n", backupFile)
		return nil
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Merge a JSON backup file into the local data",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(backupFile)
		if err != nil {
			return fmt.Errorf("failed to read backup: %w", err)
		}

		backupService, closeFn, err := openBackupService()
		if err != nil {
			return err
		}
		defer closeFn()

		result, err := backupService.Import(cmd.Context(), data)
		if err != nil {
			return err
		}
		fmt.Printf("Imported: %d new orders, %d updated, settings replaced: %t\n",
			result.Inserted, result.Updated, result.SettingsReplaced)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{backupExportCmd, backupImportCmd} {
		c.Flags().StringVarP(&backupFile, "file", "f", "backup.json", "backup file path")
		backupCmd.AddCommand(c)
	}
	rootCmd.AddCommand(backupCmd)
}

func openBackupService() (services.BackupService, func(), error) {
	cfg := config.Load()
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	defaults, err := cfg.ShopDefaults()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	settingsService := services.NewSettingsService(store.NewSettingsStore(redisClient, defaults))
	backupService := services.NewBackupService(store.NewOrderStore(redisClient), settingsService)
	return backupService, func() { redisClient.Close() }, nil
}
