package cmd

import (
	"github.com/spf13/cobra"

	"printshop/internal/config"
	"printshop/internal/database"
	"printshop/internal/migrations"
)

var seedData bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the backend tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		db, err := database.Initialize(cfg.DatabaseDriver, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		return migrations.RunMigrations(db, seedData)
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&seedData, "seed", false, "insert the demo orders")
	rootCmd.AddCommand(migrateCmd)
}
