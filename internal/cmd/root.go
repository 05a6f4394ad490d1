package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "printshop",
	Short: "Photo print shop backend and admin panel",
	Long: `printshop runs the order backend, the public tracking page API and the
admin panel API of a photo printing shop.

Orders live in the backend database; the admin panel keeps a Redis copy
that is refreshed from the backend and used when the backend is down.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
