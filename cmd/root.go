package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inventory.GO/config"
	"inventory.GO/core/app"
)

var rootCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Inventory ledger reconciled against Square sales",
}

// Execute applies registered commands and runs the root command.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadApp reads configuration and opens the application the commands operate on.
func loadApp() (*app.App, error) {
	config.LoadAppConfig()
	config.InitRedis()
	return app.Open(config.AppConfig)
}

// ServeMain runs the serve command regardless of os.Args.
func ServeMain() {
	rootCmd.SetArgs([]string{"serve"})
	Execute()
}
