// Najdeno is a lost & found service: people report items they found,
// owners claim them back.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/erazemk/najdeno/internal/api"
	"github.com/erazemk/najdeno/internal/config"
	"github.com/erazemk/najdeno/internal/db"
	"github.com/erazemk/najdeno/internal/notify"
)

// configFile is set by the --config flag.
var configFile string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "najdeno",
	Short:        "Najdeno tracks found items and their claim lifecycle",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (YAML)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database and apply the schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}

		if _, err := os.Stat(cfg.DBPath); err == nil {
			return fmt.Errorf("database file %s already exists", cfg.DBPath)
		}

		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := db.Migrate(database); err != nil {
			os.Remove(cfg.DBPath)
			return err
		}

		fmt.Printf("Database created: %s\n", cfg.DBPath)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}

		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		// Migrations are idempotent, so a missing database is simply
		// created on first start.
		if err := db.Migrate(database); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}

		notifier := notify.New()
		defer notifier.Close()

		handler := api.LoggingMiddleware(api.NewRouter(database, notifier))

		fmt.Printf("Server listening on %s\n", cfg.Addr)
		if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return nil
	},
}
