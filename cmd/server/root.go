package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/news-api/internal/config"
	"github.com/news-api/internal/database"
	"github.com/news-api/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	envFile string
	cfg     *config.Config
	log     zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "news-api",
	Short: "News aggregator REST API",
	Long: `news-api serves topics, articles, comments and users over HTTP,
backed by PostgreSQL.

Example usage:
  news-api serve              # Run migrations (unless disabled) and start the server
  news-api migrate up         # Apply pending migrations
  news-api migrate down       # Roll back the last migration
  news-api seed               # Replace all rows with the development dataset`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

// initConfig loads the dotenv file, configuration and logger.
func initConfig() error {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log = logger.New(cfg.Log.Level, cfg.Log.Format)
	return nil
}

// openDB connects to the configured database.
func openDB() (*database.DB, error) {
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
