package main

import (
	"github.com/news-api/internal/repository"
	"github.com/news-api/internal/seed"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace all rows with the development dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := seed.Development()
		if err != nil {
			return err
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if cfg.Database.AutoMigrate {
			if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
				return err
			}
		}

		return seed.New(db, repository.New(db), log).Run(cmd.Context(), ds)
	},
}
