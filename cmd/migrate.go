package cmd

import (
	"log"

	"github.com/spf13/cobra"

	config "taskboard.com/taskboard/internal/configs"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		db := config.New(cfg.DatabaseDSN, cfg.DatabaseLogLevel)

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		log.Printf("schema up to date in %s", cfg.DatabaseDSN)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
