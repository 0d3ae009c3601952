package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"juniorcars/common"
	"juniorcars/database"
	"juniorcars/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the default content (idempotent by slug)",
	RunE: func(cmd *cobra.Command, args []string) error {
		godotenv.Load()

		db := common.ConnectDb()
		if db == nil {
			log.Fatal("Failed to connect to database")
		}
		if err := database.RunMigrations(db); err != nil {
			return err
		}
		return seed.Run(db)
	},
}
