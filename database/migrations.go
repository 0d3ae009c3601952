package database

import (
	"log"

	"juniorcars/models"

	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Page{},
		&models.CarSeries{},
		&models.NavigationItem{},
		&models.ContentBlock{},
		&models.Media{},
	)

	if err != nil {
		log.Printf("Error running migrations: %v", err)
		return err
	}

	log.Println("Migrations completed successfully")
	return nil
}
