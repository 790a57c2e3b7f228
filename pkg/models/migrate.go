package model

import "gorm.io/gorm"

// AutoMigrate creates or updates the tables for every model.
func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Task{}, "Tags", &TaskTag{}); err != nil {
		return err
	}
	return db.AutoMigrate(&Project{}, &Tag{}, &Task{}, &TaskTag{})
}
