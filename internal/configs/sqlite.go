package config

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "taskboard.com/taskboard/pkg/models"
)

func New(dsn, logLevel string) *gorm.DB {
	level, err := parseLogLevel(logLevel)
	if err != nil {
		log.Fatal(err)
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	// SQLite allows a single writer.
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("db handle failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := model.AutoMigrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}

func parseLogLevel(s string) (logger.LogLevel, error) {
	switch strings.ToLower(s) {
	case "silent":
		return logger.Silent, nil
	case "error":
		return logger.Error, nil
	case "warn", "":
		return logger.Warn, nil
	case "info":
		return logger.Info, nil
	}
	return 0, fmt.Errorf("DB_LOG_LEVEL must be one of silent, error, warn, info (got %q)", s)
}
