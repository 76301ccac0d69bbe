package repository

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the postgres account store with connection pooling.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection established")
	return db, nil
}

// AutoMigrate creates or updates the account and budget tables.
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")
	if err := db.AutoMigrate(&AccountRecord{}, &BudgetRecord{}); err != nil {
		return err
	}
	log.Println("Database migrations completed")
	return nil
}
