package storage

import (
	"log"
	"os"

	"github.com/bookingswingevents-commits/SwingBooking-sub000/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func connectToDB() *gorm.DB {
	// Only load .env in development (when RENDER env var is not set)
	if os.Getenv("RENDER") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Println("Warning: Could not load .env file (this is normal in production)")
		}
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Panic("DB_CONNECTION_STRING environment variable is required")
	}

	db, dbError := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if dbError != nil {
		log.Panic("error connection to db: " + dbError.Error())
	}

	DB = db
	return db
}

func performMigrations(db *gorm.DB) {
	db.AutoMigrate(
		&models.User{},
		&models.Program{},
		&models.ProgramItem{},
		&models.Application{},
		&models.Booking{},
		&models.BookingRequest{},
		&models.Invitation{},
		&models.Proposal{},
		&models.Notification{},
		&models.AuditLog{},
		&models.Feedback{},
	)
}

func InitializeDB() *gorm.DB {
	db := connectToDB()
	performMigrations(db)

	return db
}
