package infra

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"rodbarber/internal/models/db_models"
)

// InitPostgresql opens the connection pool and runs the schema migration.
// TranslateError turns unique-constraint violations into gorm.ErrDuplicatedKey,
// which the booking flow relies on for slot exclusivity.
func InitPostgresql(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	if err := db.AutoMigrate(&db_models.Account{}, &db_models.Appointment{}); err != nil {
		log.Fatalf("Error running migrations: %v", err)
	}

	return db
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("PostgreSQL database connection closed successfully")
	}
}
