package store

import (
	"testing"

	"frenoshugo-backend/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory SQLite database with the same gorm
// configuration the app uses. One connection only, so the in-memory
// database is shared across all queries in a test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get connection pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Vehicle{}, &models.Service{}, &models.NotificationLog{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newTestStores(t *testing.T) (*VehicleStore, *ServiceStore) {
	t.Helper()
	db := newTestDB(t)
	return NewVehicleStore(db, "+57"), NewServiceStore(db)
}
