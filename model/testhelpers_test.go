package model

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing with the specified models.
// The database name is uniquified using the current Unix nanosecond timestamp to prevent
// cross-test contamination when tests run in the same process. With no models the full
// schema is migrated.
func setupTestDB(t *testing.T, name string, models ...interface{}) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// a single connection keeps the shared in-memory database free of table locks
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if len(models) == 0 {
		models = Models
	}
	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}
	return db
}

// setupFileTestDB opens a file-backed SQLite database that allows several connections, so
// concurrent transactions really interleave. Writers queue on the busy timeout.
func setupFileTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), name+".db")
	dsn := fmt.Sprintf("file:%s?_busy_timeout=10000&_journal_mode=WAL&_txlock=immediate", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(8)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func mustCreateAppointment(t *testing.T, db *gorm.DB, requester string) *AppointmentRequest {
	t.Helper()
	req, err := CreateAppointmentRequest(db, NewAppointmentInput{
		PatientName:   "Jane Doe",
		PreferredDate: "2025-01-10",
		PreferredTime: "09:00",
		RequestedBy:   requester,
	})
	if err != nil {
		t.Fatalf("failed to create appointment request: %v", err)
	}
	return req
}

func mustTransition(t *testing.T, db *gorm.DB, id uint, status AppointmentStatus) {
	t.Helper()
	if _, err := TransitionAppointment(db, id, StatusChange{Status: status}); err != nil {
		t.Fatalf("failed to move appointment %d to %s: %v", id, status, err)
	}
}
