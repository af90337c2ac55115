package model

import (
	"fmt"

	"gorm.io/gorm"
)

// Models lists every table the service owns.
var Models = []interface{}{
	&User{},
	&Session{},
	&AppointmentRequest{},
	&Notification{},
	&Prescription{},
	&Medicine{},
	&PatientCase{},
	&CaseCounter{},
	&Report{},
	&SecurityLog{},
}

// Migrate creates or updates the schema and runs the one-time normalization steps.
// Every step is safe to run again on an already migrated database.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	if err := NormalizeUsers(db); err != nil {
		return fmt.Errorf("normalize users: %w", err)
	}
	if err := BackfillPatientCases(db); err != nil {
		return fmt.Errorf("backfill patient cases: %w", err)
	}
	if err := SeedCaseCounter(db); err != nil {
		return fmt.Errorf("seed case counter: %w", err)
	}
	return nil
}

// NormalizeUsers lower-cases stored emails and derives missing full names, so reads never
// need fallback chains.
func NormalizeUsers(db *gorm.DB) error {
	var users []User
	err := db.Where("full_name = '' OR full_name IS NULL OR email <> LOWER(TRIM(email))").Find(&users).Error
	if err != nil {
		return err
	}
	for _, u := range users {
		updates := map[string]interface{}{
			"email":     NormalizeEmail(u.Email),
			"full_name": ComposeFullName(u.FirstName, u.LastName),
		}
		if err := db.Model(&User{}).Where("id = ?", u.ID).UpdateColumns(updates).Error; err != nil {
			return fmt.Errorf("user %d: %w", u.ID, err)
		}
	}
	return nil
}
