package model

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Roles lists every role a user may hold.
var Roles = []Role{RoleAdmin, RoleDoctor, RolePatient}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// SeedAdminParams describes the bootstrap administrator account.
type SeedAdminParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// SeedAdmin creates the bootstrap administrator when no admin exists for the email yet.
// Empty email or password disables seeding.
func SeedAdmin(db *gorm.DB, params SeedAdminParams) error {
	if params.Email == "" || params.Password == "" {
		return nil
	}

	var existing User
	err := db.Where("email = ? AND role = ?", NormalizeEmail(params.Email), RoleAdmin).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	if params.FirstName == "" {
		params.FirstName = "System"
	}
	if params.LastName == "" {
		params.LastName = "Administrator"
	}

	admin := User{
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Email:     params.Email,
		Password:  string(hash),
		Role:      RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin %s: %w", params.Email, err)
	}
	return nil
}
