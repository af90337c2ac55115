package model

import (
	"strings"

	"gorm.io/gorm"
)

// User is an account of any role. The (email, role) pair is unique: the same
// email may register once as a patient and once as a doctor.
// @Description User account information
type User struct {
	gorm.Model
	FirstName      string `json:"firstName" gorm:"column:first_name;size:100" example:"Jane"`
	LastName       string `json:"lastName" gorm:"column:last_name;size:100" example:"Doe"`
	FullName       string `json:"fullName" gorm:"column:full_name;size:201" example:"Jane Doe"`
	Email          string `json:"email" gorm:"column:email;size:191;not null;uniqueIndex:idx_users_email_role" example:"jane@example.com"`
	Password       string `json:"-" gorm:"column:password;not null"`
	Role           Role   `json:"role" gorm:"column:role;size:16;not null;uniqueIndex:idx_users_email_role" example:"patient"`
	FailedAttempts int    `json:"-" gorm:"column:failed_attempts;default:0"`
	LockedUntil    *int64 `json:"-" gorm:"column:locked_until"`
}

// BeforeSave keeps the derived full name and the canonical email form in sync.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	u.FullName = ComposeFullName(u.FirstName, u.LastName)
	return nil
}

// ComposeFullName joins first and last name, collapsing whitespace.
func ComposeFullName(first, last string) string {
	return strings.Join(strings.Fields(first+" "+last), " ")
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindUserByEmailAndRole loads the account registered for email under role.
func FindUserByEmailAndRole(db *gorm.DB, email string, role Role) (User, error) {
	var user User
	err := db.Where("email = ? AND role = ?", NormalizeEmail(email), role).First(&user).Error
	return user, err
}

// EmailRoleTaken reports whether another account already uses (email, role).
func EmailRoleTaken(db *gorm.DB, email string, role Role, excludeID uint) (bool, error) {
	var count int64
	err := db.Model(&User{}).
		Where("email = ? AND role = ? AND id != ?", NormalizeEmail(email), role, excludeID).
		Count(&count).Error
	return count > 0, err
}
