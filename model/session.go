package model

import (
	"time"

	"gorm.io/gorm"
)

// Session records an issued login token. TokenID is the JWT "jti" claim.
type Session struct {
	gorm.Model
	TokenID   string    `json:"token_id" gorm:"column:token_id;size:64;uniqueIndex"`
	UserID    uint      `json:"user_id" gorm:"column:user_id;index"`
	Role      Role      `json:"role" gorm:"column:role;size:16"`
	ExpiresAt time.Time `json:"expires_at" gorm:"column:expires_at"`
	ClientIP  string    `json:"client_ip" gorm:"column:client_ip;size:45"`
	Browser   string    `json:"browser" gorm:"column:browser;size:512"`
}

// FindLiveSession returns the unexpired session for tokenID.
func FindLiveSession(db *gorm.DB, tokenID string) (Session, error) {
	var session Session
	err := db.Where("token_id = ? AND expires_at > ?", tokenID, time.Now()).First(&session).Error
	return session, err
}

// DeleteUserSessions removes every session row of a user and returns the revoked token ids.
func DeleteUserSessions(db *gorm.DB, userID uint) ([]string, error) {
	var tokenIDs []string
	if err := db.Model(&Session{}).Where("user_id = ?", userID).Pluck("token_id", &tokenIDs).Error; err != nil {
		return nil, err
	}
	if err := db.Where("user_id = ?", userID).Delete(&Session{}).Error; err != nil {
		return nil, err
	}
	return tokenIDs, nil
}
