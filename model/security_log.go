package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SecurityLog represents a persisted security event
type SecurityLog struct {
	gorm.Model
	EventType string `json:"event_type" gorm:"column:event_type;type:varchar(64);index"`
	UserID    string `json:"user_id" gorm:"column:user_id;type:varchar(64);index"`
	Email     string `json:"email" gorm:"column:email;type:varchar(191);index"`
	Role      string `json:"role" gorm:"column:role;type:varchar(16)"`
	IP        string `json:"ip" gorm:"column:ip;type:varchar(45)"`
	// Location stores city and country in the format "City/Country" when available.
	Location  string         `json:"location" gorm:"column:location;type:varchar(255);index"`
	UserAgent string         `json:"user_agent" gorm:"column:user_agent;type:varchar(512)"`
	RequestID string         `json:"request_id" gorm:"column:request_id;type:varchar(36)"`
	Message   string         `json:"message" gorm:"column:message;type:text"`
	Details   datatypes.JSON `json:"details" gorm:"column:details;type:json"`
}

// SecurityLogFilter narrows ListSecurityLogs. Zero values are not applied.
type SecurityLogFilter struct {
	EventType string
	Email     string
	Since     time.Time
	Limit     int
}

// ListSecurityLogs returns the newest events first.
func ListSecurityLogs(db *gorm.DB, filter SecurityLogFilter) ([]SecurityLog, error) {
	query := db.Model(&SecurityLog{})
	if filter.EventType != "" {
		query = query.Where("event_type = ?", filter.EventType)
	}
	if filter.Email != "" {
		query = query.Where("email = ?", NormalizeEmail(filter.Email))
	}
	if !filter.Since.IsZero() {
		query = query.Where("created_at >= ?", filter.Since)
	}
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	logs := []SecurityLog{}
	if err := query.Order("id DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, NewStorageError("failed to list security logs", err)
	}
	return logs, nil
}
