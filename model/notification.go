package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Notification tells a user that one of their appointment requests changed status.
type Notification struct {
	ID                   uint              `json:"id" gorm:"primaryKey"`
	RecipientEmail       string            `json:"recipientEmail" gorm:"column:recipient_email;size:191;not null;index"`
	AppointmentRequestID uint              `json:"appointmentRequestId" gorm:"column:appointment_request_id;index"`
	Status               AppointmentStatus `json:"status" gorm:"column:status;size:16"`
	Message              string            `json:"message" gorm:"column:message;size:512"`
	ReadAt               *time.Time        `json:"readAt"`
	CreatedAt            time.Time         `json:"createdAt"`
}

func statusNotification(req *AppointmentRequest, to AppointmentStatus) *Notification {
	msg := fmt.Sprintf("Your appointment request for %s on %s at %s is now %s.",
		req.PatientName, req.PreferredDate, req.PreferredTime, to)
	return &Notification{
		RecipientEmail:       req.RequestedBy,
		AppointmentRequestID: req.ID,
		Status:               to,
		Message:              msg,
		CreatedAt:            time.Now(),
	}
}

// ListNotifications returns the newest notifications of a recipient first.
func ListNotifications(db *gorm.DB, recipient string, unreadOnly bool, limit int) ([]Notification, error) {
	query := db.Where("recipient_email = ?", NormalizeEmail(recipient))
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	notifications := []Notification{}
	if err := query.Order("id DESC").Find(&notifications).Error; err != nil {
		return nil, NewStorageError("failed to list notifications", err)
	}
	return notifications, nil
}

// MarkNotificationRead stamps a notification as read. Recipients can only touch their own.
func MarkNotificationRead(db *gorm.DB, id uint, recipient string) (*Notification, error) {
	var n Notification
	if err := db.Limit(1).Find(&n, id).Error; err != nil {
		return nil, NewStorageError("failed to load notification", err)
	}
	if n.ID == 0 || n.RecipientEmail != NormalizeEmail(recipient) {
		return nil, NewNotFoundError("notification not found")
	}
	if n.ReadAt != nil {
		return &n, nil
	}
	now := time.Now()
	if err := db.Model(&n).Update("read_at", now).Error; err != nil {
		return nil, NewStorageError("failed to update notification", err)
	}
	n.ReadAt = &now
	return &n, nil
}
