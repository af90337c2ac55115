package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// DashboardStats are the headline counters of the staff dashboard.
type DashboardStats struct {
	PatientsCount          int64 `json:"patientsCount" example:"120"`
	UpcomingAppointments   int64 `json:"upcomingAppointments" example:"15"`
	PendingRequests        int64 `json:"pendingRequests" example:"4"`
	PrescriptionsThisMonth int64 `json:"prescriptionsThisMonth" example:"45"`
}

// CollectDashboardStats counts registered patient identities, open appointment requests from
// today on, and prescriptions written since the start of now's month.
func CollectDashboardStats(db *gorm.DB, now time.Time) (DashboardStats, error) {
	var stats DashboardStats
	if err := db.Model(&PatientCase{}).Count(&stats.PatientsCount).Error; err != nil {
		return stats, NewStorageError("failed to count patients", err)
	}

	today := now.Format("2006-01-02")
	err := db.Model(&AppointmentRequest{}).
		Where("status IN ? AND preferred_date >= ?", []AppointmentStatus{StatusPending, StatusAccepted}, today).
		Count(&stats.UpcomingAppointments).Error
	if err != nil {
		return stats, NewStorageError("failed to count appointments", err)
	}
	if err := db.Model(&AppointmentRequest{}).Where("status = ?", StatusPending).Count(&stats.PendingRequests).Error; err != nil {
		return stats, NewStorageError("failed to count pending requests", err)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if err := db.Model(&Prescription{}).Where("created_at >= ?", monthStart).Count(&stats.PrescriptionsThisMonth).Error; err != nil {
		return stats, NewStorageError("failed to count prescriptions", err)
	}
	return stats, nil
}

// SearchPatientCases matches registered identities by name or case number, case-insensitively.
func SearchPatientCases(db *gorm.DB, search string, limit int) ([]PatientCase, error) {
	query := db.Model(&PatientCase{})
	if q := strings.ToLower(strings.TrimSpace(search)); q != "" {
		like := "%" + q + "%"
		query = query.Where("LOWER(patient_name) LIKE ? OR LOWER(case_number) LIKE ?", like, like)
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	cases := []PatientCase{}
	if err := query.Order("case_number ASC").Limit(limit).Find(&cases).Error; err != nil {
		return nil, NewStorageError("failed to search patients", err)
	}
	return cases, nil
}
