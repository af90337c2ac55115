package model

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusAccepted  AppointmentStatus = "accepted"
	StatusRejected  AppointmentStatus = "rejected"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// AppointmentStatuses lists every status in lifecycle order.
var AppointmentStatuses = []AppointmentStatus{StatusPending, StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled}

// appointmentTransitions lists the targets reachable from each non-terminal status.
// Self-transitions let reviewers attach notes without moving the request.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:  {StatusPending, StatusAccepted, StatusRejected, StatusCancelled},
	StatusAccepted: {StatusAccepted, StatusCompleted, StatusCancelled},
}

func (s AppointmentStatus) Valid() bool {
	for _, v := range AppointmentStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition may leave s.
func (s AppointmentStatus) Terminal() bool {
	_, open := appointmentTransitions[s]
	return s.Valid() && !open
}

func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	for _, t := range appointmentTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// AppointmentRequest is a patient's booking proposal awaiting doctor/admin review.
// @Description Appointment request
type AppointmentRequest struct {
	ID                uint              `json:"id" gorm:"primaryKey" example:"1"`
	PatientName       string            `json:"patientName" gorm:"column:patient_name;size:191;not null" example:"Jane Doe"`
	PatientAge        string            `json:"patientAge" gorm:"column:patient_age;size:16" example:"30"`
	PatientGender     string            `json:"patientGender" gorm:"column:patient_gender;size:32" example:"female"`
	PatientBloodGroup string            `json:"patientBloodGroup" gorm:"column:patient_blood_group;size:8" example:"O+"`
	PreferredDate     string            `json:"preferredDate" gorm:"column:preferred_date;size:10;not null;index" example:"2025-01-10"`
	PreferredTime     string            `json:"preferredTime" gorm:"column:preferred_time;size:5;not null" example:"09:00"`
	Notes             string            `json:"notes" gorm:"column:notes;type:text"`
	RequestedBy       string            `json:"requestedBy" gorm:"column:requested_by;size:191;not null;index" example:"jane@example.com"`
	DoctorName        string            `json:"doctorName" gorm:"column:doctor_name;size:201"`
	DoctorEmail       string            `json:"doctorEmail" gorm:"column:doctor_email;size:191;index"`
	Status            AppointmentStatus `json:"status" gorm:"column:status;size:16;not null;index" example:"pending"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// NewAppointmentInput carries the fields a patient supplies when booking.
type NewAppointmentInput struct {
	PatientName       string
	PatientAge        string
	PatientGender     string
	PatientBloodGroup string
	PreferredDate     string
	PreferredTime     string
	Notes             string
	RequestedBy       string
	DoctorName        string
	DoctorEmail       string
}

// CreateAppointmentRequest validates and stores a new request in the pending state.
func CreateAppointmentRequest(db *gorm.DB, in NewAppointmentInput) (*AppointmentRequest, error) {
	in.PatientName = strings.Join(strings.Fields(in.PatientName), " ")
	in.PreferredDate = strings.TrimSpace(in.PreferredDate)
	in.PreferredTime = strings.TrimSpace(in.PreferredTime)
	in.RequestedBy = NormalizeEmail(in.RequestedBy)

	var missing []string
	if in.PatientName == "" {
		missing = append(missing, "patientName")
	}
	if in.PreferredDate == "" {
		missing = append(missing, "preferredDate")
	}
	if in.PreferredTime == "" {
		missing = append(missing, "preferredTime")
	}
	if in.RequestedBy == "" {
		missing = append(missing, "requestedBy")
	}
	if len(missing) > 0 {
		return nil, NewValidationError("missing required appointment fields: " + strings.Join(missing, ", "))
	}
	if err := validateSchedule(in.PreferredDate, in.PreferredTime); err != nil {
		return nil, err
	}

	now := time.Now()
	req := AppointmentRequest{
		PatientName:       in.PatientName,
		PatientAge:        strings.TrimSpace(in.PatientAge),
		PatientGender:     strings.TrimSpace(in.PatientGender),
		PatientBloodGroup: strings.ToUpper(strings.TrimSpace(in.PatientBloodGroup)),
		PreferredDate:     in.PreferredDate,
		PreferredTime:     in.PreferredTime,
		Notes:             in.Notes,
		RequestedBy:       in.RequestedBy,
		DoctorName:        in.DoctorName,
		DoctorEmail:       NormalizeEmail(in.DoctorEmail),
		Status:            StatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := db.Create(&req).Error; err != nil {
		return nil, NewStorageError("failed to create appointment request", err)
	}
	return &req, nil
}

func validateSchedule(date, clock string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return NewValidationError("preferredDate must be formatted as YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", clock); err != nil {
		return NewValidationError("preferredTime must be formatted as HH:MM")
	}
	return nil
}

// GetAppointmentRequest loads a request by id.
func GetAppointmentRequest(db *gorm.DB, id uint) (*AppointmentRequest, error) {
	var req AppointmentRequest
	if err := db.Limit(1).Find(&req, id).Error; err != nil {
		return nil, NewStorageError("failed to load appointment request", err)
	}
	if req.ID == 0 {
		return nil, NewNotFoundError("appointment request not found")
	}
	return &req, nil
}

// StatusChange is a reviewer's update. Nil pointers leave the field untouched.
type StatusChange struct {
	Status      AppointmentStatus
	DoctorName  *string
	DoctorEmail *string
	Notes       *string
}

// TransitionResult reports the status a request moved from and the stored record after the move.
type TransitionResult struct {
	From    AppointmentStatus
	Request *AppointmentRequest
}

// TransitionAppointment moves a request to change.Status if the lifecycle permits it. The
// write is conditional on the status read, so a concurrent writer makes it fail with a conflict
// instead of silently overwriting. A notification for the requester is stored alongside.
func TransitionAppointment(db *gorm.DB, id uint, change StatusChange) (*TransitionResult, error) {
	if !change.Status.Valid() {
		return nil, NewValidationError(fmt.Sprintf("invalid status %q", change.Status))
	}

	var result *TransitionResult
	err := db.Transaction(func(tx *gorm.DB) error {
		current, err := GetAppointmentRequest(tx, id)
		if err != nil {
			return err
		}
		if !current.Status.CanTransitionTo(change.Status) {
			return NewConflictError(fmt.Sprintf("cannot move appointment request from %s to %s", current.Status, change.Status))
		}

		updates := map[string]interface{}{
			"status":     change.Status,
			"updated_at": time.Now(),
		}
		if change.DoctorName != nil {
			updates["doctor_name"] = strings.TrimSpace(*change.DoctorName)
		}
		if change.DoctorEmail != nil {
			updates["doctor_email"] = NormalizeEmail(*change.DoctorEmail)
		}
		if change.Notes != nil {
			updates["notes"] = *change.Notes
		}
		if err := compareAndUpdate(tx, current, updates); err != nil {
			return err
		}

		if current.Status != change.Status {
			if err := tx.Create(statusNotification(current, change.Status)).Error; err != nil {
				return NewStorageError("failed to record notification", err)
			}
		}

		updated, err := GetAppointmentRequest(tx, id)
		if err != nil {
			return err
		}
		result = &TransitionResult{From: current.Status, Request: updated}
		return nil
	})
	if err != nil {
		return nil, AsAppError(err)
	}
	return result, nil
}

// AppointmentEdit holds the fields a patient may change while the request is pending.
type AppointmentEdit struct {
	PatientName       *string
	PatientAge        *string
	PatientGender     *string
	PatientBloodGroup *string
	PreferredDate     *string
	PreferredTime     *string
	Notes             *string
}

// EditAppointmentRequest applies a patient's edits. Only the requester may edit, and only
// while the request is still pending.
func EditAppointmentRequest(db *gorm.DB, id uint, requester string, edit AppointmentEdit) (*AppointmentRequest, error) {
	var out *AppointmentRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		current, err := GetAppointmentRequest(tx, id)
		if err != nil {
			return err
		}
		if current.RequestedBy != NormalizeEmail(requester) {
			return NewForbiddenError("only the requesting patient may edit this appointment request")
		}
		if current.Status != StatusPending {
			return NewConflictError("appointment request can only be edited while pending")
		}

		updates, err := edit.toUpdates(current)
		if err != nil {
			return err
		}
		if len(updates) == 0 {
			return NewValidationError("at least one field must be provided")
		}
		updates["updated_at"] = time.Now()
		if err := compareAndUpdate(tx, current, updates); err != nil {
			return err
		}

		out, err = GetAppointmentRequest(tx, id)
		return err
	})
	if err != nil {
		return nil, AsAppError(err)
	}
	return out, nil
}

func (e AppointmentEdit) toUpdates(current *AppointmentRequest) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if e.PatientName != nil {
		name := strings.Join(strings.Fields(*e.PatientName), " ")
		if name == "" {
			return nil, NewValidationError("patientName cannot be empty")
		}
		updates["patient_name"] = name
	}
	if e.PatientAge != nil {
		updates["patient_age"] = strings.TrimSpace(*e.PatientAge)
	}
	if e.PatientGender != nil {
		updates["patient_gender"] = strings.TrimSpace(*e.PatientGender)
	}
	if e.PatientBloodGroup != nil {
		updates["patient_blood_group"] = strings.ToUpper(strings.TrimSpace(*e.PatientBloodGroup))
	}
	if e.Notes != nil {
		updates["notes"] = *e.Notes
	}

	date, clock := current.PreferredDate, current.PreferredTime
	if e.PreferredDate != nil {
		date = strings.TrimSpace(*e.PreferredDate)
		updates["preferred_date"] = date
	}
	if e.PreferredTime != nil {
		clock = strings.TrimSpace(*e.PreferredTime)
		updates["preferred_time"] = clock
	}
	if e.PreferredDate != nil || e.PreferredTime != nil {
		if err := validateSchedule(date, clock); err != nil {
			return nil, err
		}
	}
	return updates, nil
}

// CancelAppointmentRequest soft-cancels a request on behalf of actor. Patients may cancel
// their own pending requests; doctors and admins anything the lifecycle allows.
func CancelAppointmentRequest(db *gorm.DB, id uint, actorEmail string, actorRole Role) (*TransitionResult, error) {
	if actorRole == RolePatient {
		current, err := GetAppointmentRequest(db, id)
		if err != nil {
			return nil, err
		}
		if current.RequestedBy != NormalizeEmail(actorEmail) {
			return nil, NewForbiddenError("only the requesting patient may cancel this appointment request")
		}
		if current.Status != StatusPending {
			return nil, NewConflictError("patients can only cancel pending appointment requests")
		}
	}
	return TransitionAppointment(db, id, StatusChange{Status: StatusCancelled})
}

// DeleteAppointmentRequest physically removes a request.
func DeleteAppointmentRequest(db *gorm.DB, id uint) error {
	res := db.Delete(&AppointmentRequest{}, id)
	if res.Error != nil {
		return NewStorageError("failed to delete appointment request", res.Error)
	}
	if res.RowsAffected == 0 {
		return NewNotFoundError("appointment request not found")
	}
	return nil
}

// AppointmentFilter narrows a listing. Empty fields are not applied.
type AppointmentFilter struct {
	RequestedBy string
	DoctorEmail string
	Status      AppointmentStatus
	Limit       int
	Newest      bool
}

// ListAppointmentRequests returns requests ordered by preferred date and time, earliest first
// unless Newest is set.
func ListAppointmentRequests(db *gorm.DB, filter AppointmentFilter) ([]AppointmentRequest, error) {
	query := db.Model(&AppointmentRequest{})
	if filter.RequestedBy != "" {
		query = query.Where("requested_by = ?", NormalizeEmail(filter.RequestedBy))
	}
	if filter.DoctorEmail != "" {
		query = query.Where("doctor_email = ?", NormalizeEmail(filter.DoctorEmail))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Newest {
		query = query.Order("preferred_date DESC").Order("preferred_time DESC")
	} else {
		query = query.Order("preferred_date ASC").Order("preferred_time ASC")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	requests := []AppointmentRequest{}
	if err := query.Find(&requests).Error; err != nil {
		return nil, NewStorageError("failed to list appointment requests", err)
	}
	return requests, nil
}

func compareAndUpdate(tx *gorm.DB, current *AppointmentRequest, updates map[string]interface{}) error {
	res := tx.Model(&AppointmentRequest{}).
		Where("id = ? AND status = ?", current.ID, current.Status).
		Updates(updates)
	if res.Error != nil {
		return NewStorageError("failed to update appointment request", res.Error)
	}
	if res.RowsAffected == 0 {
		return NewConflictError("appointment request was modified concurrently, reload and retry")
	}
	return nil
}
