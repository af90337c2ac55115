package model

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Prescription is an immutable medical record. CaseNumber groups every prescription
// written for the same (patientName, age, bloodGroup) identity.
// @Description Prescription record
type Prescription struct {
	ID                   uint       `json:"id" gorm:"primaryKey" example:"1"`
	PatientName          string     `json:"patientName" gorm:"column:patient_name;size:191;not null;index" example:"Jane Doe"`
	Age                  string     `json:"age" gorm:"column:age;size:16" example:"30"`
	Gender               string     `json:"gender" gorm:"column:gender;size:32" example:"female"`
	BloodGroup           string     `json:"bloodGroup" gorm:"column:blood_group;size:8" example:"O+"`
	DoctorName           string     `json:"doctorName" gorm:"column:doctor_name;size:201"`
	Date                 string     `json:"date" gorm:"column:date;size:32"`
	Disease              string     `json:"disease" gorm:"column:disease;size:255"`
	Notes                string     `json:"notes" gorm:"column:notes;type:text"`
	Medicines            []Medicine `json:"medicines" gorm:"foreignKey:PrescriptionID;constraint:OnDelete:CASCADE"`
	CaseNumber           string     `json:"caseNumber" gorm:"column:case_number;size:32;index" example:"CASE0001"`
	AppointmentRequestID *uint      `json:"appointmentRequestId,omitempty" gorm:"column:appointment_request_id;index"`
	CreatedAt            time.Time  `json:"createdAt"`

	// NewCase is set by SubmitPrescription when the case number was allocated for this record.
	NewCase bool `json:"newCase,omitempty" gorm:"-"`
}

// Medicine is one line of a prescription.
type Medicine struct {
	ID             uint   `json:"-" gorm:"primaryKey"`
	PrescriptionID uint   `json:"-" gorm:"column:prescription_id;index"`
	Name           string `json:"name" gorm:"column:name;size:255;not null" example:"Paracetamol"`
	Quantity       int    `json:"quantity" gorm:"column:quantity;not null" example:"2"`
}

func (Medicine) TableName() string {
	return "prescription_medicines"
}

// MedicineInput is a requested medicine line. A zero quantity defaults to one.
type MedicineInput struct {
	Name     string
	Quantity int
}

// PrescriptionInput carries what a doctor submits.
type PrescriptionInput struct {
	PatientName          string
	Age                  string
	Gender               string
	BloodGroup           string
	DoctorName           string
	Date                 string
	Disease              string
	Notes                string
	Medicines            []MedicineInput
	CreatedAt            *time.Time
	AppointmentRequestID *uint
}

func (in PrescriptionInput) validate() ([]Medicine, error) {
	if strings.TrimSpace(in.PatientName) == "" {
		return nil, NewValidationError("patientName is required")
	}
	medicines := make([]Medicine, 0, len(in.Medicines))
	for i, m := range in.Medicines {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			return nil, NewValidationError(fmt.Sprintf("medicines[%d].name is required", i))
		}
		qty := m.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 0 {
			return nil, NewValidationError(fmt.Sprintf("medicines[%d].quantity must be positive", i))
		}
		medicines = append(medicines, Medicine{Name: name, Quantity: qty})
	}
	return medicines, nil
}

// SubmitPrescription stores a prescription under the patient's case number. When the input
// references an appointment request, that request moves from accepted to completed in the
// same transaction, so either both writes land or neither does.
func SubmitPrescription(db *gorm.DB, in PrescriptionInput) (*Prescription, error) {
	medicines, err := in.validate()
	if err != nil {
		return nil, err
	}

	identity := IdentityTuple{PatientName: in.PatientName, Age: in.Age, BloodGroup: in.BloodGroup}.Normalize()
	createdAt := time.Now()
	if in.CreatedAt != nil && !in.CreatedAt.IsZero() {
		createdAt = *in.CreatedAt
	}

	var out *Prescription
	err = db.Transaction(func(tx *gorm.DB) error {
		resolution, err := ResolveCaseNumber(tx, identity)
		if err != nil {
			return err
		}

		p := Prescription{
			PatientName:          identity.PatientName,
			Age:                  identity.Age,
			Gender:               strings.TrimSpace(in.Gender),
			BloodGroup:           identity.BloodGroup,
			DoctorName:           strings.TrimSpace(in.DoctorName),
			Date:                 strings.TrimSpace(in.Date),
			Disease:              strings.TrimSpace(in.Disease),
			Notes:                in.Notes,
			Medicines:            medicines,
			CaseNumber:           resolution.CaseNumber,
			AppointmentRequestID: in.AppointmentRequestID,
			CreatedAt:            createdAt,
			NewCase:              resolution.Allocated,
		}
		if err := tx.Create(&p).Error; err != nil {
			return NewStorageError("failed to save prescription", err)
		}

		if in.AppointmentRequestID != nil {
			req, err := GetAppointmentRequest(tx, *in.AppointmentRequestID)
			if err != nil {
				return err
			}
			requested := IdentityTuple{PatientName: req.PatientName}.Normalize().PatientName
			if !strings.EqualFold(requested, identity.PatientName) {
				return NewConflictError(fmt.Sprintf("appointment request %d belongs to %q, not %q", req.ID, requested, identity.PatientName))
			}
			if req.Status != StatusAccepted {
				return NewConflictError(fmt.Sprintf("appointment request %d is %s, only accepted requests can be completed", req.ID, req.Status))
			}
			if _, err := TransitionAppointment(tx, req.ID, StatusChange{Status: StatusCompleted}); err != nil {
				return err
			}
		}

		out = &p
		return nil
	})
	if err != nil {
		return nil, AsAppError(err)
	}
	return out, nil
}

// GetPrescription loads a prescription with its medicines.
func GetPrescription(db *gorm.DB, id uint) (*Prescription, error) {
	var p Prescription
	if err := db.Preload("Medicines").Limit(1).Find(&p, id).Error; err != nil {
		return nil, NewStorageError("failed to load prescription", err)
	}
	if p.ID == 0 {
		return nil, NewNotFoundError("prescription not found")
	}
	return &p, nil
}

// PrescriptionFilter narrows ListPrescriptions. Empty fields are not applied.
type PrescriptionFilter struct {
	CaseNumber  string
	PatientName string
	Limit       int
}

// ListPrescriptions returns prescriptions newest first.
func ListPrescriptions(db *gorm.DB, filter PrescriptionFilter) ([]Prescription, error) {
	query := db.Model(&Prescription{}).Preload("Medicines")
	if cn := strings.ToUpper(strings.TrimSpace(filter.CaseNumber)); cn != "" {
		query = query.Where("case_number = ?", cn)
	}
	if name := strings.TrimSpace(filter.PatientName); name != "" {
		query = query.Where("LOWER(patient_name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	prescriptions := []Prescription{}
	if err := query.Order("created_at DESC").Order("id DESC").Find(&prescriptions).Error; err != nil {
		return nil, NewStorageError("failed to list prescriptions", err)
	}
	return prescriptions, nil
}
