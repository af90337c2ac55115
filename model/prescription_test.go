package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitPrescription_CaseNumberScenario(t *testing.T) {
	db := setupTestDB(t, "rx_scenario")

	first, err := SubmitPrescription(db, PrescriptionInput{PatientName: "Jane Doe", Age: "30", BloodGroup: "O+"})
	require.NoError(t, err)
	assert.Equal(t, "CASE0001", first.CaseNumber)

	second, err := SubmitPrescription(db, PrescriptionInput{PatientName: "Jane Doe", Age: "30", BloodGroup: "O+"})
	require.NoError(t, err)
	assert.Equal(t, "CASE0001", second.CaseNumber)
	assert.NotEqual(t, first.ID, second.ID)

	other, err := SubmitPrescription(db, PrescriptionInput{PatientName: "John Roe", Age: "52", BloodGroup: "B+"})
	require.NoError(t, err)
	assert.Equal(t, "CASE0002", other.CaseNumber)
}

func TestSubmitPrescription_DefaultsAndMedicines(t *testing.T) {
	db := setupTestDB(t, "rx_defaults")

	created := time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)
	p, err := SubmitPrescription(db, PrescriptionInput{
		PatientName: "Jane Doe",
		Medicines: []MedicineInput{
			{Name: "Paracetamol", Quantity: 2},
			{Name: " Amoxicillin "},
		},
		CreatedAt: &created,
	})
	require.NoError(t, err)

	stored, err := GetPrescription(db, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "", stored.Age)
	assert.Equal(t, "", stored.Gender)
	assert.Equal(t, "", stored.Disease)
	assert.True(t, stored.CreatedAt.Equal(created))
	require.Len(t, stored.Medicines, 2)
	assert.Equal(t, "Paracetamol", stored.Medicines[0].Name)
	assert.Equal(t, 2, stored.Medicines[0].Quantity)
	assert.Equal(t, "Amoxicillin", stored.Medicines[1].Name)
	assert.Equal(t, 1, stored.Medicines[1].Quantity)
}

func TestSubmitPrescription_Validation(t *testing.T) {
	db := setupTestDB(t, "rx_validation")

	_, err := SubmitPrescription(db, PrescriptionInput{PatientName: " "})
	assert.True(t, IsErrorType(err, ErrorTypeValidation))

	_, err = SubmitPrescription(db, PrescriptionInput{PatientName: "Jane", Medicines: []MedicineInput{{Name: ""}}})
	assert.True(t, IsErrorType(err, ErrorTypeValidation))

	_, err = SubmitPrescription(db, PrescriptionInput{PatientName: "Jane", Medicines: []MedicineInput{{Name: "X", Quantity: -3}}})
	assert.True(t, IsErrorType(err, ErrorTypeValidation))

	last, err := LastCaseNumber(db)
	require.NoError(t, err)
	assert.Equal(t, "CASE0000", last)
}

func TestSubmitPrescription_CompletesAcceptedAppointment(t *testing.T) {
	db := setupTestDB(t, "rx_complete")
	req := mustCreateAppointment(t, db, "jane@x.com")
	mustTransition(t, db, req.ID, StatusAccepted)

	p, err := SubmitPrescription(db, PrescriptionInput{PatientName: "Jane Doe", AppointmentRequestID: &req.ID})
	require.NoError(t, err)
	require.NotNil(t, p.AppointmentRequestID)

	stored, err := GetAppointmentRequest(db, req.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, stored.Status)
}

func TestSubmitPrescription_RollsBackWhenAppointmentNotAccepted(t *testing.T) {
	db := setupTestDB(t, "rx_rollback")
	req := mustCreateAppointment(t, db, "jane@x.com")

	_, err := SubmitPrescription(db, PrescriptionInput{PatientName: "Jane Doe", AppointmentRequestID: &req.ID})
	assert.True(t, IsErrorType(err, ErrorTypeConflict))

	var count int64
	db.Model(&Prescription{}).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&PatientCase{}).Count(&count)
	assert.Equal(t, int64(0), count)

	stored, err := GetAppointmentRequest(db, req.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, stored.Status)

	missing := uint(4242)
	_, err = SubmitPrescription(db, PrescriptionInput{PatientName: "Jane Doe", AppointmentRequestID: &missing})
	assert.True(t, IsErrorType(err, ErrorTypeNotFound))
}

func TestSubmitPrescription_RejectsAppointmentOfAnotherPatient(t *testing.T) {
	db := setupTestDB(t, "rx_other_patient")
	req := mustCreateAppointment(t, db, "jane@x.com")
	mustTransition(t, db, req.ID, StatusAccepted)

	_, err := SubmitPrescription(db, PrescriptionInput{PatientName: "John Roe", AppointmentRequestID: &req.ID})
	assert.True(t, IsErrorType(err, ErrorTypeConflict))

	var count int64
	db.Model(&Prescription{}).Count(&count)
	assert.Equal(t, int64(0), count)

	stored, err := GetAppointmentRequest(db, req.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, stored.Status)

	p, err := SubmitPrescription(db, PrescriptionInput{PatientName: "  jane   doe ", AppointmentRequestID: &req.ID})
	require.NoError(t, err)
	assert.Equal(t, "CASE0001", p.CaseNumber)
	stored, err = GetAppointmentRequest(db, req.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, stored.Status)
}

func TestListPrescriptions_Filters(t *testing.T) {
	db := setupTestDB(t, "rx_list")

	for _, name := range []string{"Jane Doe", "Jane Doe", "John Roe"} {
		_, err := SubmitPrescription(db, PrescriptionInput{PatientName: name})
		require.NoError(t, err)
	}

	all, err := ListPrescriptions(db, PrescriptionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byCase, err := ListPrescriptions(db, PrescriptionFilter{CaseNumber: "case0001"})
	require.NoError(t, err)
	assert.Len(t, byCase, 2)

	byName, err := ListPrescriptions(db, PrescriptionFilter{PatientName: "roe"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "CASE0002", byName[0].CaseNumber)

	_, err = GetPrescription(db, 999)
	assert.True(t, IsErrorType(err, ErrorTypeNotFound))
}
