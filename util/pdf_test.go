package util

import (
	"bytes"
	"testing"
	"time"

	"github.com/ariebrainware/healthsync-rx/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPrescriptionPDF(t *testing.T) {
	p := &model.Prescription{
		ID:          3,
		PatientName: "Jane Doe",
		Age:         "30",
		BloodGroup:  "O+",
		DoctorName:  "Dr. Who",
		Disease:     "Influenza",
		Notes:       "Rest and fluids",
		CaseNumber:  "CASE0001",
		Medicines:   []model.Medicine{{Name: "Paracetamol", Quantity: 2}},
		CreatedAt:   time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC),
	}

	out, err := RenderPrescriptionPDF(p, "HealthSync Clinic")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	empty, err := RenderPrescriptionPDF(&model.Prescription{ID: 4, PatientName: "John"}, "HealthSync Clinic")
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}
