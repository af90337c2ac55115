package endpoint

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ariebrainware/healthsync-rx/model"
	"github.com/ariebrainware/healthsync-rx/util"
	"github.com/gin-gonic/gin"
)

type PrescriptionMedicineBody struct {
	Name     string `json:"name" example:"Paracetamol"`
	Quantity int    `json:"quantity" example:"2"`
}

type CreatePrescriptionRequest struct {
	PatientName string                     `json:"patientName" binding:"required" example:"Jane Doe"`
	Age         string                     `json:"age" example:"30"`
	Gender      string                     `json:"gender" example:"female"`
	BloodGroup  string                     `json:"bloodGroup" example:"O+"`
	DoctorName  string                     `json:"doctorName" example:"Dr. Gregory House"`
	Date        string                     `json:"date" example:"2025-01-10"`
	Disease     string                     `json:"disease" example:"Influenza"`
	Notes       string                     `json:"notes"`
	Medicines   []PrescriptionMedicineBody `json:"medicines"`
	CreatedAt   *time.Time                 `json:"createdAt"`
	// AppointmentRequestID completes the referenced accepted request together with this prescription.
	AppointmentRequestID *uint `json:"appointmentRequestId" example:"12"`
}

type PrescriptionCreatedResponse struct {
	ID         uint   `json:"id" example:"1"`
	CaseNumber string `json:"caseNumber" example:"CASE0001"`
	NewCase    bool   `json:"newCase"`
	// AppointmentRequestID echoes the request that was completed, if any.
	AppointmentRequestID *uint `json:"appointmentRequestId,omitempty"`
}

type LastCaseNumberResponse struct {
	LastCaseNumber string `json:"lastCaseNumber" example:"CASE0042"`
}

type PatientCaseResponse struct {
	CaseNumber     string             `json:"caseNumber" example:"CASE0001"`
	Exists         bool               `json:"exists"`
	PatientDetails *model.PatientCase `json:"patientDetails"`
}

// CreatePrescription godoc
// @Summary      Submit prescription
// @Description  Stores a prescription under the patient's case number, allocating one for a new (patientName, age, bloodGroup). When appointmentRequestId is set the accepted request is completed in the same transaction.
// @Tags         Prescriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreatePrescriptionRequest true "Prescription"
// @Success      201 {object} util.APIResponse{data=PrescriptionCreatedResponse} "Prescription created"
// @Failure      400 {object} util.APIResponse "Missing patient name or invalid medicines"
// @Failure      404 {object} util.APIResponse "Appointment request not found"
// @Failure      409 {object} util.APIResponse "Appointment request is not accepted"
// @Failure      503 {object} util.APIResponse "Storage temporarily unavailable"
// @Router       /prescriptions [post]
func CreatePrescription(c *gin.Context) {
	var req CreatePrescriptionRequest
	if !bindJSONOrRespond(c, &req, "patientName is required") {
		return
	}
	who, ok := callerOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	doctorName := strings.TrimSpace(req.DoctorName)
	if doctorName == "" && who.Role == model.RoleDoctor {
		doctorName = who.Name
	}
	medicines := make([]model.MedicineInput, 0, len(req.Medicines))
	for _, m := range req.Medicines {
		medicines = append(medicines, model.MedicineInput{Name: m.Name, Quantity: m.Quantity})
	}

	p, err := model.SubmitPrescription(db, model.PrescriptionInput{
		PatientName:          req.PatientName,
		Age:                  req.Age,
		Gender:               req.Gender,
		BloodGroup:           req.BloodGroup,
		DoctorName:           doctorName,
		Date:                 req.Date,
		Disease:              req.Disease,
		Notes:                req.Notes,
		Medicines:            medicines,
		CreatedAt:            req.CreatedAt,
		AppointmentRequestID: req.AppointmentRequestID,
	})
	if err != nil {
		util.PrescriptionsSubmitted.WithLabelValues("failure").Inc()
		util.CallAppError(c, err)
		return
	}

	util.PrescriptionsSubmitted.WithLabelValues("success").Inc()
	if p.NewCase {
		util.CaseNumbersAllocated.Inc()
	}
	if p.AppointmentRequestID != nil {
		util.AppointmentTransitions.WithLabelValues(string(model.StatusAccepted), string(model.StatusCompleted)).Inc()
	}
	util.Log.WithField("prescription_id", p.ID).
		WithField("case_number", p.CaseNumber).
		WithField("new_case", p.NewCase).
		WithField("request_id", c.GetString(util.RequestIDKey)).
		Info("prescription submitted")

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg: "Prescription created",
		Data: PrescriptionCreatedResponse{
			ID:                   p.ID,
			CaseNumber:           p.CaseNumber,
			NewCase:              p.NewCase,
			AppointmentRequestID: p.AppointmentRequestID,
		},
	})
}

// ListPrescriptions godoc
// @Summary      List prescriptions
// @Tags         Prescriptions
// @Produce      json
// @Security     BearerAuth
// @Param        caseNumber query string false "Exact case number"
// @Param        patientName query string false "Part of the patient name"
// @Param        limit query int false "Maximum results (default 100, max 500)"
// @Success      200 {object} util.APIResponse{data=[]model.Prescription} "Prescriptions"
// @Router       /prescriptions [get]
func ListPrescriptions(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	prescriptions, err := model.ListPrescriptions(db, model.PrescriptionFilter{
		CaseNumber:  c.Query("caseNumber"),
		PatientName: c.Query("patientName"),
		Limit:       parsePositiveInt(c.Query("limit"), 100, 500),
	})
	if err != nil {
		util.CallAppError(c, err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Prescriptions retrieved", Data: prescriptions})
}

// GetPrescription godoc
// @Summary      Get prescription
// @Tags         Prescriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Prescription ID"
// @Success      200 {object} util.APIResponse{data=model.Prescription} "Prescription"
// @Failure      404 {object} util.APIResponse "Not found"
// @Router       /prescriptions/{id} [get]
func GetPrescription(c *gin.Context) {
	id, ok := idParamOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	p, err := model.GetPrescription(db, id)
	if err != nil {
		util.CallAppError(c, err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Prescription retrieved", Data: p})
}

// PrescriptionPDF godoc
// @Summary      Download prescription as PDF
// @Tags         Prescriptions
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path int true "Prescription ID"
// @Success      200 {file} file "Prescription PDF"
// @Failure      404 {object} util.APIResponse "Not found"
// @Router       /prescriptions/{id}/pdf [get]
func PrescriptionPDF(clinic string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParamOrRespond(c)
		if !ok {
			return
		}
		db, ok := getDBOrRespond(c)
		if !ok {
			return
		}
		p, err := model.GetPrescription(db, id)
		if err != nil {
			util.CallAppError(c, err)
			return
		}
		doc, err := util.RenderPrescriptionPDF(p, clinic)
		if err != nil {
			util.CallServerError(c, util.APIErrorParams{Msg: "Failed to render prescription", Err: err})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="prescription-%s-%d.pdf"`, p.CaseNumber, p.ID))
		c.Data(http.StatusOK, "application/pdf", doc)
	}
}

// LastCaseNumber godoc
// @Summary      Last allocated case number
// @Description  CASE0000 when nothing has been allocated yet
// @Tags         Prescriptions
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=LastCaseNumberResponse} "Last case number"
// @Router       /prescriptions/last-case-number [get]
func LastCaseNumber(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	last, err := model.LastCaseNumber(db)
	if err != nil {
		util.CallAppError(c, err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Last case number retrieved", Data: LastCaseNumberResponse{LastCaseNumber: last}})
}

// PatientCase godoc
// @Summary      Look up a patient's case number
// @Description  Most recent case registered for name; age and bloodGroup narrow the match when given. Patients always look up their own name. Never allocates.
// @Tags         Prescriptions
// @Produce      json
// @Security     BearerAuth
// @Param        name query string false "Patient name (required for staff, ignored for patients)"
// @Param        age query string false "Patient age"
// @Param        bloodGroup query string false "Blood group"
// @Success      200 {object} util.APIResponse{data=PatientCaseResponse} "Lookup result"
// @Failure      400 {object} util.APIResponse "Missing name"
// @Router       /prescriptions/patient-case [get]
func PatientCase(c *gin.Context) {
	who, ok := callerOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	name := c.Query("name")
	if who.Role == model.RolePatient {
		name = who.Name
	}
	pc, found, err := model.LookupCaseNumber(db, model.IdentityTuple{
		PatientName: name,
		Age:         c.Query("age"),
		BloodGroup:  c.Query("bloodGroup"),
	})
	if err != nil {
		util.CallAppError(c, err)
		return
	}

	resp := PatientCaseResponse{}
	if found {
		resp = PatientCaseResponse{CaseNumber: pc.CaseNumber, Exists: true, PatientDetails: &pc}
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Patient case looked up", Data: resp})
}
