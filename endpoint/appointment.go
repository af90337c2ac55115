package endpoint

import (
	"fmt"

	"github.com/ariebrainware/healthsync-rx/model"
	"github.com/ariebrainware/healthsync-rx/util"
	"github.com/gin-gonic/gin"
)

const previousAppointmentsLimit = 5

type CreateAppointmentRequestBody struct {
	PatientName       string `json:"patientName" example:"Jane Doe"`
	PatientAge        string `json:"patientAge" example:"30"`
	PatientGender     string `json:"patientGender" example:"female"`
	PatientBloodGroup string `json:"patientBloodGroup" example:"O+"`
	PreferredDate     string `json:"preferredDate" example:"2025-01-10"`
	PreferredTime     string `json:"preferredTime" example:"09:00"`
	Notes             string `json:"notes"`
	DoctorName        string `json:"doctorName"`
	DoctorEmail       string `json:"doctorEmail"`
	// RequestedBy is honored for staff booking on a patient's behalf; patients always book as themselves.
	RequestedBy string `json:"requestedBy" example:"jane@example.com"`
}

type UpdateAppointmentStatusBody struct {
	Status      string  `json:"status" binding:"required,appointment_status" example:"accepted"`
	DoctorName  *string `json:"doctorName"`
	DoctorEmail *string `json:"doctorEmail"`
	Notes       *string `json:"notes"`
}

type EditAppointmentRequestBody struct {
	PatientName       *string `json:"patientName"`
	PatientAge        *string `json:"patientAge"`
	PatientGender     *string `json:"patientGender"`
	PatientBloodGroup *string `json:"patientBloodGroup"`
	PreferredDate     *string `json:"preferredDate"`
	PreferredTime     *string `json:"preferredTime"`
	Notes             *string `json:"notes"`
}

// notifyStatusChange records the transition metric and mails the requester. Mail delivery is
// asynchronous and never affects the response.
func notifyStatusChange(mailer util.Mailer, result *model.TransitionResult) {
	if result == nil || result.Request == nil || result.From == result.Request.Status {
		return
	}
	util.AppointmentTransitions.WithLabelValues(string(result.From), string(result.Request.Status)).Inc()
	if mailer == nil {
		return
	}

	req := *result.Request
	subject := fmt.Sprintf("Appointment request %s", req.Status)
	body := fmt.Sprintf("Hello,\n\nYour appointment request for %s on %s at %s is now %s.\n",
		req.PatientName, req.PreferredDate, req.PreferredTime, req.Status)
	if req.DoctorName != "" {
		body += fmt.Sprintf("Doctor: %s\n", req.DoctorName)
	}
	go func() {
		if err := mailer.Send(req.RequestedBy, subject, body); err != nil {
			util.Log.WithError(err).WithField("appointment_request_id", req.ID).Warn("failed to send status notification")
		}
	}()
}

// CreateAppointmentRequest godoc
// @Summary      Create appointment request
// @Description  Book an appointment. The request starts as pending.
// @Tags         Appointment Requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateAppointmentRequestBody true "Appointment details"
// @Success      201 {object} util.APIResponse{data=model.AppointmentRequest} "Appointment request created"
// @Failure      400 {object} util.APIResponse "Missing or malformed fields"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointment-requests [post]
func CreateAppointmentRequest(c *gin.Context) {
	var body CreateAppointmentRequestBody
	if !bindJSONOrRespond(c, &body, "Invalid request payload") {
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

	requestedBy := who.Email
	if who.Role != model.RolePatient && body.RequestedBy != "" {
		requestedBy = body.RequestedBy
	}

	req, err := model.CreateAppointmentRequest(db, model.NewAppointmentInput{
		PatientName:       body.PatientName,
		PatientAge:        body.PatientAge,
		PatientGender:     body.PatientGender,
		PatientBloodGroup: body.PatientBloodGroup,
		PreferredDate:     body.PreferredDate,
		PreferredTime:     body.PreferredTime,
		Notes:             body.Notes,
		RequestedBy:       requestedBy,
		DoctorName:        body.DoctorName,
		DoctorEmail:       body.DoctorEmail,
	})
	if err != nil {
		util.CallAppError(c, err)
		return
	}
	util.CallSuccessCreated(c, util.APISuccessParams{Msg: "Appointment request created", Data: req})
}

// appointmentFilterFor derives what the caller may list. Patients only see their own requests;
// doctors see the pending queue or requests assigned to them; admins see everything.
func appointmentFilterFor(who caller, status model.AppointmentStatus) model.AppointmentFilter {
	switch who.Role {
	case model.RolePatient:
		return model.AppointmentFilter{RequestedBy: who.Email, Status: status}
	case model.RoleDoctor:
		if status == "" || status == model.StatusPending {
			return model.AppointmentFilter{Status: model.StatusPending}
		}
		return model.AppointmentFilter{DoctorEmail: who.Email, Status: status}
	default:
		return model.AppointmentFilter{Status: status}
	}
}

// ListAppointmentRequests godoc
// @Summary      List appointment requests
// @Description  Patients get their own requests, doctors the pending queue (or their own requests for another status), admins everything.
// @Tags         Appointment Requests
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Filter by status"
// @Success      200 {object} util.APIResponse{data=[]model.AppointmentRequest} "Appointment requests"
// @Failure      400 {object} util.APIResponse "Invalid status"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointment-requests [get]
func ListAppointmentRequests(c *gin.Context) {
	who, ok := callerOrRespond(c)
	if !ok {
		return
	}
	status := model.AppointmentStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		util.CallAppError(c, model.NewValidationError(fmt.Sprintf("invalid status %q", status)))
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	requests, err := model.ListAppointmentRequests(db, appointmentFilterFor(who, status))
	if err != nil {
		util.CallAppError(c, err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Appointment requests retrieved", Data: requests})
}

// PreviousAppointmentRequests godoc
// @Summary      Recent appointment requests
// @Description  The caller's five most recent requests; for doctors, the five most recent assigned to them.
// @Tags         Appointment Requests
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=[]model.AppointmentRequest} "Appointment requests"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Router       /appointment-requests/previous [get]
func PreviousAppointmentRequests(c *gin.Context) {
	who, ok := callerOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	filter := model.AppointmentFilter{RequestedBy: who.Email, Limit: previousAppointmentsLimit, Newest: true}
	if who.Role == model.RoleDoctor {
		filter = model.AppointmentFilter{DoctorEmail: who.Email, Limit: previousAppointmentsLimit, Newest: true}
	}
	requests, err := model.ListAppointmentRequests(db, filter)
	if err != nil {
		util.CallAppError(c, err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Previous appointment requests retrieved", Data: requests})
}

// GetAppointmentRequest godoc
// @Summary      Get appointment request
// @Tags         Appointment Requests
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Appointment request ID"
// @Success      200 {object} util.APIResponse{data=model.AppointmentRequest} "Appointment request"
// @Failure      403 {object} util.APIResponse "Not the requester"
// @Failure      404 {object} util.APIResponse "Not found"
// @Router       /appointment-requests/{id} [get]
func GetAppointmentRequest(c *gin.Context) {
	id, ok := idParamOrRespond(c)
	if !ok {
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

	req, err := model.GetAppointmentRequest(db, id)
	if err != nil {
		util.CallAppError(c, err)
		return
	}
	if who.Role == model.RolePatient && req.RequestedBy != model.NormalizeEmail(who.Email) {
		util.CallAppError(c, model.NewForbiddenError("only the requesting patient may view this appointment request"))
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Appointment request retrieved", Data: req})
}

// UpdateAppointmentStatus godoc
// @Summary      Review appointment request
// @Description  Move a request through its lifecycle and optionally attach doctor details and notes. Doctors accepting without doctor details are assigned themselves.
// @Tags         Appointment Requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Appointment request ID"
// @Param        request body UpdateAppointmentStatusBody true "Status change"
// @Success      200 {object} util.APIResponse{data=model.AppointmentRequest} "Status updated"
// @Failure      400 {object} util.APIResponse "Invalid status"
// @Failure      404 {object} util.APIResponse "Not found"
// @Failure      409 {object} util.APIResponse "Transition not allowed or concurrent update"
// @Router       /appointment-requests/{id} [put]
func UpdateAppointmentStatus(mailer util.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParamOrRespond(c)
		if !ok {
			return
		}
		var body UpdateAppointmentStatusBody
		if !bindJSONOrRespond(c, &body, "status must be one of pending, accepted, rejected, completed, cancelled") {
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

		change := model.StatusChange{
			Status:      model.AppointmentStatus(body.Status),
			DoctorName:  body.DoctorName,
			DoctorEmail: body.DoctorEmail,
			Notes:       body.Notes,
		}
		if who.Role == model.RoleDoctor && change.Status == model.StatusAccepted && change.DoctorEmail == nil {
			change.DoctorEmail = &who.Email
			if change.DoctorName == nil {
				change.DoctorName = &who.Name
			}
		}

		result, err := model.TransitionAppointment(db, id, change)
		if err != nil {
			util.CallAppError(c, err)
			return
		}
		notifyStatusChange(mailer, result)
		util.CallSuccessOK(c, util.APISuccessParams{Msg: "Appointment request updated", Data: result.Request})
	}
}

// EditAppointmentRequest godoc
// @Summary      Edit appointment request
// @Description  The requesting patient may change their request while it is pending.
// @Tags         Appointment Requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Appointment request ID"
// @Param        request body EditAppointmentRequestBody true "Fields to change"
// @Success      200 {object} util.APIResponse{data=model.AppointmentRequest} "Appointment request updated"
// @Failure      400 {object} util.APIResponse "Invalid fields"
// @Failure      403 {object} util.APIResponse "Not the requester"
// @Failure      404 {object} util.APIResponse "Not found"
// @Failure      409 {object} util.APIResponse "No longer pending"
// @Router       /appointment-requests/{id} [patch]
func EditAppointmentRequest(c *gin.Context) {
	id, ok := idParamOrRespond(c)
	if !ok {
		return
	}
	var body EditAppointmentRequestBody
	if !bindJSONOrRespond(c, &body, "Invalid request payload") {
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

	req, err := model.EditAppointmentRequest(db, id, who.Email, model.AppointmentEdit{
		PatientName:       body.PatientName,
		PatientAge:        body.PatientAge,
		PatientGender:     body.PatientGender,
		PatientBloodGroup: body.PatientBloodGroup,
		PreferredDate:     body.PreferredDate,
		PreferredTime:     body.PreferredTime,
		Notes:             body.Notes,
	})
	if err != nil {
		util.CallAppError(c, err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Appointment request updated", Data: req})
}

// CancelAppointmentRequest godoc
// @Summary      Cancel appointment request
// @Description  Patients may cancel their own pending requests; doctors and admins pending or accepted ones.
// @Tags         Appointment Requests
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Appointment request ID"
// @Success      200 {object} util.APIResponse{data=model.AppointmentRequest} "Appointment request cancelled"
// @Failure      403 {object} util.APIResponse "Not the requester"
// @Failure      404 {object} util.APIResponse "Not found"
// @Failure      409 {object} util.APIResponse "Cannot be cancelled"
// @Router       /appointment-requests/{id}/cancel [post]
func CancelAppointmentRequest(mailer util.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParamOrRespond(c)
		if !ok {
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

		result, err := model.CancelAppointmentRequest(db, id, who.Email, who.Role)
		if err != nil {
			util.CallAppError(c, err)
			return
		}
		notifyStatusChange(mailer, result)
		util.CallSuccessOK(c, util.APISuccessParams{Msg: "Appointment request cancelled", Data: result.Request})
	}
}

// DeleteAppointmentRequest godoc
// @Summary      Delete appointment request (admin only)
// @Description  Permanently remove a request. Use cancel to keep the record.
// @Tags         Appointment Requests
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Appointment request ID"
// @Success      200 {object} util.APIResponse "Appointment request deleted"
// @Failure      404 {object} util.APIResponse "Not found"
// @Router       /appointment-requests/{id} [delete]
func DeleteAppointmentRequest(c *gin.Context) {
	id, ok := idParamOrRespond(c)
	if !ok {
		return
	}
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	if err := model.DeleteAppointmentRequest(db, id); err != nil {
		util.CallAppError(c, err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Appointment request deleted"})
}
