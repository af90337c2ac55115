package endpoint_test

import (
	"net/http"
	"testing"

	"github.com/ariebrainware/healthsync-rx/model"
	"github.com/ariebrainware/healthsync-rx/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoint(t *testing.T) {
	srv := SetupTestServer(t)
	rr := doRequest(srv.Router, requestParams{method: http.MethodGet, path: "/"})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "healthsync-test")
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestSearchMedicines(t *testing.T) {
	srv, s := SetupServerWithUsers(t)

	rr := doRequest(srv.Router, requestParams{method: http.MethodGet, path: "/medicines?search=PARA", token: s.Doctor})
	require.Equal(t, http.StatusOK, rr.Code)
	var found []util.CatalogMedicine
	decodeData(t, rr, &found)
	assert.Len(t, found, 2)

	rr = doRequest(srv.Router, requestParams{method: http.MethodGet, path: "/medicines", token: s.Doctor})
	require.Equal(t, http.StatusOK, rr.Code)
	decodeData(t, rr, &found)
	assert.Empty(t, found)
}

func TestAnalyticsCounters(t *testing.T) {
	srv, s := SetupServerWithUsers(t)
	appt := createAppointment(t, srv.Router, s.Patient, janeAppointment())
	createAppointment(t, srv.Router, s.Patient, janeAppointment())
	require.Equal(t, http.StatusOK, putStatus(srv, s.Doctor, appt.ID, map[string]interface{}{"status": "accepted"}))
	submitPrescription(t, srv, s.Doctor, map[string]interface{}{"patientName": "Jane Doe", "age": "30", "bloodGroup": "O+"})

	rr := doRequest(srv.Router, requestParams{method: http.MethodGet, path: "/analytics", token: s.Admin})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var stats model.DashboardStats
	decodeData(t, rr, &stats)
	assert.Equal(t, int64(1), stats.PatientsCount)
	assert.Equal(t, int64(1), stats.PendingRequests)
	assert.Equal(t, int64(1), stats.PrescriptionsThisMonth)

	rr = doRequest(srv.Router, requestParams{method: http.MethodGet, path: "/analytics", token: s.Patient})
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestSearchPatients(t *testing.T) {
	srv, s := SetupServerWithUsers(t)
	submitPrescription(t, srv, s.Doctor, map[string]interface{}{"patientName": "Jane Doe", "age": "30"})
	submitPrescription(t, srv, s.Doctor, map[string]interface{}{"patientName": "John Roe"})

	rr := doRequest(srv.Router, requestParams{method: http.MethodGet, path: "/patients?search=case0002", token: s.Doctor})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var cases []model.PatientCase
	decodeData(t, rr, &cases)
	require.Len(t, cases, 1)
	assert.Equal(t, "John Roe", cases[0].PatientName)

	rr = doRequest(srv.Router, requestParams{method: http.MethodGet, path: "/patients", token: s.Doctor})
	decodeData(t, rr, &cases)
	assert.Len(t, cases, 2)
}

func TestListSecurityLogs(t *testing.T) {
	srv, s := SetupServerWithUsers(t)
	require.NoError(t, srv.DB.Create(&model.SecurityLog{EventType: string(util.EventLoginFailure), Email: "jane@example.com", Message: "bad password"}).Error)
	require.NoError(t, srv.DB.Create(&model.SecurityLog{EventType: string(util.EventLoginSuccess), Email: "house@example.com"}).Error)

	rr := doRequest(srv.Router, requestParams{method: http.MethodGet, path: "/security-logs?event=" + string(util.EventLoginFailure), token: s.Admin})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var logs []model.SecurityLog
	decodeData(t, rr, &logs)
	require.Len(t, logs, 1)
	assert.Equal(t, "jane@example.com", logs[0].Email)

	rr = doRequest(srv.Router, requestParams{method: http.MethodGet, path: "/security-logs?since=yesterday", token: s.Admin})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(srv.Router, requestParams{method: http.MethodGet, path: "/security-logs", token: s.Doctor})
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
