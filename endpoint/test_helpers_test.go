package endpoint_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ariebrainware/healthsync-rx/endpoint"
	"github.com/ariebrainware/healthsync-rx/model"
	"github.com/ariebrainware/healthsync-rx/routes"
	"github.com/ariebrainware/healthsync-rx/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type apiResp struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Msg     string          `json:"msg"`
	Data    json.RawMessage `json:"data"`
}

// sentMail is one message captured by recordingMailer.
type sentMail struct {
	To, Subject, Body string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type testServer struct {
	Router *gin.Engine
	DB     *gorm.DB
	Mailer *recordingMailer
}

// newTestDB opens a private in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:endpoint_%s_%d?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, model.Migrate(db))
	return db
}

// SetupTestServer builds the full router on a fresh database. Admin self-signup is enabled
// so tests can create every role through the public API.
func SetupTestServer(t *testing.T) *testServer {
	t.Helper()
	db := newTestDB(t)
	mailer := &recordingMailer{}
	r := routes.NewRouter(routes.Deps{
		AppName:        "healthsync-test",
		DB:             db,
		DBTimeout:      5 * time.Second,
		Reports:        model.NewGormReportStore(db),
		MaxReportBytes: 1024,
		Catalog: util.NewMedicineCatalog([]util.CatalogMedicine{
			{Name: "Paracetamol 500mg"},
			{Name: "Paracetamol Syrup"},
			{Name: "Ibuprofen 400mg"},
		}),
		Mailer:     mailer,
		ClinicName: "Test Clinic",
		Auth:       endpoint.AuthOptions{AllowAdminSignup: true, SessionTTL: time.Hour},
	})
	return &testServer{Router: r, DB: db, Mailer: mailer}
}

// requestParams groups HTTP request parameters to reduce function arguments
type requestParams struct {
	method  string
	path    string
	body    interface{}
	token   string
	headers map[string]string
}

// doRequest executes an HTTP request with the given parameters and returns the response recorder
func doRequest(r http.Handler, params requestParams) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch v := params.body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	case []byte:
		reader = bytes.NewReader(v)
	default:
		b, _ := json.Marshal(v)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(params.method, params.path, reader)
	req.Header.Set("Content-Type", "application/json")
	if params.token != "" {
		req.Header.Set("Authorization", "Bearer "+params.token)
	}
	for k, v := range params.headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

// ParseAPIResp decodes a standard API response from a ResponseRecorder.
func ParseAPIResp(t *testing.T, rr *httptest.ResponseRecorder) apiResp {
	t.Helper()
	var resp apiResp
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), "body: %s", rr.Body.String())
	return resp
}

// decodeData unmarshals the data field of an API response into dst.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	resp := ParseAPIResp(t, rr)
	require.NoError(t, json.Unmarshal(resp.Data, dst), "data: %s", string(resp.Data))
}

// SignupCreds describes an account created through POST /signup.
type SignupCreds struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      model.Role
}

func (c SignupCreds) body() map[string]string {
	return map[string]string{
		"firstName": c.FirstName,
		"lastName":  c.LastName,
		"email":     c.Email,
		"password":  c.Password,
		"role":      string(c.Role),
	}
}

func signin(r http.Handler, email, password string, role model.Role) *httptest.ResponseRecorder {
	return doRequest(r, requestParams{
		method: http.MethodPost,
		path:   "/signin",
		body:   map[string]string{"email": email, "password": password, "role": string(role)},
	})
}

// CreateAndLoginUser signs up and signs in, returning the session token.
func CreateAndLoginUser(t *testing.T, r http.Handler, creds SignupCreds) string {
	t.Helper()
	rr := doRequest(r, requestParams{method: http.MethodPost, path: "/signup", body: creds.body()})
	require.Equal(t, http.StatusCreated, rr.Code, "signup %s: %s", creds.Email, rr.Body.String())

	rr = signin(r, creds.Email, creds.Password, creds.Role)
	require.Equal(t, http.StatusOK, rr.Code, "signin %s: %s", creds.Email, rr.Body.String())

	var data endpoint.AccountResponse
	decodeData(t, rr, &data)
	require.NotEmpty(t, data.Token)
	return data.Token
}

var (
	adminCreds   = SignupCreds{FirstName: "Ada", LastName: "Admin", Email: "admin@example.com", Password: "adminpass", Role: model.RoleAdmin}
	doctorCreds  = SignupCreds{FirstName: "Gregory", LastName: "House", Email: "house@example.com", Password: "doctorpass", Role: model.RoleDoctor}
	patientCreds = SignupCreds{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Password: "patientpass", Role: model.RolePatient}
)

// sessions holds a signed-in token per role.
type sessions struct {
	Admin, Doctor, Patient string
}

// SetupServerWithUsers initializes the server and signs in one user of each role.
func SetupServerWithUsers(t *testing.T) (*testServer, sessions) {
	t.Helper()
	srv := SetupTestServer(t)
	return srv, sessions{
		Admin:   CreateAndLoginUser(t, srv.Router, adminCreds),
		Doctor:  CreateAndLoginUser(t, srv.Router, doctorCreds),
		Patient: CreateAndLoginUser(t, srv.Router, patientCreds),
	}
}

func createAppointment(t *testing.T, r http.Handler, token string, body map[string]string) model.AppointmentRequest {
	t.Helper()
	rr := doRequest(r, requestParams{method: http.MethodPost, path: "/appointment-requests", body: body, token: token})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var req model.AppointmentRequest
	decodeData(t, rr, &req)
	return req
}

func janeAppointment() map[string]string {
	return map[string]string{
		"patientName":       "Jane Doe",
		"patientAge":        "30",
		"patientBloodGroup": "O+",
		"preferredDate":     "2025-01-10",
		"preferredTime":     "09:00",
	}
}
