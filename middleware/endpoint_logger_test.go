package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ariebrainware/healthsync-rx/config"
	"github.com/ariebrainware/healthsync-rx/model"
	"github.com/ariebrainware/healthsync-rx/util"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureSecurityLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	l := logrus.New()
	l.SetOutput(buf)
	l.SetFormatter(&logrus.JSONFormatter{})
	t.Cleanup(util.SetSecurityLoggerForTest(l.WithField("security", true)))
	return buf
}

func TestEndpointCallLogger_BasicRequest(t *testing.T) {
	buf := captureSecurityLog(t)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestID(), EndpointCallLogger())
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test?foo=bar", nil)
	req.RemoteAddr = "192.168.1.100:1234"
	req.Header.Set("User-Agent", "TestAgent/1.0")
	req.Header.Set(RequestIDHeader, "req-42")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	out := buf.String()
	assert.Contains(t, out, `"event":"ENDPOINT_CALL"`)
	assert.Contains(t, out, "GET /test -\\u003e 200")
	assert.Contains(t, out, "192.168.1.100")
	assert.Contains(t, out, "TestAgent/1.0")
	assert.Contains(t, out, `"request_id":"req-42"`)
}

func TestEndpointCallLogger_PersistsWithUserContext(t *testing.T) {
	captureSecurityLog(t)
	gin.SetMode(gin.TestMode)
	withJWTSecret(t)
	config.ResetRedisClientForTest()

	db := newInMemoryDB(t)
	util.SetSecurityLoggerDB(db)
	t.Cleanup(func() { util.SetSecurityLoggerDB(nil) })
	user, issued := createTestUserAndSession(t, db, testSessionParams{role: model.RoleDoctor, email: "doc@example.com"})

	r := gin.New()
	r.Use(DatabaseMiddleware(db, time.Second), EndpointCallLogger())
	r.GET("/appointment-requests", ValidateLoginToken(), okHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/appointment-requests", nil)
	req.Header.Set("Authorization", "Bearer "+issued.Token)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var logs []model.SecurityLog
	require.NoError(t, db.Where("event_type = ?", string(util.EventEndpointCall)).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "doc@example.com", logs[0].Email)
	assert.Equal(t, "doctor", logs[0].Role)
	assert.Contains(t, string(logs[0].Details), `"role":"doctor"`)
	assert.Contains(t, logs[0].Message, "-> 200")
	assert.NotZero(t, user.ID)
}

func TestEndpointCallLogger_AnonymousFailure(t *testing.T) {
	buf := captureSecurityLog(t)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(EndpointCallLogger())
	r.GET("/secure", ValidateLoginToken(), okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secure", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, buf.String(), "GET /secure -\\u003e 401")
	assert.Contains(t, buf.String(), `"user_id":""`)
}
