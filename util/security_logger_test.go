package util

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ariebrainware/healthsync-rx/model"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestLogger captures security log output and restores the original logger on cleanup.
func setupTestLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	l := logrus.New()
	l.SetOutput(buf)
	l.SetFormatter(&logrus.JSONFormatter{})
	t.Cleanup(SetSecurityLoggerForTest(l.WithField("security", true)))
	return buf
}

func setupSecurityDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_security_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.SecurityLog{}))
	SetSecurityLoggerDB(db)
	t.Cleanup(func() { SetSecurityLoggerDB(nil) })
	return db
}

func TestSanitizeLogValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "removes newlines", input: "hello\nworld", expected: "hello world"},
		{name: "removes carriage returns", input: "hello\rworld", expected: "hello world"},
		{name: "removes tabs", input: "hello\tworld", expected: "hello world"},
		{name: "truncates long values", input: strings.Repeat("a", 250), expected: strings.Repeat("a", 200) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeLogValue(tt.input))
		})
	}
}

func TestLogSecurityEvent_WritesStructuredEntry(t *testing.T) {
	buf := setupTestLogger(t)

	LogLoginFailure("mallory@x.com", "admin", "10.0.0.1", "curl", "bad\npassword")

	out := buf.String()
	assert.Contains(t, out, `"event":"LOGIN_FAILURE"`)
	assert.Contains(t, out, `"email":"mallory@x.com"`)
	assert.Contains(t, out, `"security":true`)
	assert.Contains(t, out, "Login failed: bad password")
}

func TestLogSecurityEvent_Persists(t *testing.T) {
	setupTestLogger(t)
	db := setupSecurityDB(t)

	LogSecurityEvent(SecurityEvent{
		EventType: EventRoleChanged,
		UserID:    "9",
		Email:     "doc@x.com",
		Role:      "doctor",
		IP:        "127.0.0.1",
		RequestID: "req-1",
		Message:   "role changed",
		Details:   map[string]interface{}{"from": "patient", "to": "doctor"},
	})

	var entry model.SecurityLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, "ROLE_CHANGED", entry.EventType)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.Equal(t, "", entry.Location)
	assert.JSONEq(t, `{"from":"patient","to":"doctor"}`, string(entry.Details))
}

func TestLogHelpers(t *testing.T) {
	buf := setupTestLogger(t)

	LogLoginSuccess(1, "a@x.com", "patient", "1.2.3.4", "ua")
	LogLogout(1, "a@x.com", "1.2.3.4", "ua")
	LogAccountLocked(1, "a@x.com", "1.2.3.4", "too many failed login attempts")
	LogUnauthorizedAccess("1", "a@x.com", "1.2.3.4", "/users", "forbidden role")
	LogRateLimitExceeded("a@x.com", "1.2.3.4", "/signin")

	for _, want := range []string{"LOGIN_SUCCESS", "LOGOUT", "ACCOUNT_LOCKED", "UNAUTHORIZED_ACCESS", "RATE_LIMIT_EXCEEDED"} {
		assert.Contains(t, buf.String(), want)
	}
}

func TestFormatLocation(t *testing.T) {
	assert.Equal(t, "Jakarta/Indonesia", formatLocation("Jakarta", "Indonesia"))
	assert.Equal(t, "Indonesia", formatLocation("", "Indonesia"))
	assert.Equal(t, "Jakarta", formatLocation("Jakarta", ""))
	assert.Equal(t, "", formatLocation("", ""))
}
