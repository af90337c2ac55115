package util

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ariebrainware/healthsync-rx/model"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SecurityEventType represents different types of security events
type SecurityEventType string

const (
	EventLoginSuccess       SecurityEventType = "LOGIN_SUCCESS"
	EventLoginFailure       SecurityEventType = "LOGIN_FAILURE"
	EventSignupSuccess      SecurityEventType = "SIGNUP_SUCCESS"
	EventLogout             SecurityEventType = "LOGOUT"
	EventAccountLocked      SecurityEventType = "ACCOUNT_LOCKED"
	EventPasswordChanged    SecurityEventType = "PASSWORD_CHANGED"
	EventRoleChanged        SecurityEventType = "ROLE_CHANGED"
	EventUserDeleted        SecurityEventType = "USER_DELETED"
	EventUnauthorizedAccess SecurityEventType = "UNAUTHORIZED_ACCESS"
	EventForbiddenAccess    SecurityEventType = "FORBIDDEN_ACCESS"
	EventRateLimitExceeded  SecurityEventType = "RATE_LIMIT_EXCEEDED"
	EventSuspiciousActivity SecurityEventType = "SUSPICIOUS_ACTIVITY"
	EventEndpointCall       SecurityEventType = "ENDPOINT_CALL"
)

// SecurityEvent represents a security event to be logged
type SecurityEvent struct {
	EventType SecurityEventType
	UserID    string
	Email     string
	Role      string
	IP        string
	UserAgent string
	RequestID string
	Message   string
	Details   map[string]interface{}
}

var securityLogger = Log.WithField("security", true)
var securityDB *gorm.DB

// SetSecurityLoggerDB sets a gorm DB instance used by the security logger.
// Call this during application startup (e.g. in main) after DB initialization.
func SetSecurityLoggerDB(db *gorm.DB) {
	securityDB = db
}

// sanitizeLogValue removes newlines and other characters that could break log parsing
func sanitizeLogValue(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

// LogSecurityEvent logs a security event and persists it when a database is configured.
func LogSecurityEvent(event SecurityEvent) {
	fields := logrus.Fields{
		"event":      sanitizeLogValue(string(event.EventType)),
		"user_id":    sanitizeLogValue(event.UserID),
		"email":      sanitizeLogValue(event.Email),
		"role":       sanitizeLogValue(event.Role),
		"ip":         sanitizeLogValue(event.IP),
		"user_agent": sanitizeLogValue(event.UserAgent),
	}
	if event.RequestID != "" {
		fields["request_id"] = event.RequestID
	}
	if len(event.Details) > 0 {
		fields["details_count"] = len(event.Details)
	}
	securityLogger.WithFields(fields).Info(sanitizeLogValue(event.Message))

	if securityDB == nil {
		return
	}

	var details datatypes.JSON
	if event.Details != nil {
		if b, err := json.Marshal(event.Details); err == nil {
			details = datatypes.JSON(b)
		}
	}

	entry := model.SecurityLog{
		EventType: string(event.EventType),
		UserID:    event.UserID,
		Email:     sanitizeLogValue(event.Email),
		Role:      sanitizeLogValue(event.Role),
		IP:        sanitizeLogValue(event.IP),
		Location:  sanitizeLogValue(formatLocation(GetIPLocation(event.IP))),
		UserAgent: sanitizeLogValue(event.UserAgent),
		RequestID: event.RequestID,
		Message:   sanitizeLogValue(event.Message),
		Details:   details,
	}
	if err := securityDB.Create(&entry).Error; err != nil {
		securityLogger.WithError(err).Warn("failed to persist security event")
	}
}

func formatLocation(city, country string) string {
	switch {
	case city != "" && country != "":
		return fmt.Sprintf("%s/%s", city, country)
	case country != "":
		return country
	default:
		return city
	}
}

// LogLoginSuccess logs a successful login event
func LogLoginSuccess(userID uint, email, role, ip, userAgent string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventLoginSuccess,
		UserID:    fmt.Sprintf("%d", userID),
		Email:     email,
		Role:      role,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "User logged in successfully",
	})
}

// LogLoginFailure logs a failed login attempt
func LogLoginFailure(email, role, ip, userAgent, reason string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventLoginFailure,
		Email:     email,
		Role:      role,
		IP:        ip,
		UserAgent: userAgent,
		Message:   fmt.Sprintf("Login failed: %s", reason),
	})
}

// LogLogout logs a logout event
func LogLogout(userID uint, email, ip, userAgent string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventLogout,
		UserID:    fmt.Sprintf("%d", userID),
		Email:     email,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "User logged out",
	})
}

// LogAccountLocked logs when an account is locked
func LogAccountLocked(userID uint, email, ip string, reason string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventAccountLocked,
		UserID:    fmt.Sprintf("%d", userID),
		Email:     email,
		IP:        ip,
		Message:   fmt.Sprintf("Account locked: %s", reason),
	})
}

// LogUnauthorizedAccess logs unauthorized access attempts
func LogUnauthorizedAccess(userID string, email, ip, resource, reason string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventUnauthorizedAccess,
		UserID:    userID,
		Email:     email,
		IP:        ip,
		Message:   fmt.Sprintf("Unauthorized access to %s: %s", resource, reason),
	})
}

// LogRateLimitExceeded logs when rate limit is exceeded
func LogRateLimitExceeded(email, ip, endpoint string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventRateLimitExceeded,
		Email:     email,
		IP:        ip,
		Message:   fmt.Sprintf("Rate limit exceeded for endpoint: %s", endpoint),
	})
}

// SetSecurityLoggerForTest swaps the entry security events are written to and returns a restore func.
func SetSecurityLoggerForTest(entry *logrus.Entry) func() {
	original := securityLogger
	securityLogger = entry
	return func() { securityLogger = original }
}
