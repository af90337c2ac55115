package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariebrainware/healthsync-rx/model"
	"github.com/ariebrainware/healthsync-rx/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	UserIDKey  = "user_id"
	EmailKey   = "email"
	RoleKey    = "role"
	NameKey    = "name"
	TokenIDKey = "token_id"

	// SessionCookie is the cookie Signin sets alongside the token in the body.
	SessionCookie = "token"
)

var errUnauthorized = errors.New("unauthorized")

// bearerToken reads the session token from the Authorization header, falling back to the
// session cookie.
func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

func rejectUnauthorized(c *gin.Context, userID, email, reason string) {
	util.LogUnauthorizedAccess(userID, email, c.ClientIP(), c.Request.URL.Path, reason)
	util.CallUserNotAuthorized(c, util.APIErrorParams{
		Msg: "Unauthorized",
		Err: errUnauthorized,
	})
	c.Abort()
}

// ValidateLoginToken authenticates the request from its session token. The token signature
// and expiry are checked first, then the session is confirmed live in Redis or, on a cache
// miss, in the sessions table. Logged-out or invalidated sessions are rejected.
func ValidateLoginToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "OPTIONS" {
			c.Next()
			return
		}

		token := bearerToken(c)
		if token == "" {
			rejectUnauthorized(c, "", "", "missing session token")
			return
		}

		claims, err := util.ParseSessionToken(token)
		if err != nil {
			rejectUnauthorized(c, "", "", "invalid session token")
			return
		}
		uid := fmt.Sprintf("%d", claims.UserID)

		live, err := sessionIsLive(c, claims)
		if err != nil {
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Failed to validate session",
				Err: err,
			})
			c.Abort()
			return
		}
		if !live {
			rejectUnauthorized(c, uid, claims.Email, "session expired or revoked")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Set(RoleKey, model.Role(claims.Role))
		c.Set(NameKey, claims.Name)
		c.Set(TokenIDKey, claims.ID)
		c.Next()
	}
}

func sessionIsLive(c *gin.Context, claims *util.SessionClaims) (bool, error) {
	value, found, err := util.LookupCachedSession(c.Request.Context(), claims.ID)
	if err != nil {
		util.Log.WithError(err).Warn("redis session lookup failed, falling back to database")
	}
	if found {
		return value == util.SessionValue(claims.UserID, claims.Role), nil
	}

	db := GetDB(c)
	if db == nil {
		return false, errors.New("database connection not available")
	}
	session, err := model.FindLiveSession(db, claims.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return session.UserID == claims.UserID && string(session.Role) == claims.Role, nil
}

// RequireRole admits only callers whose role is in roles. It must run after ValidateLoginToken.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if ok {
			for _, allowed := range roles {
				if role == allowed {
					c.Next()
					return
				}
			}
		}

		userID, _ := GetUserID(c)
		email, _ := GetEmail(c)
		util.LogSecurityEvent(util.SecurityEvent{
			EventType: util.EventForbiddenAccess,
			UserID:    fmt.Sprintf("%d", userID),
			Email:     email,
			Role:      string(role),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			RequestID: c.GetString(util.RequestIDKey),
			Message:   fmt.Sprintf("Role %q denied on %s", role, c.Request.URL.Path),
		})
		util.CallForbidden(c, util.APIErrorParams{
			Msg: "You do not have permission to perform this action",
			Err: errors.New("forbidden"),
		})
		c.Abort()
	}
}

// GetUserID returns the authenticated user id.
func GetUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// GetRole returns the authenticated role.
func GetRole(c *gin.Context) (model.Role, bool) {
	v, ok := c.Get(RoleKey)
	if !ok {
		return "", false
	}
	role, ok := v.(model.Role)
	return role, ok
}

func GetEmail(c *gin.Context) (string, bool) {
	v, ok := c.Get(EmailKey)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}

func GetName(c *gin.Context) (string, bool) {
	v, ok := c.Get(NameKey)
	if !ok {
		return "", false
	}
	name, ok := v.(string)
	return name, ok
}

func GetTokenID(c *gin.Context) (string, bool) {
	v, ok := c.Get(TokenIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
