package endpoint

import (
	"fmt"
	"strconv"

	"github.com/ariebrainware/healthsync-rx/middleware"
	"github.com/ariebrainware/healthsync-rx/model"
	"github.com/ariebrainware/healthsync-rx/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type clientInfo struct {
	IP    string
	Agent string
}

func clientInfoOf(c *gin.Context) clientInfo {
	return clientInfo{IP: c.ClientIP(), Agent: c.Request.UserAgent()}
}

// caller is the verified identity placed in the context by ValidateLoginToken.
type caller struct {
	UserID uint
	Email  string
	Role   model.Role
	Name   string
}

func bindJSONOrRespond(c *gin.Context, dst interface{}, msg string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: msg, Err: err})
		return false
	}
	return true
}

func getDBOrRespond(c *gin.Context) (*gorm.DB, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database connection not available", Err: fmt.Errorf("db is nil")})
		return nil, false
	}
	return db, true
}

func callerOrRespond(c *gin.Context) (caller, bool) {
	id, ok := middleware.GetUserID(c)
	role, roleOK := middleware.GetRole(c)
	if !ok || !roleOK {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "User not authenticated", Err: fmt.Errorf("identity not found in context")})
		return caller{}, false
	}
	email, _ := middleware.GetEmail(c)
	name, _ := middleware.GetName(c)
	return caller{UserID: id, Email: email, Role: role, Name: name}, true
}

// parseIDParam parses the "id" path parameter into a uint and returns an error if invalid.
func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("id must be a valid integer")
	}
	if id == 0 {
		return 0, fmt.Errorf("id must be a positive integer")
	}
	return uint(id), nil
}

func idParamOrRespond(c *gin.Context) (uint, bool) {
	id, err := parseIDParam(c)
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: err.Error(), Err: err})
		return 0, false
	}
	return id, true
}

// parsePositiveInt parses a positive integer from a query value returning a default
// when the value is missing or invalid. If max > 0 it caps the returned value.
func parsePositiveInt(q string, defaultVal, max int) int {
	if q == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(q)
	if err != nil || v <= 0 {
		return defaultVal
	}
	if max > 0 && v > max {
		return max
	}
	return v
}

// parseUintQuery parses an unsigned integer query parameter and returns 0 on error.
func parseUintQuery(c *gin.Context, name string) uint {
	s := c.Query(name)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil || v == 0 {
		return 0
	}
	return uint(v)
}
