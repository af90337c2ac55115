package util

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ariebrainware/healthsync-rx/model"
	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Msg     string      `json:"msg"`
	Data    interface{} `json:"data"`
}

type APIErrorParams struct {
	Msg string
	Err error
}

type APISuccessParams struct {
	Msg  string
	Data interface{}
}

// Contains function is to check item whether is exist or not in a list and will return bool
func Contains(d string, dl []string) bool {
	for _, v := range dl {
		if v == d {
			return true
		}
	}
	return false
}

func callError(c *gin.Context, status int, params APIErrorParams) {
	errText := ""
	if params.Err != nil {
		errText = params.Err.Error()
	}
	c.JSON(status, APIResponse{
		Success: false,
		Error:   errText,
		Msg:     params.Msg,
		Data:    map[string]interface{}{},
	})
}

// CallErrorNotFound is for return API response not found
func CallErrorNotFound(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusNotFound, params)
}

// CallUserError is for return error from user side
func CallUserError(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusBadRequest, params)
}

// CallServerError is for return API response server error
func CallServerError(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusInternalServerError, params)
}

// CallUserNotAuthorized is for return API response with status code 401
func CallUserNotAuthorized(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusUnauthorized, params)
}

// CallForbidden is for return API response with status code 403
func CallForbidden(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusForbidden, params)
}

// CallConflict is for return API response with status code 409
func CallConflict(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusConflict, params)
}

// CallTooManyRequests is for return API response with status code 429
func CallTooManyRequests(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusTooManyRequests, params)
}

// CallServiceUnavailable tells the caller to retry after a second.
func CallServiceUnavailable(c *gin.Context, params APIErrorParams) {
	c.Header("Retry-After", "1")
	callError(c, http.StatusServiceUnavailable, params)
}

// CallSuccessOK is for return API response with status code 200, you need to specify msg, and data as function parameter
func CallSuccessOK(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Msg:     params.Msg,
		Data:    params.Data,
	})
}

// CallSuccessCreated is for return API response with status code 201
func CallSuccessCreated(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Msg:     params.Msg,
		Data:    params.Data,
	})
}

// CallAppError maps a domain error onto the response envelope. Storage causes are logged
// and reported, never echoed to the caller.
func CallAppError(c *gin.Context, err error) {
	appErr := model.AsAppError(err)
	if appErr == nil {
		CallServerError(c, APIErrorParams{Msg: "Unexpected error", Err: errors.New("unknown error")})
		return
	}

	public := APIErrorParams{Msg: appErr.Message, Err: errors.New(string(appErr.Type))}
	switch appErr.Type {
	case model.ErrorTypeValidation:
		CallUserError(c, public)
	case model.ErrorTypeAuth:
		CallUserNotAuthorized(c, public)
	case model.ErrorTypeForbidden:
		CallForbidden(c, public)
	case model.ErrorTypeNotFound:
		CallErrorNotFound(c, public)
	case model.ErrorTypeConflict:
		CallConflict(c, public)
	default:
		entry := Log.WithField("path", c.FullPath()).WithField("request_id", c.GetString(RequestIDKey))
		if appErr.Cause != nil {
			entry = entry.WithError(appErr.Cause)
		}
		entry.Error(appErr.Message)
		CaptureError(appErr, map[string]string{"path": c.FullPath()})

		public.Err = errors.New("storage unavailable")
		if appErr.Retryable {
			CallServiceUnavailable(c, public)
			return
		}
		CallServerError(c, public)
	}
}

// NormalizeName normalizes a name by trimming leading/trailing whitespace
// and collapsing multiple internal spaces into single spaces.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
