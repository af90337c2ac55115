package util

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ariebrainware/healthsync-rx/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("b", []string{"a", "b"}))
	assert.False(t, Contains("c", []string{"a", "b"}))
	assert.False(t, Contains("a", nil))
}

func TestCallSuccessHelpers(t *testing.T) {
	c, w := newTestContext()
	CallSuccessOK(c, APISuccessParams{Msg: "ok", Data: map[string]int{"n": 1}})
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "ok", resp.Msg)

	c, w = newTestContext()
	CallSuccessCreated(c, APISuccessParams{Msg: "created"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCallErrorHelpers(t *testing.T) {
	cases := []struct {
		call func(*gin.Context, APIErrorParams)
		code int
	}{
		{CallUserError, http.StatusBadRequest},
		{CallUserNotAuthorized, http.StatusUnauthorized},
		{CallForbidden, http.StatusForbidden},
		{CallErrorNotFound, http.StatusNotFound},
		{CallConflict, http.StatusConflict},
		{CallTooManyRequests, http.StatusTooManyRequests},
		{CallServerError, http.StatusInternalServerError},
		{CallServiceUnavailable, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		c, w := newTestContext()
		tc.call(c, APIErrorParams{Msg: "boom", Err: errors.New("detail")})
		assert.Equal(t, tc.code, w.Code)
		resp := decodeResponse(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, "detail", resp.Error)
	}
}

func TestCallAppError_Mapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{model.NewValidationError("bad"), http.StatusBadRequest},
		{model.NewAuthError("who"), http.StatusUnauthorized},
		{model.NewForbiddenError("no"), http.StatusForbidden},
		{model.NewNotFoundError("gone"), http.StatusNotFound},
		{model.NewConflictError("dup"), http.StatusConflict},
		{model.NewStorageError("db down", errors.New("dial tcp: refused")), http.StatusInternalServerError},
		{errors.New("raw"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		c, w := newTestContext()
		CallAppError(c, tc.err)
		assert.Equal(t, tc.code, w.Code, tc.err.Error())
	}
}

func TestCallAppError_RetryableStorageDoesNotLeakCause(t *testing.T) {
	c, w := newTestContext()
	err := model.NewStorageError("failed to load", errors.New("secret connection string"))
	err.Retryable = true

	CallAppError(c, err)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.NotContains(t, w.Body.String(), "secret connection string")
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "Jane Doe", NormalizeName("  Jane    Doe "))
	assert.Equal(t, "", NormalizeName("   "))
}
