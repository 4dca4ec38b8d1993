package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", validator.ValidationErrors{{Field: "month", Message: "bad"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"wrapped not found", fmt.Errorf("loading: %w", leave.ErrLeaveRequestNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", attendance.ErrAlreadyClockedIn, http.StatusConflict, "CONFLICT"},
		{"bad request", attendance.ErrClockOutBeforeClockIn, http.StatusBadRequest, "BAD_REQUEST"},
		{"forbidden", auth.ErrAdminPrivilegeRequired, http.StatusForbidden, "FORBIDDEN"},
		{"unauthorized", auth.ErrInvalidToken, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"no data", report.ErrNoDataFound, http.StatusNotFound, "NOT_FOUND"},
		{"insufficient quota", fmt.Errorf("reserve: %w", leave.ErrInsufficientQuota), http.StatusBadRequest, "BAD_REQUEST"},
		{"allocation below committed", leave.ErrQuotaBelowCommitted, http.StatusConflict, "CONFLICT"},
		{"unknown", errors.New("db down"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body Response
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{{Field: "year", Message: "year must be between 1970 and 9999"}})

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "year must be between 1970 and 9999", body.Error.Details["year"])
}
