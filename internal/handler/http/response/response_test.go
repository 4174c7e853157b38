package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/attendancepro/attendance-backend-go/internal/domain/attendance"
	"github.com/attendancepro/attendance-backend-go/internal/domain/company"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()

	Success(rec, map[string]string{"id": "evt-1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "evt-1", body["data"].(map[string]interface{})["id"])
	assert.NotContains(t, body, "meta")
	assert.NotContains(t, body, "error")
}

func TestCreated_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()

	Created(rec, "Checked in", map[string]string{"id": "evt-1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Checked in", body["message"])
}

func TestHandleError_DomainMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		statusCode int
		errorCode  string
	}{
		{"already checked in", attendance.ErrAlreadyCheckedIn, http.StatusConflict, "CONFLICT"},
		{"outside radius", attendance.ErrOutsideAllowedRadius, http.StatusForbidden, "FORBIDDEN"},
		{"company not found", company.ErrCompanyNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			HandleError(rec, tt.err)

			assert.Equal(t, tt.statusCode, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.errorCode, body["error"].(map[string]interface{})["code"])
		})
	}
}

func TestHandleError_ValidationErrors(t *testing.T) {
	rec := httptest.NewRecorder()

	HandleError(rec, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeBody(t, rec)
	details := body["error"].(map[string]interface{})["details"].(map[string]interface{})
	assert.Equal(t, "date must be in YYYY-MM-DD format", details["date"])
}
