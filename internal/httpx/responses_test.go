package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusCreated, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"key":"value"}`, w.Body.String())
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	details := []ErrorDetail{{Field: "email", Message: "email is required"}}

	JSONError(w, nil, http.StatusBadRequest, CodeValidation, "Invalid input", details)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.False(t, response.Success)
	assert.Equal(t, CodeValidation, response.Error.Code)
	assert.Len(t, response.Error.Details, 1)
	assert.Nil(t, response.Meta)
}

func TestJSONError_WithRequestID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(ContextWithRequestID(r.Context(), "rid-9"))
	w := httptest.NewRecorder()

	NotFound(w, r, "Book not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var response ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, CodeNotFound, response.Error.Code)
	assert.Equal(t, "Book not found", response.Error.Message)
	assert.Equal(t, "rid-9", response.Meta["request_id"])
}

func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()

	NoContent(w)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, w.Body.Len())
}

func TestValidationError(t *testing.T) {
	w := httptest.NewRecorder()

	ValidationError(w, nil, []ErrorDetail{{Field: "title", Message: "title is required"}})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
