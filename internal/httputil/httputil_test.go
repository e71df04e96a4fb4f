package httputil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHelpers(t *testing.T) {
	testCases := []struct {
		name     string
		write    func(w http.ResponseWriter)
		status   int
		expected string
	}{
		{name: "bad request", write: func(w http.ResponseWriter) { BadRequest(w, "Invalid team id", nil) }, status: http.StatusBadRequest, expected: "Invalid team id"},
		{name: "not found", write: func(w http.ResponseWriter) { NotFound(w, "Team not found", errors.New("no rows")) }, status: http.StatusNotFound, expected: "Team not found"},
		{name: "conflict", write: func(w http.ResponseWriter) { Conflict(w, "Phase 2 has started", nil) }, status: http.StatusConflict, expected: "Phase 2 has started"},
		{name: "internal", write: func(w http.ResponseWriter) { InternalServerError(w, "db down", errors.New("boom")) }, status: http.StatusInternalServerError, expected: "Internal Server Error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.write(rec)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.expected, strings.TrimSpace(rec.Body.String()))
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]int{"id": 3})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":3}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var body struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Alpha"}`))
	require.NoError(t, DecodeJSON(req, &body))
	assert.Equal(t, "Alpha", body.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nom":"Alpha"}`))
	assert.Error(t, DecodeJSON(req, &body))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.Error(t, DecodeJSON(req, &body))
}
