package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "countries/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantDesc   string
	}{
		{"not found", dErrors.New(dErrors.CodeNotFound, "Country not found"), http.StatusNotFound, "not_found", "Country not found"},
		{"duplicate name", dErrors.New(dErrors.CodeDuplicateName, "name taken"), http.StatusBadRequest, "duplicate_name", "name taken"},
		{"quota", dErrors.New(dErrors.CodeQuotaExceeded, "try tomorrow"), http.StatusTooManyRequests, "quota_exceeded", "try tomorrow"},
		{"upstream", dErrors.New(dErrors.CodeUpstreamUnreachable, "timeout"), http.StatusBadGateway, "upstream_unreachable", "timeout"},
		{"delete", dErrors.New(dErrors.CodeMethodNotAllowed, "Deleting countries is not allowed."), http.StatusMethodNotAllowed, "method_not_allowed", "Deleting countries is not allowed."},
		{"wrapped coded error", fmt.Errorf("handler: %w", dErrors.New(dErrors.CodeBadRequest, "bad")), http.StatusBadRequest, "bad_request", "bad"},
		{"internal hides message", dErrors.New(dErrors.CodeInternal, "db failed"), http.StatusInternalServerError, "internal_error", ""},
		{"uncoded error is internal", errors.New("boom"), http.StatusInternalServerError, "internal_error", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			var body map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body["error"])
			desc, ok := body["error_description"]
			if tt.wantDesc == "" {
				assert.False(t, ok, "description should be omitted")
			} else {
				assert.Equal(t, tt.wantDesc, desc)
			}
		})
	}
}

func TestWriteJSONNilBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusNoContent, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Population int64 `json:"population"`
	}

	r := httptest.NewRequest(http.MethodPut, "/countries/peru", strings.NewReader(`{"population": 34000000}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, int64(34_000_000), v.Population)

	r = httptest.NewRequest(http.MethodPut, "/countries/peru", strings.NewReader(`{"population":`))
	err := DecodeJSON(r, &v)
	de, ok := dErrors.As(err)
	require.True(t, ok)
	assert.Equal(t, dErrors.CodeBadRequest, de.Code)
}
