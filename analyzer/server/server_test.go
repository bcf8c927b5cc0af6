package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestValidate(t *testing.T) {
	h := New().Handler()

	tests := []struct {
		name     string
		body     string
		valid    bool
		reported bool
		kind     string
		severity string
		data     []string
	}{
		{
			name:  "valid",
			body:  `{"template": "{0} and {1}", "operation": "Format", "arguments": [{"label": "a"}, {"label": "b"}]}`,
			valid: true,
		},
		{
			name:     "null template",
			body:     `{"template": null, "operation": "Format"}`,
			reported: true,
			kind:     "null_template",
			severity: "bug",
		},
		{
			name:     "index too high",
			body:     `{"template": "{2}", "operation": "Format", "arguments": [{"label": "a"}]}`,
			reported: true,
			kind:     "item_index_too_high",
			severity: "bug",
		},
		{
			name:     "unused argument",
			body:     `{"template": "{0}", "operation": "Format", "arguments": [{"label": "a"}, {"label": "b"}]}`,
			reported: true,
			kind:     "unused_argument",
			severity: "code_smell",
			data:     []string{"b"},
		},
		{
			name:     "trivial template not reported for print",
			body:     `{"template": "hello", "operation": "Println"}`,
			kind:     "trivial_template",
			severity: "code_smell",
		},
		{
			name:  "array of unknown size abstains",
			body:  `{"template": "{0}{7}", "operation": "Format", "arguments": [{"label": "xs", "isArray": true}]}`,
			valid: true,
		},
		{
			name:     "array of known size",
			body:     `{"template": "{0}{1}", "operation": "Format", "arguments": [{"label": "xs", "isArray": true, "arraySize": 1}]}`,
			reported: true,
			kind:     "item_index_too_high",
			severity: "bug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var resp struct {
				Valid    bool `json:"valid"`
				Reported bool `json:"reported"`
				Failure  *struct {
					Kind     string   `json:"kind"`
					Message  string   `json:"message"`
					Severity string   `json:"severity"`
					Data     []string `json:"data"`
				} `json:"failure"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

			assert.Equal(t, tt.valid, resp.Valid)
			assert.Equal(t, tt.reported, resp.Reported)
			if tt.valid {
				assert.Nil(t, resp.Failure)
				return
			}
			require.NotNil(t, resp.Failure)
			assert.Equal(t, tt.kind, resp.Failure.Kind)
			assert.Equal(t, tt.severity, resp.Failure.Severity)
			assert.Equal(t, tt.data, resp.Failure.Data)
			assert.NotEmpty(t, resp.Failure.Message)
		})
	}
}

func TestValidateRejectsBadInput(t *testing.T) {
	h := New().Handler()

	for _, body := range []string{
		`{"template": `,
		`{"template": "{0}", "arguments": [{"label": "xs", "isArray": true, "arraySize": -2}]}`,
	} {
		rec := post(t, h, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), `"error"`)
	}
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	New().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "online", rec.Body.String())
}

func TestKinds(t *testing.T) {
	rec := httptest.NewRecorder()
	New().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/kinds", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var kinds []map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &kinds))
	require.Len(t, kinds, 11)
	assert.Equal(t, map[string]string{"kind": "null_template", "severity": "bug"}, kinds[0])
}

func TestMetrics(t *testing.T) {
	srv := httptest.NewServer(New().Handler())
	defer srv.Close()

	for _, body := range []string{
		`{"template": "{0}", "arguments": [{"label": "a"}]}`,
		`{"template": "{1}", "arguments": [{"label": "a"}]}`,
		`{"template": "{1}"}`,
	} {
		resp, err := http.Post(srv.URL+"/v1/validate", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
	}

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(raw)

	assert.Contains(t, text, `formatlint_validations_total{kind="valid"} 1`)
	assert.Contains(t, text, `formatlint_validations_total{kind="item_index_too_high"} 2`)
	assert.Contains(t, text, `formatlint_template_length_bytes_count 3`)
}
