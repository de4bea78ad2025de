package testutils

import (
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alchemorsel/matchmaker/pkg/errors"
)

// Envelope mirrors the API response envelope with a raw data payload
type Envelope struct {
	Success bool                 `json:"success"`
	Data    json.RawMessage      `json:"data,omitempty"`
	Error   *errors.ErrorDetails `json:"error,omitempty"`
	Message string               `json:"message,omitempty"`
}

// HTTPAssertions provides HTTP-specific assertion methods
type HTTPAssertions struct {
	t *testing.T
}

// NewHTTPAssertions creates a new HTTP assertions helper
func NewHTTPAssertions(t *testing.T) *HTTPAssertions {
	return &HTTPAssertions{t: t}
}

// StatusCode asserts the HTTP status code
func (ha *HTTPAssertions) StatusCode(rec *httptest.ResponseRecorder, expectedCode int, msgAndArgs ...interface{}) {
	require.NotNil(ha.t, rec, "Response should not be nil")
	assert.Equal(ha.t, expectedCode, rec.Code, msgAndArgs...)
}

// Envelope asserts a JSON response and decodes its envelope
func (ha *HTTPAssertions) Envelope(rec *httptest.ResponseRecorder) Envelope {
	require.NotNil(ha.t, rec, "Response should not be nil")

	contentType := rec.Header().Get("Content-Type")
	assert.True(ha.t, strings.Contains(contentType, "application/json"),
		"Response should have JSON content type, got: %s", contentType)

	var env Envelope
	require.NoError(ha.t, json.Unmarshal(rec.Body.Bytes(), &env), "Response should be valid JSON")
	return env
}

// Data asserts a successful envelope and decodes its data into target
func (ha *HTTPAssertions) Data(rec *httptest.ResponseRecorder, target interface{}) {
	env := ha.Envelope(rec)
	require.True(ha.t, env.Success, "Response should be successful: %s", rec.Body.String())
	require.NoError(ha.t, json.Unmarshal(env.Data, target), "Data should decode")
}

// ErrorCode asserts a failed envelope carrying code
func (ha *HTTPAssertions) ErrorCode(rec *httptest.ResponseRecorder, code errors.ErrorCode, msgAndArgs ...interface{}) {
	env := ha.Envelope(rec)
	assert.False(ha.t, env.Success, "Response should not be successful")
	require.NotNil(ha.t, env.Error, "Response should contain error field")
	assert.Equal(ha.t, code, env.Error.Code, msgAndArgs...)
}

// SecurityHeaders asserts that security headers are present
func (ha *HTTPAssertions) SecurityHeaders(rec *httptest.ResponseRecorder) {
	require.NotNil(ha.t, rec, "Response should not be nil")

	for _, header := range []string{"X-Content-Type-Options", "X-Frame-Options", "Content-Security-Policy"} {
		assert.NotEmpty(ha.t, rec.Header().Get(header), "Security header %s should be present", header)
	}
}
