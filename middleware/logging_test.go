package middleware

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colih/gestao-medicos/models"
)

func TestFilterSensitiveData(t *testing.T) {
	body := `{"username":"ana","password":"123","email_password":"smtp","mfa_code":"000111"}`
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(filterSensitiveData(body)), &got))

	assert.Equal(t, "ana", got["username"])
	assert.Equal(t, "[FILTERED]", got["password"])
	assert.Equal(t, "[FILTERED]", got["email_password"])
	assert.Equal(t, "[FILTERED]", got["mfa_code"])
}

func TestFilterSensitiveData_Truncates(t *testing.T) {
	long := strings.Repeat("a", 1500)
	got := filterSensitiveData(long)
	assert.Len(t, got, maxLoggedBody+len("...[truncated]"))
	assert.Equal(t, "", filterSensitiveData(""))
}

func TestDetermineLogLevel(t *testing.T) {
	tests := map[int]string{
		200: models.LogLevelSuccess,
		201: models.LogLevelSuccess,
		302: models.LogLevelInfo,
		404: models.LogLevelWarning,
		409: models.LogLevelWarning,
		500: models.LogLevelError,
		502: models.LogLevelError,
		0:   models.LogLevelInfo,
	}
	for status, want := range tests {
		assert.Equal(t, want, determineLogLevel(status), "status %d", status)
	}
}
