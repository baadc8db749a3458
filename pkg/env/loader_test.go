package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_Load_ParsesFile(t *testing.T) {
	path := writeEnvFile(t, `# engine defaults
CONDITIONS_MAX_RETRIES=5

CONDITIONS_MONITOR_ADDR="localhost:8090"
CONDITIONS_HISTORY_PATH='history.jsonl'
invalid line without equals
`)

	l := NewLoader()
	require.NoError(t, l.Load(path))

	assert.Equal(t, "5", l.Get(VarMaxRetries))
	assert.Equal(t, "localhost:8090", l.Get(VarMonitorAddr))
	assert.Equal(t, "history.jsonl", l.Get(VarHistoryPath))
}

func TestLoader_Load_MissingFile(t *testing.T) {
	l := NewLoader()
	err := l.Load(filepath.Join(t.TempDir(), "absent.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open env file")
}

func TestLoader_Get_OSEnvTakesPrecedence(t *testing.T) {
	path := writeEnvFile(t, "CONDITIONS_MAX_RETRIES=5\n")

	l := NewLoader()
	require.NoError(t, l.Load(path))

	t.Setenv(VarMaxRetries, "9")
	assert.Equal(t, "9", l.Get(VarMaxRetries))
}

func TestLoader_GetWithDefault(t *testing.T) {
	l := NewLoader()

	assert.Equal(
		t, "fallback",
		l.GetWithDefault("CONDITIONS_UNSET_KEY", "fallback"),
	)
}

func TestLoader_Options_FromEnvironment(t *testing.T) {
	t.Setenv(VarDefaultTimeout, "5s")
	t.Setenv(VarRetryDelay, "250ms")
	t.Setenv(VarMaxRetries, "7")
	t.Setenv(VarMonitorAddr, "localhost:8090")
	t.Setenv(VarHistoryPath, "history.jsonl")

	opts := NewLoader().Options()

	assert.Equal(t, 5*time.Second, opts.DefaultTimeout)
	assert.Equal(t, 250*time.Millisecond, opts.RetryDelay)
	assert.Equal(t, 7, opts.MaxRetries)
	assert.Equal(t, "localhost:8090", opts.MonitorAddr)
	assert.Equal(t, "history.jsonl", opts.HistoryPath)
}

func TestLoader_Options_MalformedValuesFallBack(t *testing.T) {
	t.Setenv(VarDefaultTimeout, "not-a-duration")
	t.Setenv(VarMaxRetries, "-2")

	opts := NewLoader().Options()
	defaults := Defaults()

	assert.Equal(t, defaults.DefaultTimeout, opts.DefaultTimeout)
	assert.Equal(t, defaults.MaxRetries, opts.MaxRetries)
}

func TestDefaults(t *testing.T) {
	opts := Defaults()

	assert.Equal(t, 30*time.Second, opts.DefaultTimeout)
	assert.Equal(t, time.Second, opts.RetryDelay)
	assert.Equal(t, 3, opts.MaxRetries)
	assert.Empty(t, opts.MonitorAddr)
	assert.Empty(t, opts.HistoryPath)
}

func TestRedactSecret(t *testing.T) {
	assert.Equal(t, "********", RedactSecret("short-8x"))
	assert.Equal(t, "***", RedactSecret("abc"))
	assert.Equal(
		t, "sk_l****************af29",
		RedactSecret("sk_live_abcdefghijklaf29"),
	)
	assert.Empty(t, RedactSecret(""))
}

func TestIsSensitiveKey(t *testing.T) {
	assert.True(t, IsSensitiveKey("password"))
	assert.True(t, IsSensitiveKey("API_KEY"))
	assert.True(t, IsSensitiveKey("service_token"))
	assert.True(t, IsSensitiveKey("Authorization"))
	assert.False(t, IsSensitiveKey("region"))
	assert.False(t, IsSensitiveKey("user_id"))
}

func TestRedactExtras(t *testing.T) {
	extras := map[string]any{
		"region":    "eu",
		"api_token": "sk_live_abcdefghijklaf29",
		"password":  12345,
	}

	redacted := RedactExtras(extras)

	assert.Equal(t, "eu", redacted["region"])
	assert.Equal(
		t, "sk_l****************af29", redacted["api_token"],
	)
	assert.Equal(t, "<redacted>", redacted["password"])

	// The input map is left untouched.
	assert.Equal(
		t, "sk_live_abcdefghijklaf29", extras["api_token"],
	)

	assert.Nil(t, RedactExtras(nil))
}
