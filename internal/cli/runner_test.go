package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs a fresh command tree with the given args and
// returns captured stdout, stderr, and the execution error.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestResolveOptions_Headers(t *testing.T) {
	cmd := newGetCmd()
	require.NoError(t, cmd.Flags().Set("header", "Accept: application/json"))

	opts, err := resolveOptions(cmd)
	require.NoError(t, err)
	assert.Equal(t, "application/json", opts.headers["Accept"])
}

func TestResolveOptions_MalformedHeader(t *testing.T) {
	_, _, err := executeCommand(t, "get", "http://example.invalid/", "-H", "no-colon-here")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed header")
}

func TestResolveOptions_ConfigProfile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
userAgent: profile-agent/1.0
headers:
  X-Profile: loaded
`), 0o600))

	received := make(map[string]string)
	probe := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received["User-Agent"] = r.Header.Get("User-Agent")
		received["X-Profile"] = r.Header.Get("X-Profile")
		w.Write([]byte("{}"))
	}))
	defer probe.Close()

	_, _, err := executeCommand(t, "get", probe.URL, "--config", configPath, "--no-color")
	require.NoError(t, err)

	assert.Equal(t, "profile-agent/1.0", received["User-Agent"])
	assert.Equal(t, "loaded", received["X-Profile"])
}

func TestResolveOptions_FlagOverridesProfile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("userAgent: profile-agent/1.0\n"), 0o600))

	var received string
	probe := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Header.Get("User-Agent")
		w.Write([]byte("{}"))
	}))
	defer probe.Close()

	_, _, err := executeCommand(t, "get", probe.URL, "--config", configPath, "-A", "flag-agent/2.0", "--no-color")
	require.NoError(t, err)
	assert.Equal(t, "flag-agent/2.0", received)
}

func TestResolveOptions_BadConfigPath(t *testing.T) {
	_, _, err := executeCommand(t, "get", "http://example.invalid/", "--config", "/does/not/exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRunRequest_UnsupportedOutputFormat(t *testing.T) {
	_, _, err := executeCommand(t, "get", "http://example.invalid/", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}
