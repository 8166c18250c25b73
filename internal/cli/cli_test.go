package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the CLI in-process against temporary directories and
// returns combined output.
func runCommand(t *testing.T, configDir, dataDir string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config-dir", configDir, "--data-dir", dataDir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestInitCreatesConfigAndStore(t *testing.T) {
	configDir := t.TempDir()
	dataDir := t.TempDir()

	out, err := runCommand(t, configDir, dataDir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized attune store.")
	assert.FileExists(t, filepath.Join(configDir, "config.yaml"))
	assert.FileExists(t, filepath.Join(dataDir, "attune.db"))
}

func TestSetGetLifecycle(t *testing.T) {
	configDir := t.TempDir()
	dataDir := t.TempDir()

	_, err := runCommand(t, configDir, dataDir, "set", "web", `{"port":8080,"host":"example.com"}`)
	require.NoError(t, err)

	out, err := runCommand(t, configDir, dataDir, "get", "web")
	require.NoError(t, err)
	assert.Equal(t, `{"port":8080,"host":"example.com"}`, strings.TrimSpace(out))

	out, err = runCommand(t, configDir, dataDir, "get", "web", "--path", "port")
	require.NoError(t, err)
	assert.Equal(t, "8080", strings.TrimSpace(out))
}

func TestSetRejectsInvalidJSON(t *testing.T) {
	configDir := t.TempDir()
	dataDir := t.TempDir()

	_, err := runCommand(t, configDir, dataDir, "set", "web", `{"unterminated`)
	require.Error(t, err)
}

func TestSetReadsStdin(t *testing.T) {
	configDir := t.TempDir()
	dataDir := t.TempDir()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(`{"a":1}`))
	cmd.SetArgs([]string{"--config-dir", configDir, "--data-dir", dataDir, "set", "web"})
	require.NoError(t, cmd.Execute())

	got, err := runCommand(t, configDir, dataDir, "get", "web")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, strings.TrimSpace(got))
}

func TestPatchUpdatesOnePath(t *testing.T) {
	configDir := t.TempDir()
	dataDir := t.TempDir()

	_, err := runCommand(t, configDir, dataDir, "set", "web", `{"port":8080,"host":"example.com"}`)
	require.NoError(t, err)

	_, err = runCommand(t, configDir, dataDir, "patch", "web", "port", "9090")
	require.NoError(t, err)

	out, err := runCommand(t, configDir, dataDir, "get", "web", "--path", "port")
	require.NoError(t, err)
	assert.Equal(t, "9090", strings.TrimSpace(out))

	out, err = runCommand(t, configDir, dataDir, "get", "web", "--path", "host")
	require.NoError(t, err)
	assert.Equal(t, "example.com", strings.TrimSpace(out))
}

func TestListJSON(t *testing.T) {
	configDir := t.TempDir()
	dataDir := t.TempDir()

	_, err := runCommand(t, configDir, dataDir, "set", "zeta", `1`)
	require.NoError(t, err)
	_, err = runCommand(t, configDir, dataDir, "set", "alpha", `2`)
	require.NoError(t, err)

	out, err := runCommand(t, configDir, dataDir, "list", "--json")
	require.NoError(t, err)

	var records []recordJSON
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "alpha", records[0].Name)
	assert.Equal(t, "zeta", records[1].Name)
	assert.NotEmpty(t, records[0].ConfigID)
}

func TestDeleteRemovesConfiguration(t *testing.T) {
	configDir := t.TempDir()
	dataDir := t.TempDir()

	_, err := runCommand(t, configDir, dataDir, "set", "web", `{}`)
	require.NoError(t, err)

	_, err = runCommand(t, configDir, dataDir, "delete", "web")
	require.NoError(t, err)

	_, err = runCommand(t, configDir, dataDir, "get", "web")
	require.Error(t, err)

	_, err = runCommand(t, configDir, dataDir, "delete", "web")
	require.Error(t, err)
}

func TestContextFlagStoredWithRecord(t *testing.T) {
	configDir := t.TempDir()
	dataDir := t.TempDir()

	_, err := runCommand(t, configDir, dataDir, "--context", "staging", "set", "web", `{}`)
	require.NoError(t, err)

	out, err := runCommand(t, configDir, dataDir, "get", "web", "--json")
	require.NoError(t, err)

	var rec recordJSON
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "staging", rec.Context)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, t.TempDir(), t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "attune v")
}
