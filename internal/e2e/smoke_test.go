package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	configHome := t.TempDir()
	binaryPath := buildBinary(t)

	stdout, stderr, err := runLauncher(t, binaryPath, configHome, "login-offline", "Alex")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Added offline account Alex")

	stdout, stderr, err = runLauncher(t, binaryPath, configHome, "account", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "accounts: 1")
	assert.Contains(t, stdout, "Alex (")

	// pass is not on PATH, so the registry key lives in the key file.
	_, err = os.Stat(filepath.Join(configHome, "launcher", "Credentials.key"))
	require.NoError(t, err)
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "launcher-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/launcher")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build launcher binary: %s", string(output))
	return binaryPath
}

func runLauncher(t *testing.T, binaryPath, configHome string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(),
		"XDG_CONFIG_HOME="+configHome,
		"LAUNCHER_SECRETS_BACKEND=pass",
		"LAUNCHER_LOG_LEVEL=error",
		"PATH="+t.TempDir(),
	)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
