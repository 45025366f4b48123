package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/betterrest/internal/domain/bedtime"
)

const testArtifact = `name: sleep-calculator
version: test
kind: linear
features: [wake, estimatedSleep, coffee]
output: actualSleep
intercept: -1200
coefficients: [0.01, 3600, 900]
`

func writeArtifact(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestEstimateDefaults(t *testing.T) {
	out, _, err := runCLI(t, "estimate", "--model", writeArtifact(t, testArtifact))
	require.NoError(t, err)
	require.Equal(t, "11:00 PM\n", out)
}

func TestEstimate24hClock(t *testing.T) {
	out, _, err := runCLI(t, "estimate", "--model", writeArtifact(t, testArtifact), "--wake", "07:00", "--sleep", "8", "--coffee", "1", "--clock", "24h")
	require.NoError(t, err)
	require.Equal(t, "23:00\n", out)
}

func TestEstimatePrintsFixedMessageOnModelFailure(t *testing.T) {
	out, _, err := runCLI(t, "estimate", "--model", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, errEstimationFailed)
	require.Equal(t, bedtime.ErrorMessage+"\n", out)
}

func TestEstimateRejectsOutOfRangeInput(t *testing.T) {
	out, errOut, err := runCLI(t, "estimate", "--model", writeArtifact(t, testArtifact), "--coffee", "21")
	require.Error(t, err)
	require.Empty(t, out)
	require.Contains(t, errOut, "coffee")
}

func TestEstimateRejectsUnknownClock(t *testing.T) {
	_, _, err := runCLI(t, "estimate", "--model", writeArtifact(t, testArtifact), "--clock", "36h")
	require.Error(t, err)
}
