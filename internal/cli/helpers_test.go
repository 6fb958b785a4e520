package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var cliNow = time.Date(2026, time.February, 14, 13, 41, 17, 0, time.UTC)

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes the command tree against dataDir with a fixed clock and a
// config path that does not exist unless the test wrote it.
func runCLI(t *testing.T, dataDir, stdin string, args ...string) cliResult {
	t.Helper()
	return runCLIWithConfig(t, filepath.Join(t.TempDir(), "config.toml"), dataDir, stdin, args...)
}

func runCLIWithConfig(t *testing.T, configPath, dataDir, stdin string, args ...string) cliResult {
	t.Helper()
	cmd := newRootCommand(func() time.Time { return cliNow })

	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	full := []string{"--config", configPath}
	if dataDir != "" {
		full = append(full, "--data-dir", dataDir)
	}
	cmd.SetArgs(append(full, args...))

	err := cmd.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// decodeResponse parses the JSON envelope and its data into data.
func decodeResponse(t *testing.T, out string, data interface{}) Response {
	t.Helper()
	var raw struct {
		Response
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		t.Fatalf("expected JSON output, got parse error: %v; out=%s", err, out)
	}
	if data != nil && len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, data); err != nil {
			t.Fatalf("failed to decode data: %v; out=%s", err, out)
		}
	}
	return raw.Response
}
