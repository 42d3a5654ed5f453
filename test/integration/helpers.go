//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	URL        string
	User       string
	Password   string
	BinaryPath string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		URL:        os.Getenv("THRIFTDB_URL"),
		User:       os.Getenv("THRIFTDB_USER"),
		Password:   os.Getenv("THRIFTDB_PASSWORD"),
		BinaryPath: getBinaryPath(),
		Verbose:    os.Getenv("THRIFTDB_VERBOSE") == "true",
	}
}

// getBinaryPath determines the path to the thriftdb binary
func getBinaryPath() string {
	if path := os.Getenv("THRIFTDB_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../thriftdb",
		"./thriftdb",
		"../thriftdb",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "thriftdb"
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	if config.User == "" {
		t.Skip("THRIFTDB_USER not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.BinaryPath); err != nil {
		t.Skipf("thriftdb binary not found at %s, skipping integration test", config.BinaryPath)
	}
}

// UniqueName returns a bucket name that will not clash with earlier runs.
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

// CommandRunner runs the thriftdb binary against the configured service
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a thriftdb command with JSON output and returns its output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	full := append([]string{"--output", "json", "--user", runner.config.User, "--password", runner.config.Password}, args...)
	if runner.config.URL != "" {
		full = append([]string{"--url", runner.config.URL}, full...)
	}

	cmd := exec.Command(runner.config.BinaryPath, full...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BinaryPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// Status runs a command and returns the HTTP status it printed. A non-zero
// exit is expected for non-2xx statuses and is not treated as a failure.
func (runner *CommandRunner) Status(args ...string) int {
	stdout, stderr, _ := runner.Run(args...)

	var result struct {
		Status int `json:"status"`
	}

	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		runner.t.Fatalf("unexpected output from %v: %v\nStdout: %s\nStderr: %s", args, err, stdout, stderr)
	}

	return result.Status
}
