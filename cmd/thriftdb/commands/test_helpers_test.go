package commands_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fivetwenty-io/thriftdb/pkg/thriftdb/thriftdbtest"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

type cliResult struct {
	Status int         `json:"status"`
	Body   interface{} `json:"body"`
}

// useServer points the global configuration at a fresh fake service. Tests
// that call it share viper state and must not run in parallel.
func useServer(t *testing.T) *thriftdbtest.Server {
	t.Helper()

	server := thriftdbtest.NewServer(thriftdbtest.WithBasicAuth("user", "pass"))

	viper.Reset()
	viper.Set("url", server.URL())
	viper.Set("user", "user")
	viper.Set("password", "pass")
	viper.Set("output", "json")

	t.Cleanup(func() {
		server.Close()
		viper.Reset()
	})

	return server
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func decodeResult(t *testing.T, out string) cliResult {
	t.Helper()

	var result cliResult
	require.NoError(t, json.Unmarshal([]byte(out), &result), out)

	return result
}
