package commands_test

import (
	"net/http"
	"testing"

	"github.com/fivetwenty-io/thriftdb/cmd/thriftdb/commands"
	"github.com/fivetwenty-io/thriftdb/pkg/thriftdb"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBucketsCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewBucketsCommand()
	assert.Equal(t, "bucket", cmd.Use)
	assert.Equal(t, []string{"buckets"}, cmd.Aliases)
	assert.Equal(t, "Manage buckets", cmd.Short)

	for _, name := range []string{"create", "get", "delete"} {
		sub := findSubcommand(cmd, name)
		require.NotNil(t, sub, "subcommand %s should exist", name)
		assert.Equal(t, name+" BUCKET", sub.Use)
		assert.NotNil(t, sub.RunE)
		assert.NotNil(t, sub.Args)
	}
}

func TestBucketCommands(t *testing.T) {
	server := useServer(t)

	out, err := execute(t, commands.NewBucketsCommand(), "create", "cars")
	require.NoError(t, err)

	result := decodeResult(t, out)
	assert.Equal(t, http.StatusCreated, result.Status)
	assert.Equal(t, map[string]interface{}{"bucket": "cars"}, result.Body)

	out, err = execute(t, commands.NewBucketsCommand(), "create", "cars")
	require.Error(t, err)
	assert.True(t, thriftdb.IsConflict(err))
	assert.Equal(t, http.StatusConflict, decodeResult(t, out).Status)

	out, err = execute(t, commands.NewBucketsCommand(), "get", "cars")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, decodeResult(t, out).Status)

	_, err = execute(t, commands.NewBucketsCommand(), "delete", "cars")
	require.NoError(t, err)

	_, err = execute(t, commands.NewBucketsCommand(), "delete", "cars")
	assert.True(t, thriftdb.IsNotFound(err))

	requests := server.Requests()
	require.Len(t, requests, 5)
	assert.Equal(t, http.MethodPut, requests[0].Method)
	assert.Equal(t, "/cars", requests[0].RequestURI)
	assert.Equal(t, http.MethodDelete, requests[4].Method)
}

func TestBucketCommands_TableOutput(t *testing.T) {
	useServer(t)
	viper.Set("output", "table")

	out, err := execute(t, commands.NewBucketsCommand(), "create", "cars")
	require.NoError(t, err)
	assert.Contains(t, out, "201")
	assert.Contains(t, out, `{"bucket":"cars"}`)
}

func TestBucketCommands_YAMLOutput(t *testing.T) {
	useServer(t)
	viper.Set("output", "yaml")

	out, err := execute(t, commands.NewBucketsCommand(), "create", "cars")
	require.NoError(t, err)
	assert.Contains(t, out, "status: 201")
	assert.Contains(t, out, "bucket: cars")
}

func TestBucketCommands_InvalidOutput(t *testing.T) {
	server := useServer(t)
	viper.Set("output", "xml")

	_, err := execute(t, commands.NewBucketsCommand(), "create", "cars")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output format")
	assert.Len(t, server.Requests(), 1)
}

func TestBucketCommands_WrongCredentials(t *testing.T) {
	useServer(t)
	viper.Set("password", "wrong")

	_, err := execute(t, commands.NewBucketsCommand(), "create", "cars")
	assert.True(t, thriftdb.IsUnauthorized(err))
}
