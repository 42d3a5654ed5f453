package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fivetwenty-io/thriftdb/internal/constants"
	"github.com/fivetwenty-io/thriftdb/internal/logging"
	"github.com/fivetwenty-io/thriftdb/pkg/thriftdb"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// newClient builds a client from the merged flag, environment and config
// file settings.
func newClient() (*thriftdb.Client, error) {
	config := &thriftdb.Config{
		BaseURL: viper.GetString("url"),
		Credentials: thriftdb.Credentials{
			Username: viper.GetString("user"),
			Password: viper.GetString("password"),
		},
	}

	if viper.GetBool("verbose") {
		logging.SetLogLevel(logrus.DebugLevel)

		logger := logging.NewFieldLogger(logging.GetLogger())

		chain := thriftdb.NewInterceptorChain()
		chain.AddRequestInterceptor(thriftdb.LoggingInterceptor(logger))
		chain.AddResponseInterceptor(thriftdb.LoggingResponseInterceptor(logger))

		config.Logger = logger
		config.Debug = true
		config.Interceptors = chain
	}

	client, err := thriftdb.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// parseQuery turns repeated key=value flags into a query.
func parseQuery(pairs []string) (thriftdb.Query, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	query := make(thriftdb.Query, len(pairs))

	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", constants.QueryPairParts)
		if len(parts) != constants.QueryPairParts || parts[0] == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidQueryPair, pair)
		}

		query[parts[0]] = parts[1]
	}

	return query, nil
}

// parseIDs splits a comma-separated id list. Blank entries are dropped.
func parseIDs(raw string) []thriftdb.ItemID {
	var ids []thriftdb.ItemID

	for _, id := range strings.Split(raw, constants.IDSeparator) {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, thriftdb.ItemID(id))
		}
	}

	return ids
}

// readPayload returns the inline value or the contents of the named file.
// A file name of "-" reads from stdin.
func readPayload(inline, file string, stdin io.Reader, missing error) (string, error) {
	switch {
	case inline != "" && file != "":
		return "", constants.ErrPayloadConflict
	case inline != "":
		return inline, nil
	case file == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}

		return string(data), nil
	case file != "":
		// #nosec G304 -- the path is supplied by the user on purpose
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}

		return string(data), nil
	default:
		return "", missing
	}
}
