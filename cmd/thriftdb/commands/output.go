package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/thriftdb/internal/constants"
	"github.com/fivetwenty-io/thriftdb/pkg/thriftdb"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const defaultJSONIndent = "  "

// responseView is what the CLI prints for a service response.
type responseView struct {
	Status int         `json:"status"         yaml:"status"`
	Body   interface{} `json:"body,omitempty" yaml:"body,omitempty"`
}

func newResponseView(resp *thriftdb.Response) responseView {
	view := responseView{Status: resp.StatusCode}

	if len(resp.Body) == 0 {
		return view
	}

	var decoded interface{}
	if err := json.Unmarshal(resp.Body, &decoded); err == nil {
		view.Body = decoded
	} else {
		view.Body = resp.Text()
	}

	return view
}

// renderResponse prints the response in the selected output format and
// converts a non-2xx status into the command's error.
func renderResponse(cmd *cobra.Command, resp *thriftdb.Response) error {
	if err := writeOutput(cmd.OutOrStdout(), viper.GetString("output"), newResponseView(resp), func(table *tablewriter.Table) error {
		body := strings.TrimSpace(resp.Text())
		if body == "" {
			body = constants.NotAvailable
		}

		table.Header("Status", "Body")

		return table.Append(strconv.Itoa(resp.StatusCode), body)
	}); err != nil {
		return err
	}

	return resp.Err()
}

// writeOutput encodes value as JSON or YAML, or hands a table to fill for the
// default format.
func writeOutput(out io.Writer, format string, value interface{}, fill func(*tablewriter.Table) error) error {
	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", defaultJSONIndent)

		return encoder.Encode(value)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)
		if err := encoder.Encode(value); err != nil {
			_ = encoder.Close()

			return fmt.Errorf("failed to encode yaml: %w", err)
		}

		// Close flushes buffered output.
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to flush yaml: %w", err)
		}

		return nil
	case constants.FormatTable, "":
		table := tablewriter.NewWriter(out)
		if err := fill(table); err != nil {
			return fmt.Errorf("failed to build table: %w", err)
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %q", constants.ErrInvalidOutput, format)
	}
}

func validateOutput(format string) error {
	switch format {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return nil
	default:
		return fmt.Errorf("%w: %q", constants.ErrInvalidOutput, format)
	}
}
