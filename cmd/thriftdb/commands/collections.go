package commands

import (
	"context"

	"github.com/fivetwenty-io/thriftdb/internal/constants"
	"github.com/fivetwenty-io/thriftdb/pkg/thriftdb"
	"github.com/spf13/cobra"
)

// NewCollectionsCommand creates the collection command group.
func NewCollectionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collection",
		Aliases: []string{"collections"},
		Short:   "Manage collections",
		Long:    "Create, inspect, delete and reindex collections within a bucket",
	}

	cmd.AddCommand(newCollectionCreateCommand())
	cmd.AddCommand(newCollectionGetCommand())
	cmd.AddCommand(newCollectionDeleteCommand())
	cmd.AddCommand(newCollectionReindexCommand())

	return cmd
}

func newCollectionCreateCommand() *cobra.Command {
	var (
		schema     string
		schemaFile string
	)

	cmd := &cobra.Command{
		Use:   "create BUCKET COLLECTION",
		Short: "Create or update a collection",
		Long:  "Create a collection with the given schema, or replace the schema of an existing one",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readPayload(schema, schemaFile, cmd.InOrStdin(), constants.ErrSchemaRequired)
			if err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			resp, err := client.MakeCollection(cmd.Context(), args[0], args[1], body)
			if err != nil {
				return err
			}

			return renderResponse(cmd, resp)
		},
	}

	cmd.Flags().StringVar(&schema, "schema", "", "schema document as JSON")
	cmd.Flags().StringVar(&schemaFile, "schema-file", "", "read the schema from a file (- for stdin)")

	return cmd
}

func newCollectionGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get BUCKET COLLECTION",
		Short: "Get collection details",
		Long:  "Display what the service reports about a collection",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollectionCommand(cmd, args, (*thriftdb.Client).GetCollection)
		},
	}
}

func newCollectionDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete BUCKET COLLECTION",
		Short: "Delete a collection",
		Long:  "Delete a collection and all of its items",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollectionCommand(cmd, args, (*thriftdb.Client).DeleteCollection)
		},
	}
}

func newCollectionReindexCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reindex BUCKET COLLECTION",
		Short: "Reindex a collection",
		Long:  "Ask the service to rebuild the search index of a collection",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollectionCommand(cmd, args, (*thriftdb.Client).ReindexCollection)
		},
	}
}

type collectionOperation func(*thriftdb.Client, context.Context, string, string) (*thriftdb.Response, error)

func runCollectionCommand(cmd *cobra.Command, args []string, operation collectionOperation) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := operation(client, cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}

	return renderResponse(cmd, resp)
}
