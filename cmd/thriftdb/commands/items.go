package commands

import (
	"github.com/fivetwenty-io/thriftdb/internal/constants"
	"github.com/fivetwenty-io/thriftdb/pkg/thriftdb"
	"github.com/spf13/cobra"
)

// NewItemsCommand creates the item command group.
func NewItemsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "item",
		Aliases: []string{"items"},
		Short:   "Manage items",
		Long:    "Store, fetch and delete items one at a time or in bulk",
	}

	cmd.AddCommand(newItemPutCommand())
	cmd.AddCommand(newItemGetCommand())
	cmd.AddCommand(newItemDeleteCommand())
	cmd.AddCommand(newItemPutMultiCommand())
	cmd.AddCommand(newItemGetMultiCommand())
	cmd.AddCommand(newItemDeleteMultiCommand())

	return cmd
}

func newItemPutCommand() *cobra.Command {
	var (
		data string
		file string
	)

	cmd := &cobra.Command{
		Use:   "put BUCKET COLLECTION ID",
		Short: "Store an item",
		Long:  "Create or replace the item with the given id",
		Args:  cobra.ExactArgs(constants.ItemArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readPayload(data, file, cmd.InOrStdin(), constants.ErrPayloadRequired)
			if err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			resp, err := client.PutItem(cmd.Context(), args[0], args[1], thriftdb.ItemID(args[2]), body)
			if err != nil {
				return err
			}

			return renderResponse(cmd, resp)
		},
	}

	addPayloadFlags(cmd, &data, &file)

	return cmd
}

func newItemGetCommand() *cobra.Command {
	var queryPairs []string

	cmd := &cobra.Command{
		Use:   "get BUCKET COLLECTION ID",
		Short: "Fetch an item",
		Long:  "Fetch the item with the given id",
		Args:  cobra.ExactArgs(constants.ItemArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseQuery(queryPairs)
			if err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			resp, err := client.GetItem(cmd.Context(), args[0], args[1], thriftdb.ItemID(args[2]), query)
			if err != nil {
				return err
			}

			return renderResponse(cmd, resp)
		},
	}

	cmd.Flags().StringArrayVarP(&queryPairs, "query", "q", nil, "extra query parameter as key=value (repeatable)")

	return cmd
}

func newItemDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete BUCKET COLLECTION ID",
		Short: "Delete an item",
		Long:  "Delete the item with the given id",
		Args:  cobra.ExactArgs(constants.ItemArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			resp, err := client.DeleteItem(cmd.Context(), args[0], args[1], thriftdb.ItemID(args[2]))
			if err != nil {
				return err
			}

			return renderResponse(cmd, resp)
		},
	}
}

func newItemPutMultiCommand() *cobra.Command {
	var (
		data string
		file string
	)

	cmd := &cobra.Command{
		Use:   "put-multi BUCKET COLLECTION",
		Short: "Store several items",
		Long:  "Store a JSON array of items in one request. Each item carries its own _id",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readPayload(data, file, cmd.InOrStdin(), constants.ErrPayloadRequired)
			if err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			resp, err := client.PutItemMulti(cmd.Context(), args[0], args[1], body)
			if err != nil {
				return err
			}

			return renderResponse(cmd, resp)
		},
	}

	addPayloadFlags(cmd, &data, &file)

	return cmd
}

func newItemGetMultiCommand() *cobra.Command {
	var (
		ids        string
		queryPairs []string
	)

	cmd := &cobra.Command{
		Use:   "get-multi BUCKET COLLECTION",
		Short: "Fetch several items",
		Long:  "Fetch the items with the given ids in one request",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseQuery(queryPairs)
			if err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			resp, err := client.GetItemMulti(cmd.Context(), args[0], args[1], parseIDs(ids), query)
			if err != nil {
				return err
			}

			return renderResponse(cmd, resp)
		},
	}

	cmd.Flags().StringVar(&ids, "ids", "", "comma-separated item ids")
	cmd.Flags().StringArrayVarP(&queryPairs, "query", "q", nil, "extra query parameter as key=value (repeatable)")

	return cmd
}

func newItemDeleteMultiCommand() *cobra.Command {
	var ids string

	cmd := &cobra.Command{
		Use:   "delete-multi BUCKET COLLECTION",
		Short: "Delete several items",
		Long:  "Delete the items with the given ids in one request",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			resp, err := client.DeleteItemMulti(cmd.Context(), args[0], args[1], parseIDs(ids))
			if err != nil {
				return err
			}

			return renderResponse(cmd, resp)
		},
	}

	cmd.Flags().StringVar(&ids, "ids", "", "comma-separated item ids")

	return cmd
}

func addPayloadFlags(cmd *cobra.Command, data, file *string) {
	cmd.Flags().StringVarP(data, "data", "d", "", "item document as JSON")
	cmd.Flags().StringVarP(file, "file", "f", "", "read the document from a file (- for stdin)")
}
