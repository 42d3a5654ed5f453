package commands

import (
	"context"

	"github.com/fivetwenty-io/thriftdb/pkg/thriftdb"
	"github.com/spf13/cobra"
)

// NewBucketsCommand creates the bucket command group.
func NewBucketsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bucket",
		Aliases: []string{"buckets"},
		Short:   "Manage buckets",
		Long:    "Create, inspect and delete ThriftDB buckets",
	}

	cmd.AddCommand(newBucketCreateCommand())
	cmd.AddCommand(newBucketGetCommand())
	cmd.AddCommand(newBucketDeleteCommand())

	return cmd
}

func newBucketCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create BUCKET",
		Short: "Create a bucket",
		Long:  "Create a bucket. The service answers 409 if it already exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBucketCommand(cmd, args[0], (*thriftdb.Client).MakeBucket)
		},
	}
}

func newBucketGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get BUCKET",
		Short: "Get bucket details",
		Long:  "Display what the service reports about a bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBucketCommand(cmd, args[0], (*thriftdb.Client).GetBucket)
		},
	}
}

func newBucketDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete BUCKET",
		Short: "Delete a bucket",
		Long:  "Delete a bucket and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBucketCommand(cmd, args[0], (*thriftdb.Client).DeleteBucket)
		},
	}
}

type bucketOperation func(*thriftdb.Client, context.Context, string) (*thriftdb.Response, error)

func runBucketCommand(cmd *cobra.Command, bucket string, operation bucketOperation) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	resp, err := operation(client, cmd.Context(), bucket)
	if err != nil {
		return err
	}

	return renderResponse(cmd, resp)
}
