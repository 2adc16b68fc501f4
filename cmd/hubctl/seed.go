package main

import (
	"context"
	"fmt"
	"os"

	"github.com/imec-intel/hub/internal/queue"
	"github.com/imec-intel/hub/internal/seed"
	"github.com/imec-intel/hub/internal/storage"

	"github.com/spf13/cobra"
)

func (a *app) seedCmd() *cobra.Command {
	var file, s3Key, via string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert a bundle of records",
		Long: `Upsert every record of a bundle, a JSON or YAML document mapping
collection names to lists of payloads. Collections are written sources first
so that references resolve.

Examples:
  hubctl seed --file fixtures/corridor.yaml
  hubctl seed --s3-key bundles/2025-09.json --via queue`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (file == "") == (s3Key == "") {
				return fmt.Errorf("exactly one of --file or --s3-key is required")
			}

			name, data, err := a.readBundle(cmd.Context(), file, s3Key)
			if err != nil {
				return err
			}
			b, err := seed.ParseBundle(name, data)
			if err != nil {
				return err
			}

			return a.apply(cmd, via, b)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "bundle on the local filesystem")
	cmd.Flags().StringVar(&s3Key, "s3-key", "", "bundle object key in the AWS_BUCKET bucket")
	cmd.Flags().StringVar(&via, "via", "http", "delivery path: http or queue")

	return cmd
}

func (a *app) readBundle(ctx context.Context, file, s3Key string) (string, []byte, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read bundle: %w", err)
		}
		return file, data, nil
	}

	client, err := storage.NewS3Client(ctx, a.cfg.S3)
	if err != nil {
		return "", nil, err
	}
	data, err := storage.GetFile(ctx, client, a.cfg.S3.Bucket, s3Key)
	if err != nil {
		return "", nil, err
	}
	return s3Key, data, nil
}

// apply delivers b through the sink named by via.
func (a *app) apply(cmd *cobra.Command, via string, b seed.Bundle) error {
	ctx := cmd.Context()

	var sink seed.Sink
	switch via {
	case "http":
		sink = seed.NewHTTPSink(a.cfg.APIBase, a.cfg.APIKey)
	case "queue":
		conn, err := queue.Init(a.cfg.RabbitMQ.URL())
		if err != nil {
			return err
		}
		defer conn.Close()

		ch, err := conn.Channel()
		if err != nil {
			return fmt.Errorf("failed to open channel: %w", err)
		}
		defer ch.Close()

		if err := queue.SetupQueues(ch, []string{queue.IngestQueue}); err != nil {
			return err
		}
		sink = &seed.QueueSink{Publisher: ch, APIKey: a.cfg.APIKey}
	default:
		return fmt.Errorf("--via must be http or queue, got %q", via)
	}

	n, err := seed.Apply(ctx, sink, b)
	fmt.Fprintf(cmd.OutOrStdout(), "%d of %d records sent via %s\n", n, b.Len(), via)
	return err
}
