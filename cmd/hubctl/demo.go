package main

import (
	"encoding/json"
	"fmt"

	"github.com/imec-intel/hub/internal/seed"
	"github.com/imec-intel/hub/pkg/catalog"
	"github.com/imec-intel/hub/pkg/record"
	"github.com/imec-intel/hub/pkg/store/memstore"

	"github.com/spf13/cobra"
)

func (a *app) demoCmd() *cobra.Command {
	var via string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Post a demonstration legal instrument and budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := seed.DemoBundle()
			if err != nil {
				return err
			}
			if dryRun {
				return a.dryRun(cmd, b)
			}
			return a.apply(cmd, via, b)
		},
	}

	cmd.Flags().StringVar(&via, "via", "http", "delivery path: http or queue")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate against an in-memory catalog and print the stored records")

	return cmd
}

// dryRun ingests b into a throwaway in-memory catalog and prints what a
// search would return.
func (a *app) dryRun(cmd *cobra.Command, b seed.Bundle) error {
	ctx := cmd.Context()
	cat := catalog.New(memstore.New(), a.cfg.APIKey)

	if _, err := seed.Apply(ctx, &seed.CatalogSink{Catalog: cat, APIKey: a.cfg.APIKey}, b); err != nil {
		return err
	}

	items, err := cat.Search(ctx, "", nil)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{"items": items}); err != nil {
		return fmt.Errorf("failed to print records: %w", err)
	}

	sources, err := cat.List(ctx, catalog.Sources, record.Filter{})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "dry run: %d records, %d sources, nothing sent\n", len(items), len(sources))
	return nil
}
