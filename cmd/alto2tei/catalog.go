package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kat-kel/HTR-MSS-15e-Siecle/pkg/convert"
	"github.com/kat-kel/HTR-MSS-15e-Siecle/pkg/metadata"
)

func newCatalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog <dir> [dir ...]",
		Short: "Save the catalogue record of each document",
		Long: `catalog looks up the BnF catalogue record of each document through its IIIF
manifest and writes the SRU response to <out>/response_<directory name>.xml.

When the manifest's catalogue link finds no record, the manifest title is
searched instead and the first hit kept.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs := a.directories(args)
			if len(dirs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No directory given")
				return nil
			}

			client := metadata.NewClient(a.cfg.MetadataClientConfig(a.log))
			defer client.Close()

			if err := os.MkdirAll(a.cfg.OutputDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			failed := 0
			for _, dir := range dirs {
				if err := a.saveCatalogueRecord(cmd, client, dir); err != nil {
					if cmd.Context().Err() != nil {
						return cmd.Context().Err()
					}
					a.log.Error("catalogue lookup failed", "dir", dir, "error", err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d directories failed", failed, len(dirs))
			}
			return nil
		},
	}
}

// saveCatalogueRecord writes the SRU response of one document
func (a *app) saveCatalogueRecord(cmd *cobra.Command, client *metadata.Client, dir string) error {
	ctx := cmd.Context()
	doc := convert.DocumentName(dir)

	manifest, err := client.FetchManifest(ctx, doc)
	if err != nil {
		return err
	}
	ark, err := manifest.CatalogueARK()
	if err != nil {
		a.log.Warn("manifest has no catalogue link, searching by title", "dir", dir, "error", err)
	}

	if ark == "" && manifest.Title() == "" {
		a.log.Warn("manifest has neither catalogue link nor title, skipping catalogue search", "dir", dir)
		return nil
	}

	res, err := client.SearchCatalogue(ctx, ark, manifest.Title())
	if err != nil {
		return err
	}
	if res.Response.First() == nil {
		a.log.Warn("catalogue search returned no record", "dir", dir, "query", res.Query)
	}

	path := filepath.Join(a.cfg.OutputDir, "response_"+doc+".xml")
	if err := os.WriteFile(path, res.Raw, 0o644); err != nil {
		return fmt.Errorf("failed to write catalogue response: %w", err)
	}
	a.log.Info("wrote catalogue response", "dir", dir, "path", path, "records", res.Response.NumberOfRecords)
	return nil
}
