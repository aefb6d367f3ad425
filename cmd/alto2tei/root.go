package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kat-kel/HTR-MSS-15e-Siecle/internal/config"
	"github.com/kat-kel/HTR-MSS-15e-Siecle/pkg/convert"
	"github.com/kat-kel/HTR-MSS-15e-Siecle/pkg/metadata"
	"github.com/kat-kel/HTR-MSS-15e-Siecle/pkg/proof"
)

// app holds what every command shares once flags and configuration are read
type app struct {
	cfgFile   string
	outDir    string
	logLevel  string
	logFormat string

	cfg *config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var withHeader, withProof bool

	cmd := &cobra.Command{
		Use:   "alto2tei <dir> [dir ...]",
		Short: "Convert directories of ALTO layout files into TEI documents",
		Long: `alto2tei converts each directory of ALTO layout files (one file per folio)
into a single TEI document written to <out>/<directory name>.xml.

The TEI sourceDoc holds one surface per folio, one zone per text block and
one nested zone per text line, with their outlines and IIIF image crops.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs := a.directories(args)
			if len(dirs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No directory given")
				return nil
			}
			return a.convert(cmd, dirs, withHeader, withProof)
		},
	}

	cmd.PersistentFlags().StringVar(
		&a.cfgFile, "config", "", "config file (default: ./config.yaml or ~/.alto2tei/config.yaml)",
	)
	cmd.PersistentFlags().StringVar(
		&a.outDir, "out", convert.DefaultOutputDir, "output directory",
	)
	cmd.PersistentFlags().StringVar(
		&a.logLevel, "log-level", "info", "log level: debug, info, warn or error",
	)
	cmd.PersistentFlags().StringVar(
		&a.logFormat, "log-format", "text", "log format: text or json",
	)
	cmd.Flags().BoolVar(&withHeader, "header", false, "add a teiHeader from the catalogue records")
	cmd.Flags().BoolVar(&withProof, "proof", false, "also write a PDF proof sheet of the zones")

	cmd.AddCommand(newCatalogCmd(a))
	cmd.AddCommand(newConfigCmd())
	return cmd
}

// load reads the configuration, applies the flags given explicitly and builds the logger
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.OutputDir = a.outDir
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.cfg = cfg
	a.log = cfg.Log.Logger(cmd.ErrOrStderr())
	return nil
}

// directories keeps the arguments that are directories
func (a *app) directories(args []string) []string {
	var dirs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			a.log.Debug("skipping argument, not a directory", "path", arg)
			continue
		}
		dirs = append(dirs, arg)
	}
	return dirs
}

// convert runs every directory independently; a failing directory does not stop the others
func (a *app) convert(cmd *cobra.Command, dirs []string, withHeader, withProof bool) error {
	ctx := cmd.Context()

	var header convert.HeaderSource
	if withHeader {
		client := metadata.NewClient(a.cfg.MetadataClientConfig(a.log))
		defer client.Close()
		header = metadata.NewEnricher(client, a.cfg.EditorRecord())
	}
	conv := convert.New(a.cfg.ConverterConfig(header, a.log))

	failed := 0
	for _, dir := range dirs {
		res, err := conv.ConvertDir(ctx, dir)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			a.log.Error("conversion failed", "dir", dir, "error", err)
			failed++
			continue
		}

		if withProof {
			if err := a.writeProof(res); err != nil {
				a.log.Error("proof sheet failed", "dir", dir, "error", err)
				failed++
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d directories failed", failed, len(dirs))
	}
	return nil
}

// writeProof writes <out>/<document>.pdf next to the TEI file
func (a *app) writeProof(res *convert.Result) error {
	pdf, err := proof.Render(res.TEI, a.cfg.ProofSheetConfig(a.log))
	if err != nil {
		return err
	}
	path := filepath.Join(a.cfg.OutputDir, res.Document+".pdf")
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write proof sheet: %w", err)
	}
	a.log.Info("wrote proof sheet", "dir", res.Document, "path", path)
	return nil
}
