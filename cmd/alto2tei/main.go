// alto2tei converts directories of ALTO layout files into TEI documents.
//
// Each directory holds the layout files of one digitised document, one file
// per folio, named after the folio number (e.g. btv1b8449691v/f12.xml). The
// directory name is the Gallica ARK name of the document and is used to
// build the IIIF image URLs of the output.
//
// Usage:
//
//	alto2tei [flags] <dir> [dir ...]
//	alto2tei catalog [flags] <dir> [dir ...]
//	alto2tei config init [path]
//
// Flags:
//
//	--config string      Path to the YAML configuration file (default: ./config.yaml or ~/.alto2tei/config.yaml)
//	--out string         Output directory (default "data")
//	--header             Add a teiHeader built from the Gallica and BnF catalogue records
//	--proof              Also write a PDF proof sheet of the zone outlines
//	--log-level string   debug, info, warn or error
//	--log-format string  text or json
//
// Every configuration key can be set from the environment with the ALTO2TEI_
// prefix; a .env file in the working directory is loaded first.
//
// Example:
//
//	alto2tei --header --proof data/btv1b8449691v data/btv1b84526412
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	// Set up context with signal handling so a conversion stops between files
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
