package config

import (
	"time"

	"github.com/kat-kel/HTR-MSS-15e-Siecle/pkg/convert"
	"github.com/kat-kel/HTR-MSS-15e-Siecle/pkg/metadata"
	"github.com/kat-kel/HTR-MSS-15e-Siecle/pkg/proof"
)

// DefaultConfig returns the configuration used when no file or environment overrides it.
func DefaultConfig() Config {
	return Config{
		OutputDir: convert.DefaultOutputDir,
		IIIF: IIIFConfig{
			BaseURL: convert.DefaultIIIFBaseURL,
			NAAN:    convert.DefaultNAAN,
		},
		Metadata: MetadataConfig{
			GallicaBaseURL: metadata.DefaultGallicaBaseURL,
			SRUBaseURL:     metadata.DefaultSRUBaseURL,
			SPARQLEndpoint: metadata.DefaultSPARQLEndpoint,
			Timeout:        30 * time.Second,
		},
		Editor: EditorConfig{
			Resp: metadata.DefaultResp,
		},
		Proof: ProofConfig{
			MaxPageSize: proof.DefaultConfig().MaxPageSize,
			Labels:      true,
			Font:        proof.DefaultFont.Name,
			FontSize:    proof.DefaultFont.Size,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// defaultKeys flattens DefaultConfig into viper keys
func defaultKeys() map[string]any {
	d := DefaultConfig()
	return map[string]any{
		"output_dir":                d.OutputDir,
		"iiif.base_url":             d.IIIF.BaseURL,
		"iiif.naan":                 d.IIIF.NAAN,
		"metadata.gallica_base_url": d.Metadata.GallicaBaseURL,
		"metadata.sru_base_url":     d.Metadata.SRUBaseURL,
		"metadata.sparql_endpoint":  d.Metadata.SPARQLEndpoint,
		"metadata.timeout":          d.Metadata.Timeout,
		"editor.forename":           d.Editor.Forename,
		"editor.surname":            d.Editor.Surname,
		"editor.orcid":              d.Editor.ORCID,
		"editor.resp":               d.Editor.Resp,
		"proof.max_page_size":       d.Proof.MaxPageSize,
		"proof.labels":              d.Proof.Labels,
		"proof.font":                d.Proof.Font,
		"proof.font_size":           d.Proof.FontSize,
		"log.level":                 d.Log.Level,
		"log.format":                d.Log.Format,
	}
}
