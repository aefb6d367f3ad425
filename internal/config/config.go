package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/kat-kel/HTR-MSS-15e-Siecle/pkg/convert"
	"github.com/kat-kel/HTR-MSS-15e-Siecle/pkg/metadata"
	"github.com/kat-kel/HTR-MSS-15e-Siecle/pkg/proof"
)

// EnvPrefix prefixes every environment override, e.g. ALTO2TEI_IIIF_BASE_URL
const EnvPrefix = "ALTO2TEI"

// Config is the complete configuration of alto2tei.
type Config struct {
	OutputDir string         `mapstructure:"output_dir" yaml:"output_dir"`
	IIIF      IIIFConfig     `mapstructure:"iiif" yaml:"iiif"`
	Metadata  MetadataConfig `mapstructure:"metadata" yaml:"metadata"`
	Editor    EditorConfig   `mapstructure:"editor" yaml:"editor"`
	Proof     ProofConfig    `mapstructure:"proof" yaml:"proof"`
	Log       LogConfig      `mapstructure:"log" yaml:"log"`
}

// IIIFConfig locates the page images
type IIIFConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	NAAN    string `mapstructure:"naan" yaml:"naan"`
}

// MetadataConfig locates the catalogue services
type MetadataConfig struct {
	GallicaBaseURL string        `mapstructure:"gallica_base_url" yaml:"gallica_base_url"`
	SRUBaseURL     string        `mapstructure:"sru_base_url" yaml:"sru_base_url"`
	SPARQLEndpoint string        `mapstructure:"sparql_endpoint" yaml:"sparql_endpoint"`
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// EditorConfig is the person credited in the teiHeader respStmt
type EditorConfig struct {
	Forename string `mapstructure:"forename" yaml:"forename"`
	Surname  string `mapstructure:"surname" yaml:"surname"`
	ORCID    string `mapstructure:"orcid" yaml:"orcid"`
	Resp     string `mapstructure:"resp" yaml:"resp"`
}

// ProofConfig controls the PDF proof sheet
type ProofConfig struct {
	MaxPageSize float64 `mapstructure:"max_page_size" yaml:"max_page_size"`
	Labels      bool    `mapstructure:"labels" yaml:"labels"`
	Font        string  `mapstructure:"font" yaml:"font"`
	FontSize    float64 `mapstructure:"font_size" yaml:"font_size"`
}

// LogConfig selects the log handler
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

var (
	naanPattern  = regexp.MustCompile(`^\d+$`)
	orcidPattern = regexp.MustCompile(`^\d{15}[\dX]$`)
)

// Load reads the configuration from defaults, the config file and the environment.
// With an empty cfgFile, config.yaml is looked up in . and $HOME/.alto2tei and may be absent.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	for key, value := range defaultKeys() {
		v.SetDefault(key, value)
	}

	// Environment variables with ALTO2TEI_ prefix
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.alto2tei")
	}

	// Try to read config file (not required)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration before anything is converted.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.OutputDir, validation.Required),
		validation.Field(&c.IIIF),
		validation.Field(&c.Metadata),
		validation.Field(&c.Editor),
		validation.Field(&c.Proof),
		validation.Field(&c.Log),
	)
}

func (c IIIFConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, validation.By(absoluteURL)),
		validation.Field(&c.NAAN, validation.Required, validation.Match(naanPattern)),
	)
}

func (c MetadataConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.GallicaBaseURL, validation.Required, validation.By(absoluteURL)),
		validation.Field(&c.SRUBaseURL, validation.Required, validation.By(absoluteURL)),
		validation.Field(&c.SPARQLEndpoint, validation.Required, validation.By(absoluteURL)),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Second)),
	)
}

func (c EditorConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ORCID, validation.Match(orcidPattern)),
		validation.Field(&c.Surname, validation.When(c.ORCID != "", validation.Required)),
	)
}

func (c ProofConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.MaxPageSize, validation.Min(0.0)),
		validation.Field(&c.Font, validation.Required),
		validation.Field(&c.FontSize, validation.Required, validation.Min(1.0)),
	)
}

func (c LogConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Format, validation.Required, validation.In("text", "json")),
	)
}

// absoluteURL accepts http and https URLs with a host
func absoluteURL(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("must be an absolute http(s) URL")
	}
	return nil
}

// ConverterConfig maps the configuration onto convert.Config
func (c *Config) ConverterConfig(header convert.HeaderSource, log *slog.Logger) convert.Config {
	return convert.Config{
		OutputDir:   c.OutputDir,
		IIIFBaseURL: c.IIIF.BaseURL,
		NAAN:        c.IIIF.NAAN,
		Header:      header,
		Logger:      log,
	}
}

// MetadataClientConfig maps the configuration onto metadata.Config
func (c *Config) MetadataClientConfig(log *slog.Logger) metadata.Config {
	return metadata.Config{
		IIIFBaseURL:    c.IIIF.BaseURL,
		GallicaBaseURL: c.Metadata.GallicaBaseURL,
		SRUBaseURL:     c.Metadata.SRUBaseURL,
		SPARQLEndpoint: c.Metadata.SPARQLEndpoint,
		NAAN:           c.IIIF.NAAN,
		Timeout:        c.Metadata.Timeout,
		Logger:         log,
	}
}

// EditorRecord returns the configured editor, or nil when none is set
func (c *Config) EditorRecord() *metadata.Editor {
	e := c.Editor
	if e.Forename == "" && e.Surname == "" {
		return nil
	}
	return &metadata.Editor{
		Forename: e.Forename,
		Surname:  e.Surname,
		ORCID:    e.ORCID,
		Resp:     e.Resp,
	}
}

// ProofSheetConfig maps the configuration onto proof.Config
func (c *Config) ProofSheetConfig(log *slog.Logger) proof.Config {
	cfg := proof.DefaultConfig()
	cfg.MaxPageSize = c.Proof.MaxPageSize
	cfg.Labels = c.Proof.Labels
	cfg.Font.Name = c.Proof.Font
	cfg.Font.Size = c.Proof.FontSize
	cfg.Logger = log
	return cfg
}

// Logger builds the slog logger selected by the log section, writing to w
func (l LogConfig) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// WriteDefault writes the default configuration to the specified path.
// An existing file is left untouched.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# alto2tei configuration
# Every key can be overridden from the environment with the ALTO2TEI_ prefix,
# e.g. ALTO2TEI_OUTPUT_DIR=out or ALTO2TEI_EDITOR_SURNAME=Christensen

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
