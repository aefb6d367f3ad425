package proof

import "log/slog"

// Config holds the options of a proof sheet
type Config struct {
	BlockLayer  string  // Name of the block layer (page number will be appended)
	LineLayer   string  // Name of the line layer (page number will be appended)
	Labels      bool    // Print the zone type at the first point of each block
	MaxPageSize float64 // Longest page side in points; larger scans are scaled down
	LineWidth   float64 // Stroke width in points
	Font        FontConfig
	Logger      *slog.Logger // Warnings (nil = slog.Default())
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		BlockLayer:  "Blocks",
		LineLayer:   "Lines",
		Labels:      true,
		MaxPageSize: 1190, // A3 long side
		LineWidth:   0.8,
		Font:        DefaultFont,
	}
}

// FontConfig contains font settings for zone labels
type FontConfig struct {
	Name  string  // Font name (e.g., "Helvetica")
	Style string  // Font style ("", "B", "I", "BI")
	Size  float64 // Font size in points
}

// DefaultFont is a core font, so no font file has to be embedded
var DefaultFont = FontConfig{
	Name:  "Helvetica",
	Style: "",
	Size:  8,
}

// RGB is a stroke color
type RGB struct{ R, G, B int }

var (
	blockColor = RGB{0, 102, 204}
	lineColor  = RGB{204, 51, 0}
)

// withDefaults fills the zero fields of c from DefaultConfig
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BlockLayer == "" {
		c.BlockLayer = d.BlockLayer
	}
	if c.LineLayer == "" {
		c.LineLayer = d.LineLayer
	}
	if c.LineWidth <= 0 {
		c.LineWidth = d.LineWidth
	}
	if c.Font.Name == "" {
		c.Font = d.Font
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
