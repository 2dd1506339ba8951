package config

import "github.com/spf13/viper"

// Default layout geometry. HeaderHeight matches the host's 30-unit tab
// strip; the drop bands cover the outer quarter of a panel body.
const (
	DefaultHeaderHeight   = 30.0
	DefaultHoverRatio     = 0.25
	DefaultHighlightRatio = 0.5
	DefaultSplitRatio     = 0.5
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			HeaderHeight:   DefaultHeaderHeight,
			HoverRatio:     DefaultHoverRatio,
			HighlightRatio: DefaultHighlightRatio,
			SplitRatio:     DefaultSplitRatio,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Database: DatabaseConfig{
			Path: "", // resolved to the XDG data dir at open time
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("layout.header_height", DefaultHeaderHeight)
	v.SetDefault("layout.hover_ratio", DefaultHoverRatio)
	v.SetDefault("layout.highlight_ratio", DefaultHighlightRatio)
	v.SetDefault("layout.split_ratio", DefaultSplitRatio)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("database.path", "")
}

const defaultConfigYAML = `# mosaic configuration
# yaml-language-server: $schema=config.schema.json

layout:
  # Height of the tab header strip, in logical pixels.
  header_height: 30
  # Fraction of a panel body, from each edge, that acts as an edge drop band.
  hover_ratio: 0.25
  # Fraction of the hover band shown as the drop highlight.
  highlight_ratio: 0.5
  # Share of the rectangle given to a freshly split-off panel.
  split_ratio: 0.5

logging:
  level: info    # trace, debug, info, warn, error
  format: console # console or json

database:
  # Path of the snapshot database. Empty means the default data directory.
  path: ""
`
