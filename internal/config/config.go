// Package config provides configuration types, defaults, and persistence for encre.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/encre/internal/log"
	"github.com/zjrosen/encre/internal/paths"
)

// Config holds all configuration options for encre.
type Config struct {
	Editor    EditorConfig    `mapstructure:"editor"`
	Selection SelectionConfig `mapstructure:"selection"`
	Theme     ThemeConfig     `mapstructure:"theme"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	Debug     bool            `mapstructure:"debug"`

	// Flags holds feature flags. Unknown flags read as disabled, so a
	// stale config never turns on something it has no name for.
	Flags map[string]bool `mapstructure:"flags"`
}

// EditorConfig holds document surface options.
type EditorConfig struct {
	// ColumnWidth is the maximum width of the content column in cells.
	// The column is centered; space either side is selectable margin.
	ColumnWidth int `mapstructure:"column_width"`

	// ShowStatusBar toggles the status line at the bottom.
	ShowStatusBar bool `mapstructure:"show_status_bar"`

	// AutoReload reloads the document when it changes on disk and the
	// buffer has no unsaved edits. A dirty buffer gets a warning instead.
	AutoReload bool `mapstructure:"auto_reload"`

	// MarkdownStyle selects the help renderer style: "dark" or "light".
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// SelectionConfig tunes the drag-selection engines.
type SelectionConfig struct {
	// ScrollZone is the height in rows of the edge bands that trigger
	// auto-scroll while dragging.
	ScrollZone int `mapstructure:"scroll_zone"`

	// BaseScrollSpeed scales the per-tick auto-scroll delta before the
	// viewport-size normalization is applied.
	BaseScrollSpeed float64 `mapstructure:"base_scroll_speed"`

	// ReferenceRows is the viewport height at which auto-scroll runs at
	// exactly BaseScrollSpeed. Taller viewports scroll proportionally
	// faster so the gesture feels the same at any terminal size.
	ReferenceRows int `mapstructure:"reference_rows"`

	// ThrottleMS coalesces pointer-move processing to one pass per
	// interval. The trailing event always runs.
	ThrottleMS int `mapstructure:"throttle_ms"`

	// ScrollTickMS is the auto-scroll loop interval.
	ScrollTickMS int `mapstructure:"scroll_tick_ms"`
}

// ThrottleInterval returns ThrottleMS as a duration.
func (s SelectionConfig) ThrottleInterval() time.Duration {
	return time.Duration(s.ThrottleMS) * time.Millisecond
}

// ScrollTickInterval returns ScrollTickMS as a duration.
func (s SelectionConfig) ScrollTickInterval() time.Duration {
	return time.Duration(s.ScrollTickMS) * time.Millisecond
}

// ThemeConfig selects a color preset and per-token overrides.
type ThemeConfig struct {
	// Preset names a built-in theme: "default", "catppuccin-mocha",
	// "high-contrast".
	Preset string `mapstructure:"preset"`

	// Mode forces the background assumption: "auto" (default), "dark",
	// "light".
	Mode string `mapstructure:"mode"`

	// Colors overrides individual color tokens, e.g.
	// "selection.block_bg": "#1F4068". Token names and hex values are
	// validated when the theme is applied.
	Colors map[string]string `mapstructure:"colors"`
}

// TracingConfig holds trace export configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active. Default: false.
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp". Default: "file".
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: ~/.config/encre/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0). Default: 1.0.
	SampleRate float64 `mapstructure:"sample_rate"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			ColumnWidth:   80,
			ShowStatusBar: true,
			AutoReload:    true,
			MarkdownStyle: "dark",
		},
		Selection: SelectionConfig{
			ScrollZone:      3,
			BaseScrollSpeed: 0.5,
			ReferenceRows:   24,
			ThrottleMS:      10,
			ScrollTickMS:    50,
		},
		Theme: ThemeConfig{
			Preset: "default",
			Mode:   "auto",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Flags: map[string]bool{
			"rect-select":      true,
			"markdown-preview": true,
		},
	}
}

// Validate checks the whole configuration for errors.
func (c Config) Validate() error {
	if err := ValidateEditor(c.Editor); err != nil {
		return err
	}
	if err := ValidateSelection(c.Selection); err != nil {
		return err
	}
	if err := ValidateTheme(c.Theme); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateTheme checks the theme mode. Preset names, token names, and hex
// values are validated by the styles package when the theme is applied.
func ValidateTheme(t ThemeConfig) error {
	switch t.Mode {
	case "", "auto", "dark", "light":
		return nil
	default:
		return fmt.Errorf("theme.mode must be \"auto\", \"dark\", or \"light\", got %q", t.Mode)
	}
}

// ValidateEditor checks editor configuration for errors.
func ValidateEditor(e EditorConfig) error {
	if e.ColumnWidth != 0 && e.ColumnWidth < 20 {
		return fmt.Errorf("editor.column_width must be at least 20, got %d", e.ColumnWidth)
	}
	if e.MarkdownStyle != "" && e.MarkdownStyle != "dark" && e.MarkdownStyle != "light" {
		return fmt.Errorf("editor.markdown_style must be \"dark\" or \"light\", got %q", e.MarkdownStyle)
	}
	return nil
}

// ValidateSelection checks selection tuning for errors.
// Zero values are valid and fall back to defaults at load time.
func ValidateSelection(s SelectionConfig) error {
	if s.ScrollZone < 0 {
		return fmt.Errorf("selection.scroll_zone must not be negative, got %d", s.ScrollZone)
	}
	if s.BaseScrollSpeed < 0 {
		return fmt.Errorf("selection.base_scroll_speed must not be negative, got %v", s.BaseScrollSpeed)
	}
	if s.ReferenceRows < 0 {
		return fmt.Errorf("selection.reference_rows must not be negative, got %d", s.ReferenceRows)
	}
	if s.ThrottleMS < 0 {
		return fmt.Errorf("selection.throttle_ms must not be negative, got %d", s.ThrottleMS)
	}
	if s.ScrollTickMS < 0 {
		return fmt.Errorf("selection.scroll_tick_ms must not be negative, got %d", s.ScrollTickMS)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# encre configuration

# Editor surface
editor:
  column_width: 80        # Max content column width; the column is centered
  show_status_bar: true   # Status line at the bottom
  auto_reload: true       # Reload when the file changes on disk (clean buffer only)
  # markdown_style: dark  # Help rendering style: "dark" (default) or "light"

# Drag selection tuning
selection:
  scroll_zone: 3          # Edge band height (rows) that auto-scrolls while dragging
  base_scroll_speed: 0.5  # Auto-scroll speed before viewport normalization
  reference_rows: 24      # Viewport height where auto-scroll runs at base speed
  throttle_ms: 10         # Pointer-move coalescing interval
  scroll_tick_ms: 50      # Auto-scroll loop interval

# Colors
# theme:
#   preset: default         # Built-in preset: default, catppuccin-mocha, high-contrast
#   mode: auto              # Background assumption: auto, dark, light
#   colors:                 # Per-token overrides (hex values)
#     selection.block_bg: "#1F4068"
#     selection.rect: "#54A0FF"

# Trace export
# tracing:
#   enabled: false                # Enable/disable tracing (default: false)
#   exporter: file                # Export backend: none, file, stdout, otlp
#   file_path: ~/.config/encre/traces/traces.jsonl
#   otlp_endpoint: localhost:4317 # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0              # Sampling rate 0.0-1.0

# Feature flags
flags:
  rect-select: true       # Drag on the canvas margin to draw a selection rectangle
  markdown-preview: true  # ctrl+p renders the document as styled markdown
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

// ResolveTracesPath returns the configured trace file path or the default
// under the config directory.
func (t TracingConfig) ResolveTracesPath() string {
	if t.FilePath != "" {
		return t.FilePath
	}
	return paths.TracesFile()
}
