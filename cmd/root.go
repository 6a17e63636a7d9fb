// Package cmd contains the encre command line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/encre/internal/app"
	"github.com/zjrosen/encre/internal/config"
	"github.com/zjrosen/encre/internal/document"
	"github.com/zjrosen/encre/internal/log"
	"github.com/zjrosen/encre/internal/paths"
	"github.com/zjrosen/encre/internal/tracing"
	"github.com/zjrosen/encre/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "encre [file]",
	Short: "A block-based markdown editor for the terminal",
	Long: `A terminal markdown editor built around blocks: paragraphs, headings,
code, lists, and quotes that are edited in place and rearranged like
cards. Selection works across blocks with shift+arrows, or with the
mouse by dragging a rectangle on the canvas margin.

With no arguments encre reopens the most recent document, falling back
to ` + paths.DefaultDocumentName + ` in the current directory.`,
	Args:    cobra.MaximumNArgs(1),
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/encre/config.yaml)")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false,
		"enable debug logging and the F2 log overlay")
	rootCmd.Flags().Bool("no-auto-reload", false,
		"disable reloading the document when it changes on disk")
	rootCmd.Flags().Bool("no-color", false,
		"disable color output")
	rootCmd.Flags().String("trace-exporter", "",
		"trace exporter override: none, file, stdout, otlp")

	_ = viper.BindPFlag("debug", rootCmd.Flags().Lookup("debug"))
	_ = viper.BindPFlag("tracing.exporter", rootCmd.Flags().Lookup("trace-exporter"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("editor.column_width", defaults.Editor.ColumnWidth)
	viper.SetDefault("editor.show_status_bar", defaults.Editor.ShowStatusBar)
	viper.SetDefault("editor.auto_reload", defaults.Editor.AutoReload)
	viper.SetDefault("editor.markdown_style", defaults.Editor.MarkdownStyle)
	viper.SetDefault("selection.scroll_zone", defaults.Selection.ScrollZone)
	viper.SetDefault("selection.base_scroll_speed", defaults.Selection.BaseScrollSpeed)
	viper.SetDefault("selection.reference_rows", defaults.Selection.ReferenceRows)
	viper.SetDefault("selection.throttle_ms", defaults.Selection.ThrottleMS)
	viper.SetDefault("selection.scroll_tick_ms", defaults.Selection.ScrollTickMS)
	viper.SetDefault("theme.preset", defaults.Theme.Preset)
	viper.SetDefault("theme.mode", defaults.Theme.Mode)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("flags", defaults.Flags)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .encre/config.yaml (current directory, per-project overrides)
		// 2. ~/.config/encre/config.yaml (user config)
		if _, err := os.Stat(".encre/config.yaml"); err == nil {
			viper.SetConfigFile(".encre/config.yaml")
		} else {
			viper.AddConfigPath(paths.ConfigDir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create a commented default in
		// the user config directory.
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			defaultPath := paths.ConfigFile()
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor || termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	if noAutoReload, _ := cmd.Flags().GetBool("no-auto-reload"); noAutoReload {
		cfg.Editor.AutoReload = false
	}
	if cmd.Flags().Changed("trace-exporter") {
		// Asking for an exporter on the command line implies tracing on.
		cfg.Tracing.Enabled = true
	}

	debug := debugFlag || cfg.Debug
	if debug {
		if err := os.MkdirAll(paths.StateDir(), 0o750); err != nil {
			return fmt.Errorf("creating state directory: %w", err)
		}
		cleanup, err := log.InitWithTeaLog(paths.LogFile(), "encre")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		defer cleanup()
		log.Info(log.CatConfig, "encre starting", "version", version, "logPath", paths.LogFile())
	}

	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Mode:   cfg.Theme.Mode,
		Colors: cfg.Theme.Colors,
	}); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     cfg.Tracing.ResolveTracesPath(),
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}()

	state, _ := config.LoadState(paths.StateFile())
	path := resolvePath(args, state)

	reg, err := loadDocument(path)
	if err != nil {
		return err
	}

	// Zones track block positions for mouse hit testing; the manager must
	// exist before the first View.
	zone.NewGlobal()

	model := app.New(reg, path, cfg, debug)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	// Clean up watcher resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	// Remember the document for the next bare "encre" invocation.
	state.Touch(path)
	if err := config.SaveState(paths.StateFile(), state); err != nil {
		log.ErrorErr(log.CatConfig, "saving editor state", err)
	}
	return nil
}

// resolvePath picks the document to open: the positional argument, the
// most recent document, or the default name in the current directory.
func resolvePath(args []string, state config.State) string {
	if len(args) > 0 {
		return paths.ResolveDocument(args[0])
	}
	if recent, ok := state.MostRecent(); ok {
		return recent
	}
	return paths.DefaultDocumentName
}

// loadDocument reads and parses the document at path. A missing file
// starts an empty document that is created on first save.
func loadDocument(path string) (reg *document.Registry, err error) {
	_, span := tracing.StartSpan(context.Background(), tracing.SpanDocumentLoad)
	span.SetAttributes(attribute.String(tracing.AttrDocumentPath, path))
	defer func() { tracing.EndSpan(span, err) }()

	data, err := os.ReadFile(path) //nolint:gosec // G304: the user names the file to edit
	if errors.Is(err, os.ErrNotExist) {
		return document.NewRegistry(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	reg = document.ParseString(string(data))
	span.SetAttributes(attribute.Int(tracing.AttrBlockCount, reg.Len()))
	return reg, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
