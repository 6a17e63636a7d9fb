// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styleRebuilders holds callbacks to rebuild styles in other packages.
// This avoids import cycles (styles can't import the packages that use it,
// but they can register).
var styleRebuilders []func()

// RegisterStyleRebuilder adds a callback that will be called after ApplyTheme
// updates colors. Use this to rebuild styles in packages that depend on styles.
func RegisterStyleRebuilder(fn func()) {
	styleRebuilders = append(styleRebuilders, fn)
}

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Mode   string
	Colors map[string]string
}

// ApplyTheme applies a complete theme configuration.
// Order of application:
// 1. Start with default colors
// 2. Apply preset (if specified)
// 3. Apply individual color overrides
// 4. Rebuild all Style objects
func ApplyTheme(cfg ThemeConfig) error {
	colors := maps.Clone(DefaultPreset.Colors)

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	switch cfg.Mode {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}

	applyColors(colors)
	rebuildStyles()

	return nil
}

func applyColors(colors map[ColorToken]string) {
	// Overridden tokens apply to both terminal modes.
	makeColor := func(hex string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	}

	// Text hierarchy
	if c, ok := colors[TokenTextPrimary]; ok {
		TextPrimaryColor = makeColor(c)
	}
	if c, ok := colors[TokenTextSecondary]; ok {
		TextSecondaryColor = makeColor(c)
	}
	if c, ok := colors[TokenTextMuted]; ok {
		TextMutedColor = makeColor(c)
	}
	if c, ok := colors[TokenTextPlaceholder]; ok {
		TextPlaceholderColor = makeColor(c)
	}

	// Borders
	if c, ok := colors[TokenBorderDefault]; ok {
		BorderDefaultColor = makeColor(c)
	}
	if c, ok := colors[TokenBorderFocus]; ok {
		BorderHighlightFocusColor = makeColor(c)
	}

	// Status
	if c, ok := colors[TokenStatusSuccess]; ok {
		StatusSuccessColor = makeColor(c)
	}
	if c, ok := colors[TokenStatusWarning]; ok {
		StatusWarningColor = makeColor(c)
	}
	if c, ok := colors[TokenStatusError]; ok {
		StatusErrorColor = makeColor(c)
	}

	// Selection
	if c, ok := colors[TokenSelectionIndicator]; ok {
		SelectionIndicatorColor = makeColor(c)
	}
	if c, ok := colors[TokenBlockSelectionBg]; ok {
		BlockSelectionBgColor = makeColor(c)
	}
	if c, ok := colors[TokenTextSelectionBg]; ok {
		TextSelectionBgColor = makeColor(c)
	}
	if c, ok := colors[TokenRectBorder]; ok {
		RectBorderColor = makeColor(c)
	}
	if c, ok := colors[TokenCaret]; ok {
		CaretColor = makeColor(c)
	}

	// Block kinds
	if c, ok := colors[TokenHeading]; ok {
		HeadingColor = makeColor(c)
	}
	if c, ok := colors[TokenCodeText]; ok {
		CodeTextColor = makeColor(c)
	}
	if c, ok := colors[TokenCodeBg]; ok {
		CodeBgColor = makeColor(c)
	}
	if c, ok := colors[TokenQuote]; ok {
		QuoteColor = makeColor(c)
	}
	if c, ok := colors[TokenQuoteBar]; ok {
		QuoteBarColor = makeColor(c)
	}
	if c, ok := colors[TokenListBullet]; ok {
		ListBulletColor = makeColor(c)
	}
	if c, ok := colors[TokenDivider]; ok {
		DividerColor = makeColor(c)
	}

	// Overlays
	if c, ok := colors[TokenOverlayTitle]; ok {
		OverlayTitleColor = makeColor(c)
	}
	if c, ok := colors[TokenOverlayBorder]; ok {
		OverlayBorderColor = makeColor(c)
	}

	// Toast
	if c, ok := colors[TokenToastSuccess]; ok {
		ToastBorderSuccessColor = makeColor(c)
	}
	if c, ok := colors[TokenToastError]; ok {
		ToastBorderErrorColor = makeColor(c)
	}
	if c, ok := colors[TokenToastInfo]; ok {
		ToastBorderInfoColor = makeColor(c)
	}
	if c, ok := colors[TokenToastWarn]; ok {
		ToastBorderWarnColor = makeColor(c)
	}
}

// rebuildStyles recreates all Style objects with updated colors.
// This is necessary because lipgloss.Style objects capture colors at creation time.
func rebuildStyles() {
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	SelectedBlockStyle = lipgloss.NewStyle().Background(BlockSelectionBgColor)
	TextSelectionStyle = lipgloss.NewStyle().Background(TextSelectionBgColor)
	CaretStyle = lipgloss.NewStyle().Reverse(true)
	PlaceholderStyle = lipgloss.NewStyle().Foreground(TextPlaceholderColor).Italic(true)

	Heading1Style = lipgloss.NewStyle().Bold(true).Foreground(HeadingColor)
	Heading2Style = lipgloss.NewStyle().Bold(true).Foreground(HeadingColor)
	Heading3Style = lipgloss.NewStyle().Bold(true).Foreground(TextSecondaryColor)
	CodeStyle = lipgloss.NewStyle().Foreground(CodeTextColor).Background(CodeBgColor)
	QuoteStyle = lipgloss.NewStyle().Italic(true).Foreground(QuoteColor)
	QuoteBarStyle = lipgloss.NewStyle().Foreground(QuoteBarColor)
	BulletStyle = lipgloss.NewStyle().Foreground(ListBulletColor)
	DividerStyle = lipgloss.NewStyle().Foreground(DividerColor)
	RectStyle = lipgloss.NewStyle().Foreground(RectBorderColor)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(TextSecondaryColor).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(StatusErrorColor).
		Bold(true).
		Padding(1, 2)

	for _, fn := range styleRebuilders {
		fn()
	}
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
