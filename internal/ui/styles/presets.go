// Package styles contains Lip Gloss style definitions.
package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"high-contrast":    HighContrastPreset,
}

// DefaultPreset is the stock encre color scheme.
// Color values match the dark variants in styles.go.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default encre theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#CCCCCC",
		TokenTextSecondary:   "#BBBBBB",
		TokenTextMuted:       "#696969",
		TokenTextPlaceholder: "#555555",

		TokenBorderDefault: "#696969",
		TokenBorderFocus:   "#54A0FF",

		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",

		TokenSelectionIndicator: "#FFFFFF",
		TokenBlockSelectionBg:   "#1F4068",
		TokenTextSelectionBg:    "#3A3D41",
		TokenRectBorder:         "#54A0FF",
		TokenCaret:              "#FFFFFF",

		TokenHeading:    "#FFFFFF",
		TokenCodeText:   "#A6E3A1",
		TokenCodeBg:     "#1E1E2E",
		TokenQuote:      "#9399B2",
		TokenQuoteBar:   "#585B70",
		TokenListBullet: "#89B4FA",
		TokenDivider:    "#45475A",

		TokenOverlayTitle:  "#C9C9C9",
		TokenOverlayBorder: "#8C8C8C",

		TokenToastSuccess: "#73F59F",
		TokenToastError:   "#FF8787",
		TokenToastInfo:    "#54A0FF",
		TokenToastWarn:    "#FECA57",
	},
}

// CatppuccinMochaPreset uses the Catppuccin Mocha palette.
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Catppuccin Mocha (dark)",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#CDD6F4",
		TokenTextSecondary:   "#BAC2DE",
		TokenTextMuted:       "#6C7086",
		TokenTextPlaceholder: "#585B70",

		TokenBorderDefault: "#585B70",
		TokenBorderFocus:   "#89B4FA",

		TokenStatusSuccess: "#A6E3A1",
		TokenStatusWarning: "#F9E2AF",
		TokenStatusError:   "#F38BA8",

		TokenSelectionIndicator: "#CDD6F4",
		TokenBlockSelectionBg:   "#313244",
		TokenTextSelectionBg:    "#45475A",
		TokenRectBorder:         "#89B4FA",
		TokenCaret:              "#F5E0DC",

		TokenHeading:    "#CBA6F7",
		TokenCodeText:   "#A6E3A1",
		TokenCodeBg:     "#181825",
		TokenQuote:      "#9399B2",
		TokenQuoteBar:   "#585B70",
		TokenListBullet: "#89B4FA",
		TokenDivider:    "#45475A",

		TokenOverlayTitle:  "#CDD6F4",
		TokenOverlayBorder: "#6C7086",

		TokenToastSuccess: "#A6E3A1",
		TokenToastError:   "#F38BA8",
		TokenToastInfo:    "#89B4FA",
		TokenToastWarn:    "#F9E2AF",
	},
}

// HighContrastPreset maximizes legibility on low-quality displays.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast black and white",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#FFFFFF",
		TokenTextSecondary:   "#FFFFFF",
		TokenTextMuted:       "#AAAAAA",
		TokenTextPlaceholder: "#888888",

		TokenBorderDefault: "#FFFFFF",
		TokenBorderFocus:   "#FFFF00",

		TokenStatusSuccess: "#00FF00",
		TokenStatusWarning: "#FFFF00",
		TokenStatusError:   "#FF0000",

		TokenSelectionIndicator: "#FFFF00",
		TokenBlockSelectionBg:   "#0000AA",
		TokenTextSelectionBg:    "#555555",
		TokenRectBorder:         "#FFFF00",
		TokenCaret:              "#FFFFFF",

		TokenHeading:    "#FFFFFF",
		TokenCodeText:   "#00FF00",
		TokenCodeBg:     "#000000",
		TokenQuote:      "#CCCCCC",
		TokenQuoteBar:   "#FFFFFF",
		TokenListBullet: "#FFFF00",
		TokenDivider:    "#FFFFFF",

		TokenOverlayTitle:  "#FFFFFF",
		TokenOverlayBorder: "#FFFFFF",

		TokenToastSuccess: "#00FF00",
		TokenToastError:   "#FF0000",
		TokenToastInfo:    "#00FFFF",
		TokenToastWarn:    "#FFFF00",
	},
}
