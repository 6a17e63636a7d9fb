// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#2E2E2E", Dark: "#CCCCCC"} // Body text
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BBBBBB"} // Status line, counts
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, help text
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#555555"} // Empty-block prompts

	// Semantic color names - Border
	BorderDefaultColor        = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"} // Focused borders

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Selection indicator color (the ">" prefix in menus)
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}

	// Block selection: background wash on every block inside the selected
	// range, shared by the drag engines and shift+arrow selection.
	BlockSelectionBgColor = lipgloss.AdaptiveColor{Light: "#D6EBFF", Dark: "#1F4068"}

	// In-input text selection background.
	TextSelectionBgColor = lipgloss.AdaptiveColor{Light: "#C9DDF0", Dark: "#3A3D41"}

	// Rubber-band rectangle drawn during a rectangle drag.
	RectBorderColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Caret cell.
	CaretColor = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#FFFFFF"}

	// Block kind accents
	HeadingColor    = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#FFFFFF"}
	CodeTextColor   = lipgloss.AdaptiveColor{Light: "#2E2E2E", Dark: "#A6E3A1"}
	CodeBgColor     = lipgloss.AdaptiveColor{Light: "#F0F0F0", Dark: "#1E1E2E"}
	QuoteColor      = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#9399B2"}
	QuoteBarColor   = lipgloss.AdaptiveColor{Light: "#BBBBBB", Dark: "#585B70"}
	ListBulletColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#89B4FA"}
	DividerColor    = lipgloss.AdaptiveColor{Light: "#CCCCCC", Dark: "#45475A"}

	// Overlay colors
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#2E2E2E", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#8C8C8C"}

	// Toast notification colors
	ToastBorderSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	ToastBorderErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	ToastBorderInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	ToastBorderWarnColor    = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}

	// Selection indicator style (the ">" prefix in the toolbox and settings menus)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	// Block rendering styles
	SelectedBlockStyle = lipgloss.NewStyle().Background(BlockSelectionBgColor)
	TextSelectionStyle = lipgloss.NewStyle().Background(TextSelectionBgColor)
	CaretStyle         = lipgloss.NewStyle().Reverse(true)
	PlaceholderStyle   = lipgloss.NewStyle().Foreground(TextPlaceholderColor).Italic(true)

	Heading1Style = lipgloss.NewStyle().Bold(true).Foreground(HeadingColor)
	Heading2Style = lipgloss.NewStyle().Bold(true).Foreground(HeadingColor)
	Heading3Style = lipgloss.NewStyle().Bold(true).Foreground(TextSecondaryColor)
	CodeStyle     = lipgloss.NewStyle().Foreground(CodeTextColor).Background(CodeBgColor)
	QuoteStyle    = lipgloss.NewStyle().Italic(true).Foreground(QuoteColor)
	QuoteBarStyle = lipgloss.NewStyle().Foreground(QuoteBarColor)
	BulletStyle   = lipgloss.NewStyle().Foreground(ListBulletColor)
	DividerStyle  = lipgloss.NewStyle().Foreground(DividerColor)
	RectStyle     = lipgloss.NewStyle().Foreground(RectBorderColor)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)
)
