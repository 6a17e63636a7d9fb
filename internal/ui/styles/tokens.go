// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary     ColorToken = "text.primary"
	TokenTextSecondary   ColorToken = "text.secondary"
	TokenTextMuted       ColorToken = "text.muted"
	TokenTextPlaceholder ColorToken = "text.placeholder"

	// Borders
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	// Selection
	TokenSelectionIndicator ColorToken = "selection.indicator"
	TokenBlockSelectionBg   ColorToken = "selection.block_bg"
	TokenTextSelectionBg    ColorToken = "selection.text_bg"
	TokenRectBorder         ColorToken = "selection.rect"
	TokenCaret              ColorToken = "caret"

	// Block kinds
	TokenHeading    ColorToken = "kind.heading"
	TokenCodeText   ColorToken = "kind.code"
	TokenCodeBg     ColorToken = "kind.code_bg"
	TokenQuote      ColorToken = "kind.quote"
	TokenQuoteBar   ColorToken = "kind.quote_bar"
	TokenListBullet ColorToken = "kind.list_bullet"
	TokenDivider    ColorToken = "kind.divider"

	// Overlays
	TokenOverlayTitle  ColorToken = "overlay.title"
	TokenOverlayBorder ColorToken = "overlay.border"

	// Toast notifications
	TokenToastSuccess ColorToken = "toast.success"
	TokenToastError   ColorToken = "toast.error"
	TokenToastInfo    ColorToken = "toast.info"
	TokenToastWarn    ColorToken = "toast.warn"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		// Text hierarchy
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,
		TokenTextPlaceholder,

		// Borders
		TokenBorderDefault,
		TokenBorderFocus,

		// Status indicators
		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,

		// Selection
		TokenSelectionIndicator,
		TokenBlockSelectionBg,
		TokenTextSelectionBg,
		TokenRectBorder,
		TokenCaret,

		// Block kinds
		TokenHeading,
		TokenCodeText,
		TokenCodeBg,
		TokenQuote,
		TokenQuoteBar,
		TokenListBullet,
		TokenDivider,

		// Overlays
		TokenOverlayTitle,
		TokenOverlayBorder,

		// Toast notifications
		TokenToastSuccess,
		TokenToastError,
		TokenToastInfo,
		TokenToastWarn,
	}
}
