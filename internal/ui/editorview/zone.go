package editorview

import "github.com/zjrosen/encre/internal/document"

const blockZonePrefix = "block:"

// BlockZoneID returns the bubblezone ID marking a block's rendered rows.
func BlockZoneID(id document.BlockID) string {
	return blockZonePrefix + string(id)
}
