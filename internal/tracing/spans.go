package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys. These are the semantic conventions for encre spans.
const (
	// Document attributes
	AttrDocumentPath = "document.path"
	AttrBlockCount   = "block.count"

	// Selection attributes
	AttrSelectionSize = "selection.size"
	AttrSelectionMode = "selection.mode"
)

// Span names.
const (
	SpanDocumentLoad   = "document.load"
	SpanDocumentSave   = "document.save"
	SpanDocumentReload = "document.reload"
	SpanClipboardCopy  = "clipboard.copy"
	SpanRectangleDrag  = "selection.rectangle"
	SpanCrossDrag      = "selection.cross"
)

// Selection mode values for AttrSelectionMode.
const (
	ModeRectangle = "rectangle"
	ModeCross     = "cross"
)

// StartSpan opens a span on the globally registered tracer. Until NewProvider
// installs a real provider the global tracer is a no-op, so callers never need
// to check whether tracing is configured.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(defaultServiceName).Start(ctx, name, opts...)
}

// EndSpan records err on the span, sets the status to match, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
