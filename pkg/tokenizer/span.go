package tokenizer

// Code is a single character of input handed to the state machine, or EOF.
type Code rune

// EOF marks the end of the character stream.
const EOF Code = -1

// SpanKind names the region opened by an Enter event and closed by the
// matching Exit event.
type SpanKind string

const (
	Citation              SpanKind = "citation"              // the whole [...] or @[...] construct
	CitationMarker        SpanKind = "citationMarker"        // the literal [ and ] delimiters
	CitationMarkerAlt     SpanKind = "citationMarkerAlt"     // the literal @[ opening
	CitationItem          SpanKind = "citationItem"          // one semicolon-delimited reference
	CitationItemPrefix    SpanKind = "citationItemPrefix"    // free text before the key
	AuthorSuppressMarker  SpanKind = "authorSuppressMarker"  // the - before a key
	CitationItemSymbol    SpanKind = "citationItemSymbol"    // the @ introducing a key
	CitationItemKey       SpanKind = "citationItemKey"       // the key text
	CitationItemSuffix    SpanKind = "citationItemSuffix"    // free text after the key
	CitationItemSeparator SpanKind = "citationItemSeparator" // the ; between items
)

// Status is the verdict returned by Machine.Step.
type Status int

const (
	Continue Status = iota // more input is needed
	Accept                 // a complete citation was consumed
	Reject                 // the input is not a citation
)

func (s Status) String() string {
	switch s {
	case Continue:
		return "continue"
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	}
	return "unknown"
}

// Effects is the host side of a scan. The machine reports span boundaries
// and consumed characters through it and never looks at the input itself.
type Effects interface {
	Enter(kind SpanKind)
	Exit(kind SpanKind)
	Consume(code Code)
}
