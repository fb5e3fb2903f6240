package tokenizer

import (
	"fmt"
	"unicode/utf8"
)

// EventType distinguishes the three kinds of Event.
type EventType int

const (
	EnterEvent EventType = iota
	ExitEvent
	ConsumeEvent
)

func (t EventType) String() string {
	switch t {
	case EnterEvent:
		return "enter"
	case ExitEvent:
		return "exit"
	case ConsumeEvent:
		return "consume"
	}
	return "unknown"
}

// Event is one effect reported by the machine. Offset is the byte offset
// in the scanned input at which the event happened; for a ConsumeEvent it is
// the offset of the consumed character.
type Event struct {
	Type   EventType
	Kind   SpanKind // empty for ConsumeEvent
	Code   Code     // ConsumeEvent only
	Offset int
}

func (e Event) String() string {
	if e.Type == ConsumeEvent {
		return fmt.Sprintf("consume %q @%d", rune(e.Code), e.Offset)
	}
	return fmt.Sprintf("%s %s @%d", e.Type, e.Kind, e.Offset)
}

// Recorder is an Effects implementation that buffers the events of one
// trial scan. Nothing reaches the host's output until the scan is accepted;
// on rejection the host throws the recorder away.
type Recorder struct {
	events []Event
	open   []SpanKind // stack of spans entered but not yet exited
	widths []int      // byte widths of characters fed but not yet consumed
	offset int
	err    error
}

// Feed announces the byte width of the next character handed to the
// machine. Consume uses these widths to keep offsets exact even when the
// machine holds a character back for lookahead.
func (r *Recorder) Feed(width int) {
	if width > 0 {
		r.widths = append(r.widths, width)
	}
}

// Enter implements Effects.
func (r *Recorder) Enter(kind SpanKind) {
	r.open = append(r.open, kind)
	r.events = append(r.events, Event{Type: EnterEvent, Kind: kind, Offset: r.offset})
}

// Exit implements Effects. Exits must close the innermost open span.
func (r *Recorder) Exit(kind SpanKind) {
	n := len(r.open)
	if n == 0 || r.open[n-1] != kind {
		if r.err == nil {
			r.err = fmt.Errorf("exit %s at offset %d does not match the innermost open span", kind, r.offset)
		}
	} else {
		r.open = r.open[:n-1]
	}
	r.events = append(r.events, Event{Type: ExitEvent, Kind: kind, Offset: r.offset})
}

// Consume implements Effects.
func (r *Recorder) Consume(code Code) {
	r.events = append(r.events, Event{Type: ConsumeEvent, Code: code, Offset: r.offset})
	width := utf8.RuneLen(rune(code))
	if len(r.widths) > 0 {
		width = r.widths[0]
		r.widths = r.widths[1:]
	}
	r.offset += width
}

// Events returns the buffered events.
func (r *Recorder) Events() []Event {
	return r.events
}

// Offset returns the number of bytes consumed so far.
func (r *Recorder) Offset() int {
	return r.offset
}

// Err reports a violation of the span nesting discipline, if any.
func (r *Recorder) Err() error {
	if r.err != nil {
		return r.err
	}
	if len(r.open) > 0 {
		return fmt.Errorf("%d span(s) left open, innermost %s", len(r.open), r.open[len(r.open)-1])
	}
	return nil
}

// Result describes an accepted citation.
type Result struct {
	Events    []Event
	Length    int // bytes consumed, up to and including the closing ']'
	AltSyntax bool
}

// Attempt runs one citation scan over input, which must start at the
// trigger character. It reports false when the input is not a citation; in
// that case nothing has been committed and the host should treat the
// trigger as ordinary text.
func Attempt(input string, alt bool) (*Result, bool) {
	rec := &Recorder{}
	m := NewMachine(rec, alt)

	status := Continue
	for pos := 0; status == Continue; {
		if pos >= len(input) {
			status = m.Step(EOF)
			break
		}
		r, width := utf8.DecodeRuneInString(input[pos:])
		rec.Feed(width)
		status = m.Step(Code(r))
		pos += width
	}

	if status != Accept || rec.Err() != nil {
		return nil, false
	}
	return &Result{Events: rec.Events(), Length: rec.Offset(), AltSyntax: alt}, true
}
