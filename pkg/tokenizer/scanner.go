package tokenizer

import "unicode/utf8"

// Match is a citation found by the Scanner. Events carry absolute byte
// offsets into the scanned input.
type Match struct {
	Start     int
	End       int
	Line      int
	Col       int
	AltSyntax bool
	Events    []Event
}

// Text returns the source of the match.
func (m *Match) Text(input string) string {
	return input[m.Start:m.End]
}

// Scanner is a minimal inline host. It walks plain text, hands control to
// the citation machine at every enabled trigger character and falls back to
// ordinary text when the machine rejects. Backslash escapes of ASCII
// punctuation are skipped as text, so "\@[key]" and "\[@key]" never trigger.
type Scanner struct {
	input    string
	position int
	line     int
	column   int
	options  Options
	matches  []*Match
}

// NewScanner creates a scanner over input.
func NewScanner(input string, options Options) *Scanner {
	return &Scanner{
		input:   input,
		line:    1,
		column:  1,
		options: options,
	}
}

// ScanText returns every citation in input.
func ScanText(input string, options Options) []*Match {
	return NewScanner(input, options).Scan()
}

// Scan processes the whole input and returns the citations found.
func (s *Scanner) Scan() []*Match {
	for s.hasMoreInput() {
		r, size := utf8.DecodeRuneInString(s.input[s.position:])
		if r == '\\' && s.escapesNext() {
			s.advance(2)
			continue
		}
		if match := s.matchCitation(r); match != nil {
			s.matches = append(s.matches, match)
			continue
		}
		s.advance(size)
	}
	return s.matches
}

// matchCitation attempts a citation at the current position. On success the
// scanner has advanced past it.
func (s *Scanner) matchCitation(r rune) *Match {
	alt, ok := s.options.Dispatch(r)
	if !ok {
		return nil
	}
	result, ok := Attempt(s.input[s.position:], alt)
	if !ok {
		return nil
	}

	match := &Match{
		Start:     s.position,
		End:       s.position + result.Length,
		Line:      s.line,
		Col:       s.column,
		AltSyntax: alt,
		Events:    make([]Event, len(result.Events)),
	}
	for i, e := range result.Events {
		e.Offset += s.position
		match.Events[i] = e
	}
	s.advance(result.Length)
	return match
}

func (s *Scanner) escapesNext() bool {
	next := s.position + 1
	return next < len(s.input) && isASCIIPunct(s.input[next])
}

// advance moves the position forward n bytes and updates line/column tracking.
func (s *Scanner) advance(n int) {
	end := s.position + n
	for s.position < end && s.hasMoreInput() {
		r, size := utf8.DecodeRuneInString(s.input[s.position:])
		if r == '\n' {
			s.line++
			s.column = 1
		} else {
			s.column++
		}
		s.position += size
	}
}

// hasMoreInput checks whether there is any remaining input to be processed.
func (s *Scanner) hasMoreInput() bool {
	return s.position < len(s.input)
}

func isASCIIPunct(c byte) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') || (c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}
