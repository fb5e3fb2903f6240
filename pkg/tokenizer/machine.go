package tokenizer

import "unicode"

type state int

const (
	stateStart      state = iota
	stateAltBracket       // after the '@' of "@["
	stateAltHyphen        // first alt item: optional '-' but no prefix
	stateItem             // start of an item
	statePrefix           // inside free text before the key
	stateHyphen           // a '-' is pending on the lookahead
	stateKey
	stateSuffix
	stateDone
)

var stateNames = [...]string{
	stateStart:      "start",
	stateAltBracket: "altBracket",
	stateAltHyphen:  "altHyphen",
	stateItem:       "item",
	statePrefix:     "prefix",
	stateHyphen:     "hyphen",
	stateKey:        "key",
	stateSuffix:     "suffix",
	stateDone:       "done",
}

func (s state) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Machine scans a single citation one character at a time. It is created
// positioned at a trigger character ('[' for Pandoc syntax, '@' for the
// alternative syntax) and is fed characters through Step until it accepts
// or rejects. All parse state lives in the Machine and dies with it; the host
// uses a fresh Machine for every occurrence.
type Machine struct {
	effects Effects
	alt     bool
	state   state
	status  Status
	look    hyphenLookahead

	nonEmptyKey  bool // at least one key character has been consumed
	lastWasSpace bool // the last prefix character was a space
	inPrefix     bool // a prefix span is open
}

// NewMachine returns a machine that reports to effects. alt selects the
// "@[key]" syntax instead of "[@key]"; it is fixed for the whole citation.
func NewMachine(effects Effects, alt bool) *Machine {
	return &Machine{effects: effects, alt: alt}
}

// AltSyntax reports which surface syntax the machine scans.
func (m *Machine) AltSyntax() bool {
	return m.alt
}

// Status returns the current verdict.
func (m *Machine) Status() Status {
	return m.status
}

// Step hands the next character to the machine. It returns Continue while
// more input is needed. Once Accept or Reject has been returned, further
// calls return the same verdict and report nothing.
func (m *Machine) Step(code Code) Status {
	for m.status == Continue {
		if reprocess := m.transition(code); !reprocess {
			break
		}
	}
	return m.status
}

// transition runs the current state on code. It returns true when code was
// not taken and must be dispatched again in the new state.
func (m *Machine) transition(code Code) bool {
	switch m.state {
	case stateStart:
		return m.start(code)
	case stateAltBracket:
		return m.altBracket(code)
	case stateAltHyphen:
		return m.altHyphen(code)
	case stateItem:
		return m.item(code)
	case statePrefix:
		return m.prefix(code)
	case stateHyphen:
		return m.hyphen(code)
	case stateKey:
		return m.key(code)
	case stateSuffix:
		return m.suffix(code)
	}
	return m.reject()
}

func (m *Machine) start(code Code) bool {
	if m.alt {
		if code != '@' {
			return m.reject()
		}
		m.effects.Enter(Citation)
		m.effects.Enter(CitationMarkerAlt)
		m.effects.Consume(code)
		m.state = stateAltBracket
		return false
	}
	if code != '[' {
		return m.reject()
	}
	m.effects.Enter(Citation)
	m.effects.Enter(CitationMarker)
	m.effects.Consume(code)
	m.effects.Exit(CitationMarker)
	m.state = stateItem
	return false
}

func (m *Machine) altBracket(code Code) bool {
	if code != '[' {
		return m.reject()
	}
	m.effects.Consume(code)
	m.effects.Exit(CitationMarkerAlt)
	m.effects.Enter(CitationItem)
	m.state = stateAltHyphen
	return false
}

// altHyphen handles the first item of an alt-syntax citation, which may be
// author-suppressed but never has a prefix.
func (m *Machine) altHyphen(code Code) bool {
	if code == '-' {
		m.suppress(code)
		m.effects.Enter(CitationItemKey)
		m.state = stateKey
		return false
	}
	m.effects.Enter(CitationItemKey)
	m.state = stateKey
	return true
}

func (m *Machine) item(code Code) bool {
	m.nonEmptyKey = false
	m.effects.Enter(CitationItem)
	switch code {
	case '-':
		return m.beginLookahead(code)
	case '@':
		return m.atSymbol(code)
	}
	m.lastWasSpace = false
	m.inPrefix = true
	m.effects.Enter(CitationItemPrefix)
	m.state = statePrefix
	return true
}

func (m *Machine) prefix(code Code) bool {
	switch {
	case code == '-':
		return m.beginLookahead(code)
	case code == '@':
		return m.atSymbol(code)
	case code == ']' || code == EOF || isLineEnding(code):
		// the prefix never reached a key
		return m.reject()
	}
	m.lastWasSpace = code == ' '
	m.effects.Consume(code)
	return false
}

func (m *Machine) beginLookahead(code Code) bool {
	m.look = hyphenLookahead{}
	m.look.step(code)
	m.state = stateHyphen
	return false
}

// hyphen resolves a pending '-' once the following character is known.
func (m *Machine) hyphen(code Code) bool {
	if _, matched := m.look.step(code); matched {
		if m.inPrefix {
			m.effects.Exit(CitationItemPrefix)
			m.inPrefix = false
		}
		m.suppress('-')
		return m.atSymbol(code)
	}

	if !m.inPrefix {
		m.effects.Enter(CitationItemPrefix)
		m.inPrefix = true
	}
	m.effects.Consume('-')
	m.lastWasSpace = false
	m.state = statePrefix
	return true
}

func (m *Machine) suppress(code Code) {
	m.effects.Enter(AuthorSuppressMarker)
	m.effects.Consume(code)
	m.effects.Exit(AuthorSuppressMarker)
}

func (m *Machine) atSymbol(code Code) bool {
	if m.inPrefix {
		// "[prefix@key]" is not a citation
		if !m.lastWasSpace {
			return m.reject()
		}
		m.effects.Exit(CitationItemPrefix)
		m.inPrefix = false
	}
	m.effects.Enter(CitationItemSymbol)
	m.effects.Consume(code)
	m.effects.Exit(CitationItemSymbol)
	m.effects.Enter(CitationItemKey)
	m.state = stateKey
	return false
}

// key accepts any character except whitespace, control characters and the
// structural characters ',', ';' and ']'.
func (m *Machine) key(code Code) bool {
	switch {
	case code == ']' || code == ';':
		if !m.nonEmptyKey {
			return m.reject()
		}
		m.effects.Exit(CitationItemKey)
		m.effects.Exit(CitationItem)
		if code == ']' {
			return m.end(code)
		}
		m.separator(code)
		return false
	case code == ' ' || code == ',':
		if !m.nonEmptyKey {
			return m.reject()
		}
		m.effects.Exit(CitationItemKey)
		m.effects.Enter(CitationItemSuffix)
		m.state = stateSuffix
		return true
	case code == EOF || unicode.IsControl(rune(code)):
		return m.reject()
	}
	m.nonEmptyKey = true
	m.effects.Consume(code)
	return false
}

func (m *Machine) suffix(code Code) bool {
	switch {
	case code == EOF || isLineEnding(code):
		return m.reject()
	case code == ']':
		m.effects.Exit(CitationItemSuffix)
		m.effects.Exit(CitationItem)
		return m.end(code)
	case code == ';':
		m.effects.Exit(CitationItemSuffix)
		m.effects.Exit(CitationItem)
		m.separator(code)
		return false
	}
	m.effects.Consume(code)
	return false
}

func (m *Machine) separator(code Code) {
	m.effects.Enter(CitationItemSeparator)
	m.effects.Consume(code)
	m.effects.Exit(CitationItemSeparator)
	m.state = stateItem
}

func (m *Machine) end(code Code) bool {
	m.effects.Enter(CitationMarker)
	m.effects.Consume(code)
	m.effects.Exit(CitationMarker)
	m.effects.Exit(Citation)
	m.state = stateDone
	m.status = Accept
	return false
}

func (m *Machine) reject() bool {
	m.state = stateDone
	m.status = Reject
	return false
}

func isLineEnding(code Code) bool {
	return code == '\n' || code == '\r'
}
