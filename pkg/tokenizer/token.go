package tokenizer

import (
	"encoding/json"
	"fmt"
)

// Span is a half-open byte range in the scanned source.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// MarshalJSON implements custom JSON marshaling for Span.
func (s Span) MarshalJSON() ([]byte, error) {
	arr := [2]int{s.Start, s.End}
	return json.Marshal(arr)
}

// UnmarshalJSON implements custom JSON unmarshaling for Span.
func (s *Span) UnmarshalJSON(data []byte) error {
	var arr [2]int
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	s.Start = arr[0]
	s.End = arr[1]
	return nil
}

// Token is one closed span of a citation, in the order it was entered.
type Token struct {
	Kind  SpanKind `json:"kind"`
	Text  string   `json:"text"`
	Span  Span     `json:"span"`
	Depth int      `json:"depth"` // 0 for the citation itself
}

// NewToken creates a new token with the basic required fields.
func NewToken(kind SpanKind, text string, span Span, depth int) *Token {
	return &Token{
		Kind:  kind,
		Text:  text,
		Span:  span,
		Depth: depth,
	}
}

// Tokens pairs the Enter and Exit events of an accepted scan into tokens.
// Offsets in events must be absolute offsets into source.
func Tokens(source string, events []Event) ([]*Token, error) {
	var tokens []*Token
	var open []int // indexes into tokens
	for _, e := range events {
		switch e.Type {
		case EnterEvent:
			open = append(open, len(tokens))
			tokens = append(tokens, NewToken(e.Kind, "", Span{Start: e.Offset}, len(open)-1))
		case ExitEvent:
			n := len(open)
			if n == 0 || tokens[open[n-1]].Kind != e.Kind {
				return nil, fmt.Errorf("unbalanced exit of %s at offset %d", e.Kind, e.Offset)
			}
			token := tokens[open[n-1]]
			if e.Offset < token.Span.Start || e.Offset > len(source) {
				return nil, fmt.Errorf("span %s [%d,%d] lies outside the source", e.Kind, token.Span.Start, e.Offset)
			}
			token.Span.End = e.Offset
			token.Text = source[token.Span.Start:e.Offset]
			open = open[:n-1]
		}
	}
	if len(open) > 0 {
		return nil, fmt.Errorf("span %s was never closed", tokens[open[len(open)-1]].Kind)
	}
	return tokens, nil
}
