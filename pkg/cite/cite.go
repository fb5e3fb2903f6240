// Package cite turns the span events of an accepted citation into a
// structured record and renders records back to markdown.
package cite

import (
	"fmt"

	"github.com/spicery/cite-tokenizer/pkg/tokenizer"
)

// Item is one reference within a citation.
type Item struct {
	Prefix         string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Key            string `json:"key" yaml:"key"`
	Suffix         string `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	SuppressAuthor bool   `json:"suppressAuthor,omitempty" yaml:"suppressAuthor,omitempty"`
}

// Citation is the record built from one [...] or @[...] construct.
type Citation struct {
	Value     string `json:"value" yaml:"value"` // the source text of the whole citation
	AltSyntax bool   `json:"altSyntax,omitempty" yaml:"altSyntax,omitempty"`
	Items     []Item `json:"items" yaml:"items"`
}

// Keys returns the key of every item, in order.
func (c *Citation) Keys() []string {
	keys := make([]string, len(c.Items))
	for i, item := range c.Items {
		keys[i] = item.Key
	}
	return keys
}

type openSpan struct {
	kind  tokenizer.SpanKind
	start int
}

// Build populates a citation from the events of an accepted scan. Event
// offsets must index into source.
func Build(source string, events []tokenizer.Event) (*Citation, error) {
	var c *Citation
	var stack []openSpan

	for _, e := range events {
		switch e.Type {
		case tokenizer.EnterEvent:
			stack = append(stack, openSpan{kind: e.Kind, start: e.Offset})
			switch e.Kind {
			case tokenizer.Citation:
				if c != nil {
					return nil, fmt.Errorf("nested citation at offset %d", e.Offset)
				}
				c = &Citation{}
			case tokenizer.CitationItem:
				if c == nil {
					return nil, fmt.Errorf("citation item outside a citation at offset %d", e.Offset)
				}
				c.Items = append(c.Items, Item{})
			}

		case tokenizer.ExitEvent:
			if c == nil {
				return nil, fmt.Errorf("exit of %s before the citation opened", e.Kind)
			}
			n := len(stack)
			if n == 0 || stack[n-1].kind != e.Kind {
				return nil, fmt.Errorf("unbalanced exit of %s at offset %d", e.Kind, e.Offset)
			}
			span := stack[n-1]
			stack = stack[:n-1]
			if span.start > e.Offset || e.Offset > len(source) {
				return nil, fmt.Errorf("span %s [%d,%d] lies outside the source", e.Kind, span.start, e.Offset)
			}
			text := source[span.start:e.Offset]
			if err := c.exit(e.Kind, text); err != nil {
				return nil, fmt.Errorf("offset %d: %w", e.Offset, err)
			}
		}
	}

	if c == nil {
		return nil, fmt.Errorf("no citation in event stream")
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("span %s was never closed", stack[len(stack)-1].kind)
	}
	if len(c.Items) == 0 {
		return nil, fmt.Errorf("citation %q has no items", c.Value)
	}
	return c, nil
}

func (c *Citation) exit(kind tokenizer.SpanKind, text string) error {
	if kind == tokenizer.Citation {
		c.Value = text
		return nil
	}
	if kind == tokenizer.CitationMarkerAlt {
		c.AltSyntax = true
		return nil
	}

	if len(c.Items) == 0 {
		// markers and separators outside items need no bookkeeping
		return nil
	}
	item := &c.Items[len(c.Items)-1]
	switch kind {
	case tokenizer.CitationItemPrefix:
		item.Prefix = text
	case tokenizer.AuthorSuppressMarker:
		item.SuppressAuthor = true
	case tokenizer.CitationItemKey:
		if text == "" {
			return fmt.Errorf("empty citation key")
		}
		item.Key = text
	case tokenizer.CitationItemSuffix:
		item.Suffix = text
	}
	return nil
}

// Parse scans a single citation at the start of input. It reports false if
// input does not start with a citation in one of the enabled syntaxes.
func Parse(input string, options tokenizer.Options) (*Citation, bool) {
	if input == "" {
		return nil, false
	}
	alt, ok := options.Dispatch(rune(input[0]))
	if !ok {
		return nil, false
	}
	result, ok := tokenizer.Attempt(input, alt)
	if !ok {
		return nil, false
	}
	c, err := Build(input, result.Events)
	if err != nil {
		return nil, false
	}
	return c, true
}

// ParseAll returns the citations found in plain text.
func ParseAll(input string, options tokenizer.Options) ([]*Citation, error) {
	var citations []*Citation
	for _, match := range tokenizer.ScanText(input, options) {
		c, err := Build(input, match.Events)
		if err != nil {
			return citations, fmt.Errorf("citation at line %d, column %d: %w", match.Line, match.Col, err)
		}
		citations = append(citations, c)
	}
	return citations, nil
}
