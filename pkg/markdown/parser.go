package markdown

import (
	"github.com/sirupsen/logrus"
	"github.com/spicery/cite-tokenizer/pkg/cite"
	"github.com/spicery/cite-tokenizer/pkg/tokenizer"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// parserPriority puts the citation parser ahead of goldmark's link parser,
// which also triggers on '['.
const parserPriority = 150

type citationParser struct {
	syntax tokenizer.Options
	logger logrus.FieldLogger
}

// NewParser returns an inline parser for the enabled citation syntaxes.
func NewParser(syntax tokenizer.Options, logger logrus.FieldLogger) parser.InlineParser {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &citationParser{syntax: syntax, logger: logger}
}

func (p *citationParser) Trigger() []byte {
	return p.syntax.Triggers()
}

// Parse runs the citation machine over the rest of the current line. A
// citation never spans a line break, so the line is all the input it can
// use. Returning nil leaves the reader where it was and goldmark treats the
// trigger as ordinary text or hands it to the next parser.
func (p *citationParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, segment := block.PeekLine()
	if len(line) == 0 {
		return nil
	}
	alt, ok := p.syntax.Dispatch(rune(line[0]))
	if !ok {
		return nil
	}

	input := string(line)
	result, ok := tokenizer.Attempt(input, alt)
	if !ok {
		p.logger.WithFields(logrus.Fields{
			"offset": segment.Start,
			"alt":    alt,
		}).Debug("not a citation")
		return nil
	}

	c, err := cite.Build(input, result.Events)
	if err != nil {
		p.logger.WithError(err).WithField("offset", segment.Start).Warn("discarding malformed citation")
		return nil
	}

	block.Advance(result.Length)
	return NewNode(c, text.NewSegment(segment.Start, segment.Start+result.Length))
}
