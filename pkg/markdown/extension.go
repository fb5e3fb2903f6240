// Package markdown plugs the citation tokenizer into goldmark.
package markdown

import (
	"github.com/sirupsen/logrus"
	"github.com/spicery/cite-tokenizer/pkg/tokenizer"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// rendererPriority matches goldmark's own extension renderers.
const rendererPriority = 500

// Option configures the extension.
type Option func(*extension)

// WithSyntax selects the citation syntaxes to recognise.
func WithSyntax(syntax tokenizer.Options) Option {
	return func(e *extension) {
		e.syntax = syntax
	}
}

// WithHTMLClass sets the class attribute of rendered citations.
func WithHTMLClass(class string) Option {
	return func(e *extension) {
		e.class = class
	}
}

// WithLogger sets the logger for rejected and discarded citation attempts.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(e *extension) {
		e.logger = logger
	}
}

type extension struct {
	syntax tokenizer.Options
	class  string
	logger logrus.FieldLogger
}

// New returns a goldmark extension for inline citations. Without options it
// recognises the Pandoc syntax only.
func New(opts ...Option) goldmark.Extender {
	e := &extension{
		syntax: tokenizer.DefaultOptions(),
		class:  DefaultHTMLClass,
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *extension) Extend(m goldmark.Markdown) {
	if len(e.syntax.Triggers()) > 0 {
		m.Parser().AddOptions(parser.WithInlineParsers(
			util.Prioritized(NewParser(e.syntax, e.logger), parserPriority),
		))
	}
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewHTMLRenderer(e.class), rendererPriority),
	))
}
