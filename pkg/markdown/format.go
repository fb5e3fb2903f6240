package markdown

import (
	"bytes"
	"fmt"

	"github.com/spicery/cite-tokenizer/pkg/cite"
	"github.com/spicery/cite-tokenizer/pkg/tokenizer"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
)

// Parse returns the citations of a markdown document. Citations inside code
// spans, code blocks and raw HTML are not reported.
func Parse(source []byte, syntax tokenizer.Options, opts ...Option) []*Node {
	md := goldmark.New(goldmark.WithExtensions(New(append([]Option{WithSyntax(syntax)}, opts...)...)))
	doc := md.Parser().Parse(text.NewReader(source))
	return Citations(doc)
}

// Format rewrites every citation of a markdown document in the form chosen
// by opts and leaves the rest of the source untouched.
func Format(source []byte, syntax tokenizer.Options, opts cite.MarkdownOptions) ([]byte, error) {
	var out bytes.Buffer
	last := 0
	for _, n := range Parse(source, syntax) {
		if n.Segment.Start < last {
			return nil, fmt.Errorf("citation %q at offset %d overlaps the previous one", n.Citation.Value, n.Segment.Start)
		}
		out.Write(source[last:n.Segment.Start])
		out.WriteString(n.Citation.Markdown(opts))
		last = n.Segment.Stop
	}
	out.Write(source[last:])
	return out.Bytes(), nil
}
