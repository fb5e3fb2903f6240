package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// DefaultHTMLClass is the class attribute of rendered citations.
const DefaultHTMLClass = "citation"

// HTMLRenderer writes a citation as a span holding its source text.
type HTMLRenderer struct {
	class string
}

// NewHTMLRenderer returns a renderer using the given class attribute.
func NewHTMLRenderer(class string) renderer.NodeRenderer {
	if class == "" {
		class = DefaultHTMLClass
	}
	return &HTMLRenderer{class: class}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *HTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindCitation, r.renderCitation)
}

func (r *HTMLRenderer) renderCitation(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Node)

	_, _ = w.WriteString(`<span class="`)
	_, _ = w.Write(util.EscapeHTML([]byte(r.class)))
	_, _ = w.WriteString(`" data-cites="`)
	_, _ = w.Write(util.EscapeHTML([]byte(strings.Join(n.Citation.Keys(), " "))))
	_, _ = w.WriteString(`">`)
	_, _ = w.Write(util.EscapeHTML(n.Segment.Value(source)))
	_, _ = w.WriteString("</span>")
	return ast.WalkSkipChildren, nil
}
