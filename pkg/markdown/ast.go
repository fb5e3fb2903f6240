package markdown

import (
	"strconv"
	"strings"

	"github.com/spicery/cite-tokenizer/pkg/cite"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// KindCitation is the node kind of a Node.
var KindCitation = ast.NewNodeKind("Citation")

// Node is an inline citation in a goldmark tree. It has no children; the
// rendered text comes from Segment.
type Node struct {
	ast.BaseInline

	Citation *cite.Citation
	Segment  text.Segment
}

// NewNode returns a citation node covering segment.
func NewNode(c *cite.Citation, segment text.Segment) *Node {
	return &Node{Citation: c, Segment: segment}
}

// Kind implements ast.Node.
func (n *Node) Kind() ast.NodeKind {
	return KindCitation
}

// Dump implements ast.Node.
func (n *Node) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Value":     string(n.Segment.Value(source)),
		"Keys":      strings.Join(n.Citation.Keys(), " "),
		"AltSyntax": strconv.FormatBool(n.Citation.AltSyntax),
	}, nil)
}

// Citations returns the citation nodes under root in document order.
func Citations(root ast.Node) []*Node {
	var nodes []*Node
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if c, ok := n.(*Node); ok {
			nodes = append(nodes, c)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return nodes
}
