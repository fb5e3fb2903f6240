package cite

import "strings"

// MarkdownOptions controls how a Citation is written back to markdown.
type MarkdownOptions struct {
	// StandardizeAltSyntax writes alt-syntax citations as [@key].
	StandardizeAltSyntax bool `json:"standardizeAltSyntax" yaml:"standardize_alt_syntax"`
	// EnableAuthorSuppression keeps the - marker on suppressed items.
	EnableAuthorSuppression bool `json:"enableAuthorSuppression" yaml:"author_suppression"`
	// UseNodeValue writes the original source text and ignores the items.
	// It overrides the other options.
	UseNodeValue bool `json:"useNodeValue" yaml:"use_node_value"`
}

// DefaultMarkdownOptions keeps author suppression and the original syntax.
func DefaultMarkdownOptions() MarkdownOptions {
	return MarkdownOptions{EnableAuthorSuppression: true}
}

// UsesAltSyntax reports whether Markdown would write c as @[...]. The alt
// form has no room for a prefix on the first item.
func (c *Citation) UsesAltSyntax(opts MarkdownOptions) bool {
	if opts.StandardizeAltSyntax || !c.AltSyntax || len(c.Items) == 0 {
		return false
	}
	return c.Items[0].Prefix == ""
}

// Markdown reconstructs the citation. Item text is written as is; use Check
// to find records that would not read back the same.
func (c *Citation) Markdown(opts MarkdownOptions) string {
	if opts.UseNodeValue {
		return c.Value
	}
	if len(c.Items) == 0 {
		return ""
	}

	alt := c.UsesAltSyntax(opts)
	var sb strings.Builder
	for i, item := range c.Items {
		suppress := ""
		if opts.EnableAuthorSuppression && item.SuppressAuthor {
			suppress = "-"
		}
		switch {
		case i > 0:
			sb.WriteString(";" + item.Prefix + suppress + "@")
		case alt:
			sb.WriteString("@[" + suppress)
		default:
			sb.WriteString("[" + item.Prefix + suppress + "@")
		}
		sb.WriteString(item.Key)
		sb.WriteString(item.Suffix)
	}
	sb.WriteByte(']')
	return sb.String()
}
