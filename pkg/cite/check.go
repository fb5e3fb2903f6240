package cite

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/hashicorp/go-multierror"
	"github.com/spicery/cite-tokenizer/pkg/tokenizer"
)

// ErrNoItems is returned by Check for a citation with an empty item list.
var ErrNoItems = errors.New("citation has no items")

// Check reports every reason why c, written with Markdown(opts), would not
// read back as the same record under the given syntax options. A nil error
// means the round trip is exact.
func (c *Citation) Check(syntax tokenizer.Options, opts MarkdownOptions) error {
	if len(c.Items) == 0 {
		return ErrNoItems
	}

	var errs *multierror.Error
	alt := c.UsesAltSyntax(opts)
	if opts.UseNodeValue {
		alt = c.AltSyntax
	}
	if alt && !syntax.EnableAltSyntax {
		errs = multierror.Append(errs, errors.New("alt syntax is disabled"))
	}
	if !alt && !syntax.EnablePandocSyntax {
		errs = multierror.Append(errs, errors.New("pandoc syntax is disabled"))
	}

	if !opts.UseNodeValue {
		for i, item := range c.Items {
			first := i == 0 && alt
			suppress := opts.EnableAuthorSuppression && item.SuppressAuthor
			if err := checkItem(item, first, suppress); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("item %d (%q): %w", i+1, item.Key, err))
			}
		}
	}
	if errs != nil {
		return errs.ErrorOrNil()
	}

	// The per-item rules should cover every divergence; confirm against a
	// real parse.
	source := c.Markdown(opts)
	got, ok := Parse(source, syntax)
	if !ok {
		return fmt.Errorf("%q does not parse as a citation", source)
	}
	if got.Value != source {
		return fmt.Errorf("%q parses as the shorter citation %q", source, got.Value)
	}
	want := c.expected(opts, alt)
	if !sameItems(got.Items, want) || got.AltSyntax != alt {
		return fmt.Errorf("%q reads back as a different citation", source)
	}
	return nil
}

// expected returns the items a re-parse of Markdown(opts) should produce.
func (c *Citation) expected(opts MarkdownOptions, alt bool) []Item {
	items := make([]Item, len(c.Items))
	for i, item := range c.Items {
		if !opts.UseNodeValue && !opts.EnableAuthorSuppression {
			item.SuppressAuthor = false
		}
		if i == 0 && alt && !opts.UseNodeValue {
			item.Prefix = ""
		}
		items[i] = item
	}
	return items
}

func sameItems(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func checkItem(item Item, altFirst, suppress bool) error {
	var errs *multierror.Error

	if item.Key == "" {
		errs = multierror.Append(errs, errors.New("empty key"))
	}
	for _, r := range item.Key {
		if r == ' ' || r == ',' || r == ';' || r == ']' || unicode.IsControl(r) {
			errs = multierror.Append(errs, fmt.Errorf("key contains %q", r))
			break
		}
	}
	if altFirst && !suppress && strings.HasPrefix(item.Key, "-") {
		errs = multierror.Append(errs, errors.New("key starts with - and would read as author suppression"))
	}

	if p := item.Prefix; p != "" && !altFirst {
		if strings.ContainsAny(p, "@]\r\n") {
			errs = multierror.Append(errs, errors.New("prefix contains @, ] or a line break"))
		}
		if !suppress && !strings.HasSuffix(p, " ") {
			errs = multierror.Append(errs, errors.New("prefix does not end with a space"))
		}
	}

	if s := item.Suffix; s != "" {
		if s[0] != ' ' && s[0] != ',' {
			errs = multierror.Append(errs, errors.New("suffix does not start with a space or a comma"))
		}
		if strings.ContainsAny(s, ";]\r\n") {
			errs = multierror.Append(errs, errors.New("suffix contains ;, ] or a line break"))
		}
	}

	return errs.ErrorOrNil()
}
