package cite

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/spicery/cite-tokenizer/pkg/tokenizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bothSyntaxes = tokenizer.Options{EnablePandocSyntax: true, EnableAltSyntax: true}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *Citation
	}{
		{
			name:  "prefixes and suffix",
			input: "[see @wadler1990; also @hughes1989, pp. 4] trailing",
			expected: &Citation{
				Value: "[see @wadler1990; also @hughes1989, pp. 4]",
				Items: []Item{
					{Prefix: "see ", Key: "wadler1990"},
					{Prefix: " also ", Key: "hughes1989", Suffix: ", pp. 4"},
				},
			},
		},
		{
			name:  "alt syntax with suppression",
			input: "@[-wadler1990, p. 33; -@hughes]",
			expected: &Citation{
				Value:     "@[-wadler1990, p. 33; -@hughes]",
				AltSyntax: true,
				Items: []Item{
					{Key: "wadler1990", Suffix: ", p. 33", SuppressAuthor: true},
					{Prefix: " ", Key: "hughes", SuppressAuthor: true},
				},
			},
		},
		{
			name:     "suppressed single item",
			input:    "[-@key]",
			expected: &Citation{Value: "[-@key]", Items: []Item{{Key: "key", SuppressAuthor: true}}},
		},
		{
			name:  "hyphen inside prefix",
			input: "[a-b @key]",
			expected: &Citation{
				Value: "[a-b @key]",
				Items: []Item{{Prefix: "a-b ", Key: "key"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := Parse(tt.input, bothSyntaxes)
			require.True(t, ok)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, input := range []string{"", "plain", "[@]", "[see@key]", "@[key]"} {
		_, ok := Parse(input, tokenizer.DefaultOptions())
		assert.False(t, ok, "input %q", input)
	}
}

func TestParseAll(t *testing.T) {
	citations, err := ParseAll("as shown in [@a] and @[b; @c]", bothSyntaxes)
	require.NoError(t, err)
	require.Len(t, citations, 2)
	assert.Equal(t, []string{"a"}, citations[0].Keys())
	assert.Equal(t, []string{"b", "c"}, citations[1].Keys())
	assert.True(t, citations[1].AltSyntax)
}

func TestBuildErrors(t *testing.T) {
	_, err := Build("", nil)
	assert.Error(t, err)

	_, err = Build("[", []tokenizer.Event{
		{Type: tokenizer.EnterEvent, Kind: tokenizer.Citation, Offset: 0},
		{Type: tokenizer.ExitEvent, Kind: tokenizer.CitationItem, Offset: 1},
	})
	assert.ErrorContains(t, err, "unbalanced")

	_, err = Build("[]", []tokenizer.Event{
		{Type: tokenizer.EnterEvent, Kind: tokenizer.Citation, Offset: 0},
		{Type: tokenizer.ExitEvent, Kind: tokenizer.Citation, Offset: 2},
	})
	assert.ErrorContains(t, err, "no items")
}

func TestMarkdown(t *testing.T) {
	pandoc := "[see @wadler1990; also @hughes1989, pp. 4]"
	alt := "@[-wadler1990, p. 33; -@hughes]"

	tests := []struct {
		name     string
		source   string
		opts     MarkdownOptions
		expected string
	}{
		{"pandoc unchanged", pandoc, DefaultMarkdownOptions(), pandoc},
		{"alt unchanged", alt, DefaultMarkdownOptions(), alt},
		{
			"alt standardized",
			alt,
			MarkdownOptions{StandardizeAltSyntax: true, EnableAuthorSuppression: true},
			"[-@wadler1990, p. 33; -@hughes]",
		},
		{"suppression disabled", alt, MarkdownOptions{}, "@[wadler1990, p. 33; @hughes]"},
		{"node value", alt, MarkdownOptions{UseNodeValue: true, StandardizeAltSyntax: true}, alt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := Parse(tt.source, bothSyntaxes)
			require.True(t, ok)
			assert.Equal(t, tt.expected, c.Markdown(tt.opts))
		})
	}
}

func TestMarkdownAltWithPrefixFallsBackToPandoc(t *testing.T) {
	c := &Citation{AltSyntax: true, Items: []Item{{Prefix: "see ", Key: "k"}}}
	assert.False(t, c.UsesAltSyntax(DefaultMarkdownOptions()))
	assert.Equal(t, "[see @k]", c.Markdown(DefaultMarkdownOptions()))
}

func TestMarkdownEmptyCitation(t *testing.T) {
	assert.Equal(t, "", (&Citation{}).Markdown(DefaultMarkdownOptions()))
}

func TestRoundTrip(t *testing.T) {
	sources := []string{
		"[@key]",
		"[-@key]",
		"[see @wadler1990; also @hughes1989, pp. 4]",
		"@[-wadler1990, p. 33; -@hughes]",
		"@[key; see @other, ch. 2]",
		"[@ü; @日本]",
	}
	optionSets := []MarkdownOptions{
		DefaultMarkdownOptions(),
		{StandardizeAltSyntax: true, EnableAuthorSuppression: true},
		{},
		{UseNodeValue: true},
	}

	for _, source := range sources {
		c, ok := Parse(source, bothSyntaxes)
		require.True(t, ok, "source %q", source)
		for _, opts := range optionSets {
			require.NoError(t, c.Check(bothSyntaxes, opts), "source %q, options %+v", source, opts)

			again, ok := Parse(c.Markdown(opts), bothSyntaxes)
			require.True(t, ok)
			assert.Equal(t, c.expected(opts, again.AltSyntax), again.Items)
		}
	}
}

func TestCheckReportsDivergences(t *testing.T) {
	c := &Citation{Items: []Item{
		{Key: "a b"},
		{Prefix: "see", Key: "k", Suffix: "p. 3"},
		{Key: "ok", Suffix: ", fine"},
	}}

	err := c.Check(bothSyntaxes, DefaultMarkdownOptions())
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)
	assert.ErrorContains(t, err, "item 1")
	assert.ErrorContains(t, err, "item 2")
	assert.ErrorContains(t, err, "prefix does not end with a space")
	assert.ErrorContains(t, err, "suffix does not start with a space or a comma")
}

func TestCheckSyntaxAvailability(t *testing.T) {
	c, ok := Parse("@[key]", bothSyntaxes)
	require.True(t, ok)

	err := c.Check(tokenizer.DefaultOptions(), DefaultMarkdownOptions())
	assert.ErrorContains(t, err, "alt syntax is disabled")

	standardized := MarkdownOptions{StandardizeAltSyntax: true}
	assert.NoError(t, c.Check(tokenizer.DefaultOptions(), standardized))
}

func TestCheckAltKeyWithHyphen(t *testing.T) {
	c := &Citation{AltSyntax: true, Items: []Item{{Key: "-x"}}}
	assert.ErrorContains(t, c.Check(bothSyntaxes, DefaultMarkdownOptions()), "author suppression")

	c.Items[0].SuppressAuthor = true
	assert.NoError(t, c.Check(bothSyntaxes, DefaultMarkdownOptions()))
}

func TestCheckSuppressedPrefixNeedsSuppression(t *testing.T) {
	c, ok := Parse("[--@key]", bothSyntaxes)
	require.True(t, ok)
	assert.Equal(t, Item{Prefix: "-", Key: "key", SuppressAuthor: true}, c.Items[0])

	assert.NoError(t, c.Check(bothSyntaxes, DefaultMarkdownOptions()))
	assert.ErrorContains(t, c.Check(bothSyntaxes, MarkdownOptions{}), "prefix does not end with a space")
}

func TestCheckEmpty(t *testing.T) {
	assert.ErrorIs(t, (&Citation{}).Check(bothSyntaxes, DefaultMarkdownOptions()), ErrNoItems)
}
