package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.True(t, c.Syntax.EnablePandocSyntax)
	assert.False(t, c.Syntax.EnableAltSyntax)
	assert.True(t, c.Markdown.EnableAuthorSuppression)
	assert.False(t, c.Markdown.StandardizeAltSyntax)
	assert.False(t, c.Markdown.UseNodeValue)
	assert.Equal(t, "citation", c.HTMLClass)
	assert.NoError(t, c.Validate())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "cite.yaml", `
syntax:
  alt: true
markdown:
  standardize_alt_syntax: true
html:
  class: cite-inline
`)
	f, err := LoadFile(path)
	require.NoError(t, err)

	c, err := ApplyToDefaults(f)
	require.NoError(t, err)
	assert.True(t, c.Syntax.EnablePandocSyntax)
	assert.True(t, c.Syntax.EnableAltSyntax)
	assert.True(t, c.Markdown.StandardizeAltSyntax)
	assert.True(t, c.Markdown.EnableAuthorSuppression)
	assert.Equal(t, "cite-inline", c.HTMLClass)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "cite.toml", `
[syntax]
pandoc = false
alt = true

[markdown]
author_suppression = false
`)
	f, err := LoadFile(path)
	require.NoError(t, err)

	c, err := ApplyToDefaults(f)
	require.NoError(t, err)
	assert.False(t, c.Syntax.EnablePandocSyntax)
	assert.True(t, c.Syntax.EnableAltSyntax)
	assert.False(t, c.Markdown.EnableAuthorSuppression)
	assert.Equal(t, "citation", c.HTMLClass)
}

func TestLoadEmptyFile(t *testing.T) {
	f, err := LoadFile(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)

	c, err := ApplyToDefaults(f)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := LoadFile(writeFile(t, "bad.yaml", "syntax:\n  latex: true\n"))
	assert.ErrorContains(t, err, "failed to parse YAML")

	_, err = LoadFile(writeFile(t, "bad.toml", "[syntax]\nlatex = true\n"))
	assert.ErrorContains(t, err, "unknown key 'syntax.latex'")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	c := Default()
	c.HTMLClass = `two words`
	err := c.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 1)

	empty := ""
	_, err = ApplyToDefaults(&File{HTML: &HTMLRule{Class: &empty}})
	assert.ErrorContains(t, err, "must not be empty")
}

func TestNoSyntaxIsValid(t *testing.T) {
	off := false
	c, err := ApplyToDefaults(&File{Syntax: &SyntaxRule{Pandoc: &off}})
	require.NoError(t, err)
	assert.True(t, c.NoSyntax())
}

func TestDefaultFileRoundTrip(t *testing.T) {
	for _, name := range []string{"defaults.yaml", "defaults.toml"} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if filepath.Ext(name) == ".toml" {
				require.NoError(t, DefaultFile().WriteTOML(&buf))
			} else {
				require.NoError(t, DefaultFile().WriteYAML(&buf))
			}

			f, err := LoadFile(writeFile(t, name, buf.String()))
			require.NoError(t, err)
			assert.Equal(t, DefaultFile(), f)

			c, err := ApplyToDefaults(f)
			require.NoError(t, err)
			assert.Equal(t, Default(), c)
		})
	}
}
