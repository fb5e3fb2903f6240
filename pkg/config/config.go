// Package config loads the settings shared by the command line tool and the
// goldmark extension from a YAML or TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"github.com/spicery/cite-tokenizer/pkg/cite"
	"github.com/spicery/cite-tokenizer/pkg/markdown"
	"github.com/spicery/cite-tokenizer/pkg/tokenizer"
	"gopkg.in/yaml.v3"
)

// File is the on-disk form of the settings. Every field is optional; unset
// fields keep their default.
type File struct {
	Syntax   *SyntaxRule   `yaml:"syntax,omitempty" toml:"syntax"`
	Markdown *MarkdownRule `yaml:"markdown,omitempty" toml:"markdown"`
	HTML     *HTMLRule     `yaml:"html,omitempty" toml:"html"`
}

// SyntaxRule selects the citation syntaxes.
type SyntaxRule struct {
	Pandoc *bool `yaml:"pandoc,omitempty" toml:"pandoc"`
	Alt    *bool `yaml:"alt,omitempty" toml:"alt"`
}

// MarkdownRule controls how citations are written back to markdown.
type MarkdownRule struct {
	StandardizeAltSyntax *bool `yaml:"standardize_alt_syntax,omitempty" toml:"standardize_alt_syntax"`
	AuthorSuppression    *bool `yaml:"author_suppression,omitempty" toml:"author_suppression"`
	UseNodeValue         *bool `yaml:"use_node_value,omitempty" toml:"use_node_value"`
}

// HTMLRule controls the HTML rendering of citations.
type HTMLRule struct {
	Class *string `yaml:"class,omitempty" toml:"class"`
}

// Config is the resolved settings.
type Config struct {
	Syntax    tokenizer.Options
	Markdown  cite.MarkdownOptions
	HTMLClass string
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Syntax:    tokenizer.DefaultOptions(),
		Markdown:  cite.DefaultMarkdownOptions(),
		HTMLClass: markdown.DefaultHTMLClass,
	}
}

// LoadFile reads a settings file. Files ending in .toml are read as TOML,
// anything else as YAML. Unknown keys are an error in both formats.
func LoadFile(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filename, err)
	}

	var f File
	if strings.EqualFold(filepath.Ext(filename), ".toml") {
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML in config file '%s': %w", filename, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key '%s' in config file '%s'", undecoded[0], filename)
		}
		return &f, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML in config file '%s': %w", filename, err)
	}
	return &f, nil
}

// ApplyToDefaults overlays the fields set in f on the defaults and validates
// the result.
func ApplyToDefaults(f *File) (*Config, error) {
	c := Default()
	if f == nil {
		return c, nil
	}

	if s := f.Syntax; s != nil {
		setBool(&c.Syntax.EnablePandocSyntax, s.Pandoc)
		setBool(&c.Syntax.EnableAltSyntax, s.Alt)
	}
	if m := f.Markdown; m != nil {
		setBool(&c.Markdown.StandardizeAltSyntax, m.StandardizeAltSyntax)
		setBool(&c.Markdown.EnableAuthorSuppression, m.AuthorSuppression)
		setBool(&c.Markdown.UseNodeValue, m.UseNodeValue)
	}
	if h := f.HTML; h != nil && h.Class != nil {
		c.HTMLClass = *h.Class
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// Validate reports every invalid setting. Disabling both syntaxes is valid:
// no citation is ever recognised.
func (c *Config) Validate() error {
	var errs *multierror.Error
	if c.HTMLClass == "" {
		errs = multierror.Append(errs, errors.New("html class must not be empty"))
	} else if strings.ContainsAny(c.HTMLClass, " \t\r\n\"'<>&") {
		errs = multierror.Append(errs, fmt.Errorf("html class %q must be a single name", c.HTMLClass))
	}
	return errs.ErrorOrNil()
}

// NoSyntax reports whether no citation syntax is enabled.
func (c *Config) NoSyntax() bool {
	return len(c.Syntax.Triggers()) == 0
}

// DefaultFile returns the defaults in file form, with every field set.
func DefaultFile() *File {
	return FileOf(Default())
}

// FileOf converts resolved settings back to file form.
func FileOf(c *Config) *File {
	class := c.HTMLClass
	return &File{
		Syntax: &SyntaxRule{
			Pandoc: boolPtr(c.Syntax.EnablePandocSyntax),
			Alt:    boolPtr(c.Syntax.EnableAltSyntax),
		},
		Markdown: &MarkdownRule{
			StandardizeAltSyntax: boolPtr(c.Markdown.StandardizeAltSyntax),
			AuthorSuppression:    boolPtr(c.Markdown.EnableAuthorSuppression),
			UseNodeValue:         boolPtr(c.Markdown.UseNodeValue),
		},
		HTML: &HTMLRule{Class: &class},
	}
}

func boolPtr(b bool) *bool {
	return &b
}

// WriteYAML writes f as YAML.
func (f *File) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}
	return enc.Close()
}

// WriteTOML writes f as TOML.
func (f *File) WriteTOML(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(f); err != nil {
		return fmt.Errorf("failed to marshal config to TOML: %w", err)
	}
	return nil
}
