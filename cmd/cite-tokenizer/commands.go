package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spicery/cite-tokenizer/pkg/cite"
	"github.com/spicery/cite-tokenizer/pkg/config"
	"github.com/spicery/cite-tokenizer/pkg/markdown"
	"github.com/spicery/cite-tokenizer/pkg/tokenizer"
	"github.com/yuin/goldmark"
)

func newTokenizeCommand(o *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize",
		Short: "Write one JSON object per citation span",
		Long: `Scans the input as plain text and writes every span of every citation
as a JSON object on its own line, in the order the spans open.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := o.readInput(cmd)
			if err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}
			source := string(input)

			var tokenErrs *multierror.Error
			err = o.writeOutput(cmd, func(w io.Writer) error {
				for _, match := range tokenizer.ScanText(source, o.settings.Syntax) {
					tokens, err := tokenizer.Tokens(source, match.Events)
					if err != nil {
						tokenErrs = multierror.Append(tokenErrs, fmt.Errorf("line %d, column %d: %w", match.Line, match.Col, err))
						continue
					}
					for _, token := range tokens {
						if err := writeJSONLine(w, token); err != nil {
							return err
						}
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			return o.report(tokenErrs.ErrorOrNil())
		},
	}
}

// citationRecord is a citation together with where it was found.
type citationRecord struct {
	*cite.Citation
	Span tokenizer.Span `json:"span"`
}

func newParseCommand(o *cliOptions) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Write one JSON citation record per line",
		Long: `Parses the input as markdown and writes every citation as a JSON record
with its items. Citations in code spans and code blocks are skipped unless
--plain is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := o.readInput(cmd)
			if err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}

			var records []citationRecord
			if plain {
				source := string(input)
				for _, match := range tokenizer.ScanText(source, o.settings.Syntax) {
					c, err := cite.Build(source, match.Events)
					if err != nil {
						return o.report(fmt.Errorf("line %d, column %d: %w", match.Line, match.Col, err))
					}
					records = append(records, citationRecord{c, tokenizer.Span{Start: match.Start, End: match.End}})
				}
			} else {
				for _, n := range markdown.Parse(input, o.settings.Syntax) {
					records = append(records, citationRecord{n.Citation, tokenizer.Span{Start: n.Segment.Start, End: n.Segment.Stop}})
				}
			}

			return o.writeOutput(cmd, func(w io.Writer) error {
				for _, r := range records {
					if err := writeJSONLine(w, r); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Scan the input as plain text rather than markdown")
	return cmd
}

func newHTMLCommand(o *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "html",
		Short: "Render markdown with citations to HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := o.readInput(cmd)
			if err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}

			md := goldmark.New(goldmark.WithExtensions(markdown.New(
				markdown.WithSyntax(o.settings.Syntax),
				markdown.WithHTMLClass(o.settings.HTMLClass),
				markdown.WithLogger(logrus.StandardLogger()),
			)))
			var buf bytes.Buffer
			if err := md.Convert(input, &buf); err != nil {
				return fmt.Errorf("error rendering HTML: %w", err)
			}

			return o.writeOutput(cmd, func(w io.Writer) error {
				_, err := buf.WriteTo(w)
				return err
			})
		},
	}
}

func newFormatCommand(o *cliOptions) *cobra.Command {
	var standardize, noSuppress, useValue, check bool
	cmd := &cobra.Command{
		Use:   "format",
		Short: "Rewrite every citation in a markdown document",
		Long: `Rewrites every citation from its parsed record. With --check, also
reports citations whose rewritten form would not read back the same.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := o.readInput(cmd)
			if err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}

			opts := o.settings.Markdown
			if cmd.Flags().Changed("standardize") {
				opts.StandardizeAltSyntax = standardize
			}
			if cmd.Flags().Changed("no-suppress") {
				opts.EnableAuthorSuppression = !noSuppress
			}
			if cmd.Flags().Changed("use-value") {
				opts.UseNodeValue = useValue
			}

			out, err := markdown.Format(input, o.settings.Syntax, opts)
			if err != nil {
				return err
			}
			if err := o.writeOutput(cmd, func(w io.Writer) error {
				_, err := w.Write(out)
				return err
			}); err != nil {
				return err
			}

			if !check {
				return nil
			}
			var errs *multierror.Error
			for _, n := range markdown.Parse(input, o.settings.Syntax) {
				if err := n.Citation.Check(o.settings.Syntax, opts); err != nil {
					errs = multierror.Append(errs, fmt.Errorf("citation %q at offset %d: %w", n.Citation.Value, n.Segment.Start, err))
				}
			}
			return o.report(errs.ErrorOrNil())
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&standardize, "standardize", false, "Write @[key] citations as [@key]")
	flags.BoolVar(&noSuppress, "no-suppress", false, "Drop the - author suppression marker")
	flags.BoolVar(&useValue, "use-value", false, "Write each citation's original text")
	flags.BoolVar(&check, "check", false, "Report citations that would not survive the rewrite")
	return cmd
}

func newMakeConfigCommand(o *cliOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "make-config",
		Short: "Write the current configuration as YAML or TOML",
		Long: `Writes the configuration in effect (the defaults, or --config plus any
flags) in file form, ready to be edited and passed back with --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file := config.FileOf(o.settings)
			var write func(w io.Writer) error
			switch format {
			case "yaml", "yml":
				write = file.WriteYAML
			case "toml":
				write = file.WriteTOML
			default:
				return fmt.Errorf("unknown config format '%s'", format)
			}
			return o.writeOutput(cmd, write)
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml or toml")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cite-tokenizer version %s\n", version)
		},
	}
}
