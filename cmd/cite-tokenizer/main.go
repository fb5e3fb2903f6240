package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spicery/cite-tokenizer/pkg/config"
)

const version = "0.1.0"

// cliOptions holds the persistent flags. Defaults are overwritten by flags.
type cliOptions struct {
	inputFile  string
	outputFile string
	configFile string
	logLevel   string
	exit0      bool
	alt        bool
	pandoc     bool

	settings *config.Config
}

func newRootCommand() *cobra.Command {
	o := &cliOptions{logLevel: "warn"}

	rootCmd := &cobra.Command{
		Use:   "cite-tokenizer",
		Short: "cite-tokenizer - a tokenizer for pandoc-style markdown citations",
		Long: `Finds [@key] and @[key] citations in markdown and reports them as
span tokens, citation records, HTML or rewritten markdown.

Examples:
  cite-tokenizer tokenize --input paper.md       # one JSON token per line
  cite-tokenizer parse --alt < paper.md          # one JSON citation per line
  cite-tokenizer format --standardize --alt      # rewrite @[key] as [@key]
  cite-tokenizer make-config > cite.yaml         # default configuration`,
		PersistentPreRunE: o.before,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           version,
	}

	o.addFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newTokenizeCommand(o),
		newParseCommand(o),
		newHTMLCommand(o),
		newFormatCommand(o),
		newMakeConfigCommand(o),
		newVersionCommand(),
	)
	return rootCmd
}

func (o *cliOptions) addFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.inputFile, "input", "", "Input file (defaults to stdin)")
	flags.StringVar(&o.outputFile, "output", "", "Output file (defaults to stdout)")
	flags.StringVar(&o.configFile, "config", "", "YAML or TOML configuration file (optional)")
	flags.StringVar(&o.logLevel, "log-level", o.logLevel, "Log messages including and over the specified level: debug, info, warn, error, fatal, panic")
	flags.BoolVar(&o.exit0, "exit0", false, "Exit with code 0 even on citation errors (suppress stderr)")
	flags.BoolVar(&o.alt, "alt", false, "Recognise the @[key] syntax")
	flags.BoolVar(&o.pandoc, "pandoc", true, "Recognise the [@key] syntax")
}

// before sets the log level and resolves the settings: defaults, then the
// config file, then explicit flags.
func (o *cliOptions) before(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	var file *config.File
	if o.configFile != "" {
		file, err = config.LoadFile(o.configFile)
		if err != nil {
			return err
		}
	}
	settings, err := config.ApplyToDefaults(file)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cmd.Flags().Changed("alt") {
		settings.Syntax.EnableAltSyntax = o.alt
	}
	if cmd.Flags().Changed("pandoc") {
		settings.Syntax.EnablePandocSyntax = o.pandoc
	}
	if settings.NoSyntax() {
		logrus.Warn("no citation syntax is enabled; nothing will be recognised")
	}
	o.settings = settings
	return nil
}

// report turns a citation error into the command's result, honouring --exit0.
func (o *cliOptions) report(err error) error {
	if err == nil || o.exit0 {
		return nil
	}
	return err
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
