package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

// readInput reads all of --input, or stdin when it is not set.
func (o *cliOptions) readInput(cmd *cobra.Command) ([]byte, error) {
	if o.inputFile == "" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(o.inputFile)
}

// writeOutput runs write against --output, or stdout when it is not set.
func (o *cliOptions) writeOutput(cmd *cobra.Command, write func(w io.Writer) error) error {
	if o.outputFile == "" {
		return write(cmd.OutOrStdout())
	}

	file, err := os.Create(o.outputFile)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
