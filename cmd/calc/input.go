package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"calc/internal/driver"
)

// input is one expression source: a file on disk, stdin or an -e argument.
type input struct {
	path    string // file path; empty for virtual inputs
	name    string // display name
	text    string // content of virtual inputs
	virtual bool
}

func addExprFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("expr", "e", "", "read the expression from the command line instead of a file")
}

// readInput picks the source: -e wins, then "-" or no argument means stdin.
func readInput(cmd *cobra.Command, args []string) (input, error) {
	if expr, _ := cmd.Flags().GetString("expr"); cmd.Flags().Changed("expr") {
		if len(args) > 0 {
			return input{}, fmt.Errorf("--expr cannot be combined with a file argument")
		}
		return input{name: "<expr>", text: expr, virtual: true}, nil
	}
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return input{}, fmt.Errorf("read stdin: %w", err)
		}
		return input{name: "<stdin>", text: string(data), virtual: true}, nil
	}
	return input{path: args[0], name: args[0]}, nil
}

func (s *session) tokenize(in input) (*driver.TokenizeResult, error) {
	if in.virtual {
		return driver.TokenizeText(s.ctx, in.name, in.text, s.settings.MaxDiagnostics), nil
	}
	return driver.Tokenize(s.ctx, in.path, s.settings.MaxDiagnostics)
}

func (s *session) parse(in input) (*driver.ParseResult, error) {
	if in.virtual {
		return driver.ParseText(s.ctx, in.name, in.text, s.driverOptions())
	}
	return driver.Parse(s.ctx, in.path, s.driverOptions())
}
