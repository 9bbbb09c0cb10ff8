package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"calc/internal/driver"
	"calc/internal/format"
	"calc/internal/source"
)

func newFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [flags] <path> [path...]",
		Short: "Rewrite expressions in canonical form",
		Long:  `fmt prints each expression with single spaces around binary operators and no redundant whitespace. Files with syntax errors are left untouched.`,
		RunE:  runFmt,
	}
	cmd.Flags().Bool("check", false, "check if files are properly formatted")
	cmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	cmd.Flags().Bool("compact", false, "omit spaces around binary operators")
	cmd.Flags().String("format", "", "output format (text|json)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	addExprFlag(cmd)
	return cmd
}

func runFmt(cmd *cobra.Command, args []string) error {
	sess, err := startSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	compact, err := cmd.Flags().GetBool("compact")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	outputFormat, err := sess.format("text", "json")
	if err != nil {
		return err
	}
	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	opts := format.Options{Compact: compact}

	if cmd.Flags().Changed("expr") || len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		in, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		return formatVirtual(cmd, sess, in, opts)
	}

	done := sess.timer.Track("format")
	results, err := driver.FormatPaths(sess.ctx, args, driver.FormatOptions{
		Check:          check,
		Stdout:         writeToStdout,
		MaxDiagnostics: sess.settings.MaxDiagnostics,
		Jobs:           jobs,
		Options:        opts,
	})
	done("")
	if err != nil {
		return err
	}

	var hasErrors, hasChanges bool
	out := cmd.OutOrStdout()
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			if errors.Is(res.Err, format.ErrSyntax) && res.Bag != nil {
				sess.printDiagnostics(res.Bag, res.FileSet)
			}
			if outputFormat == "text" {
				fmt.Fprintf(cmd.ErrOrStderr(), "fmt: %s: %v\n", res.Path, res.Err)
			}
			continue
		}
		if res.Changed {
			hasChanges = true
		}
		if outputFormat != "text" {
			continue
		}
		switch {
		case writeToStdout:
			if _, err := out.Write(res.Formatted); err != nil {
				return err
			}
		case check:
			if res.Changed && !sess.settings.Quiet {
				fmt.Fprintln(out, res.Path)
			}
		case res.Changed && !sess.settings.Quiet:
			fmt.Fprintf(out, "reformatted %s\n", res.Path)
		}
	}
	if outputFormat == "json" {
		if err := renderFmtJSON(out, results, check); err != nil {
			return err
		}
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

// formatVirtual formats stdin or --expr and always prints the result.
func formatVirtual(cmd *cobra.Command, sess *session, in input, opts format.Options) error {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(in.name, []byte(in.text))
	formatted, bag, err := format.Source(sess.ctx, fs.Get(fileID), opts, sess.settings.MaxDiagnostics)
	if err != nil {
		if errors.Is(err, format.ErrSyntax) {
			sess.printDiagnostics(bag, fs)
			return errDiagnostics
		}
		return err
	}
	if len(formatted) == 0 || formatted[len(formatted)-1] != '\n' {
		formatted = append(formatted, '\n')
	}
	_, err = cmd.OutOrStdout().Write(formatted)
	return err
}

func renderFmtJSON(w io.Writer, results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
