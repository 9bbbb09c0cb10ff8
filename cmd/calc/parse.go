package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"calc/internal/ast"
	"calc/internal/diagfmt"
	"calc/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] [file.calc|directory|-]",
		Short: "Parse expressions and print their syntax trees",
		Long:  `Parse reads one expression (a file, stdin or --expr) or every *.calc file of a directory and prints the syntax tree.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "", "output format (pretty|tree|json|yaml)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	addExprFlag(cmd)
	return cmd
}

var parseFormats = []string{"pretty", "tree", "json", "yaml"}

func runParse(cmd *cobra.Command, args []string) error {
	sess, err := startSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	format, err := sess.format(parseFormats...)
	if err != nil {
		return err
	}

	if len(args) == 1 && args[0] != "-" {
		st, statErr := os.Stat(args[0])
		if statErr != nil {
			return fmt.Errorf("failed to stat path: %w", statErr)
		}
		if st.IsDir() {
			return runParseDir(cmd, sess, args[0], format)
		}
	}

	in, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	result, err := sess.parse(in)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	sess.printDiagnostics(result.Bag, result.FileSet)

	if err := writeTree(cmd.OutOrStdout(), result, format); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func writeTree(w io.Writer, result *driver.ParseResult, format string) error {
	if result.Failed() {
		// strict mode: diagnostics already explain why
		return nil
	}
	switch format {
	case "tree":
		return diagfmt.FormatASTTree(w, result.Exprs(), result.Root)
	case "json":
		return diagfmt.FormatASTJSON(w, result.Exprs(), result.Root, result.FileSet, result.File.ID)
	case "yaml":
		return diagfmt.FormatASTYAML(w, result.Exprs(), result.Root, result.FileSet, result.File.ID)
	default:
		return diagfmt.FormatASTPretty(w, result.Exprs(), result.Root, result.FileSet, result.File.ID)
	}
}

func runParseDir(cmd *cobra.Command, sess *session, dir, format string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	results, err := driver.ParseDir(sess.ctx, dir, sess.driverOptions(), jobs)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	failed := false
	// Обрабатываем результаты (они уже отсортированы)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
			failed = true
			continue
		}
		sess.printDiagnostics(r.Result.Bag, r.Result.FileSet)
		if r.Result.Bag.HasErrors() {
			failed = true
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json", "yaml":
		// один документ: путь -> дерево (nil для неудачных разборов)
		doc := make(map[string]*ast.Node, len(results))
		for _, r := range results {
			if r.Err != nil || r.Result.Failed() {
				doc[r.Path] = nil
				continue
			}
			doc[r.Path] = ast.Snapshot(r.Result.Exprs(), r.Result.Root)
		}
		if format == "json" {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			err = encoder.Encode(doc)
		} else {
			encoder := yaml.NewEncoder(out)
			encoder.SetIndent(2)
			if err = encoder.Encode(doc); err == nil {
				err = encoder.Close()
			}
		}
		if err != nil {
			return err
		}
	default:
		for idx, r := range results {
			if r.Err != nil {
				continue
			}
			if !sess.settings.Quiet {
				if _, err := fmt.Fprintf(out, "== %s ==\n", r.Path); err != nil {
					return err
				}
			}
			if err := writeTree(out, r.Result, format); err != nil {
				return err
			}
			if !sess.settings.Quiet && idx < len(results)-1 {
				if _, err := fmt.Fprintln(out); err != nil {
					return err
				}
			}
		}
	}
	if failed {
		return errDiagnostics
	}
	return nil
}
