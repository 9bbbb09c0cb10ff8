package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"calc/internal/diag"
	"calc/internal/driver"
	"calc/internal/fix"
	"calc/internal/parser"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] <file.calc|directory>",
		Short: "Apply suggested fixes to expressions",
		Long:  "Parse in best-effort mode, collect the fixes attached to diagnostics and apply them according to the chosen strategy.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFix,
	}
	cmd.Flags().Bool("all", false, "apply every non-conflicting fix")
	cmd.Flags().Bool("once", false, "apply the first available fix (default)")
	cmd.Flags().String("id", "", "apply fix with a specific identifier")
	addExprFlag(cmd)
	return cmd
}

func readFixOptions(cmd *cobra.Command) (fix.ApplyOptions, error) {
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	if targetID != "" && (applyAll || applyOnce) {
		return fix.ApplyOptions{}, fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fix.ApplyOptions{}, fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}
	return fix.ApplyOptions{Mode: mode, TargetID: targetID}, nil
}

func runFix(cmd *cobra.Command, args []string) error {
	opts, err := readFixOptions(cmd)
	if err != nil {
		return err
	}
	sess, err := startSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	// фиксы прикрепляются к диагностикам, поэтому разбор всегда best-effort
	driverOpts := sess.driverOptions()
	driverOpts.Recovery = parser.RecoveryBestEffort
	driverOpts.Cache = nil

	in, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if in.virtual {
		res, err := driver.ParseText(sess.ctx, in.name, in.text, driverOpts)
		if err != nil {
			return fmt.Errorf("fix: %w", err)
		}
		content, applied, applyErr := fix.ApplyToContent(res.FileSet, res.File.ID, sortedItems(res.Bag), opts)
		if applyErr == nil {
			if _, err := fmt.Fprintln(out, string(content)); err != nil {
				return err
			}
		}
		return handleApplyResult(cmd.ErrOrStderr(), applied, applyErr)
	}

	files, err := driver.ExpandPaths([]string{in.path})
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	// id уникален только в пределах одного файла
	if opts.Mode == fix.ApplyModeID && len(files) > 1 {
		return fmt.Errorf("fix: --id can only be used with a single file")
	}
	results, err := driver.ParseFiles(sess.ctx, files, driverOpts, 0, nil)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}

	var (
		applied  = &fix.ApplyResult{}
		applyErr error
		anyFix   bool
	)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
			continue
		}
		res, err := fix.Apply(r.Result.FileSet, sortedItems(r.Result.Bag), opts)
		if res != nil {
			applied.Applied = append(applied.Applied, res.Applied...)
			applied.Skipped = append(applied.Skipped, res.Skipped...)
			applied.FileChanges = append(applied.FileChanges, res.FileChanges...)
		}
		switch {
		case err == nil:
			anyFix = true
			if opts.Mode != fix.ApplyModeAll {
				// once/id: останавливаемся на первом файле с фиксом
				return handleApplyResult(out, applied, nil)
			}
		case errors.Is(err, fix.ErrNoFixes):
		default:
			applyErr = err
		}
	}
	if applyErr == nil && !anyFix {
		applyErr = fix.ErrNoFixes
	}
	return handleApplyResult(out, applied, applyErr)
}

func sortedItems(bag *diag.Bag) []diag.Diagnostic {
	if bag == nil {
		return nil
	}
	bag.Sort()
	return bag.Items()
}

func handleApplyResult(w io.Writer, res *fix.ApplyResult, applyErr error) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		fmt.Fprintf(w, "Applied %d fix(es):\n", len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(w, "  %s [%s]: %s (%d edits)\n", item.Title, item.ID, location, item.EditCount)
		}
	}

	if len(res.FileChanges) > 0 {
		fmt.Fprintln(w, "Updated files:")
		for _, change := range res.FileChanges {
			fmt.Fprintf(w, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(w, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(w, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(w, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			fmt.Fprintln(w, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}
	if len(res.Applied) == 0 {
		fmt.Fprintln(w, "No fixes applied.")
	}
	return nil
}
