package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"calc/internal/diag"
	"calc/internal/diagfmt"
	"calc/internal/driver"
	"calc/internal/ui"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <path> [path...]",
		Short: "Parse files and directories and report diagnostics",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCheck,
	}
	cmd.Flags().String("format", "", "output format (pretty|json|short)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	return cmd
}

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

// checkFileJSON is one entry of `check --format json`.
type checkFileJSON struct {
	Path        string                     `json:"path"`
	OK          bool                       `json:"ok"`
	Error       string                     `json:"error,omitempty"`
	Diagnostics *diagfmt.DiagnosticsOutput `json:"diagnostics,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	sess, err := startSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	format, err := sess.format("pretty", "json", "short")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	files, err := driver.ExpandPaths(args)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("check: no %s files found", driver.SourceExt)
	}

	var results []driver.FileResult
	if format == "pretty" && !sess.settings.Quiet && shouldUseTUI(mode) {
		results, err = checkWithUI(sess.ctx, files, sess.driverOptions(), jobs)
	} else {
		results, err = driver.ParseFiles(sess.ctx, files, sess.driverOptions(), jobs, nil)
	}
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	var errs, warnings, failedFiles int
	for _, r := range results {
		if r.Err != nil || r.Result == nil {
			failedFiles++
			continue
		}
		if r.Result.Failed() || r.Result.Bag.HasErrors() {
			failedFiles++
		}
		for _, d := range r.Result.Bag.Items() {
			if d.IsError() {
				errs++
			} else if d.Severity == diag.SevWarning {
				warnings++
			}
		}
	}

	switch format {
	case "json":
		payload := make([]checkFileJSON, 0, len(results))
		for _, r := range results {
			entry := checkFileJSON{Path: r.Path}
			if r.Err != nil {
				entry.Error = r.Err.Error()
			} else {
				entry.OK = r.Result.OK
				out := diagfmt.BuildDiagnosticsOutput(r.Result.Bag, r.Result.FileSet, diagfmt.JSONOpts{
					IncludePositions: true,
					IncludeNotes:     true,
					IncludeFixes:     true,
				})
				entry.Diagnostics = &out
			}
			payload = append(payload, entry)
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(payload); err != nil {
			return err
		}
	case "short":
		for _, r := range results {
			if r.Err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
				continue
			}
			if lines := diag.FormatShortDiagnostics(sortedItems(r.Result.Bag), r.Result.FileSet); lines != "" {
				fmt.Fprintln(cmd.OutOrStdout(), lines)
			}
		}
	default:
		for _, r := range results {
			if r.Err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
				continue
			}
			sess.printDiagnostics(r.Result.Bag, r.Result.FileSet)
		}
		if !sess.settings.Quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "checked %d file(s): %d error(s), %d warning(s)\n", len(results), errs, warnings)
		}
	}

	if failedFiles > 0 {
		return errDiagnostics
	}
	return nil
}

type checkOutcome struct {
	results []driver.FileResult
	err     error
}

// checkWithUI runs ParseFiles in the background and renders its events.
func checkWithUI(ctx context.Context, files []string, opts driver.Options, jobs int) ([]driver.FileResult, error) {
	events := make(chan driver.FileEvent, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		res, err := driver.ParseFiles(ctx, files, opts, jobs, events)
		outcomeCh <- checkOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// UI мог выйти раньше; дочитываем события, чтобы воркеры не блокировались
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
