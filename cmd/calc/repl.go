package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"calc/internal/ui"
)

func newReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive expression editor with live diagnostics",
		Long: `repl re-parses the input line on every keystroke and shows the highlighted
expression, its canonical form, the syntax tree and diagnostics.

Keys: enter commits to history, up/down recall, ctrl+f applies fixes,
ctrl+t toggles the tree, esc or ctrl+c quits.`,
		Args: cobra.NoArgs,
		RunE: runRepl,
	}
	cmd.Flags().Int("history", 100, "number of committed lines to keep")
	cmd.Flags().Bool("tree", true, "show the syntax tree")
	return cmd
}

func runRepl(cmd *cobra.Command, _ []string) error {
	sess, err := startSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	historyMax, err := cmd.Flags().GetInt("history")
	if err != nil {
		return err
	}
	showTree, err := cmd.Flags().GetBool("tree")
	if err != nil {
		return err
	}
	if historyMax <= 0 {
		return fmt.Errorf("--history must be positive")
	}
	return ui.RunRepl(sess.ctx, ui.ReplOptions{
		Color:      sess.settings.ColorOut,
		HistoryMax: historyMax,
		ShowTree:   showTree,
	})
}
