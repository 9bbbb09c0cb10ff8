package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"calc/internal/driver"
	"calc/internal/highlight"
	"calc/internal/parser"
)

func newHighlightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "highlight [flags] [file.calc|-]",
		Short: "Print an expression with syntax highlighting",
		Long:  `highlight classifies every token (operator, number, float, bracket) and marks the tokens covered by errors.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHighlight,
	}
	cmd.Flags().String("format", "", "output format (ansi|regions)")
	addExprFlag(cmd)
	return cmd
}

// regionJSON is one entry of `highlight --format regions`.
type regionJSON struct {
	Class string `json:"class"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Text  string `json:"text"`
}

func runHighlight(cmd *cobra.Command, args []string) error {
	sess, err := startSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	format, err := sess.format("ansi", "regions")
	if err != nil {
		return err
	}
	in, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	tokens, err := sess.tokenize(in)
	if err != nil {
		return fmt.Errorf("highlight: %w", err)
	}
	// ошибки парсера (не только лексера) тоже подсвечиваются
	opts := sess.driverOptions()
	opts.Recovery = parser.RecoveryBestEffort
	var result *driver.ParseResult
	if in.virtual {
		result, err = driver.ParseText(sess.ctx, in.name, in.text, opts)
	} else {
		result, err = driver.Parse(sess.ctx, in.path, opts)
	}
	if err != nil {
		return fmt.Errorf("highlight: %w", err)
	}

	done := sess.timer.Track("highlight")
	content := tokens.File.Content
	regions := highlight.Classify(tokens.Tokens)
	for i := range regions {
		regions[i].Span.File = result.File.ID
	}
	highlight.MarkErrors(regions, result.Bag.Items())
	done("")

	out := cmd.OutOrStdout()
	if format == "regions" {
		payload := make([]regionJSON, 0, len(regions))
		for _, r := range regions {
			payload = append(payload, regionJSON{
				Class: string(r.Class),
				Start: r.Span.Start,
				End:   r.Span.End,
				Text:  string(content[r.Span.Start:r.Span.End]),
			})
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	var painter highlight.Painter = highlight.Plain{}
	if sess.settings.ColorOut {
		painter = highlight.DefaultColorTheme()
	}
	text := highlight.Render(content, regions, painter)
	if len(text) == 0 || text[len(text)-1] != '\n' {
		text += "\n"
	}
	_, err = fmt.Fprint(out, text)
	return err
}
