package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"calc/internal/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show calc build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := startSession(cmd)
			if err != nil {
				return err
			}
			defer sess.close()

			format, err := sess.format("pretty", "json")
			if err != nil {
				return err
			}
			info := version.Current()
			if format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return err
		},
	}
	cmd.Flags().String("format", "", "output format (pretty|json)")
	return cmd
}
