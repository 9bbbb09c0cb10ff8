package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"calc/internal/driver"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the on-disk parse cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "dir",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				c, err := openCache(cmd)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), c.Dir())
				return err
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Drop every cached parse result",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				c, err := openCache(cmd)
				if err != nil {
					return err
				}
				if err := c.DropAll(); err != nil {
					return fmt.Errorf("cache: %w", err)
				}
				if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", c.Dir())
				}
				return nil
			},
		},
	)
	return cmd
}

// openCache opens the configured cache directory whether or not caching is
// enabled for parsing.
func openCache(cmd *cobra.Command) (*driver.DiskCache, error) {
	s, err := resolveSettings(cmd)
	if err != nil {
		return nil, err
	}
	if s.CacheDir != "" {
		return driver.NewDiskCache(s.CacheDir)
	}
	return driver.OpenDiskCache("calc")
}
