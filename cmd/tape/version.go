package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/tape/errors"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return errors.ArgumentErrorf("version takes no arguments")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmd.Flags().GetString("output")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "json":
				return writeJSON(out, map[string]any{
					"version": version,
					"commit":  commit,
					"date":    date,
				})
			case "text":
				fmt.Fprintln(out, version)
				return nil
			default:
				return errors.ArgumentErrorf("unknown output format: %s", format)
			}
		},
	}
	cmd.Flags().StringP("output", "o", "text", "output format (text, json)")
	return cmd
}
