package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/tape"
	"github.com/deepnoodle-ai/tape/dis"
	"github.com/deepnoodle-ai/tape/errors"
)

func newDisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dis [FILE]",
		Short: "Disassemble a tape program",
		Args:  sourceArgs,
		RunE:  disassemble,
	}
	cmd.Flags().StringP("code", "c", "", "program source to disassemble instead of FILE")
	cmd.Flags().StringP("output", "o", "text", "output format (text, json)")
	return cmd
}

func disassemble(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	format = strings.ToLower(format)
	if format != "text" && format != "json" {
		return errors.ArgumentErrorf("unknown output format: %s", format)
	}

	source, filename, err := readSource(cmd, args)
	if err != nil {
		return err
	}
	program, err := tape.Compile(source, tape.WithFilename(filename))
	if err != nil {
		return err
	}

	instructions := dis.Disassemble(program)
	if format == "json" {
		return writeJSON(cmd.OutOrStdout(), instructions)
	}
	dis.Print(instructions, cmd.OutOrStdout())
	return nil
}
