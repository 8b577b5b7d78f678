package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) catCmd() *cobra.Command {
	var number bool
	cmd := &cobra.Command{
		Use:   "cat container",
		Short: "print the text payload of a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.container()
			if err != nil {
				return err
			}
			enc, err := a.cfg.encoding()
			if err != nil {
				return err
			}
			if !number {
				text, err := c.ReadText(args[0], enc)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}
			lines, err := c.ReadLines(args[0], enc)
			if err != nil {
				return err
			}
			for i, line := range lines {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%6d  %s\n", i+1, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&number, "number", "n", false, "number output lines")
	return cmd
}

func (a *app) linesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lines container [line...]",
		Short: "write lines of text as a new container",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.container()
			if err != nil {
				return err
			}
			enc, err := a.cfg.encoding()
			if err != nil {
				return err
			}
			return c.WriteLines(args[0], args[1:], enc)
		},
	}
}
