package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errNotContainer = errors.New("some files are not containers")

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check file...",
		Short: "report whether files are containers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.container()
			if err != nil {
				return err
			}
			failed := 0
			for _, name := range args {
				if err := c.Check(name); err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", name, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", name)
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errNotContainer, failed, len(args))
			}
			return nil
		},
	}
}
