package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type versionType struct {
	Major, Minor, Patch int
	Prefix, Suffix      string
}

func (v *versionType) String() string {
	if v.Major == 0 && v.Minor == 0 && v.Patch == 0 && len(v.Prefix) == 0 && len(v.Suffix) == 0 {
		return "private-dev"
	}
	return fmt.Sprintf("%s%d.%d.%d%s", v.Prefix, v.Major, v.Minor, v.Patch, v.Suffix)
}

var Version versionType

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "show version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, Version.String())
			return err
		},
	}
}
