package main

import (
	"io"

	"github.com/egor9814/xfile/internal/logger"
	"github.com/spf13/cobra"
)

func (a *app) appendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "append container [input]",
		Short: "append a file (or stdin) to an existing container",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 2 {
				input = args[1]
			}
			return a.appendPayload(cmd, args[0], input)
		},
	}
}

func (a *app) appendPayload(cmd *cobra.Command, path, input string) error {
	c, err := a.container()
	if err != nil {
		return err
	}
	zi, err := parseZstd(a.cfg.Zstd)
	if err != nil {
		return err
	}

	r, rc, _, err := openFileForRead(input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer handleClosing(rc, input)

	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	// a compressed append is a new zstd frame after the existing ones
	data, err = zi.compress(data)
	if err != nil {
		return err
	}

	if err := c.Append(path, data); err != nil {
		return err
	}
	logger.Named("append").With("container", path, "input", input).Debug("appended", "bytes", len(data))
	return nil
}
