package main

import (
	"fmt"

	"github.com/egor9814/xfile"
	"github.com/egor9814/xfile/internal/logger"
	"github.com/spf13/cobra"
)

func (a *app) unwrapCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "unwrap [container]",
		Short: "write the payload of a container (or stdin) to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return a.unwrap(cmd, input, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, '-' for stdout")
	return cmd
}

func (a *app) unwrap(cmd *cobra.Command, input, output string) (err error) {
	log := logger.Named("unwrap").With("input", input, "output", output)

	s, err := a.cfg.signatureSet()
	if err != nil {
		return err
	}
	zi, err := parseZstd(a.cfg.Zstd)
	if err != nil {
		return err
	}

	in, ic, size, err := openContainer(input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer handleClosing(ic, input)

	archive, err := xfile.NewReader(in, size, s)
	if err != nil {
		return fmt.Errorf("%q: %w", input, err)
	}
	log.Debug("unwrapping", "payload_bytes", archive.PayloadSize())

	payload, compressed, err := zi.wrapReader(archive.Payload())
	if err != nil {
		return err
	}
	if compressed && zi == nil {
		log.Debug("zstd frame detected")
	}
	defer handleClosing(payload, "zstd decoder")

	w, wc, err := openFileForWrite(output, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() {
		if wc == nil {
			return
		}
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %q: %w", output, cerr)
		}
	}()

	expected := archive.PayloadSize()
	if compressed {
		expected = -1
	}
	n, err := copyBuffer(w, payload, expected, make([]byte, copyBufferSize), a.progress(cmd))
	if err != nil {
		return err
	}
	log.Debug("done", "bytes", n)
	return nil
}
