package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/egor9814/xfile"
	"github.com/egor9814/xfile/internal/logger"
	"github.com/spf13/cobra"
)

const copyBufferSize = 256 << 10

func (a *app) progress(cmd *cobra.Command) io.Writer {
	if a.cfg.Verbose {
		return cmd.ErrOrStderr()
	}
	return nil
}

func (a *app) wrapCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "wrap [input]",
		Short: "stamp a file (or stdin) into a container",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return a.wrap(cmd, input, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output container, '-' for stdout")
	return cmd
}

func (a *app) wrap(cmd *cobra.Command, input, output string) (err error) {
	log := logger.Named("wrap").With("input", input, "output", output)

	s, err := a.cfg.signatureSet()
	if err != nil {
		return err
	}
	zi, err := parseZstd(a.cfg.Zstd)
	if err != nil {
		return err
	}

	r, rc, size, err := openFileForRead(input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer handleClosing(rc, input)

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

	bw := bufio.NewWriter(w)
	container := xfile.NewWriter(bw, s)
	if err := container.WriteHeader(); err != nil {
		return err
	}

	payload, err := zi.wrapWriter(container, size)
	if err != nil {
		return err
	}
	log.Debug("wrapping", "signatures", s.String(), "size", size, "zstd", zi != nil)

	n, err := copyBuffer(payload, r, size, make([]byte, copyBufferSize), a.progress(cmd))
	if err != nil {
		return err
	}
	if err := payload.Close(); err != nil {
		return err
	}
	if err := container.WriteFooter(); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	log.Debug("done", "payload_bytes", n)
	return nil
}
