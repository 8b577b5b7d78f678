package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/egor9814/xfile"
	"github.com/egor9814/xfile/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const appName = "xf"

type app struct {
	v          *viper.Viper
	cfg        config
	configFile string
}

func (a *app) container() (xfile.Container, error) {
	s, err := a.cfg.signatureSet()
	if err != nil {
		return xfile.Container{}, err
	}
	return xfile.New(s), nil
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "manipulate signature-framed container files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				level = slog.LevelDebug
			}
			logger.Initialize(cmd.ErrOrStderr(), level)

			cfg, err := loadConfig(a.v, a.configFile)
			if err != nil {
				const errMsg = "unable to load configuration"
				slog.With("err", err.Error()).Error(errMsg)
				return errors.Join(err, errors.New(errMsg))
			}
			if cfg.Verbose {
				logger.Initialize(cmd.ErrOrStderr(), slog.LevelDebug)
			}
			a.cfg = cfg
			slog.With("config", cfg).Debug("configuration loaded")
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "config file (default ./xf.yaml or ~/.config/xf/xf.yaml)")
	if err := registerFlags(cmd.PersistentFlags(), a.v); err != nil {
		panic(err)
	}

	cmd.AddCommand(
		a.checkCmd(),
		a.wrapCmd(),
		a.unwrapCmd(),
		a.appendCmd(),
		a.catCmd(),
		a.linesCmd(),
		versionCmd(),
	)
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.With("err", err.Error()).Error("command failed")
		os.Exit(1)
	}
}
