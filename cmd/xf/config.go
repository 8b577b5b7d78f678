package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/egor9814/xfile"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/text/encoding"
)

const envPrefix = "XF"

type config struct {
	Header     string `mapstructure:"header"`
	Footer     string `mapstructure:"footer"`
	HeaderOnly bool   `mapstructure:"header-only"`
	Encoding   string `mapstructure:"encoding"`
	Zstd       string `mapstructure:"zstd"`
	Verbose    bool   `mapstructure:"verbose"`
}

// flagDef defines a persistent flag and the viper key it is bound to.
type (
	flagType interface {
		string | bool
	}

	flagDef[T flagType] struct {
		name         string
		shorthand    string
		defaultValue T
		description  string
	}
)

var (
	stringFlags = []flagDef[string]{
		{"header", "", "", "header signature as 16 hex digits (default 2a070b0f5a010008)"},
		{"footer", "", "", "footer signature as 16 hex digits (default: header reversed)"},
		{"encoding", "E", "utf-8", "text encoding for cat and lines"},
		{"zstd", "z", "", "zstd payload filter: auto or l=low|mid|high,t=N,m=N[K|M|G|%]"},
	}
	boolFlags = []flagDef[bool]{
		{"header-only", "H", false, "no footer signature"},
		{"verbose", "v", false, "verbose mode"},
	}
)

func registerFlags(flags *pflag.FlagSet, v *viper.Viper) error {
	for _, f := range stringFlags {
		flags.StringP(f.name, f.shorthand, f.defaultValue, f.description)
	}
	for _, f := range boolFlags {
		flags.BoolP(f.name, f.shorthand, f.defaultValue, f.description)
	}
	flags.Lookup("zstd").NoOptDefVal = "auto"
	return v.BindPFlags(flags)
}

// loadConfig merges flags, XF_* environment variables and an optional
// xf.yaml, in that order of precedence.
func loadConfig(v *viper.Viper, file string) (config, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("xf")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "xf"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return config{}, fmt.Errorf("read config: %w", err)
		}
		slog.Debug("no config file found, relying on flags and defaults")
	} else {
		slog.With("config_file", v.ConfigFileUsed()).Debug("config file loaded")
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func (c config) signatureSet() (xfile.SignatureSet, error) {
	header := xfile.DefaultHeader
	if c.Header != "" {
		h, err := xfile.ParseHexSignature(c.Header)
		if err != nil {
			return xfile.SignatureSet{}, fmt.Errorf("header: %w", err)
		}
		header = h
	}
	if c.HeaderOnly {
		if c.Footer != "" {
			return xfile.SignatureSet{}, errors.New("footer and header-only are mutually exclusive")
		}
		return xfile.NewSignatureSet(header[:], nil)
	}
	footer := header.Reverse()
	if c.Footer != "" {
		f, err := xfile.ParseHexSignature(c.Footer)
		if err != nil {
			return xfile.SignatureSet{}, fmt.Errorf("footer: %w", err)
		}
		footer = f
	}
	return xfile.NewSignatureSet(header[:], footer[:])
}

func (c config) encoding() (encoding.Encoding, error) {
	return xfile.LookupEncoding(c.Encoding)
}
