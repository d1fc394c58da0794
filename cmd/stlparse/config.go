package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/philipparndt/stlparse/internal/output"
	"github.com/philipparndt/stlparse/pkg/stl"
	"github.com/spf13/viper"
)

// initConfig reads the config file and STLPARSE_* environment variables.
// A missing default config file is not an error.
func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(".stlparse")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("STLPARSE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

type config struct {
	Format    stl.Format
	Aggregate bool
	Discard   bool
	Size      int64
	Yield     bool
	Progress  bool
	Output    output.Encoding
	NoColor   bool
	Watch     bool
	Profile   string
}

func loadConfig(v *viper.Viper) (*config, error) {
	cfg := &config{
		Aggregate: v.GetBool("aggregate"),
		Discard:   v.GetBool("discard-excess-vertices"),
		Size:      v.GetInt64("size"),
		Yield:     v.GetBool("yield"),
		Progress:  v.GetBool("progress"),
		Output:    output.Encoding(v.GetString("output")),
		NoColor:   v.GetBool("no-color"),
		Watch:     v.GetBool("watch"),
		Profile:   v.GetString("profile"),
	}

	ascii, binary := v.GetBool("ascii"), v.GetBool("binary")
	switch {
	case ascii && binary:
		return nil, errors.New("--ascii and --binary are mutually exclusive")
	case ascii:
		cfg.Format = stl.FormatASCII
	case binary:
		cfg.Format = stl.FormatBinary
	}

	if cfg.Size < 0 {
		return nil, fmt.Errorf("invalid size %d", cfg.Size)
	}
	return cfg, nil
}

// options translates the config into parser options. size is used for
// progress when no size was configured.
func (c *config) options(size int64) []stl.Option {
	if c.Size > 0 {
		size = c.Size
	}
	return []stl.Option{
		stl.WithFormat(c.Format),
		stl.WithAggregate(c.Aggregate),
		stl.WithDiscardExcessVertices(c.Discard),
		stl.WithBlocking(!c.Yield),
		stl.WithSize(size),
	}
}
