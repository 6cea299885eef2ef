package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"strings"

	"github.com/KilimcininKorOglu/asnw/internal/config"
	"github.com/KilimcininKorOglu/asnw/internal/logging"
)

// loadConfig returns the defaults, or the file at path, with ASNW_*
// environment overrides applied.
func loadConfig(path string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = config.LoadConfig(path); err != nil {
			return nil, err
		}
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// checkConfig prints every validation error and reports whether cfg is usable.
func (a *app) checkConfig(cfg *config.Config) bool {
	errs := config.ValidateConfig(cfg)
	if len(errs) == 0 {
		return true
	}
	fmt.Fprintln(a.stderr, "Configuration errors:")
	for _, e := range errs {
		fmt.Fprintf(a.stderr, "  - %s\n", e)
	}
	return false
}

// newLogger builds the command logger. Output "stderr" goes to the app's
// stderr so tests can capture it.
func (a *app) newLogger(cfg config.LogConfig) (logging.Logger, func(), error) {
	if cfg.Output == "" || cfg.Output == "stderr" {
		level, _ := logging.ParseLevel(cfg.Level)
		format, _ := logging.ParseFormat(cfg.Format)
		return logging.NewWithWriter(level, format, a.stderr), func() {}, nil
	}

	logger, closer, err := logging.New(cfg.LoggerConfig())
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = closer.Close() }, nil
}

// writeOutput prints data raw, or as one line of lowercase hex.
func (a *app) writeOutput(data []byte, asHex bool) error {
	if asHex {
		_, err := fmt.Fprintln(a.stdout, hex.EncodeToString(data))
		return err
	}
	_, err := a.stdout.Write(data)
	return err
}

// isFlagSet reports whether name was given on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// stringList collects a repeatable string flag.
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}
