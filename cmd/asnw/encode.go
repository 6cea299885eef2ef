package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/KilimcininKorOglu/asnw/internal/ber"
	"github.com/KilimcininKorOglu/asnw/internal/config"
	"github.com/KilimcininKorOglu/asnw/internal/script"
)

// encodeOptions holds the flags shared by commands that produce encodings.
type encodeOptions struct {
	configFile *string
	rules      *string
	hex        *bool
	logLevel   *string
}

func addEncodeFlags(fs *flag.FlagSet) *encodeOptions {
	return &encodeOptions{
		configFile: fs.String("config", "", "Path to configuration file"),
		rules:      fs.String("rules", "", "Encoding rules: ber, cer, der (overrides config)"),
		hex:        fs.Bool("hex", false, "Print hex instead of raw bytes"),
		logLevel:   fs.String("log-level", "", "Log level (overrides config)"),
	}
}

// resolve loads the configuration and applies the flags on top of it.
func (o *encodeOptions) resolve(fs *flag.FlagSet) (*config.Config, error) {
	cfg, err := loadConfig(*o.configFile)
	if err != nil {
		return nil, err
	}
	if *o.rules != "" {
		cfg.Encoding.Rules = *o.rules
	}
	if isFlagSet(fs, "hex") {
		cfg.Encoding.Hex = *o.hex
	}
	if *o.logLevel != "" {
		cfg.Logging.Level = *o.logLevel
	}
	return cfg, nil
}

// encodeCmd handles the encode command.
func (a *app) encodeCmd(args []string) int {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	opts := addEncodeFlags(fs)
	inFile := fs.String("in", "", "Script file (default stdin)")
	help := fs.Bool("h", false, "Show help message")
	helpLong := fs.Bool("help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *help || *helpLong {
		printEncodeUsage(a.stdout)
		return 0
	}

	cfg, err := opts.resolve(fs)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
	if !a.checkConfig(cfg) {
		return 1
	}

	logger, closeLog, err := a.newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	var in io.Reader = a.stdin
	if *inFile != "" {
		f, err := os.Open(*inFile)
		if err != nil {
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		in = f
	}

	rules, _ := ber.ParseRuleSet(cfg.Encoding.Rules)
	w, err := ber.NewWriter(rules, ber.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
	defer w.Dispose()

	if err := script.Run(w, in); err != nil {
		logger.Error("encode failed", "error", err)
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}

	data, err := w.Encode()
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
	logger.Debug("encoded value", "rules", rules.String(), "bytes", len(data))

	if err := a.writeOutput(data, cfg.Encoding.Hex); err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
