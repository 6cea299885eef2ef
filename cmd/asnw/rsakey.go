package main

import (
	"flag"
	"fmt"

	"github.com/KilimcininKorOglu/asnw/internal/rsakey"
)

// rsakeyCmd handles the rsakey command.
func (a *app) rsakeyCmd(args []string) int {
	fs := flag.NewFlagSet("rsakey", flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	configFile := fs.String("config", "", "Path to configuration file")
	bits := fs.Int("bits", 0, "Key size in bits (overrides config)")
	format := fs.String("format", "", "Output format: pem, der (overrides config)")
	inFile := fs.String("in", "", "Convert an existing key")
	outFile := fs.String("out", "", "Output file path (default stdout)")
	logLevel := fs.String("log-level", "", "Log level (overrides config)")
	help := fs.Bool("h", false, "Show help message")
	helpLong := fs.Bool("help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *help || *helpLong {
		printRSAKeyUsage(a.stdout)
		return 0
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
	if *bits != 0 {
		cfg.Key.Bits = *bits
	}
	if *format != "" {
		cfg.Key.Format = *format
	}
	if *outFile != "" {
		cfg.Key.Output = *outFile
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
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

	keyFormat, _ := rsakey.ParseFormat(cfg.Key.Format)

	var key *rsakey.Parameters
	if *inFile != "" {
		key, err = rsakey.LoadFromFile(*inFile)
	} else {
		logger.Debug("generating key", "bits", cfg.Key.Bits)
		key, err = rsakey.Generate(cfg.Key.Bits, a.random)
	}
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
	defer key.Clear()

	if cfg.Key.Output != "" {
		if err := rsakey.SaveToFile(key, cfg.Key.Output, keyFormat); err != nil {
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
			return 1
		}
		logger.Info("key written", "path", cfg.Key.Output, "bits", key.Bits(), "format", keyFormat.String())
		return 0
	}

	data, err := key.Encode(keyFormat)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
	defer clear(data)

	if _, err := a.stdout.Write(data); err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
