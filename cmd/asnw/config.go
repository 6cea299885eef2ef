package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"strings"

	"github.com/KilimcininKorOglu/asnw/internal/config"
)

// configCmd handles the config command.
func (a *app) configCmd(args []string) int {
	if len(args) == 0 {
		printConfigUsage(a.stdout)
		return 0
	}

	// Check for help flags
	if args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printConfigUsage(a.stdout)
		return 0
	}

	switch args[0] {
	case "validate":
		return a.configValidateCmd(args[1:])
	case "init":
		return a.configInitCmd(args[1:])
	case "show":
		return a.configShowCmd(args[1:])
	default:
		fmt.Fprintf(a.stderr, "Unknown config subcommand: %s\n", args[0])
		fmt.Fprintln(a.stderr, "Run 'asnw config help' for usage.")
		return 1
	}
}

// configValidateCmd handles the config validate subcommand.
func (a *app) configValidateCmd(args []string) int {
	fs := flag.NewFlagSet("config validate", flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	configFile := fs.String("config", "", "Path to configuration file")
	help := fs.Bool("h", false, "Show help message")
	helpLong := fs.Bool("help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *help || *helpLong {
		fmt.Fprintln(a.stdout, "Validate configuration file")
		fmt.Fprintln(a.stdout)
		fmt.Fprintln(a.stdout, "Usage:")
		fmt.Fprintln(a.stdout, "  asnw config validate -config <file>")
		return 0
	}

	if *configFile == "" {
		fmt.Fprintln(a.stderr, "Error: -config is required")
		return 1
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(a.stderr, "Invalid configuration: %v\n", err)
		return 1
	}
	if !a.checkConfig(cfg) {
		return 1
	}

	fmt.Fprintln(a.stdout, "Configuration is valid")
	return 0
}

// configInitCmd handles the config init subcommand.
func (a *app) configInitCmd(args []string) int {
	fs := flag.NewFlagSet("config init", flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	help := fs.Bool("h", false, "Show help message")
	helpLong := fs.Bool("help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *help || *helpLong {
		fmt.Fprintln(a.stdout, "Generate default configuration")
		fmt.Fprintln(a.stdout)
		fmt.Fprintln(a.stdout, "Usage:")
		fmt.Fprintln(a.stdout, "  asnw config init > asnw.yaml")
		return 0
	}

	fmt.Fprintln(a.stdout, "# asnw configuration")
	fmt.Fprint(a.stdout, config.DefaultConfig().String())
	return 0
}

// configShowCmd handles the config show subcommand.
func (a *app) configShowCmd(args []string) int {
	fs := flag.NewFlagSet("config show", flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	configFile := fs.String("config", "", "Path to configuration file")
	format := fs.String("format", "yaml", "Output format (yaml, json)")
	help := fs.Bool("h", false, "Show help message")
	helpLong := fs.Bool("help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *help || *helpLong {
		fmt.Fprintln(a.stdout, "Show effective configuration")
		fmt.Fprintln(a.stdout)
		fmt.Fprintln(a.stdout, "Usage:")
		fmt.Fprintln(a.stdout, "  asnw config show [-config <file>] [-format yaml|json]")
		return 0
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(a.stderr, "Failed to load config: %v\n", err)
		return 1
	}

	switch strings.ToLower(*format) {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			fmt.Fprintf(a.stderr, "Failed to marshal config: %v\n", err)
			return 1
		}
		fmt.Fprintln(a.stdout, string(data))
	case "yaml":
		fmt.Fprint(a.stdout, cfg.String())
	default:
		fmt.Fprintf(a.stderr, "Unknown format: %s\n", *format)
		return 1
	}
	return 0
}
