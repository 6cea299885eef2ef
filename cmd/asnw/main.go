// Package main provides the entry point for the asnw encoding CLI.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	exitCode := run(os.Args)
	os.Exit(exitCode)
}

// app carries the process streams so commands can be tested with buffers.
type app struct {
	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader
	// random feeds key generation; nil means crypto/rand.
	random io.Reader
}

func newApp() *app {
	return &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		stdin:  os.Stdin,
	}
}

// run executes the CLI and returns an exit code.
// This is separated from main() to facilitate testing.
func run(args []string) int {
	return newApp().run(args)
}

func (a *app) run(args []string) int {
	if len(args) < 2 {
		printUsage(a.stdout)
		return 1
	}

	switch args[1] {
	case "encode":
		return a.encodeCmd(args[2:])
	case "ldap":
		return a.ldapCmd(args[2:])
	case "rsakey":
		return a.rsakeyCmd(args[2:])
	case "config":
		return a.configCmd(args[2:])
	case "version":
		return a.versionCmd(args[2:])
	case "help", "-h", "--help":
		printUsage(a.stdout)
		return 0
	default:
		fmt.Fprintf(a.stderr, "Unknown command: %s\n", args[1])
		fmt.Fprintln(a.stderr, "Run 'asnw help' for usage.")
		return 1
	}
}
