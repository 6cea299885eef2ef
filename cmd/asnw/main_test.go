package main

import (
	"bytes"
	"strings"
	"testing"
)

// newTestApp returns an app reading stdin from the given text and writing
// to buffers.
func newTestApp(stdin string) (*app, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &app{stdout: stdout, stderr: stderr, stdin: strings.NewReader(stdin)}, stdout, stderr
}

func TestRun_NoArgs(t *testing.T) {
	a, stdout, _ := newTestApp("")
	exitCode := a.run([]string{"asnw"})
	if exitCode != 1 {
		t.Errorf("expected exit code 1 for no args, got %d", exitCode)
	}
	if !strings.Contains(stdout.String(), "Usage:") {
		t.Errorf("expected usage on stdout, got %q", stdout.String())
	}
}

func TestRun_Help(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"help command", []string{"asnw", "help"}},
		{"short flag", []string{"asnw", "-h"}},
		{"long flag", []string{"asnw", "--help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, stdout, _ := newTestApp("")
			exitCode := a.run(tt.args)
			if exitCode != 0 {
				t.Errorf("expected exit code 0 for help, got %d", exitCode)
			}
			for _, cmd := range []string{"encode", "ldap", "rsakey", "config", "version"} {
				if !strings.Contains(stdout.String(), cmd) {
					t.Errorf("usage does not mention %s", cmd)
				}
			}
		})
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	a, _, stderr := newTestApp("")
	exitCode := a.run([]string{"asnw", "unknown"})
	if exitCode != 1 {
		t.Errorf("expected exit code 1 for unknown command, got %d", exitCode)
	}
	if !strings.Contains(stderr.String(), "Unknown command: unknown") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestRun_ProcessStreams(t *testing.T) {
	if exitCode := run([]string{"asnw", "version", "-short"}); exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
}

func TestRun_Version(t *testing.T) {
	a, stdout, _ := newTestApp("")
	if exitCode := a.run([]string{"asnw", "version"}); exitCode != 0 {
		t.Errorf("expected exit code 0 for version, got %d", exitCode)
	}
	if !strings.HasPrefix(stdout.String(), "asnw version "+version) {
		t.Errorf("unexpected version output %q", stdout.String())
	}
}

func TestRun_VersionShort(t *testing.T) {
	a, stdout, _ := newTestApp("")
	if exitCode := a.run([]string{"asnw", "version", "-short"}); exitCode != 0 {
		t.Errorf("expected exit code 0 for version -short, got %d", exitCode)
	}
	if stdout.String() != version+"\n" {
		t.Errorf("expected %q, got %q", version+"\n", stdout.String())
	}
}

func TestRun_CommandHelp(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"version", []string{"asnw", "version", "-h"}},
		{"encode", []string{"asnw", "encode", "-help"}},
		{"rsakey", []string{"asnw", "rsakey", "-h"}},
		{"config", []string{"asnw", "config", "help"}},
		{"config validate", []string{"asnw", "config", "validate", "-h"}},
		{"config init", []string{"asnw", "config", "init", "-h"}},
		{"config show", []string{"asnw", "config", "show", "-h"}},
		{"ldap", []string{"asnw", "ldap"}},
		{"ldap search", []string{"asnw", "ldap", "search", "-h"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, stdout, _ := newTestApp("")
			if exitCode := a.run(tt.args); exitCode != 0 {
				t.Errorf("expected exit code 0, got %d", exitCode)
			}
			if !strings.Contains(stdout.String(), "Usage:") {
				t.Errorf("expected usage, got %q", stdout.String())
			}
		})
	}
}

func TestRun_BadFlag(t *testing.T) {
	for _, cmd := range []string{"version", "encode", "rsakey", "ldap bind"} {
		t.Run(cmd, func(t *testing.T) {
			a, _, _ := newTestApp("")
			args := append([]string{"asnw"}, strings.Fields(cmd)...)
			if exitCode := a.run(append(args, "-no-such-flag")); exitCode != 1 {
				t.Errorf("expected exit code 1, got %d", exitCode)
			}
		})
	}
}

func TestStringList(t *testing.T) {
	var l stringList
	for _, v := range []string{"a", "b"} {
		if err := l.Set(v); err != nil {
			t.Fatal(err)
		}
	}
	if l.String() != "a,b" {
		t.Errorf("expected \"a,b\", got %q", l.String())
	}
}
