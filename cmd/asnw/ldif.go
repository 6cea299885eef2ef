package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/KilimcininKorOglu/asnw/internal/ber"
	"github.com/KilimcininKorOglu/asnw/internal/ldap"
	"github.com/KilimcininKorOglu/asnw/internal/ldif"
)

// ldifCmd encodes one add request per LDIF record. Message IDs count up
// from the configured one.
func (a *app) ldifCmd(args []string) int {
	fs := flag.NewFlagSet("ldap ldif", flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	opts := addEncodeFlags(fs)
	messageID := fs.Int("id", 0, "First message ID (overrides config)")
	inFile := fs.String("in", "", "LDIF file (default stdin)")
	help := fs.Bool("h", false, "Show help message")
	helpLong := fs.Bool("help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *help || *helpLong {
		fmt.Fprintln(a.stdout, ldifSummary)
		fmt.Fprintln(a.stdout)
		fmt.Fprintln(a.stdout, "Usage:\n  asnw ldap ldif [options]\n\nOptions:")
		fs.SetOutput(a.stdout)
		fs.PrintDefaults()
		return 0
	}

	cfg, err := opts.resolve(fs)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
	if isFlagSet(fs, "id") {
		cfg.LDAP.MessageID = *messageID
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

	records, err := ldif.Parse(in)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}

	rules, _ := ber.ParseRuleSet(cfg.Encoding.Rules)
	w, err := ber.NewWriter(rules, ber.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
	defer w.Dispose()

	id := cfg.LDAP.MessageID
	for _, record := range records {
		msg := ldap.NewMessage(id, record.AddRequest())
		if err := msg.EncodeTo(w); err != nil {
			fmt.Fprintf(a.stderr, "Error: entry %q (line %d): %v\n", record.DN, record.Line(), err)
			return 1
		}
		if err := a.flushMessage(w, cfg.Encoding.Hex); err != nil {
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
			return 1
		}
		logger.Debug("encoded entry", "dn", record.DN, "messageID", id)
		id++
	}

	logger.Info("ldif encoded", "entries", len(records), "rules", rules.String())
	return 0
}

// flushMessage writes the finished message in w and resets w for the next one.
func (a *app) flushMessage(w *ber.Writer, asHex bool) error {
	if asHex {
		data, err := w.Encode()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(a.stdout, hex.EncodeToString(data)); err != nil {
			return err
		}
	} else if _, err := w.WriteTo(a.stdout); err != nil {
		return err
	}
	return w.Reset()
}
