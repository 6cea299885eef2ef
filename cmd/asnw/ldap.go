package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/KilimcininKorOglu/asnw/internal/ber"
	"github.com/KilimcininKorOglu/asnw/internal/config"
	"github.com/KilimcininKorOglu/asnw/internal/ldap"
)

var errBadAssertion = errors.New("expected type=value")

const ldifSummary = "Encode an add request for every LDIF entry"

// ldapBuilder turns parsed flags into an operation and its controls.
type ldapBuilder func(cfg *config.Config) (ldap.Operation, []ldap.Control, error)

// ldapCommand registers the flags of one operation on fs.
type ldapCommand struct {
	summary string
	flags   func(fs *flag.FlagSet) ldapBuilder
}

var ldapCommands = map[string]ldapCommand{
	"bind":     {"Bind with a simple password or a SASL mechanism", bindFlags},
	"unbind":   {"Close the session", unbindFlags},
	"search":   {"Search the directory", searchFlags},
	"add":      {"Add an entry", addFlags},
	"delete":   {"Delete an entry", deleteFlags},
	"modify":   {"Modify the attributes of an entry", modifyFlags},
	"modrdn":   {"Rename or move an entry", modrdnFlags},
	"compare":  {"Compare an attribute value", compareFlags},
	"abandon":  {"Abandon an outstanding operation", abandonFlags},
	"extended": {"Send an extended operation", extendedFlags},
	"whoami":   {"Ask for the authorization identity", whoamiFlags},
	"passwd":   {"Change a password", passwdFlags},
}

// ldapCmd handles the ldap command.
func (a *app) ldapCmd(args []string) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printLDAPUsage(a.stdout)
		return 0
	}

	if args[0] == "ldif" {
		return a.ldifCmd(args[1:])
	}

	cmd, ok := ldapCommands[args[0]]
	if !ok {
		fmt.Fprintf(a.stderr, "Unknown ldap operation: %s\n", args[0])
		fmt.Fprintln(a.stderr, "Run 'asnw ldap help' for usage.")
		return 1
	}

	fs := flag.NewFlagSet("ldap "+args[0], flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	opts := addEncodeFlags(fs)
	messageID := fs.Int("id", 0, "Message ID (overrides config)")
	manageDsaIT := fs.Bool("manage-dsait", false, "Attach a critical ManageDsaIT control")
	help := fs.Bool("h", false, "Show help message")
	helpLong := fs.Bool("help", false, "Show help message")
	build := cmd.flags(fs)

	if err := fs.Parse(args[1:]); err != nil {
		return 1
	}

	if *help || *helpLong {
		fmt.Fprintln(a.stdout, cmd.summary)
		fmt.Fprintln(a.stdout)
		fmt.Fprintf(a.stdout, "Usage:\n  asnw ldap %s [options]\n\nOptions:\n", args[0])
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

	op, controls, err := build(cfg)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
	if *manageDsaIT {
		controls = append(controls, ldap.NewManageDsaITControl(true))
	}

	rules, _ := ber.ParseRuleSet(cfg.Encoding.Rules)
	msg := ldap.NewMessage(cfg.LDAP.MessageID, op, controls...)
	data, err := msg.Encode(rules, ber.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
	logger.Debug("encoded message",
		"operation", op.Type().String(),
		"messageID", cfg.LDAP.MessageID,
		"controls", len(controls),
		"bytes", len(data),
	)

	if err := a.writeOutput(data, cfg.Encoding.Hex); err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func bindFlags(fs *flag.FlagSet) ldapBuilder {
	dn := fs.String("dn", "", "Bind DN (default ldap.bindDN)")
	password := fs.String("password", "", "Simple bind password")
	mechanism := fs.String("sasl", "", "SASL mechanism instead of a simple bind")
	credentials := fs.String("cred", "", "SASL credentials")

	return func(cfg *config.Config) (ldap.Operation, []ldap.Control, error) {
		name := *dn
		if !isFlagSet(fs, "dn") {
			name = cfg.LDAP.BindDN
		}
		if *mechanism != "" {
			var cred []byte
			if isFlagSet(fs, "cred") {
				cred = []byte(*credentials)
			}
			return ldap.NewSASLBindRequest(name, *mechanism, cred), nil, nil
		}
		return ldap.NewSimpleBindRequest(name, []byte(*password)), nil, nil
	}
}

func unbindFlags(fs *flag.FlagSet) ldapBuilder {
	return func(cfg *config.Config) (ldap.Operation, []ldap.Control, error) {
		return &ldap.UnbindRequest{}, nil, nil
	}
}

func searchFlags(fs *flag.FlagSet) ldapBuilder {
	base := fs.String("base", "", "Search base (default ldap.baseDN)")
	scope := fs.String("scope", "sub", "Scope: base, one, sub")
	filterStr := fs.String("filter", "(objectClass=*)", "RFC 4515 search filter")
	attrs := fs.String("attrs", "", "Comma separated attributes to return")
	sizeLimit := fs.Int("size-limit", 0, "Size limit (overrides config)")
	timeLimit := fs.Int("time-limit", 0, "Time limit in seconds (overrides config)")
	typesOnly := fs.Bool("types-only", false, "Return attribute types only")
	pageSize := fs.Int("page-size", 0, "Attach a paged results control (overrides config)")
	cookie := fs.String("cookie", "", "Hex paged results cookie")

	return func(cfg *config.Config) (ldap.Operation, []ldap.Control, error) {
		sc, err := ldap.ParseScope(*scope)
		if err != nil {
			return nil, nil, err
		}
		baseDN := *base
		if !isFlagSet(fs, "base") {
			baseDN = cfg.LDAP.BaseDN
		}

		var attributes []string
		for _, attr := range strings.Split(*attrs, ",") {
			if attr = strings.TrimSpace(attr); attr != "" {
				attributes = append(attributes, attr)
			}
		}

		req, err := ldap.NewSearchRequest(baseDN, sc, *filterStr, attributes...)
		if err != nil {
			return nil, nil, err
		}
		req.SizeLimit = cfg.LDAP.SizeLimit
		if isFlagSet(fs, "size-limit") {
			req.SizeLimit = *sizeLimit
		}
		req.TimeLimit = cfg.LDAP.TimeLimit
		if isFlagSet(fs, "time-limit") {
			req.TimeLimit = *timeLimit
		}
		req.TypesOnly = *typesOnly

		size := cfg.LDAP.PageSize
		if isFlagSet(fs, "page-size") {
			size = *pageSize
		}
		if size <= 0 {
			if *cookie != "" {
				return nil, nil, errors.New("-cookie needs a page size")
			}
			return req, nil, nil
		}

		c, err := hex.DecodeString(*cookie)
		if err != nil {
			return nil, nil, errors.Wrap(err, "cookie")
		}
		paging, err := ldap.NewPagedResultsControl(size, c)
		if err != nil {
			return nil, nil, err
		}
		return req, []ldap.Control{paging}, nil
	}
}

func addFlags(fs *flag.FlagSet) ldapBuilder {
	dn := fs.String("dn", "", "Entry DN")
	var attrs stringList
	fs.Var(&attrs, "attr", "Attribute as type=value (repeatable)")

	return func(cfg *config.Config) (ldap.Operation, []ldap.Control, error) {
		req := &ldap.AddRequest{Entry: *dn}
		grouped, err := groupAssertions(attrs)
		if err != nil {
			return nil, nil, err
		}
		req.Attributes = grouped
		return req, nil, nil
	}
}

func deleteFlags(fs *flag.FlagSet) ldapBuilder {
	dn := fs.String("dn", "", "Entry DN")
	tree := fs.Bool("tree", false, "Delete the whole subtree")

	return func(cfg *config.Config) (ldap.Operation, []ldap.Control, error) {
		var controls []ldap.Control
		if *tree {
			controls = append(controls, ldap.NewSubtreeDeleteControl())
		}
		return &ldap.DeleteRequest{DN: *dn}, controls, nil
	}
}

func modifyFlags(fs *flag.FlagSet) ldapBuilder {
	dn := fs.String("dn", "", "Entry DN")
	changes := make(map[ldap.ModifyOperation]*stringList)
	var order []ldap.ModifyOperation
	for _, op := range []ldap.ModifyOperation{
		ldap.ModifyOperationAdd,
		ldap.ModifyOperationDelete,
		ldap.ModifyOperationReplace,
		ldap.ModifyOperationIncrement,
	} {
		list := &stringList{}
		changes[op] = list
		order = append(order, op)
		fs.Var(list, op.String(), "Change as type=value (repeatable)")
	}

	return func(cfg *config.Config) (ldap.Operation, []ldap.Control, error) {
		req := &ldap.ModifyRequest{Object: *dn}
		for _, op := range order {
			grouped, err := groupAssertions(*changes[op])
			if err != nil {
				return nil, nil, errors.Wrapf(err, "-%s", op)
			}
			for _, attr := range grouped {
				req.AddModification(op, attr)
			}
		}
		return req, nil, nil
	}
}

func modrdnFlags(fs *flag.FlagSet) ldapBuilder {
	dn := fs.String("dn", "", "Entry DN")
	newRDN := fs.String("newrdn", "", "New RDN")
	deleteOld := fs.Bool("delete-old", false, "Remove the old RDN values")
	superior := fs.String("superior", "", "New parent DN")

	return func(cfg *config.Config) (ldap.Operation, []ldap.Control, error) {
		return &ldap.ModifyDNRequest{
			Entry:        *dn,
			NewRDN:       *newRDN,
			DeleteOldRDN: *deleteOld,
			NewSuperior:  *superior,
		}, nil, nil
	}
}

func compareFlags(fs *flag.FlagSet) ldapBuilder {
	dn := fs.String("dn", "", "Entry DN")
	assertion := fs.String("attr", "", "Assertion as type=value")

	return func(cfg *config.Config) (ldap.Operation, []ldap.Control, error) {
		attr, value, err := parseAssertion(*assertion)
		if err != nil {
			return nil, nil, err
		}
		return &ldap.CompareRequest{DN: *dn, Attribute: attr, Value: []byte(value)}, nil, nil
	}
}

func abandonFlags(fs *flag.FlagSet) ldapBuilder {
	target := fs.Int("target", 0, "Message ID to abandon")

	return func(cfg *config.Config) (ldap.Operation, []ldap.Control, error) {
		return &ldap.AbandonRequest{MessageID: *target}, nil, nil
	}
}

func extendedFlags(fs *flag.FlagSet) ldapBuilder {
	oid := fs.String("oid", "", "Request name")
	value := fs.String("value", "", "Hex request value")

	return func(cfg *config.Config) (ldap.Operation, []ldap.Control, error) {
		req := &ldap.ExtendedRequest{Name: *oid}
		if isFlagSet(fs, "value") {
			v, err := hex.DecodeString(*value)
			if err != nil {
				return nil, nil, errors.Wrap(err, "value")
			}
			req.Value = v
		}
		return req, nil, nil
	}
}

func whoamiFlags(fs *flag.FlagSet) ldapBuilder {
	return func(cfg *config.Config) (ldap.Operation, []ldap.Control, error) {
		return &ldap.ExtendedRequest{Name: ldap.OIDWhoAmI}, nil, nil
	}
}

func passwdFlags(fs *flag.FlagSet) ldapBuilder {
	user := fs.String("user", "", "User identity (default the bound user)")
	oldPassword := fs.String("old", "", "Current password")
	newPassword := fs.String("new", "", "New password (default server generated)")

	return func(cfg *config.Config) (ldap.Operation, []ldap.Control, error) {
		req, err := ldap.NewPasswordModifyRequest(*user, *oldPassword, *newPassword)
		if err != nil {
			return nil, nil, err
		}
		return req, nil, nil
	}
}

// parseAssertion splits "type=value" at the first '='.
func parseAssertion(s string) (string, string, error) {
	idx := strings.IndexByte(s, '=')
	if idx <= 0 {
		return "", "", errors.Wrapf(errBadAssertion, "%q", s)
	}
	return s[:idx], s[idx+1:], nil
}

// groupAssertions merges type=value pairs into attributes, keeping the
// order in which each type first appeared.
func groupAssertions(pairs []string) ([]ldap.Attribute, error) {
	var attrs []ldap.Attribute
	index := make(map[string]int)
	for _, pair := range pairs {
		attrType, value, err := parseAssertion(pair)
		if err != nil {
			return nil, err
		}
		key := strings.ToLower(attrType)
		if i, ok := index[key]; ok {
			attrs[i].Values = append(attrs[i].Values, []byte(value))
			continue
		}
		index[key] = len(attrs)
		attrs = append(attrs, ldap.NewAttribute(attrType, value))
	}
	return attrs, nil
}
