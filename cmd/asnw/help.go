package main

import (
	"fmt"
	"io"
	"sort"
)

// printUsage prints the main usage information to the given writer.
func printUsage(w io.Writer) {
	fmt.Fprint(w, `asnw - ASN.1 BER, CER and DER encoder

Usage:
  asnw <command> [options]

Commands:
  encode      Encode a value described in the script notation
  ldap        Encode an LDAP protocol message
  rsakey      Generate or convert a PKCS#1 RSA private key
  config      Configuration management
  version     Show version information

Use "asnw <command> -h" for more information about a command.
`)
}

// printEncodeUsage prints the encode command usage.
func printEncodeUsage(w io.Writer) {
	fmt.Fprint(w, `Encode a value described in the script notation

Usage:
  asnw encode [options] < value.asn

Options:
  -config string
        Path to configuration file
  -rules string
        Encoding rules: ber, cer, der (overrides config, default "der")
  -hex
        Print hex instead of raw bytes
  -in string
        Read the script from a file instead of stdin
  -log-level string
        Log level: debug, info, warn, error (overrides config)
  -h, -help
        Show this help message

Script:
  seq {                       SEQUENCE, closed by "}"
  set {                       SET OF
  octets {                    constructed OCTET STRING
  [N] {                       explicit context tag N
  int 42 | bool true | null | enum 1 | oid 1.2.840.113549
  octets text | octets 0xA0B1 | octets :: base64 | octets "quoted"
  bits 0a 1 | utf8 s | printable s | ia5 s | raw 3000
  utctime 2024-01-02T03:04:05Z | gentime 2024-01-02T03:04:05Z

  A statement may be prefixed with an implicit tag such as [0] or
  [APPLICATION 3].

Environment Variables:
  ASNW_ENCODING_RULES      Override encoding rules
  ASNW_ENCODING_HEX        Override hex output
  ASNW_LOG_LEVEL           Override log level
`)
}

// printLDAPUsage prints the ldap command usage.
func printLDAPUsage(w io.Writer) {
	fmt.Fprint(w, `Encode an LDAP protocol message

Usage:
  asnw ldap <operation> [options]

Operations:
`)
	names := make([]string, 0, len(ldapCommands))
	for name := range ldapCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-11s %s\n", name, ldapCommands[name].summary)
	}
	fmt.Fprintf(w, "  %-11s %s\n", "ldif", ldifSummary)
	fmt.Fprint(w, `
Common options:
  -config string      Path to configuration file
  -id int             Message ID (overrides config)
  -rules string       Encoding rules: ber, cer, der
  -hex                Print hex instead of raw bytes
  -manage-dsait       Attach a critical ManageDsaIT control

Use "asnw ldap <operation> -h" for the operation's options.
`)
}

// printRSAKeyUsage prints the rsakey command usage.
func printRSAKeyUsage(w io.Writer) {
	fmt.Fprint(w, `Generate or convert a PKCS#1 RSA private key

Usage:
  asnw rsakey [options]

Options:
  -config string
        Path to configuration file
  -bits int
        Key size in bits (overrides config, default 2048)
  -format string
        Output format: pem, der (overrides config, default "pem")
  -in string
        Convert an existing key instead of generating one
  -out string
        Output file path (default stdout)
  -log-level string
        Log level: debug, info, warn, error (overrides config)
  -h, -help
        Show this help message

Environment Variables:
  ASNW_KEY_BITS            Override key size
  ASNW_KEY_FORMAT          Override output format
  ASNW_KEY_OUTPUT          Override output file path
`)
}

// printConfigUsage prints the config command usage.
func printConfigUsage(w io.Writer) {
	fmt.Fprint(w, `Configuration management

Usage:
  asnw config <subcommand> [options]

Subcommands:
  validate    Validate configuration file
  init        Generate default configuration
  show        Show effective configuration

Use "asnw config <subcommand> -h" for more information.
`)
}

// printVersionUsage prints the version command usage.
func printVersionUsage(w io.Writer) {
	fmt.Fprint(w, `Show version information

Usage:
  asnw version [options]

Options:
  -short
        Show only version number
  -h, -help
        Show this help message
`)
}
