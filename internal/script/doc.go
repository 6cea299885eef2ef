// Package script drives a ber.Writer from a line-oriented text notation.
//
// Each line holds one statement. Blank lines and lines starting with '#'
// are ignored. A statement may be prefixed with an implicit tag, "[N]" for
// context-specific or "[APPLICATION N]", "[PRIVATE N]", "[UNIVERSAL N]":
//
//	seq {
//	  int 1
//	  [APPLICATION 0] seq {
//	    int 3
//	    octets cn=admin,dc=example,dc=com
//	    [0] octets "secret"
//	  }
//	}
//
// Constructed values open with "seq {", "set {", "octets {" or, for an
// explicit tag, "[N] {", and close with "}". Primitive statements are
// bool, null, int, enum, octets, bits, oid, utf8, printable, ia5,
// utctime, gentime and raw. String operands are literal unless they start
// with ":: " (base64), "0x" (hex) or a double quote (Go syntax).
package script
