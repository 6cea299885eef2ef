package ber

import "strings"

// RuleSet selects the X.690 encoding rules a Writer obeys. The three rule
// sets share every code path except the one that finalizes the length of a
// constructed value.
type RuleSet int

const (
	// BER writes definite lengths for constructed values. Indefinite
	// lengths would be legal, but definite ones are readable by parsers
	// that do not track end-of-contents markers.
	BER RuleSet = iota + 1
	// CER writes every constructed value with the indefinite length form
	// followed by an end-of-contents marker (X.690 9.1).
	CER
	// DER writes definite, minimal lengths everywhere (X.690 10.1).
	DER
)

// Valid reports whether r is one of BER, CER or DER.
func (r RuleSet) Valid() bool {
	return r == BER || r == CER || r == DER
}

// String returns the rule set's abbreviation.
func (r RuleSet) String() string {
	switch r {
	case BER:
		return "BER"
	case CER:
		return "CER"
	case DER:
		return "DER"
	default:
		return "unknown"
	}
}

// ParseRuleSet parses "ber", "cer" or "der" in any case.
func ParseRuleSet(s string) (RuleSet, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ber":
		return BER, nil
	case "cer":
		return CER, nil
	case "der":
		return DER, nil
	default:
		return 0, ErrUnsupportedRuleSet
	}
}

// indefiniteConstructed reports whether constructed values keep their
// indefinite length placeholder and get closed by end-of-contents.
func (r RuleSet) indefiniteConstructed() bool {
	return r == CER
}
