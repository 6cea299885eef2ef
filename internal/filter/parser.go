package filter

import (
	"errors"
	"strings"
)

// Parser errors
var (
	ErrEmptyFilter      = errors.New("filter: empty filter")
	ErrInvalidFilter    = errors.New("filter: invalid filter syntax")
	ErrUnbalancedParens = errors.New("filter: unbalanced parentheses")
	ErrMissingAttribute = errors.New("filter: missing attribute name")
	ErrInvalidAttribute = errors.New("filter: invalid attribute description")
	ErrInvalidEscape    = errors.New("filter: invalid escape sequence")
	ErrInvalidValue     = errors.New("filter: invalid character in assertion value")
	ErrMissingRule      = errors.New("filter: extensible match needs a type or matching rule")
)

// maxDepth bounds the nesting of AND, OR and NOT.
const maxDepth = 64

// Parse parses an LDAP filter string into a Filter structure.
// Supports RFC 4515 filter syntax:
//   - (attr=value)         - equality
//   - (attr=*)             - presence
//   - (attr=in*any*fin)    - substring
//   - (attr>=value)        - greater or equal
//   - (attr<=value)        - less or equal
//   - (attr~=value)        - approximate match
//   - (attr:dn:rule:=val)  - extensible match
//   - (&(f1)(f2)...)       - AND
//   - (|(f1)(f2)...)       - OR
//   - (!(filter))          - NOT
//
// Values may contain \XX hex escapes. A filter without enclosing
// parentheses is accepted when it is a single item, as in "uid=alice".
func Parse(filterStr string) (*Filter, error) {
	s := strings.TrimSpace(filterStr)
	if s == "" {
		return nil, ErrEmptyFilter
	}
	if s[0] != '(' {
		s = "(" + s + ")"
	}

	p := &parser{input: s}
	f, err := p.parseFilter(0)
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.input) {
		return nil, ErrInvalidFilter
	}
	return f, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) parseFilter(depth int) (*Filter, error) {
	if depth > maxDepth {
		return nil, ErrInvalidFilter
	}
	if p.pos >= len(p.input) || p.input[p.pos] != '(' {
		return nil, ErrInvalidFilter
	}
	p.pos++
	if p.pos >= len(p.input) {
		return nil, ErrUnbalancedParens
	}

	var f *Filter
	var err error
	switch p.input[p.pos] {
	case '&':
		p.pos++
		var children []*Filter
		children, err = p.parseList(depth)
		f = NewAndFilter(children...)
	case '|':
		p.pos++
		var children []*Filter
		children, err = p.parseList(depth)
		f = NewOrFilter(children...)
	case '!':
		p.pos++
		var child *Filter
		child, err = p.parseFilter(depth + 1)
		f = NewNotFilter(child)
	case ')':
		return nil, ErrEmptyFilter
	default:
		end := strings.IndexAny(p.input[p.pos:], "()")
		if end < 0 {
			return nil, ErrUnbalancedParens
		}
		if p.input[p.pos+end] == '(' {
			return nil, ErrInvalidValue
		}
		f, err = parseItem(p.input[p.pos : p.pos+end])
		p.pos += end
	}
	if err != nil {
		return nil, err
	}

	if p.pos >= len(p.input) || p.input[p.pos] != ')' {
		return nil, ErrUnbalancedParens
	}
	p.pos++
	return f, nil
}

// parseList reads the filters of an AND or OR. An empty list is the
// absolute true or false filter of RFC 4526.
func (p *parser) parseList(depth int) ([]*Filter, error) {
	var children []*Filter
	for p.pos < len(p.input) && p.input[p.pos] == '(' {
		child, err := p.parseFilter(depth + 1)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func parseItem(s string) (*Filter, error) {
	idx := strings.IndexByte(s, '=')
	if idx < 0 {
		return nil, ErrInvalidFilter
	}
	if idx == 0 {
		return nil, ErrMissingAttribute
	}

	raw := s[idx+1:]
	switch s[idx-1] {
	case '~', '>', '<':
		attr, err := checkAttribute(s[:idx-1])
		if err != nil {
			return nil, err
		}
		value, err := unescape(raw)
		if err != nil {
			return nil, err
		}
		switch s[idx-1] {
		case '~':
			return NewApproxMatchFilter(attr, value), nil
		case '>':
			return NewGreaterOrEqualFilter(attr, value), nil
		default:
			return NewLessOrEqualFilter(attr, value), nil
		}
	case ':':
		return parseExtensible(s[:idx-1], raw)
	}

	attr, err := checkAttribute(s[:idx])
	if err != nil {
		return nil, err
	}
	if raw == "*" {
		return NewPresentFilter(attr), nil
	}
	if strings.IndexByte(raw, '*') >= 0 {
		return parseSubstring(attr, raw)
	}
	value, err := unescape(raw)
	if err != nil {
		return nil, err
	}
	return NewEqualityFilter(attr, value), nil
}

func parseSubstring(attr, raw string) (*Filter, error) {
	parts := strings.Split(raw, "*")
	sf := &SubstringFilter{Attribute: attr}

	for i, part := range parts {
		if part == "" {
			continue
		}
		value, err := unescape(part)
		if err != nil {
			return nil, err
		}
		switch i {
		case 0:
			sf.Initial = value
		case len(parts) - 1:
			sf.Final = value
		default:
			sf.Any = append(sf.Any, value)
		}
	}
	if sf.Initial == nil && sf.Final == nil && len(sf.Any) == 0 {
		return nil, ErrInvalidValue
	}
	return NewSubstringFilter(sf), nil
}

// parseExtensible handles "attr[:dn][:rule]" and "[:dn]:rule" before ":=".
func parseExtensible(left, raw string) (*Filter, error) {
	segs := strings.Split(left, ":")
	em := &ExtensibleMatch{}

	if segs[0] != "" {
		attr, err := checkAttribute(segs[0])
		if err != nil {
			return nil, err
		}
		em.Type = attr
	}
	rest := segs[1:]
	if len(rest) > 0 && strings.EqualFold(rest[0], "dn") {
		em.DNAttributes = true
		rest = rest[1:]
	}
	switch len(rest) {
	case 0:
	case 1:
		if rest[0] == "" {
			return nil, ErrMissingRule
		}
		rule, err := checkAttribute(rest[0])
		if err != nil {
			return nil, err
		}
		em.MatchingRule = rule
	default:
		return nil, ErrInvalidFilter
	}
	if em.Type == "" && em.MatchingRule == "" {
		return nil, ErrMissingRule
	}

	value, err := unescape(raw)
	if err != nil {
		return nil, err
	}
	em.Value = value
	return NewExtensibleMatchFilter(em), nil
}

// checkAttribute accepts a descriptor or numeric OID with options,
// e.g. "cn", "2.5.4.3" or "userCertificate;binary".
func checkAttribute(s string) (string, error) {
	if s == "" {
		return "", ErrMissingAttribute
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '.', c == ';':
		default:
			return "", ErrInvalidAttribute
		}
	}
	return s, nil
}

// unescape decodes \XX escapes. Unescaped '*', '(' , ')' and NUL are
// rejected.
func unescape(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			if len(s)-i < 3 {
				return nil, ErrInvalidEscape
			}
			hi, ok1 := fromHex(s[i+1])
			lo, ok2 := fromHex(s[i+2])
			if !ok1 || !ok2 {
				return nil, ErrInvalidEscape
			}
			out = append(out, hi<<4|lo)
			i += 2
		case '*', '(', ')', 0:
			return nil, ErrInvalidValue
		default:
			out = append(out, c)
		}
	}
	return out, nil
}

func fromHex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
