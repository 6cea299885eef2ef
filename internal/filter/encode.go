package filter

import (
	"strings"

	"github.com/go-ldap/ldap/v3"
	"github.com/pkg/errors"

	"github.com/KilimcininKorOglu/asnw/internal/ber"
)

// Extensible match field tags inside MatchingRuleAssertion.
const (
	tagMatchingRule = 1
	tagMatchType    = 2
	tagMatchValue   = 3
	tagDNAttributes = 4
)

// Substring choice tags inside SubstringFilter.substrings.
const (
	tagInitial = 0
	tagAny     = 1
	tagFinal   = 2
)

// ErrNilFilter is returned when a filter or one of its operands is missing.
var ErrNilFilter = errors.New("filter: nil filter")

// Validate checks that f can be encoded.
func (f *Filter) Validate() error {
	if f == nil {
		return ErrNilFilter
	}
	switch f.Type {
	case FilterAnd, FilterOr:
		for _, c := range f.Children {
			if err := c.Validate(); err != nil {
				return err
			}
		}
	case FilterNot:
		return f.Child.Validate()
	case FilterEquality, FilterGreaterOrEqual, FilterLessOrEqual, FilterApproxMatch, FilterPresent:
		if f.Attribute == "" {
			return ErrMissingAttribute
		}
	case FilterSubstring:
		sf := f.Substring
		if sf == nil {
			return ErrNilFilter
		}
		if sf.Attribute == "" {
			return ErrMissingAttribute
		}
		if sf.Initial == nil && sf.Final == nil && len(sf.Any) == 0 {
			return ErrInvalidValue
		}
	case FilterExtensibleMatch:
		em := f.Extensible
		if em == nil {
			return ErrNilFilter
		}
		if em.Type == "" && em.MatchingRule == "" {
			return ErrMissingRule
		}
	default:
		return errors.Errorf("filter: unknown filter type %d", int(f.Type))
	}
	return nil
}

// EncodeTo writes f as an RFC 4511 Filter onto w. The filter is
// validated first so w is left untouched when f is malformed.
func (f *Filter) EncodeTo(w *ber.Writer) error {
	if err := f.Validate(); err != nil {
		return err
	}
	return f.encode(w)
}

func (f *Filter) encode(w *ber.Writer) error {
	tag := ber.ContextTag(int(f.Type))

	switch f.Type {
	case FilterAnd, FilterOr:
		if err := w.PushSetOfTag(tag); err != nil {
			return err
		}
		for _, c := range f.Children {
			if err := c.encode(w); err != nil {
				return err
			}
		}
		return w.PopSetOfTag(tag)

	case FilterNot:
		if err := w.PushExplicit(tag); err != nil {
			return err
		}
		if err := f.Child.encode(w); err != nil {
			return err
		}
		return w.PopExplicit(tag)

	case FilterPresent:
		return w.WriteOctetStringTag(tag, []byte(f.Attribute))

	case FilterSubstring:
		return encodeSubstring(w, tag, f.Substring)

	case FilterExtensibleMatch:
		return encodeExtensible(w, tag, f.Extensible)

	default:
		// AttributeValueAssertion
		if err := w.PushSequenceTag(tag); err != nil {
			return err
		}
		if err := w.WriteOctetString([]byte(f.Attribute)); err != nil {
			return err
		}
		if err := w.WriteOctetString(f.Value); err != nil {
			return err
		}
		return w.PopSequenceTag(tag)
	}
}

func encodeSubstring(w *ber.Writer, tag ber.Tag, sf *SubstringFilter) error {
	if err := w.PushSequenceTag(tag); err != nil {
		return err
	}
	if err := w.WriteOctetString([]byte(sf.Attribute)); err != nil {
		return err
	}
	if err := w.PushSequence(); err != nil {
		return err
	}
	if sf.Initial != nil {
		if err := w.WriteOctetStringTag(ber.ContextTag(tagInitial), sf.Initial); err != nil {
			return err
		}
	}
	for _, a := range sf.Any {
		if err := w.WriteOctetStringTag(ber.ContextTag(tagAny), a); err != nil {
			return err
		}
	}
	if sf.Final != nil {
		if err := w.WriteOctetStringTag(ber.ContextTag(tagFinal), sf.Final); err != nil {
			return err
		}
	}
	if err := w.PopSequence(); err != nil {
		return err
	}
	return w.PopSequenceTag(tag)
}

func encodeExtensible(w *ber.Writer, tag ber.Tag, em *ExtensibleMatch) error {
	if err := w.PushSequenceTag(tag); err != nil {
		return err
	}
	if em.MatchingRule != "" {
		if err := w.WriteOctetStringTag(ber.ContextTag(tagMatchingRule), []byte(em.MatchingRule)); err != nil {
			return err
		}
	}
	if em.Type != "" {
		if err := w.WriteOctetStringTag(ber.ContextTag(tagMatchType), []byte(em.Type)); err != nil {
			return err
		}
	}
	if err := w.WriteOctetStringTag(ber.ContextTag(tagMatchValue), em.Value); err != nil {
		return err
	}
	// dnAttributes is DEFAULT FALSE and omitted unless set
	if em.DNAttributes {
		if err := w.WriteBooleanTag(ber.ContextTag(tagDNAttributes), true); err != nil {
			return err
		}
	}
	return w.PopSequenceTag(tag)
}

// String returns the RFC 4515 string form of f. Values are escaped so
// the result parses back to an equal filter.
func (f *Filter) String() string {
	var sb strings.Builder
	f.writeString(&sb)
	return sb.String()
}

func (f *Filter) writeString(sb *strings.Builder) {
	if f == nil {
		return
	}
	sb.WriteByte('(')
	switch f.Type {
	case FilterAnd, FilterOr:
		if f.Type == FilterAnd {
			sb.WriteByte('&')
		} else {
			sb.WriteByte('|')
		}
		for _, c := range f.Children {
			c.writeString(sb)
		}
	case FilterNot:
		sb.WriteByte('!')
		f.Child.writeString(sb)
	case FilterEquality:
		writeAssertion(sb, f.Attribute, "=", f.Value)
	case FilterGreaterOrEqual:
		writeAssertion(sb, f.Attribute, ">=", f.Value)
	case FilterLessOrEqual:
		writeAssertion(sb, f.Attribute, "<=", f.Value)
	case FilterApproxMatch:
		writeAssertion(sb, f.Attribute, "~=", f.Value)
	case FilterPresent:
		sb.WriteString(f.Attribute)
		sb.WriteString("=*")
	case FilterSubstring:
		if sf := f.Substring; sf != nil {
			sb.WriteString(sf.Attribute)
			sb.WriteByte('=')
			sb.WriteString(ldap.EscapeFilter(string(sf.Initial)))
			for _, a := range sf.Any {
				sb.WriteByte('*')
				sb.WriteString(ldap.EscapeFilter(string(a)))
			}
			sb.WriteByte('*')
			sb.WriteString(ldap.EscapeFilter(string(sf.Final)))
		}
	case FilterExtensibleMatch:
		if em := f.Extensible; em != nil {
			sb.WriteString(em.Type)
			if em.DNAttributes {
				sb.WriteString(":dn")
			}
			if em.MatchingRule != "" {
				sb.WriteByte(':')
				sb.WriteString(em.MatchingRule)
			}
			writeAssertion(sb, "", ":=", em.Value)
		}
	}
	sb.WriteByte(')')
}

func writeAssertion(sb *strings.Builder, attr, op string, value []byte) {
	sb.WriteString(attr)
	sb.WriteString(op)
	sb.WriteString(ldap.EscapeFilter(string(value)))
}
