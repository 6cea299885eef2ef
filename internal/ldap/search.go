package ldap

import (
	"github.com/pkg/errors"

	"github.com/KilimcininKorOglu/asnw/internal/ber"
	"github.com/KilimcininKorOglu/asnw/internal/filter"
)

// SearchScope represents the scope of an LDAP search operation
type SearchScope int

const (
	// ScopeBaseObject searches only the base object
	ScopeBaseObject SearchScope = 0
	// ScopeSingleLevel searches one level below the base object
	ScopeSingleLevel SearchScope = 1
	// ScopeWholeSubtree searches the entire subtree
	ScopeWholeSubtree SearchScope = 2
)

// String returns the RFC 4511 name of the scope.
func (s SearchScope) String() string {
	switch s {
	case ScopeBaseObject:
		return "baseObject"
	case ScopeSingleLevel:
		return "singleLevel"
	case ScopeWholeSubtree:
		return "wholeSubtree"
	default:
		return "unknown"
	}
}

// ParseScope parses "base", "one" or "sub" as used by ldapsearch, or the
// RFC 4511 names.
func ParseScope(s string) (SearchScope, error) {
	switch s {
	case "base", "baseObject":
		return ScopeBaseObject, nil
	case "one", "singleLevel":
		return ScopeSingleLevel, nil
	case "sub", "wholeSubtree":
		return ScopeWholeSubtree, nil
	default:
		return 0, errors.Wrapf(ErrInvalidScope, "%q", s)
	}
}

// DerefAliases represents how aliases should be dereferenced during search
type DerefAliases int

const (
	// DerefNever never dereferences aliases
	DerefNever DerefAliases = 0
	// DerefInSearching dereferences aliases when searching subordinates
	DerefInSearching DerefAliases = 1
	// DerefFindingBaseObj dereferences aliases when finding the base object
	DerefFindingBaseObj DerefAliases = 2
	// DerefAlways always dereferences aliases
	DerefAlways DerefAliases = 3
)

// String returns the RFC 4511 name of the mode.
func (d DerefAliases) String() string {
	switch d {
	case DerefNever:
		return "neverDerefAliases"
	case DerefInSearching:
		return "derefInSearching"
	case DerefFindingBaseObj:
		return "derefFindingBaseObj"
	case DerefAlways:
		return "derefAlways"
	default:
		return "unknown"
	}
}

// SearchRequest represents an LDAP Search Request
//
//	SearchRequest ::= [APPLICATION 3] SEQUENCE {
//	     baseObject      LDAPDN,
//	     scope           ENUMERATED,
//	     derefAliases    ENUMERATED,
//	     sizeLimit       INTEGER (0 ..  maxInt),
//	     timeLimit       INTEGER (0 ..  maxInt),
//	     typesOnly       BOOLEAN,
//	     filter          Filter,
//	     attributes      AttributeSelection }
type SearchRequest struct {
	BaseObject   string
	Scope        SearchScope
	DerefAliases DerefAliases
	SizeLimit    int
	TimeLimit    int
	TypesOnly    bool
	Filter       *filter.Filter
	Attributes   []string
}

// NewSearchRequest parses filterStr and returns a request with no limits.
func NewSearchRequest(baseObject string, scope SearchScope, filterStr string, attributes ...string) (*SearchRequest, error) {
	f, err := filter.Parse(filterStr)
	if err != nil {
		return nil, errors.Wrapf(err, "ldap: search filter %q", filterStr)
	}
	return &SearchRequest{
		BaseObject: baseObject,
		Scope:      scope,
		Filter:     f,
		Attributes: attributes,
	}, nil
}

func (r *SearchRequest) Type() OperationType { return ApplicationSearchRequest }

// Validate checks enumerations, limits, the base DN and the filter.
func (r *SearchRequest) Validate() error {
	if err := checkDN("baseObject", r.BaseObject); err != nil {
		return err
	}
	if r.Scope < ScopeBaseObject || r.Scope > ScopeWholeSubtree {
		return ErrInvalidScope
	}
	if r.DerefAliases < DerefNever || r.DerefAliases > DerefAlways {
		return ErrInvalidDeref
	}
	if r.SizeLimit < 0 || r.TimeLimit < 0 || r.SizeLimit > MaxMessageID || r.TimeLimit > MaxMessageID {
		return ErrInvalidLimit
	}
	if r.Filter == nil {
		return ErrMissingFilter
	}
	return r.Filter.Validate()
}

func (r *SearchRequest) EncodeTo(w *ber.Writer) error {
	if err := r.Validate(); err != nil {
		return err
	}
	tag := r.Type().Tag()
	if err := w.PushSequenceTag(tag); err != nil {
		return err
	}
	if err := writeString(w, r.BaseObject); err != nil {
		return err
	}
	if err := w.WriteEnumerated(int64(r.Scope)); err != nil {
		return err
	}
	if err := w.WriteEnumerated(int64(r.DerefAliases)); err != nil {
		return err
	}
	if err := w.WriteInteger(int64(r.SizeLimit)); err != nil {
		return err
	}
	if err := w.WriteInteger(int64(r.TimeLimit)); err != nil {
		return err
	}
	if err := w.WriteBoolean(r.TypesOnly); err != nil {
		return err
	}
	if err := r.Filter.EncodeTo(w); err != nil {
		return err
	}
	if err := w.PushSequence(); err != nil {
		return err
	}
	if err := writeStrings(w, r.Attributes); err != nil {
		return err
	}
	if err := w.PopSequence(); err != nil {
		return err
	}
	return w.PopSequenceTag(tag)
}

// SearchResultEntry carries one entry of a search result
//
//	SearchResultEntry ::= [APPLICATION 4] SEQUENCE {
//	     objectName      LDAPDN,
//	     attributes      PartialAttributeList }
type SearchResultEntry struct {
	ObjectName string
	Attributes []Attribute
}

func (r *SearchResultEntry) Type() OperationType { return ApplicationSearchResultEntry }

func (r *SearchResultEntry) Validate() error {
	if err := checkDN("objectName", r.ObjectName); err != nil {
		return err
	}
	for _, a := range r.Attributes {
		if err := a.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r *SearchResultEntry) EncodeTo(w *ber.Writer) error {
	if err := r.Validate(); err != nil {
		return err
	}
	tag := r.Type().Tag()
	if err := w.PushSequenceTag(tag); err != nil {
		return err
	}
	if err := writeString(w, r.ObjectName); err != nil {
		return err
	}
	if err := encodeAttributes(w, r.Attributes); err != nil {
		return err
	}
	return w.PopSequenceTag(tag)
}

// SearchResultReference lists continuation URIs:
//
//	SearchResultReference ::= [APPLICATION 19] SEQUENCE
//	     SIZE (1..MAX) OF uri URI
type SearchResultReference struct {
	URIs []string
}

// ErrNoURIs is returned for a SearchResultReference without URIs.
var ErrNoURIs = errors.New("ldap: search result reference needs at least one URI")

func (r *SearchResultReference) Type() OperationType { return ApplicationSearchResultReference }

func (r *SearchResultReference) Validate() error {
	if len(r.URIs) == 0 {
		return ErrNoURIs
	}
	return nil
}

func (r *SearchResultReference) EncodeTo(w *ber.Writer) error {
	if err := r.Validate(); err != nil {
		return err
	}
	tag := r.Type().Tag()
	if err := w.PushSequenceTag(tag); err != nil {
		return err
	}
	if err := writeStrings(w, r.URIs); err != nil {
		return err
	}
	return w.PopSequenceTag(tag)
}
