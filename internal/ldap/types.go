package ldap

import (
	"fmt"

	goldap "github.com/go-ldap/ldap/v3"
	"github.com/pkg/errors"

	"github.com/KilimcininKorOglu/asnw/internal/ber"
)

// LDAP protocol operation tags (APPLICATION class), RFC 4511 section 4.2
const (
	ApplicationBindRequest           = 0
	ApplicationBindResponse          = 1
	ApplicationUnbindRequest         = 2
	ApplicationSearchRequest         = 3
	ApplicationSearchResultEntry     = 4
	ApplicationSearchResultDone      = 5
	ApplicationModifyRequest         = 6
	ApplicationModifyResponse        = 7
	ApplicationAddRequest            = 8
	ApplicationAddResponse           = 9
	ApplicationDelRequest            = 10
	ApplicationDelResponse           = 11
	ApplicationModifyDNRequest       = 12
	ApplicationModifyDNResponse      = 13
	ApplicationCompareRequest        = 14
	ApplicationCompareResponse       = 15
	ApplicationAbandonRequest        = 16
	ApplicationSearchResultReference = 19
	ApplicationExtendedRequest       = 23
	ApplicationExtendedResponse      = 24
)

// OperationType is the APPLICATION tag number of a protocolOp.
type OperationType int

var operationNames = map[OperationType]string{
	ApplicationBindRequest:           "BindRequest",
	ApplicationBindResponse:          "BindResponse",
	ApplicationUnbindRequest:         "UnbindRequest",
	ApplicationSearchRequest:         "SearchRequest",
	ApplicationSearchResultEntry:     "SearchResultEntry",
	ApplicationSearchResultDone:      "SearchResultDone",
	ApplicationModifyRequest:         "ModifyRequest",
	ApplicationModifyResponse:        "ModifyResponse",
	ApplicationAddRequest:            "AddRequest",
	ApplicationAddResponse:           "AddResponse",
	ApplicationDelRequest:            "DelRequest",
	ApplicationDelResponse:           "DelResponse",
	ApplicationModifyDNRequest:       "ModifyDNRequest",
	ApplicationModifyDNResponse:      "ModifyDNResponse",
	ApplicationCompareRequest:        "CompareRequest",
	ApplicationCompareResponse:       "CompareResponse",
	ApplicationAbandonRequest:        "AbandonRequest",
	ApplicationSearchResultReference: "SearchResultReference",
	ApplicationExtendedRequest:       "ExtendedRequest",
	ApplicationExtendedResponse:      "ExtendedResponse",
}

// String returns the ASN.1 name of the operation.
func (o OperationType) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int(o))
}

// Tag returns the APPLICATION tag of the operation.
func (o OperationType) Tag() ber.Tag {
	return ber.ApplicationTag(int(o))
}

// MessageID bounds, RFC 4511 section 4.1.1.1
const (
	MinMessageID = 0
	MaxMessageID = 2147483647
)

// ProtocolVersion is the only bind version written by default.
const ProtocolVersion = 3

// Validation errors
var (
	ErrInvalidMessageID  = errors.New("ldap: message ID out of range")
	ErrMissingOperation  = errors.New("ldap: message has no operation")
	ErrInvalidDN         = errors.New("ldap: invalid distinguished name")
	ErrInvalidVersion    = errors.New("ldap: bind version must be between 1 and 127")
	ErrMissingAttribute  = errors.New("ldap: missing attribute description")
	ErrMissingOID        = errors.New("ldap: missing object identifier")
	ErrInvalidScope      = errors.New("ldap: invalid search scope")
	ErrInvalidDeref      = errors.New("ldap: invalid alias dereferencing mode")
	ErrInvalidLimit      = errors.New("ldap: size and time limits must not be negative")
	ErrMissingFilter     = errors.New("ldap: search request has no filter")
	ErrNoChanges         = errors.New("ldap: modify request has no changes")
	ErrInvalidModifyOp   = errors.New("ldap: invalid modify operation")
	ErrMissingRDN        = errors.New("ldap: missing new RDN")
	ErrMissingMechanism  = errors.New("ldap: SASL bind has no mechanism")
	ErrInvalidAuthMethod = errors.New("ldap: invalid authentication method")
)

// Operation is a protocolOp that can be written onto a ber.Writer.
// EncodeTo writes the complete [APPLICATION n] element.
type Operation interface {
	Type() OperationType
	Validate() error
	EncodeTo(w *ber.Writer) error
}

// checkDN validates dn with the RFC 4514 parser. The empty DN (root DSE)
// is always valid.
func checkDN(field, dn string) error {
	if dn == "" {
		return nil
	}
	if _, err := goldap.ParseDN(dn); err != nil {
		return errors.Wrapf(ErrInvalidDN, "%s %q: %v", field, dn, err)
	}
	return nil
}

// writeString writes an LDAPString or LDAPDN.
func writeString(w *ber.Writer, s string) error {
	return w.WriteOctetString([]byte(s))
}

// writeStrings writes each string as an OCTET STRING.
func writeStrings(w *ber.Writer, values []string) error {
	for _, v := range values {
		if err := writeString(w, v); err != nil {
			return err
		}
	}
	return nil
}

// Attribute is a PartialAttribute or Attribute:
//
//	PartialAttribute ::= SEQUENCE {
//	     type       AttributeDescription,
//	     vals       SET OF value AttributeValue }
type Attribute struct {
	Type   string
	Values [][]byte
}

// NewAttribute builds an Attribute from string values.
func NewAttribute(attrType string, values ...string) Attribute {
	a := Attribute{Type: attrType, Values: make([][]byte, len(values))}
	for i, v := range values {
		a.Values[i] = []byte(v)
	}
	return a
}

func (a Attribute) validate() error {
	if a.Type == "" {
		return ErrMissingAttribute
	}
	return nil
}

func (a Attribute) encode(w *ber.Writer) error {
	if err := w.PushSequence(); err != nil {
		return err
	}
	if err := writeString(w, a.Type); err != nil {
		return err
	}
	if err := w.PushSetOf(); err != nil {
		return err
	}
	for _, v := range a.Values {
		if err := w.WriteOctetString(v); err != nil {
			return err
		}
	}
	if err := w.PopSetOf(); err != nil {
		return err
	}
	return w.PopSequence()
}

// encodeAttributes writes a SEQUENCE OF Attribute.
func encodeAttributes(w *ber.Writer, attrs []Attribute) error {
	if err := w.PushSequence(); err != nil {
		return err
	}
	for _, a := range attrs {
		if err := a.encode(w); err != nil {
			return err
		}
	}
	return w.PopSequence()
}
