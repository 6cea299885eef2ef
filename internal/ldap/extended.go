package ldap

import (
	"github.com/KilimcininKorOglu/asnw/internal/ber"
)

// Extended operation field tags
const (
	tagRequestName   = 0
	tagRequestValue  = 1
	tagResponseName  = 10
	tagResponseValue = 11
)

// Well-known extended operation OIDs
const (
	OIDStartTLS    = "1.3.6.1.4.1.1466.20037"
	OIDWhoAmI      = "1.3.6.1.4.1.4203.1.11.3"
	OIDPasswordMod = "1.3.6.1.4.1.4203.1.11.1"
)

// ExtendedRequest represents an LDAP Extended Request
//
//	ExtendedRequest ::= [APPLICATION 23] SEQUENCE {
//	     requestName      [0] LDAPOID,
//	     requestValue     [1] OCTET STRING OPTIONAL }
type ExtendedRequest struct {
	Name string
	// Value is omitted when nil.
	Value []byte
}

// NewPasswordModifyRequest returns the RFC 3062 password modify operation.
// Empty arguments are left out of the request value.
//
//	PasswdModifyRequestValue ::= SEQUENCE {
//	     userIdentity    [0]  OCTET STRING OPTIONAL,
//	     oldPasswd       [1]  OCTET STRING OPTIONAL,
//	     newPasswd       [2]  OCTET STRING OPTIONAL }
func NewPasswordModifyRequest(userIdentity, oldPassword, newPassword string) (*ExtendedRequest, error) {
	w, err := ber.NewWriter(ber.DER)
	if err != nil {
		return nil, err
	}
	defer w.Dispose()

	if err := w.PushSequence(); err != nil {
		return nil, err
	}
	for i, field := range []string{userIdentity, oldPassword, newPassword} {
		if field == "" {
			continue
		}
		if err := w.WriteOctetStringTag(ber.ContextTag(i), []byte(field)); err != nil {
			return nil, err
		}
	}
	if err := w.PopSequence(); err != nil {
		return nil, err
	}
	value, err := w.Encode()
	if err != nil {
		return nil, err
	}
	return &ExtendedRequest{Name: OIDPasswordMod, Value: value}, nil
}

func (r *ExtendedRequest) Type() OperationType { return ApplicationExtendedRequest }

func (r *ExtendedRequest) Validate() error {
	if r.Name == "" {
		return ErrMissingOID
	}
	return nil
}

func (r *ExtendedRequest) EncodeTo(w *ber.Writer) error {
	if err := r.Validate(); err != nil {
		return err
	}
	tag := r.Type().Tag()
	if err := w.PushSequenceTag(tag); err != nil {
		return err
	}
	if err := w.WriteOctetStringTag(ber.ContextTag(tagRequestName), []byte(r.Name)); err != nil {
		return err
	}
	if r.Value != nil {
		if err := w.WriteOctetStringTag(ber.ContextTag(tagRequestValue), r.Value); err != nil {
			return err
		}
	}
	return w.PopSequenceTag(tag)
}

// ExtendedResponse represents an LDAP Extended Response
//
//	ExtendedResponse ::= [APPLICATION 24] SEQUENCE {
//	     COMPONENTS OF LDAPResult,
//	     responseName     [10] LDAPOID OPTIONAL,
//	     responseValue    [11] OCTET STRING OPTIONAL }
type ExtendedResponse struct {
	Result
	Name  string
	Value []byte
}

func (r *ExtendedResponse) Type() OperationType { return ApplicationExtendedResponse }
func (r *ExtendedResponse) Validate() error     { return r.validate() }

func (r *ExtendedResponse) EncodeTo(w *ber.Writer) error {
	if err := r.Validate(); err != nil {
		return err
	}
	tag := r.Type().Tag()
	if err := w.PushSequenceTag(tag); err != nil {
		return err
	}
	if err := r.encodeFields(w); err != nil {
		return err
	}
	if r.Name != "" {
		if err := w.WriteOctetStringTag(ber.ContextTag(tagResponseName), []byte(r.Name)); err != nil {
			return err
		}
	}
	if r.Value != nil {
		if err := w.WriteOctetStringTag(ber.ContextTag(tagResponseValue), r.Value); err != nil {
			return err
		}
	}
	return w.PopSequenceTag(tag)
}
