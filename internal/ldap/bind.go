package ldap

import (
	"github.com/KilimcininKorOglu/asnw/internal/ber"
)

// AuthenticationChoice tags
const (
	tagAuthSimple = 0
	tagAuthSASL   = 3

	// tagServerSASLCreds is BindResponse.serverSaslCreds.
	tagServerSASLCreds = 7
)

// AuthMethod selects the AuthenticationChoice of a BindRequest.
type AuthMethod int

const (
	// AuthMethodSimple sends a password in the [0] alternative.
	AuthMethodSimple AuthMethod = iota
	// AuthMethodSASL sends SaslCredentials in the [3] alternative.
	AuthMethodSASL
)

// String returns the method name.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodSimple:
		return "Simple"
	case AuthMethodSASL:
		return "SASL"
	default:
		return "Unknown"
	}
}

// SASLCredentials is the SaslCredentials SEQUENCE.
type SASLCredentials struct {
	Mechanism string
	// Credentials is omitted from the encoding when nil.
	Credentials []byte
}

// BindRequest represents an LDAP Bind Request
//
//	BindRequest ::= [APPLICATION 0] SEQUENCE {
//	     version                 INTEGER (1 ..  127),
//	     name                    LDAPDN,
//	     authentication          AuthenticationChoice }
type BindRequest struct {
	Version         int
	Name            string
	AuthMethod      AuthMethod
	SimplePassword  []byte
	SASLCredentials *SASLCredentials
}

// NewSimpleBindRequest returns a version 3 simple bind.
func NewSimpleBindRequest(name string, password []byte) *BindRequest {
	return &BindRequest{
		Version:        ProtocolVersion,
		Name:           name,
		AuthMethod:     AuthMethodSimple,
		SimplePassword: password,
	}
}

// NewSASLBindRequest returns a version 3 SASL bind.
func NewSASLBindRequest(name, mechanism string, credentials []byte) *BindRequest {
	return &BindRequest{
		Version:         ProtocolVersion,
		Name:            name,
		AuthMethod:      AuthMethodSASL,
		SASLCredentials: &SASLCredentials{Mechanism: mechanism, Credentials: credentials},
	}
}

// IsAnonymous reports whether this is an anonymous simple bind.
func (r *BindRequest) IsAnonymous() bool {
	return r.AuthMethod == AuthMethodSimple && r.Name == "" && len(r.SimplePassword) == 0
}

func (r *BindRequest) Type() OperationType { return ApplicationBindRequest }

// Validate checks the version, the DN and the authentication choice.
func (r *BindRequest) Validate() error {
	if r.Version < 1 || r.Version > 127 {
		return ErrInvalidVersion
	}
	if err := checkDN("name", r.Name); err != nil {
		return err
	}
	switch r.AuthMethod {
	case AuthMethodSimple:
	case AuthMethodSASL:
		if r.SASLCredentials == nil || r.SASLCredentials.Mechanism == "" {
			return ErrMissingMechanism
		}
	default:
		return ErrInvalidAuthMethod
	}
	return nil
}

func (r *BindRequest) EncodeTo(w *ber.Writer) error {
	if err := r.Validate(); err != nil {
		return err
	}
	tag := r.Type().Tag()
	if err := w.PushSequenceTag(tag); err != nil {
		return err
	}
	if err := w.WriteInteger(int64(r.Version)); err != nil {
		return err
	}
	if err := writeString(w, r.Name); err != nil {
		return err
	}

	if r.AuthMethod == AuthMethodSimple {
		if err := w.WriteOctetStringTag(ber.ContextTag(tagAuthSimple), r.SimplePassword); err != nil {
			return err
		}
	} else {
		sasl := ber.ContextTag(tagAuthSASL)
		if err := w.PushSequenceTag(sasl); err != nil {
			return err
		}
		if err := writeString(w, r.SASLCredentials.Mechanism); err != nil {
			return err
		}
		if r.SASLCredentials.Credentials != nil {
			if err := w.WriteOctetString(r.SASLCredentials.Credentials); err != nil {
				return err
			}
		}
		if err := w.PopSequenceTag(sasl); err != nil {
			return err
		}
	}
	return w.PopSequenceTag(tag)
}

// BindResponse represents an LDAP Bind Response
//
//	BindResponse ::= [APPLICATION 1] SEQUENCE {
//	     COMPONENTS OF LDAPResult,
//	     serverSaslCreds    [7] OCTET STRING OPTIONAL }
type BindResponse struct {
	Result
	ServerSASLCreds []byte
}

func (r *BindResponse) Type() OperationType { return ApplicationBindResponse }
func (r *BindResponse) Validate() error     { return r.validate() }

func (r *BindResponse) EncodeTo(w *ber.Writer) error {
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
	if r.ServerSASLCreds != nil {
		if err := w.WriteOctetStringTag(ber.ContextTag(tagServerSASLCreds), r.ServerSASLCreds); err != nil {
			return err
		}
	}
	return w.PopSequenceTag(tag)
}
