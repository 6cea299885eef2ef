package ldap

import (
	"github.com/pkg/errors"

	"github.com/KilimcininKorOglu/asnw/internal/ber"
)

// CompareRequest represents an LDAP Compare Request
//
//	CompareRequest ::= [APPLICATION 14] SEQUENCE {
//	     entry           LDAPDN,
//	     ava             AttributeValueAssertion }
type CompareRequest struct {
	DN        string
	Attribute string
	Value     []byte
}

func (r *CompareRequest) Type() OperationType { return ApplicationCompareRequest }

func (r *CompareRequest) Validate() error {
	if r.DN == "" {
		return errors.Wrap(ErrInvalidDN, "entry must not be empty")
	}
	if err := checkDN("entry", r.DN); err != nil {
		return err
	}
	if r.Attribute == "" {
		return ErrMissingAttribute
	}
	return nil
}

func (r *CompareRequest) EncodeTo(w *ber.Writer) error {
	if err := r.Validate(); err != nil {
		return err
	}
	tag := r.Type().Tag()
	if err := w.PushSequenceTag(tag); err != nil {
		return err
	}
	if err := writeString(w, r.DN); err != nil {
		return err
	}
	// AttributeValueAssertion
	if err := w.PushSequence(); err != nil {
		return err
	}
	if err := writeString(w, r.Attribute); err != nil {
		return err
	}
	if err := w.WriteOctetString(r.Value); err != nil {
		return err
	}
	if err := w.PopSequence(); err != nil {
		return err
	}
	return w.PopSequenceTag(tag)
}
