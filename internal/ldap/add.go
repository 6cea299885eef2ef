package ldap

import (
	"github.com/pkg/errors"

	"github.com/KilimcininKorOglu/asnw/internal/ber"
)

// ErrEmptyAttribute is returned for an added attribute without values.
var ErrEmptyAttribute = errors.New("ldap: attribute needs at least one value")

// AddRequest represents an LDAP Add Request
//
//	AddRequest ::= [APPLICATION 8] SEQUENCE {
//	     entry           LDAPDN,
//	     attributes      AttributeList }
type AddRequest struct {
	Entry      string
	Attributes []Attribute
}

// AddAttribute appends an attribute with string values.
func (r *AddRequest) AddAttribute(attrType string, values ...string) {
	r.Attributes = append(r.Attributes, NewAttribute(attrType, values...))
}

func (r *AddRequest) Type() OperationType { return ApplicationAddRequest }

// Validate checks the entry DN and that every attribute has values.
func (r *AddRequest) Validate() error {
	if r.Entry == "" {
		return errors.Wrap(ErrInvalidDN, "entry must not be empty")
	}
	if err := checkDN("entry", r.Entry); err != nil {
		return err
	}
	for _, a := range r.Attributes {
		if err := a.validate(); err != nil {
			return err
		}
		if len(a.Values) == 0 {
			return errors.Wrapf(ErrEmptyAttribute, "attribute %q", a.Type)
		}
	}
	return nil
}

func (r *AddRequest) EncodeTo(w *ber.Writer) error {
	if err := r.Validate(); err != nil {
		return err
	}
	tag := r.Type().Tag()
	if err := w.PushSequenceTag(tag); err != nil {
		return err
	}
	if err := writeString(w, r.Entry); err != nil {
		return err
	}
	if err := encodeAttributes(w, r.Attributes); err != nil {
		return err
	}
	return w.PopSequenceTag(tag)
}
