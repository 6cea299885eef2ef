package ldap

import (
	"github.com/pkg/errors"

	"github.com/KilimcininKorOglu/asnw/internal/ber"
)

// tagNewSuperior is ModifyDNRequest.newSuperior.
const tagNewSuperior = 0

// ModifyDNRequest represents an LDAP Modify DN Request
//
//	ModifyDNRequest ::= [APPLICATION 12] SEQUENCE {
//	     entry           LDAPDN,
//	     newrdn          RelativeLDAPDN,
//	     deleteoldrdn    BOOLEAN,
//	     newSuperior     [0] LDAPDN OPTIONAL }
type ModifyDNRequest struct {
	Entry        string
	NewRDN       string
	DeleteOldRDN bool
	// NewSuperior is omitted when empty.
	NewSuperior string
}

func (r *ModifyDNRequest) Type() OperationType { return ApplicationModifyDNRequest }

func (r *ModifyDNRequest) Validate() error {
	if r.Entry == "" {
		return errors.Wrap(ErrInvalidDN, "entry must not be empty")
	}
	if err := checkDN("entry", r.Entry); err != nil {
		return err
	}
	if r.NewRDN == "" {
		return ErrMissingRDN
	}
	if err := checkDN("newrdn", r.NewRDN); err != nil {
		return err
	}
	return checkDN("newSuperior", r.NewSuperior)
}

func (r *ModifyDNRequest) EncodeTo(w *ber.Writer) error {
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
	if err := writeString(w, r.NewRDN); err != nil {
		return err
	}
	if err := w.WriteBoolean(r.DeleteOldRDN); err != nil {
		return err
	}
	if r.NewSuperior != "" {
		if err := w.WriteOctetStringTag(ber.ContextTag(tagNewSuperior), []byte(r.NewSuperior)); err != nil {
			return err
		}
	}
	return w.PopSequenceTag(tag)
}
