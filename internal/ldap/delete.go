package ldap

import (
	"github.com/pkg/errors"

	"github.com/KilimcininKorOglu/asnw/internal/ber"
)

// DeleteRequest is the primitive DelRequest ::= [APPLICATION 10] LDAPDN.
type DeleteRequest struct {
	DN string
}

func (r *DeleteRequest) Type() OperationType { return ApplicationDelRequest }

func (r *DeleteRequest) Validate() error {
	if r.DN == "" {
		return errors.Wrap(ErrInvalidDN, "entry must not be empty")
	}
	return checkDN("entry", r.DN)
}

func (r *DeleteRequest) EncodeTo(w *ber.Writer) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return w.WriteOctetStringTag(r.Type().Tag(), []byte(r.DN))
}

// UnbindRequest is UnbindRequest ::= [APPLICATION 2] NULL.
type UnbindRequest struct{}

func (r *UnbindRequest) Type() OperationType { return ApplicationUnbindRequest }
func (r *UnbindRequest) Validate() error     { return nil }

func (r *UnbindRequest) EncodeTo(w *ber.Writer) error {
	return w.WriteNullTag(r.Type().Tag())
}

// AbandonRequest is AbandonRequest ::= [APPLICATION 16] MessageID.
type AbandonRequest struct {
	MessageID int
}

func (r *AbandonRequest) Type() OperationType { return ApplicationAbandonRequest }

func (r *AbandonRequest) Validate() error {
	if r.MessageID < MinMessageID || r.MessageID > MaxMessageID {
		return ErrInvalidMessageID
	}
	return nil
}

func (r *AbandonRequest) EncodeTo(w *ber.Writer) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return w.WriteIntegerTag(r.Type().Tag(), int64(r.MessageID))
}
