package ldap

import (
	goldap "github.com/go-ldap/ldap/v3"

	"github.com/KilimcininKorOglu/asnw/internal/ber"
)

// tagControls is LDAPMessage.controls.
const tagControls = 0

// Control represents an LDAP control
//
//	Control ::= SEQUENCE {
//	     controlType             LDAPOID,
//	     criticality             BOOLEAN DEFAULT FALSE,
//	     controlValue            OCTET STRING OPTIONAL }
type Control struct {
	OID         string
	Criticality bool
	// Value is omitted when nil.
	Value []byte
}

// NewPagedResultsControl returns the RFC 2696 simple paged results
// control. The cookie is empty on the first request.
func NewPagedResultsControl(size int, cookie []byte) (Control, error) {
	if size < 0 || size > MaxMessageID {
		return Control{}, ErrInvalidLimit
	}
	w, err := ber.NewWriter(ber.DER)
	if err != nil {
		return Control{}, err
	}
	defer w.Dispose()

	if err := w.PushSequence(); err != nil {
		return Control{}, err
	}
	if err := w.WriteInteger(int64(size)); err != nil {
		return Control{}, err
	}
	if err := w.WriteOctetString(cookie); err != nil {
		return Control{}, err
	}
	if err := w.PopSequence(); err != nil {
		return Control{}, err
	}
	value, err := w.Encode()
	if err != nil {
		return Control{}, err
	}
	return Control{OID: goldap.ControlTypePaging, Value: value}, nil
}

// NewManageDsaITControl returns the RFC 3296 ManageDsaIT control.
func NewManageDsaITControl(critical bool) Control {
	return Control{OID: goldap.ControlTypeManageDsaIT, Criticality: critical}
}

// NewSubtreeDeleteControl returns the tree delete control.
func NewSubtreeDeleteControl() Control {
	return Control{OID: goldap.ControlTypeSubtreeDelete}
}

func (c Control) validate() error {
	if c.OID == "" {
		return ErrMissingOID
	}
	return nil
}

func (c Control) encode(w *ber.Writer) error {
	if err := w.PushSequence(); err != nil {
		return err
	}
	if err := writeString(w, c.OID); err != nil {
		return err
	}
	// DEFAULT FALSE is never written under DER
	if c.Criticality {
		if err := w.WriteBoolean(true); err != nil {
			return err
		}
	}
	if c.Value != nil {
		if err := w.WriteOctetString(c.Value); err != nil {
			return err
		}
	}
	return w.PopSequence()
}

func encodeControls(w *ber.Writer, controls []Control) error {
	tag := ber.ContextTag(tagControls)
	if err := w.PushSequenceTag(tag); err != nil {
		return err
	}
	for _, c := range controls {
		if err := c.encode(w); err != nil {
			return err
		}
	}
	return w.PopSequenceTag(tag)
}
