package ldap

import (
	"github.com/KilimcininKorOglu/asnw/internal/ber"
)

// ModifyOperation is the operation ENUMERATED of a change.
type ModifyOperation int

const (
	ModifyOperationAdd     ModifyOperation = 0
	ModifyOperationDelete  ModifyOperation = 1
	ModifyOperationReplace ModifyOperation = 2

	// ModifyOperationIncrement is the RFC 4525 extension.
	ModifyOperationIncrement ModifyOperation = 3
)

// String returns the operation name as written in LDIF.
func (m ModifyOperation) String() string {
	switch m {
	case ModifyOperationAdd:
		return "add"
	case ModifyOperationDelete:
		return "delete"
	case ModifyOperationReplace:
		return "replace"
	case ModifyOperationIncrement:
		return "increment"
	default:
		return "unknown"
	}
}

// Modification is one change of a ModifyRequest.
type Modification struct {
	Operation ModifyOperation
	Attribute Attribute
}

// ModifyRequest represents an LDAP Modify Request
//
//	ModifyRequest ::= [APPLICATION 6] SEQUENCE {
//	     object          LDAPDN,
//	     changes         SEQUENCE OF change SEQUENCE {
//	          operation       ENUMERATED,
//	          modification    PartialAttribute } }
type ModifyRequest struct {
	Object  string
	Changes []Modification
}

// AddModification appends a change.
func (r *ModifyRequest) AddModification(op ModifyOperation, attr Attribute) {
	r.Changes = append(r.Changes, Modification{Operation: op, Attribute: attr})
}

// AddStringModification appends a change with string values.
func (r *ModifyRequest) AddStringModification(op ModifyOperation, attrType string, values ...string) {
	r.AddModification(op, NewAttribute(attrType, values...))
}

func (r *ModifyRequest) Type() OperationType { return ApplicationModifyRequest }

// Validate checks the object DN and every change.
func (r *ModifyRequest) Validate() error {
	if err := checkDN("object", r.Object); err != nil {
		return err
	}
	if len(r.Changes) == 0 {
		return ErrNoChanges
	}
	for _, c := range r.Changes {
		if c.Operation < ModifyOperationAdd || c.Operation > ModifyOperationIncrement {
			return ErrInvalidModifyOp
		}
		if err := c.Attribute.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r *ModifyRequest) EncodeTo(w *ber.Writer) error {
	if err := r.Validate(); err != nil {
		return err
	}
	tag := r.Type().Tag()
	if err := w.PushSequenceTag(tag); err != nil {
		return err
	}
	if err := writeString(w, r.Object); err != nil {
		return err
	}
	if err := w.PushSequence(); err != nil {
		return err
	}
	for _, c := range r.Changes {
		if err := w.PushSequence(); err != nil {
			return err
		}
		if err := w.WriteEnumerated(int64(c.Operation)); err != nil {
			return err
		}
		if err := c.Attribute.encode(w); err != nil {
			return err
		}
		if err := w.PopSequence(); err != nil {
			return err
		}
	}
	if err := w.PopSequence(); err != nil {
		return err
	}
	return w.PopSequenceTag(tag)
}
