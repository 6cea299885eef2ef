package ldap

import (
	"github.com/pkg/errors"

	"github.com/KilimcininKorOglu/asnw/internal/ber"
)

// Message is the LDAPMessage envelope
//
//	LDAPMessage ::= SEQUENCE {
//	     messageID       MessageID,
//	     protocolOp      CHOICE { ... },
//	     controls        [0] Controls OPTIONAL }
type Message struct {
	MessageID int
	Operation Operation
	Controls  []Control
}

// NewMessage wraps op with the given message ID.
func NewMessage(messageID int, op Operation, controls ...Control) *Message {
	return &Message{MessageID: messageID, Operation: op, Controls: controls}
}

// Validate checks the envelope and its operation.
func (m *Message) Validate() error {
	if m.MessageID < MinMessageID || m.MessageID > MaxMessageID {
		return ErrInvalidMessageID
	}
	if m.Operation == nil {
		return ErrMissingOperation
	}
	if err := m.Operation.Validate(); err != nil {
		return errors.Wrapf(err, "ldap: %s", m.Operation.Type())
	}
	for _, c := range m.Controls {
		if err := c.validate(); err != nil {
			return err
		}
	}
	return nil
}

// EncodeTo writes the message onto w. Nothing is written when the
// message does not validate.
func (m *Message) EncodeTo(w *ber.Writer) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := w.PushSequence(); err != nil {
		return err
	}
	if err := w.WriteInteger(int64(m.MessageID)); err != nil {
		return err
	}
	if err := m.Operation.EncodeTo(w); err != nil {
		return err
	}
	if len(m.Controls) > 0 {
		if err := encodeControls(w, m.Controls); err != nil {
			return err
		}
	}
	return w.PopSequence()
}

// Encode returns the message encoded under rules using a writer of its
// own. opts are passed to ber.NewWriter.
func (m *Message) Encode(rules ber.RuleSet, opts ...ber.Option) ([]byte, error) {
	w, err := ber.NewWriter(rules, opts...)
	if err != nil {
		return nil, err
	}
	defer w.Dispose()

	if err := m.EncodeTo(w); err != nil {
		return nil, err
	}
	return w.Encode()
}
