package ldap

import (
	"bytes"
	"errors"
	"testing"

	asn1ber "github.com/go-asn1-ber/asn1-ber"
	goldap "github.com/go-ldap/ldap/v3"

	"github.com/KilimcininKorOglu/asnw/internal/ber"
)

func mustEncodeMessage(t *testing.T, rules ber.RuleSet, m *Message) []byte {
	t.Helper()
	out, err := m.Encode(rules)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return out
}

func decodePacket(t *testing.T, data []byte) *asn1ber.Packet {
	t.Helper()
	p, err := asn1ber.DecodePacketErr(data)
	if err != nil {
		t.Fatalf("DecodePacketErr failed: %v (%x)", err, data)
	}
	return p
}

func TestMessage_WireBytes(t *testing.T) {
	tests := []struct {
		name     string
		msg      *Message
		expected []byte
	}{
		{
			name: "simple bind",
			msg:  NewMessage(1, NewSimpleBindRequest("cn=admin", []byte("secret"))),
			expected: append(append(append(
				[]byte{0x30, 0x1A, 0x02, 0x01, 0x01, 0x60, 0x15, 0x02, 0x01, 0x03, 0x04, 0x08},
				"cn=admin"...), 0x80, 0x06), "secret"...),
		},
		{
			name:     "anonymous bind",
			msg:      NewMessage(1, NewSimpleBindRequest("", nil)),
			expected: []byte{0x30, 0x0C, 0x02, 0x01, 0x01, 0x60, 0x07, 0x02, 0x01, 0x03, 0x04, 0x00, 0x80, 0x00},
		},
		{
			name:     "unbind",
			msg:      NewMessage(3, &UnbindRequest{}),
			expected: []byte{0x30, 0x05, 0x02, 0x01, 0x03, 0x42, 0x00},
		},
		{
			name:     "abandon",
			msg:      NewMessage(5, &AbandonRequest{MessageID: 2}),
			expected: []byte{0x30, 0x06, 0x02, 0x01, 0x05, 0x50, 0x01, 0x02},
		},
		{
			name:     "delete",
			msg:      NewMessage(2, &DeleteRequest{DN: "dc=x"}),
			expected: append([]byte{0x30, 0x09, 0x02, 0x01, 0x02, 0x4A, 0x04}, "dc=x"...),
		},
		{
			name:     "bind response",
			msg:      NewMessage(1, &BindResponse{Result: NewSuccessResult()}),
			expected: []byte{0x30, 0x0C, 0x02, 0x01, 0x01, 0x61, 0x07, 0x0A, 0x01, 0x00, 0x04, 0x00, 0x04, 0x00},
		},
		{
			name: "who am i",
			msg:  NewMessage(1, &ExtendedRequest{Name: OIDWhoAmI}),
			expected: append([]byte{0x30, 0x1E, 0x02, 0x01, 0x01, 0x77, 0x19, 0x80, 0x17},
				OIDWhoAmI...),
		},
		{
			name: "large message ID",
			msg:  NewMessage(MaxMessageID, &UnbindRequest{}),
			expected: []byte{
				0x30, 0x08, 0x02, 0x04, 0x7F, 0xFF, 0xFF, 0xFF, 0x42, 0x00,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, rules := range []ber.RuleSet{ber.BER, ber.DER} {
				got := mustEncodeMessage(t, rules, tt.msg)
				if !bytes.Equal(got, tt.expected) {
					t.Errorf("%v: expected %x, got %x", rules, tt.expected, got)
				}
			}
		})
	}
}

func TestMessage_CER(t *testing.T) {
	msg := NewMessage(1, NewSimpleBindRequest("cn=admin", []byte("secret")))
	got := mustEncodeMessage(t, ber.CER, msg)

	expected := []byte{0x30, 0x80, 0x02, 0x01, 0x01, 0x60, 0x80, 0x02, 0x01, 0x03, 0x04, 0x08}
	expected = append(expected, "cn=admin"...)
	expected = append(expected, 0x80, 0x06)
	expected = append(expected, "secret"...)
	expected = append(expected, 0x00, 0x00, 0x00, 0x00)
	if !bytes.Equal(got, expected) {
		t.Errorf("expected %x, got %x", expected, got)
	}
}

func TestMessage_Controls(t *testing.T) {
	paging, err := NewPagedResultsControl(100, nil)
	if err != nil {
		t.Fatalf("NewPagedResultsControl failed: %v", err)
	}
	msg := NewMessage(7, &DeleteRequest{DN: "cn=old,dc=example,dc=com"},
		paging, NewManageDsaITControl(false))

	p := decodePacket(t, mustEncodeMessage(t, ber.BER, msg))
	if len(p.Children) != 3 {
		t.Fatalf("expected 3 message components, got %d", len(p.Children))
	}

	controls := p.Children[2]
	if controls.ClassType != asn1ber.ClassContext || controls.TagType != asn1ber.TypeConstructed || controls.Tag != 0 {
		t.Fatalf("unexpected controls tag: class %v type %v tag %v", controls.ClassType, controls.TagType, controls.Tag)
	}
	if len(controls.Children) != 2 {
		t.Fatalf("expected 2 controls, got %d", len(controls.Children))
	}

	oracles := [][]byte{
		goldap.NewControlPaging(100).Encode().Bytes(),
		goldap.NewControlManageDsaIT(false).Encode().Bytes(),
	}
	for i, want := range oracles {
		if got := controls.Children[i].Bytes(); !bytes.Equal(got, want) {
			t.Errorf("control %d:\n got %x\nwant %x", i, got, want)
		}
	}
}

func TestControl_Criticality(t *testing.T) {
	msg := NewMessage(1, &UnbindRequest{}, NewManageDsaITControl(true))
	got := mustEncodeMessage(t, ber.DER, msg)

	oid := goldap.ControlTypeManageDsaIT
	control := append([]byte{0x30, byte(2 + len(oid) + 3), 0x04, byte(len(oid))}, oid...)
	control = append(control, 0x01, 0x01, 0xFF)
	expected := []byte{0x30, byte(3 + 2 + 2 + len(control)), 0x02, 0x01, 0x01, 0x42, 0x00, 0xA0, byte(len(control))}
	expected = append(expected, control...)

	if !bytes.Equal(got, expected) {
		t.Errorf("expected %x, got %x", expected, got)
	}
}

func TestPagedResultsControl_Cookie(t *testing.T) {
	cookie := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	c, err := NewPagedResultsControl(50, cookie)
	if err != nil {
		t.Fatalf("NewPagedResultsControl failed: %v", err)
	}

	oracle := goldap.NewControlPaging(50)
	oracle.SetCookie(cookie)

	w := newEncodeWriter(t, ber.DER)
	if err := c.encode(w); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	got, err := w.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if want := oracle.Encode().Bytes(); !bytes.Equal(got, want) {
		t.Errorf("expected %x, got %x", want, got)
	}

	if _, err := NewPagedResultsControl(-1, nil); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}
}

func TestMessage_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		msg     *Message
		wantErr error
	}{
		{"negative message ID", NewMessage(-1, &UnbindRequest{}), ErrInvalidMessageID},
		{"message ID too large", NewMessage(MaxMessageID+1, &UnbindRequest{}), ErrInvalidMessageID},
		{"missing operation", NewMessage(1, nil), ErrMissingOperation},
		{"control without OID", NewMessage(1, &UnbindRequest{}, Control{}), ErrMissingOID},
		{"invalid operation", NewMessage(1, &DeleteRequest{DN: "invalid"}), ErrInvalidDN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newEncodeWriter(t, ber.BER)
			err := tt.msg.EncodeTo(w)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			n, err := w.EncodedLength()
			if err != nil {
				t.Fatalf("EncodedLength failed: %v", err)
			}
			if n != 0 {
				t.Errorf("rejected message wrote %d bytes", n)
			}
		})
	}
}

func TestMessage_EncodeToSharedWriter(t *testing.T) {
	w := newEncodeWriter(t, ber.BER)
	for id := 1; id <= 3; id++ {
		if err := NewMessage(id, &UnbindRequest{}).EncodeTo(w); err != nil {
			t.Fatalf("EncodeTo failed: %v", err)
		}
	}
	got, err := w.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	expected := []byte{
		0x30, 0x05, 0x02, 0x01, 0x01, 0x42, 0x00,
		0x30, 0x05, 0x02, 0x01, 0x02, 0x42, 0x00,
		0x30, 0x05, 0x02, 0x01, 0x03, 0x42, 0x00,
	}
	if !bytes.Equal(got, expected) {
		t.Errorf("expected %x, got %x", expected, got)
	}
}

func TestOperationType_String(t *testing.T) {
	tests := []struct {
		op       OperationType
		expected string
	}{
		{ApplicationBindRequest, "BindRequest"},
		{ApplicationDelResponse, "DelResponse"},
		{ApplicationSearchResultReference, "SearchResultReference"},
		{ApplicationExtendedResponse, "ExtendedResponse"},
		{OperationType(99), "Unknown(99)"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.expected {
			t.Errorf("OperationType(%d).String() = %q, want %q", int(tt.op), got, tt.expected)
		}
	}
}

func newEncodeWriter(t *testing.T, rules ber.RuleSet) *ber.Writer {
	t.Helper()
	w, err := ber.NewWriter(rules)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	t.Cleanup(w.Dispose)
	return w
}
