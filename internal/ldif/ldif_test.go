package ldif

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/KilimcininKorOglu/asnw/internal/ber"
	"github.com/KilimcininKorOglu/asnw/internal/ldap"
)

func TestParse(t *testing.T) {
	input := `version: 1
# people
dn: uid=alice,ou=users,dc=example,dc=com
objectClass: top
objectClass: person
uid: alice
cn: Alice
 Smith
description:: aGVsbG8gd29ybGQ=
OBJECTCLASS: inetOrgPerson

dn:: dWlkPWJvYixvdT11c2Vy
 cyxkYz1leGFtcGxlLGRjPWNvbQ==
changetype: add
uid: bob
`
	records, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	alice := records[0]
	if alice.DN != "uid=alice,ou=users,dc=example,dc=com" {
		t.Errorf("unexpected DN %q", alice.DN)
	}
	if alice.Line() != 3 {
		t.Errorf("expected line 3, got %d", alice.Line())
	}

	want := []struct {
		attrType string
		values   []string
	}{
		{"objectClass", []string{"top", "person", "inetOrgPerson"}},
		{"uid", []string{"alice"}},
		{"cn", []string{"AliceSmith"}},
		{"description", []string{"hello world"}},
	}
	if len(alice.Attributes) != len(want) {
		t.Fatalf("expected %d attributes, got %d", len(want), len(alice.Attributes))
	}
	for i, w := range want {
		got := alice.Attributes[i]
		if got.Type != w.attrType {
			t.Errorf("attribute %d: expected type %q, got %q", i, w.attrType, got.Type)
			continue
		}
		if len(got.Values) != len(w.values) {
			t.Errorf("%s: expected %d values, got %d", w.attrType, len(w.values), len(got.Values))
			continue
		}
		for j, v := range w.values {
			if string(got.Values[j]) != v {
				t.Errorf("%s[%d]: expected %q, got %q", w.attrType, j, v, got.Values[j])
			}
		}
	}

	bob := records[1]
	if bob.DN != "uid=bob,ou=users,dc=example,dc=com" {
		t.Errorf("unexpected base64 DN %q", bob.DN)
	}
	if len(bob.Attributes) != 1 || bob.Attributes[0].Type != "uid" {
		t.Errorf("changetype should not become an attribute, got %+v", bob.Attributes)
	}
}

func TestParse_Empty(t *testing.T) {
	records, err := Parse(strings.NewReader("# nothing here\n\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"attribute before dn", "cn: x\n", ErrMissingDN},
		{"empty dn", "dn:\ncn: x\n", ErrMissingDN},
		{"bad base64 dn", "dn:: !!!\n", ErrInvalidBase64},
		{"bad base64 value", "dn: cn=x\ncn:: !!!\n", ErrInvalidBase64},
		{"no colon", "dn: cn=x\ngarbage\n", ErrInvalidLDIF},
		{"dn inside entry", "dn: cn=x\ndn: cn=y\n", ErrInvalidLDIF},
		{"modify record", "dn: cn=x\nchangetype: modify\n", ErrUnsupportedChange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := Parse(nil); !errors.Is(err, ErrEmptyReader) {
		t.Errorf("expected ErrEmptyReader, got %v", err)
	}
}

func TestParse_ErrorLine(t *testing.T) {
	_, err := Parse(strings.NewReader("dn: cn=x\ncn: x\ncn:: !!!\n"))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("expected error on line 3, got %v", err)
	}
}

func TestRecord_AddRequest(t *testing.T) {
	records, err := Parse(strings.NewReader("dn: cn=a\ncn: a\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	msg := ldap.NewMessage(1, records[0].AddRequest())
	got, err := msg.Encode(ber.DER)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	expected := []byte{
		0x30, 0x18, 0x02, 0x01, 0x01,
		0x68, 0x13,
		0x04, 0x04, 'c', 'n', '=', 'a',
		0x30, 0x0b,
		0x30, 0x09,
		0x04, 0x02, 'c', 'n',
		0x31, 0x03, 0x04, 0x01, 'a',
	}
	if !bytes.Equal(got, expected) {
		t.Errorf("expected %x, got %x", expected, got)
	}
}
