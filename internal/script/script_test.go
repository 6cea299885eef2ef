package script

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	asn1ber "github.com/go-asn1-ber/asn1-ber"

	"github.com/KilimcininKorOglu/asnw/internal/ber"
)

func runScript(t *testing.T, rules ber.RuleSet, src string) []byte {
	t.Helper()

	w, err := ber.NewWriter(rules)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	defer w.Dispose()

	if err := Run(w, strings.NewReader(src)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	out, err := w.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return out
}

func TestRun_Statements(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []byte
	}{
		{
			name:     "sequence of primitives",
			src:      "seq {\n  int 5\n  bool true\n  null\n}\n",
			expected: []byte{0x30, 0x08, 0x02, 0x01, 0x05, 0x01, 0x01, 0xFF, 0x05, 0x00},
		},
		{
			name:     "comments and blank lines",
			src:      "# header\n\nint -1\n",
			expected: []byte{0x02, 0x01, 0xFF},
		},
		{
			name:     "hex integer",
			src:      "int 0x80",
			expected: []byte{0x02, 0x02, 0x00, 0x80},
		},
		{
			name:     "big integer",
			src:      "int 18446744073709551616",
			expected: []byte{0x02, 0x09, 0x01, 0, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			name:     "enumerated",
			src:      "enum 2",
			expected: []byte{0x0A, 0x01, 0x02},
		},
		{
			name:     "literal octets",
			src:      "octets abc",
			expected: []byte{0x04, 0x03, 'a', 'b', 'c'},
		},
		{
			name:     "hex octets",
			src:      "octets 0xdeadbeef",
			expected: []byte{0x04, 0x04, 0xDE, 0xAD, 0xBE, 0xEF},
		},
		{
			name:     "base64 octets",
			src:      "octets :: aGk=",
			expected: []byte{0x04, 0x02, 'h', 'i'},
		},
		{
			name:     "quoted octets",
			src:      `octets "a b\n"`,
			expected: []byte{0x04, 0x04, 'a', ' ', 'b', '\n'},
		},
		{
			name:     "object identifier",
			src:      "oid 1.2.840.113549",
			expected: []byte{0x06, 0x06, 0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D},
		},
		{
			name:     "bit string",
			src:      "bits 0a 1",
			expected: []byte{0x03, 0x02, 0x01, 0x0A},
		},
		{
			name:     "strings",
			src:      "utf8 x\nprintable y\nia5 z",
			expected: []byte{0x0C, 0x01, 'x', 0x13, 0x01, 'y', 0x16, 0x01, 'z'},
		},
		{
			name:     "generalized time",
			src:      "gentime 2024-01-02T03:04:05Z",
			expected: append([]byte{0x18, 0x0F}, "20240102030405Z"...),
		},
		{
			name:     "utc time",
			src:      "utctime 2024-01-02T03:04:05+01:00",
			expected: append([]byte{0x17, 0x0D}, "240102020405Z"...),
		},
		{
			name:     "raw value",
			src:      "raw 05 00",
			expected: []byte{0x05, 0x00},
		},
		{
			name:     "implicit tags",
			src:      "[APPLICATION 3] int 7\n[2] null\n[PRIVATE 1] octets a",
			expected: []byte{0x43, 0x01, 0x07, 0x82, 0x00, 0xC1, 0x01, 'a'},
		},
		{
			name:     "tagged sequence",
			src:      "[1] seq {\n  bool false\n}",
			expected: []byte{0xA1, 0x03, 0x01, 0x01, 0x00},
		},
		{
			name:     "explicit tag",
			src:      "[0] {\n  int 1\n}",
			expected: []byte{0xA0, 0x03, 0x02, 0x01, 0x01},
		},
		{
			name:     "set and constructed octets",
			src:      "set {\n  octets {\n    octets ab\n  }\n}",
			expected: []byte{0x31, 0x06, 0x24, 0x04, 0x04, 0x02, 'a', 'b'},
		},
		{
			name:     "tagged raw",
			src:      "[5] raw 0102",
			expected: []byte{0x85, 0x02, 0x01, 0x02},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runScript(t, ber.DER, tt.src)
			if !bytes.Equal(got, tt.expected) {
				t.Errorf("expected % X, got % X", tt.expected, got)
			}
		})
	}
}

func TestRun_CER(t *testing.T) {
	got := runScript(t, ber.CER, "seq {\n  octets abc\n}")
	expected := []byte{0x30, 0x80, 0x04, 0x03, 'a', 'b', 'c', 0x00, 0x00}
	if !bytes.Equal(got, expected) {
		t.Errorf("expected % X, got % X", expected, got)
	}
}

func TestRun_DecodesWithASN1BER(t *testing.T) {
	src := `
seq {
  int 1
  [APPLICATION 0] seq {
    int 3
    octets cn=admin,dc=example,dc=com
    [0] octets "secret"
  }
}
`
	for _, rules := range []ber.RuleSet{ber.BER, ber.CER, ber.DER} {
		t.Run(rules.String(), func(t *testing.T) {
			packet, err := asn1ber.DecodePacketErr(runScript(t, rules, src))
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if len(packet.Children) != 2 {
				t.Fatalf("expected 2 children, got %d", len(packet.Children))
			}
			if packet.Children[0].Value.(int64) != 1 {
				t.Errorf("expected message ID 1, got %v", packet.Children[0].Value)
			}

			bind := packet.Children[1]
			if bind.ClassType != asn1ber.ClassApplication || bind.Tag != 0 {
				t.Errorf("unexpected bind tag class %d tag %d", bind.ClassType, bind.Tag)
			}
			if len(bind.Children) != 3 {
				t.Fatalf("expected 3 bind children, got %d", len(bind.Children))
			}
			if got := bind.Children[1].Data.String(); got != "cn=admin,dc=example,dc=com" {
				t.Errorf("unexpected name %q", got)
			}
			if got := bind.Children[2].Data.String(); got != "secret" {
				t.Errorf("unexpected password %q", got)
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{"unexpected close", "int 1\n}", ErrUnexpectedClose},
		{"unclosed", "seq {\n  int 1\n", ErrUnclosed},
		{"unknown statement", "float 1.5", ErrUnknownStatement},
		{"unknown container", "choice {", ErrUnknownStatement},
		{"tag not allowed", "[1] printable x", ErrTagNotAllowed},
		{"bad integer", "int many", ErrSyntax},
		{"bad boolean", "bool maybe", ErrSyntax},
		{"null with value", "null 1", ErrSyntax},
		{"bad oid", "oid 1..2", ErrSyntax},
		{"bad hex", "octets 0xzz", ErrSyntax},
		{"bad base64", "octets :: !!", ErrSyntax},
		{"bad quote", `octets "open`, ErrSyntax},
		{"bad tag class", "[CTX 1] int 1", ErrSyntax},
		{"bad tag number", "[x] int 1", ErrSyntax},
		{"unterminated tag", "[1 int 1", ErrSyntax},
		{"untagged explicit", "{", ErrSyntax},
		{"text before brace", "seq x {", ErrSyntax},
		{"bad time", "gentime yesterday", ErrSyntax},
		{"invalid oid arc", "oid 3.1", ber.ErrInvalidOID},
		{"invalid bit string", "bits 0a 9", ber.ErrInvalidBitString},
		{"universal tag mismatch", "[UNIVERSAL 4] int 1", ber.ErrUniversalTagFixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ber.NewWriter(ber.DER)
			if err != nil {
				t.Fatal(err)
			}
			defer w.Dispose()

			err = Run(w, strings.NewReader(tt.src))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRun_ErrorLineNumber(t *testing.T) {
	w, err := ber.NewWriter(ber.DER)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Dispose()

	err = Run(w, strings.NewReader("seq {\n  int 1\n  int x\n}"))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("expected error on line 3, got %v", err)
	}
}

func TestRun_NilReader(t *testing.T) {
	w, err := ber.NewWriter(ber.DER)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Dispose()

	if err := Run(w, nil); !errors.Is(err, ErrEmptyReader) {
		t.Errorf("expected ErrEmptyReader, got %v", err)
	}
}

func TestRunner_Exec(t *testing.T) {
	w, err := ber.NewWriter(ber.DER)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Dispose()

	r := NewRunner(w)
	for _, stmt := range []string{"seq {", "int 1", "[0] {"} {
		if err := r.Exec(stmt); err != nil {
			t.Fatalf("Exec(%q) failed: %v", stmt, err)
		}
	}
	if r.Depth() != 2 || w.Depth() != 2 {
		t.Errorf("expected depth 2, got runner %d writer %d", r.Depth(), w.Depth())
	}
	for _, stmt := range []string{"null", "}", "}"} {
		if err := r.Exec(stmt); err != nil {
			t.Fatalf("Exec(%q) failed: %v", stmt, err)
		}
	}

	out, err := w.Encode()
	if err != nil {
		t.Fatal(err)
	}
	expected := []byte{0x30, 0x07, 0x02, 0x01, 0x01, 0xA0, 0x02, 0x05, 0x00}
	if !bytes.Equal(out, expected) {
		t.Errorf("expected % X, got % X", expected, out)
	}
}
