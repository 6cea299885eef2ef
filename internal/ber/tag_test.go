package ber

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"
)

func TestTag_AppendTo(t *testing.T) {
	tests := []struct {
		name     string
		tag      Tag
		expected []byte
		wantErr  error
	}{
		// Universal class tags
		{
			name:     "universal primitive boolean",
			tag:      UniversalTag(TagBoolean),
			expected: []byte{0x01},
		},
		{
			name:     "universal primitive integer",
			tag:      UniversalTag(TagInteger),
			expected: []byte{0x02},
		},
		{
			name:     "universal constructed sequence",
			tag:      UniversalTag(TagSequence),
			expected: []byte{0x30},
		},
		{
			name:     "universal constructed set",
			tag:      UniversalTag(TagSetOf),
			expected: []byte{0x31},
		},
		// Application class tags (LDAP operations)
		{
			name:     "application constructed bind request",
			tag:      ApplicationTag(0).AsConstructed(),
			expected: []byte{0x60},
		},
		{
			name:     "application primitive unbind request",
			tag:      ApplicationTag(2),
			expected: []byte{0x42},
		},
		// Context-specific tags
		{
			name:     "context primitive 0",
			tag:      ContextTag(0),
			expected: []byte{0x80},
		},
		{
			name:     "context constructed 3",
			tag:      ContextTag(3).AsConstructed(),
			expected: []byte{0xA3},
		},
		{
			name:     "private primitive 5",
			tag:      NewTag(ClassPrivate, 5),
			expected: []byte{0xC5},
		},
		// Long form tag numbers
		{
			name:     "largest short form",
			tag:      ContextTag(30),
			expected: []byte{0x9E},
		},
		{
			name:     "smallest long form",
			tag:      ContextTag(31),
			expected: []byte{0x9F, 0x1F},
		},
		{
			name:     "two octet tag number",
			tag:      ApplicationTag(128),
			expected: []byte{0x5F, 0x81, 0x00},
		},
		{
			name:     "three octet tag number",
			tag:      NewTag(ClassUniversal, 16384),
			expected: []byte{0x1F, 0x81, 0x80, 0x00},
		},
		// Errors
		{
			name:    "invalid class",
			tag:     Tag{Class: 0x10, Number: 1},
			wantErr: ErrInvalidTagClass,
		},
		{
			name:    "negative number",
			tag:     ContextTag(-1),
			wantErr: ErrInvalidTagNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.tag.AppendTo(nil)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(got, tt.expected) {
				t.Errorf("expected %x, got %x", tt.expected, got)
			}
			if tt.tag.EncodedSize() != len(tt.expected) {
				t.Errorf("EncodedSize = %d, want %d", tt.tag.EncodedSize(), len(tt.expected))
			}
		})
	}
}

func TestTag_Equality(t *testing.T) {
	if ContextTag(1) != NewTag(ClassContextSpecific, 1) {
		t.Error("equal tags compare unequal")
	}
	if ContextTag(1) == ContextTag(1).AsConstructed() {
		t.Error("constructed flag ignored in comparison")
	}
	if ContextTag(1) == ApplicationTag(1) {
		t.Error("class ignored in comparison")
	}
	if ContextTag(1).AsConstructed().AsPrimitive() != ContextTag(1) {
		t.Error("AsPrimitive does not undo AsConstructed")
	}
}

func TestTag_String(t *testing.T) {
	tests := []struct {
		tag      Tag
		expected string
	}{
		{UniversalTag(TagSequence), "[UNIVERSAL 16] constructed"},
		{ContextTag(0), "[CONTEXT 0]"},
		{ApplicationTag(3), "[APPLICATION 3]"},
		{NewTag(ClassPrivate, 9), "[PRIVATE 9]"},
	}
	for _, tt := range tests {
		if got := tt.tag.String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestWriter_InvalidTag(t *testing.T) {
	w := newTestWriter(t, DER)
	err := w.WritePrimitive(Tag{Class: 0x01, Number: 1}, nil)
	if !errors.Is(err, ErrInvalidTagClass) {
		t.Errorf("expected ErrInvalidTagClass, got %v", err)
	}
	if !IsUsageError(err) {
		t.Errorf("expected usage error, got %T", err)
	}
}

func TestRuleSet(t *testing.T) {
	tests := []struct {
		input    string
		expected RuleSet
		wantErr  bool
	}{
		{"ber", BER, false},
		{"CER", CER, false},
		{" Der ", DER, false},
		{"xer", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(strconv.Quote(tt.input), func(t *testing.T) {
			got, err := ParseRuleSet(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedRuleSet) {
					t.Errorf("expected ErrUnsupportedRuleSet, got %v", err)
				}
				return
			}
			if err != nil || got != tt.expected {
				t.Errorf("ParseRuleSet(%q) = %v, %v", tt.input, got, err)
			}
			if got.String() != strings.ToUpper(strings.TrimSpace(tt.input)) {
				t.Errorf("String() = %q", got.String())
			}
		})
	}

	if RuleSet(0).Valid() || RuleSet(9).String() != "unknown" {
		t.Error("zero rule set must be invalid")
	}
}
