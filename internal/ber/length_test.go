package ber

import (
	"bytes"
	"errors"
	"strconv"
	"testing"
)

func TestAppendLength(t *testing.T) {
	tests := []struct {
		name     string
		length   Length
		expected []byte
		wantErr  error
	}{
		// Short form
		{name: "zero", length: DefiniteLength(0), expected: []byte{0x00}},
		{name: "one", length: DefiniteLength(1), expected: []byte{0x01}},
		{name: "max short form", length: DefiniteLength(127), expected: []byte{0x7F}},
		// Long form
		{name: "min long form", length: DefiniteLength(128), expected: []byte{0x81, 0x80}},
		{name: "max one octet", length: DefiniteLength(255), expected: []byte{0x81, 0xFF}},
		{name: "min two octets", length: DefiniteLength(256), expected: []byte{0x82, 0x01, 0x00}},
		{name: "max two octets", length: DefiniteLength(65535), expected: []byte{0x82, 0xFF, 0xFF}},
		{name: "min three octets", length: DefiniteLength(65536), expected: []byte{0x83, 0x01, 0x00, 0x00}},
		{name: "min four octets", length: DefiniteLength(0x01000000), expected: []byte{0x84, 0x01, 0x00, 0x00, 0x00}},
		// Indefinite form
		{name: "indefinite", length: IndefiniteLength, expected: []byte{0x80}},
		// Errors
		{name: "negative", length: DefiniteLength(-1), wantErr: ErrInvalidLength},
		{name: "very negative", length: DefiniteLength(-200), wantErr: ErrInvalidLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AppendLength([]byte{0xEE}, tt.length)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(got[1:], tt.expected) || got[0] != 0xEE {
				t.Errorf("expected %x, got %x", tt.expected, got[1:])
			}
			size, err := EncodedLengthSize(tt.length)
			if err != nil || size != len(tt.expected) {
				t.Errorf("EncodedLengthSize = %d, %v; want %d", size, err, len(tt.expected))
			}
		})
	}
}

func TestLength_Overflow(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("lengths above 32 bits need a 64-bit int")
	}
	huge := 1 << 32
	if _, err := AppendLength(nil, DefiniteLength(huge)); !errors.Is(err, ErrLengthOverflow) {
		t.Errorf("expected ErrLengthOverflow, got %v", err)
	}
	if k, err := lengthByteCount(huge - 1); err != nil || k != 4 {
		t.Errorf("expected 4 octets for 2^32-1, got %d (%v)", k, err)
	}
}

func TestLength_Variant(t *testing.T) {
	if !IndefiniteLength.IsIndefinite() || IndefiniteLength.Int() != -1 {
		t.Error("IndefiniteLength must report the indefinite form")
	}
	l := DefiniteLength(5)
	if l.IsIndefinite() || l.Int() != 5 {
		t.Errorf("unexpected definite length %+v", l)
	}
}

func TestWriter_WriteLength(t *testing.T) {
	w := newTestWriter(t, BER)
	if err := w.writeLength(DefiniteLength(-1)); !errors.Is(err, ErrInvalidLength) || !IsUsageError(err) {
		t.Errorf("expected usage ErrInvalidLength, got %v", err)
	}
	if err := w.writeLength(IndefiniteLength); err != nil {
		t.Fatalf("writeLength failed: %v", err)
	}
	if err := w.writeEndOfContents(); err != nil {
		t.Fatalf("writeEndOfContents failed: %v", err)
	}
	if got := mustEncode(t, w); !bytes.Equal(got, []byte{0x80, 0x00, 0x00}) {
		t.Errorf("expected 800000, got %x", got)
	}
	if err := w.ensureCapacity(-1); !errors.Is(err, ErrLengthOverflow) {
		t.Errorf("expected ErrLengthOverflow for negative pending count, got %v", err)
	}
}
