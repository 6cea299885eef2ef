package ber

import (
	"math/big"
	"time"
)

// WritePrimitive writes tag, the definite length of content and content.
// The tag is forced primitive.
func (w *Writer) WritePrimitive(tag Tag, content []byte) error {
	return w.writePrimitive(tag.AsPrimitive(), content)
}

func (w *Writer) writePrimitive(tag Tag, content []byte) error {
	if err := w.writeTag(tag); err != nil {
		return err
	}
	if err := w.writeLength(DefiniteLength(len(content))); err != nil {
		return err
	}
	return w.writeBytes(content)
}

// writeUniversal validates an implicit tag against the universal type n
// before writing content.
func (w *Writer) writeUniversal(op string, tag Tag, n UniversalTagNumber, content []byte) error {
	if err := checkUniversalTag(op, tag, n); err != nil {
		return err
	}
	return w.writePrimitive(tag.AsPrimitive(), content)
}

// WriteEncodedValue copies an already encoded value into the output as is.
func (w *Writer) WriteEncodedValue(encoded []byte) error {
	if err := w.checkDisposed("write encoded value"); err != nil {
		return err
	}
	return w.writeBytes(encoded)
}

// WriteBoolean writes a BOOLEAN.
func (w *Writer) WriteBoolean(v bool) error {
	return w.WriteBooleanTag(UniversalTag(TagBoolean), v)
}

// WriteBooleanTag writes a BOOLEAN with an implicit tag.
// Per X.690, FALSE is encoded as 0x00, TRUE as 0xFF (required by CER and DER).
func (w *Writer) WriteBooleanTag(tag Tag, v bool) error {
	content := [1]byte{0x00}
	if v {
		content[0] = 0xFF
	}
	return w.writeUniversal("write boolean", tag, TagBoolean, content[:])
}

// WriteNull writes a NULL.
func (w *Writer) WriteNull() error {
	return w.WriteNullTag(UniversalTag(TagNull))
}

// WriteNullTag writes a NULL with an implicit tag.
func (w *Writer) WriteNullTag(tag Tag) error {
	return w.writeUniversal("write null", tag, TagNull, nil)
}

// WriteInteger writes an INTEGER using the minimum number of two's
// complement octets.
func (w *Writer) WriteInteger(v int64) error {
	return w.WriteIntegerTag(UniversalTag(TagInteger), v)
}

// WriteIntegerTag writes an INTEGER with an implicit tag.
func (w *Writer) WriteIntegerTag(tag Tag, v int64) error {
	var content [8]byte
	n := putInt64(content[:], v)
	return w.writeUniversal("write integer", tag, TagInteger, content[:n])
}

// WriteEnumerated writes an ENUMERATED. It is encoded like an INTEGER.
func (w *Writer) WriteEnumerated(v int64) error {
	return w.WriteEnumeratedTag(UniversalTag(TagEnumerated), v)
}

// WriteEnumeratedTag writes an ENUMERATED with an implicit tag.
func (w *Writer) WriteEnumeratedTag(tag Tag, v int64) error {
	var content [8]byte
	n := putInt64(content[:], v)
	return w.writeUniversal("write enumerated", tag, TagEnumerated, content[:n])
}

// WriteIntegerBytes writes an INTEGER whose content is already a big-endian
// two's complement value. The value must be minimally encoded (X.690 8.3.2).
func (w *Writer) WriteIntegerBytes(v []byte) error {
	return w.WriteIntegerBytesTag(UniversalTag(TagInteger), v)
}

// WriteIntegerBytesTag writes WriteIntegerBytes content with an implicit tag.
func (w *Writer) WriteIntegerBytesTag(tag Tag, v []byte) error {
	if err := checkMinimalInteger(v); err != nil {
		return usage("write integer", err)
	}
	return w.writeUniversal("write integer", tag, TagInteger, v)
}

// WriteIntegerUnsigned writes the big-endian magnitude v as a non-negative
// INTEGER, adding a zero octet when the high bit of v is set.
func (w *Writer) WriteIntegerUnsigned(v []byte) error {
	return w.WriteIntegerUnsignedTag(UniversalTag(TagInteger), v)
}

// WriteIntegerUnsignedTag writes WriteIntegerUnsigned content with an
// implicit tag. v is copied straight into the output buffer.
func (w *Writer) WriteIntegerUnsignedTag(tag Tag, v []byte) error {
	const op = "write integer"
	if len(v) == 0 {
		return usage(op, ErrInvalidInteger)
	}
	if err := checkUniversalTag(op, tag, TagInteger); err != nil {
		return err
	}
	if v[0]&0x80 == 0 {
		if err := checkMinimalInteger(v); err != nil {
			return usage(op, err)
		}
		return w.writePrimitive(tag.AsPrimitive(), v)
	}

	if err := w.writeTag(tag.AsPrimitive()); err != nil {
		return err
	}
	if err := w.writeLength(DefiniteLength(len(v) + 1)); err != nil {
		return err
	}
	w.buf[w.offset] = 0
	w.offset++
	return w.writeBytes(v)
}

// WriteBigInt writes an INTEGER holding v.
func (w *Writer) WriteBigInt(v *big.Int) error {
	return w.WriteBigIntTag(UniversalTag(TagInteger), v)
}

// WriteBigIntTag writes an INTEGER holding v with an implicit tag.
func (w *Writer) WriteBigIntTag(tag Tag, v *big.Int) error {
	if v == nil {
		return usage("write integer", ErrInvalidInteger)
	}
	if v.Sign() >= 0 {
		magnitude := v.Bytes()
		if len(magnitude) == 0 {
			magnitude = []byte{0}
		}
		return w.WriteIntegerUnsignedTag(tag, magnitude)
	}

	// Two's complement of a negative value is the complement of |v|-1.
	m := new(big.Int).Neg(v)
	m.Sub(m, big.NewInt(1))
	content := m.Bytes()
	for i := range content {
		content[i] ^= 0xFF
	}
	if len(content) == 0 || content[0]&0x80 == 0 {
		content = append([]byte{0xFF}, content...)
	}
	return w.writeUniversal("write integer", tag, TagInteger, content)
}

// WriteOctetString writes a primitive OCTET STRING.
func (w *Writer) WriteOctetString(v []byte) error {
	return w.WriteOctetStringTag(UniversalTag(TagOctetString), v)
}

// WriteOctetStringTag writes a primitive OCTET STRING with an implicit tag.
// This is what LDAP uses for most context-specific fields.
func (w *Writer) WriteOctetStringTag(tag Tag, v []byte) error {
	return w.writeUniversal("write octet string", tag, TagOctetString, v)
}

// WriteBitString writes a primitive BIT STRING. unusedBits is the number of
// padding bits in the last octet of v.
func (w *Writer) WriteBitString(v []byte, unusedBits int) error {
	return w.WriteBitStringTag(UniversalTag(TagBitString), v, unusedBits)
}

// WriteBitStringTag writes a primitive BIT STRING with an implicit tag.
func (w *Writer) WriteBitStringTag(tag Tag, v []byte, unusedBits int) error {
	const op = "write bit string"
	if unusedBits < 0 || unusedBits > 7 || (len(v) == 0 && unusedBits != 0) {
		return usage(op, ErrInvalidBitString)
	}
	if err := checkUniversalTag(op, tag, TagBitString); err != nil {
		return err
	}
	if err := w.writeTag(tag.AsPrimitive()); err != nil {
		return err
	}
	if err := w.writeLength(DefiniteLength(len(v) + 1)); err != nil {
		return err
	}
	w.buf[w.offset] = byte(unusedBits)
	w.offset++
	return w.writeBytes(v)
}

// WriteObjectIdentifier writes an OBJECT IDENTIFIER. The arcs accept an
// encoding/asn1.ObjectIdentifier directly.
func (w *Writer) WriteObjectIdentifier(oid []int) error {
	return w.WriteObjectIdentifierTag(UniversalTag(TagObjectIdentifier), oid)
}

// WriteObjectIdentifierTag writes an OBJECT IDENTIFIER with an implicit tag.
func (w *Writer) WriteObjectIdentifierTag(tag Tag, oid []int) error {
	content, err := encodeOID(oid)
	if err != nil {
		return usage("write object identifier", err)
	}
	return w.writeUniversal("write object identifier", tag, TagObjectIdentifier, content)
}

// WriteUTF8String writes a UTF8String. s is not validated.
func (w *Writer) WriteUTF8String(s string) error {
	return w.WriteUTF8StringTag(UniversalTag(TagUTF8String), s)
}

// WriteUTF8StringTag writes a UTF8String with an implicit tag.
func (w *Writer) WriteUTF8StringTag(tag Tag, s string) error {
	return w.writeUniversal("write utf8 string", tag, TagUTF8String, []byte(s))
}

// WritePrintableString writes a PrintableString. s is not validated.
func (w *Writer) WritePrintableString(s string) error {
	return w.writeUniversal("write printable string", UniversalTag(TagPrintableString), TagPrintableString, []byte(s))
}

// WriteIA5String writes an IA5String. s is not validated.
func (w *Writer) WriteIA5String(s string) error {
	return w.writeUniversal("write ia5 string", UniversalTag(TagIA5String), TagIA5String, []byte(s))
}

// WriteUTCTime writes t as a UTCTime in the YYMMDDHHMMSSZ form required by
// CER and DER. Only years 1950 through 2049 can be represented.
func (w *Writer) WriteUTCTime(t time.Time) error {
	t = t.UTC()
	if t.Year() < 1950 || t.Year() >= 2050 {
		return usage("write utc time", ErrInvalidTime)
	}
	return w.writeUniversal("write utc time", UniversalTag(TagUTCTime), TagUTCTime,
		[]byte(t.Format("060102150405Z")))
}

// WriteGeneralizedTime writes t as a GeneralizedTime in the
// YYYYMMDDHHMMSSZ form, without fractional seconds.
func (w *Writer) WriteGeneralizedTime(t time.Time) error {
	t = t.UTC()
	if t.Year() < 0 || t.Year() > 9999 {
		return usage("write generalized time", ErrInvalidTime)
	}
	return w.writeUniversal("write generalized time", UniversalTag(TagGeneralizedTime), TagGeneralizedTime,
		[]byte(t.Format("20060102150405Z")))
}

// putInt64 writes v into dst as a minimal two's complement value and returns
// the number of octets used.
func putInt64(dst []byte, v int64) int {
	n := 1
	for i := v; i > 127 || i < -128; i >>= 8 {
		n++
	}
	for j := 0; j < n; j++ {
		dst[j] = byte(v >> (8 * (n - 1 - j)))
	}
	return n
}

// checkMinimalInteger rejects empty contents and redundant leading octets.
func checkMinimalInteger(v []byte) error {
	if len(v) == 0 {
		return ErrInvalidInteger
	}
	if len(v) > 1 {
		if (v[0] == 0x00 && v[1]&0x80 == 0) || (v[0] == 0xFF && v[1]&0x80 != 0) {
			return ErrInvalidInteger
		}
	}
	return nil
}

// encodeOID encodes the arcs of an OBJECT IDENTIFIER (X.690 8.19).
func encodeOID(oid []int) ([]byte, error) {
	if len(oid) < 2 || oid[0] < 0 || oid[0] > 2 || oid[1] < 0 || (oid[0] < 2 && oid[1] >= 40) {
		return nil, ErrInvalidOID
	}

	first := oid[0]*40 + oid[1]
	size := base128Len(first)
	for _, arc := range oid[2:] {
		if arc < 0 {
			return nil, ErrInvalidOID
		}
		size += base128Len(arc)
	}

	content := make([]byte, size)
	n := putBase128(content, first)
	for _, arc := range oid[2:] {
		n += putBase128(content[n:], arc)
	}
	return content, nil
}
