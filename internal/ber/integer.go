package ber

// NormalizeInteger converts the big-endian magnitude b into a field of
// exactly length octets: a single leading zero octet (the sign pad of an
// INTEGER) is dropped, then the value is left-padded with zeros. RSA key
// components are exchanged in such fixed-width fields.
//
// The result is a new slice; b is not modified.
func NormalizeInteger(b []byte, length int) ([]byte, error) {
	if length < 0 {
		return nil, ErrInvalidLength
	}
	if len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	if len(b) > length {
		return nil, ErrIntegerTooLong
	}

	out := make([]byte, length)
	copy(out[length-len(b):], b)
	return out, nil
}

// WriteKeyParameterInteger writes the big-endian magnitude b as an INTEGER
// after trimming it to its minimal form. Leading zero octets are dropped,
// except that one is kept when the next octet has its high bit set, so the
// value stays non-negative. An all-zero input encodes as 0.
func (w *Writer) WriteKeyParameterInteger(b []byte) error {
	if len(b) == 0 {
		return usage("write key parameter", ErrInvalidInteger)
	}
	return w.WriteIntegerUnsigned(trimKeyParameter(b))
}

func trimKeyParameter(b []byte) []byte {
	if b[0] != 0 {
		return b
	}

	start := 1
	for start < len(b) {
		if b[start] >= 0x80 {
			start--
			break
		}
		if b[start] != 0 {
			break
		}
		start++
	}
	if start == len(b) {
		start--
	}
	return b[start:]
}
