package ber

// Length is the value of a length field: either a definite octet count or
// the indefinite form. Keeping indefinite as its own variant means a
// negative count is always a caller error.
type Length struct {
	n          int
	indefinite bool
}

// IndefiniteLength is the X.690 8.1.3.6 indefinite form.
var IndefiniteLength = Length{indefinite: true}

// DefiniteLength returns a definite length of n octets.
func DefiniteLength(n int) Length {
	return Length{n: n}
}

// IsIndefinite reports whether l is the indefinite form.
func (l Length) IsIndefinite() bool {
	return l.indefinite
}

// Int returns the definite octet count, or -1 for the indefinite form.
func (l Length) Int() int {
	if l.indefinite {
		return -1
	}
	return l.n
}

// lengthByteCount returns how many octets follow the initial octet in the
// long form of length, or 0 when the short form applies (X.690 8.1.3.5).
func lengthByteCount(length int) (int, error) {
	switch {
	case length < 0:
		return 0, ErrLengthOverflow
	case length <= MaxShortFormLength:
		return 0, nil
	case length <= 0xFF:
		return 1, nil
	case length <= 0xFFFF:
		return 2, nil
	case length <= 0xFFFFFF:
		return 3, nil
	case uint64(length) <= 0xFFFFFFFF:
		return 4, nil
	default:
		return 0, ErrLengthOverflow
	}
}

// EncodedLengthSize returns the number of octets the length field for l
// occupies.
func EncodedLengthSize(l Length) (int, error) {
	if l.indefinite {
		return 1, nil
	}
	if l.n < 0 {
		return 0, ErrInvalidLength
	}
	k, err := lengthByteCount(l.n)
	if err != nil {
		return 0, err
	}
	return 1 + k, nil
}

// AppendLength appends the length octets for l to dst.
func AppendLength(dst []byte, l Length) ([]byte, error) {
	size, err := EncodedLengthSize(l)
	if err != nil {
		return dst, err
	}
	n := len(dst)
	for i := 0; i < size; i++ {
		dst = append(dst, 0)
	}
	putLength(dst[n:], l, size-1)
	return dst, nil
}

// putLength writes l into dst using k subsequent octets. k must come from
// lengthByteCount and dst must hold k+1 bytes.
func putLength(dst []byte, l Length, k int) {
	if l.indefinite {
		dst[0] = LengthLongFormBit
		return
	}
	if k == 0 {
		dst[0] = byte(l.n)
		return
	}
	dst[0] = byte(LengthLongFormBit | k)
	remaining := l.n
	for i := k; i > 0; i-- {
		dst[i] = byte(remaining)
		remaining >>= 8
	}
}
