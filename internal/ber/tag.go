package ber

import "fmt"

// Tag identifies an encoded value: its class, whether it is constructed and
// its tag number. Tags are plain values and compare with ==.
type Tag struct {
	Class       Class
	Constructed bool
	Number      int
}

// NewTag returns a primitive tag of the given class and number.
func NewTag(class Class, number int) Tag {
	return Tag{Class: class, Number: number}
}

// UniversalTag returns the tag the universal type n is encoded with.
// SEQUENCE and SET OF are constructed, everything else primitive.
func UniversalTag(n UniversalTagNumber) Tag {
	return Tag{
		Class:       ClassUniversal,
		Constructed: n == TagSequence || n == TagSetOf,
		Number:      int(n),
	}
}

// ApplicationTag returns a primitive APPLICATION tag.
func ApplicationTag(number int) Tag {
	return NewTag(ClassApplication, number)
}

// ContextTag returns a primitive context-specific tag.
func ContextTag(number int) Tag {
	return NewTag(ClassContextSpecific, number)
}

// AsConstructed returns a copy of t with the constructed flag set.
func (t Tag) AsConstructed() Tag {
	t.Constructed = true
	return t
}

// AsPrimitive returns a copy of t with the constructed flag cleared.
func (t Tag) AsPrimitive() Tag {
	t.Constructed = false
	return t
}

// String formats the tag the way X.680 writes it, e.g. "[CONTEXT 3]".
func (t Tag) String() string {
	form := ""
	if t.Constructed {
		form = " constructed"
	}
	return fmt.Sprintf("[%s %d]%s", t.Class, t.Number, form)
}

func (t Tag) validate() error {
	switch t.Class {
	case ClassUniversal, ClassApplication, ClassContextSpecific, ClassPrivate:
	default:
		return ErrInvalidTagClass
	}
	if t.Number < 0 {
		return ErrInvalidTagNumber
	}
	return nil
}

// EncodedSize returns the number of identifier octets t encodes to.
func (t Tag) EncodedSize() int {
	if t.Number <= maxLowTagNumber {
		return 1
	}
	return 1 + base128Len(t.Number)
}

// AppendTo appends the identifier octets of t to dst.
func (t Tag) AppendTo(dst []byte) ([]byte, error) {
	if err := t.validate(); err != nil {
		return dst, err
	}
	n := len(dst)
	size := t.EncodedSize()
	for i := 0; i < size; i++ {
		dst = append(dst, 0)
	}
	t.encode(dst[n:])
	return dst, nil
}

// encode writes the identifier octets into dst, which must hold at least
// EncodedSize bytes, and returns the count written.
func (t Tag) encode(dst []byte) int {
	first := byte(t.Class)
	if t.Constructed {
		first |= constructedBit
	}

	// Short form: tag number fits in 5 bits (0-30)
	if t.Number <= maxLowTagNumber {
		dst[0] = first | byte(t.Number)
		return 1
	}

	// Long form: 0x1F marker then the number in base-128
	dst[0] = first | highTagNumber
	return 1 + putBase128(dst[1:], t.Number)
}

// base128Len returns how many base-128 digits value needs.
func base128Len(value int) int {
	if value == 0 {
		return 1
	}
	n := 0
	for ; value > 0; value >>= 7 {
		n++
	}
	return n
}

// putBase128 writes value big-endian in base-128, setting the continuation
// bit on every octet but the last.
func putBase128(dst []byte, value int) int {
	n := base128Len(value)
	for i := n - 1; i >= 0; i-- {
		b := byte(value & 0x7F)
		if i != n-1 {
			b |= 0x80
		}
		dst[i] = b
		value >>= 7
	}
	return n
}
