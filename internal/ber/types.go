// Package ber implements ASN.1 BER, CER and DER encoding
// as specified in ITU-T X.690.
package ber

// Class is the tag class held in bits 7-8 of the identifier octet.
type Class byte

// Tag class constants (bits 7-8 of the tag byte)
const (
	ClassUniversal       Class = 0x00 // 00xxxxxx
	ClassApplication     Class = 0x40 // 01xxxxxx
	ClassContextSpecific Class = 0x80 // 10xxxxxx
	ClassPrivate         Class = 0xC0 // 11xxxxxx
)

// String returns the X.690 name of the class.
func (c Class) String() string {
	switch c {
	case ClassUniversal:
		return "UNIVERSAL"
	case ClassApplication:
		return "APPLICATION"
	case ClassContextSpecific:
		return "CONTEXT"
	case ClassPrivate:
		return "PRIVATE"
	default:
		return "INVALID"
	}
}

// Identifier octet bits
const (
	constructedBit  = 0x20 // xx1xxxxx
	highTagNumber   = 0x1F // xxx11111
	maxLowTagNumber = 30
)

// UniversalTagNumber identifies a universal ASN.1 type. The writer also uses
// it to tell apart containers that share a tag, so a SEQUENCE cannot be
// closed as a SET OF.
type UniversalTagNumber int

// Universal tag numbers
const (
	TagEndOfContents    UniversalTagNumber = 0x00
	TagBoolean          UniversalTagNumber = 0x01
	TagInteger          UniversalTagNumber = 0x02
	TagBitString        UniversalTagNumber = 0x03
	TagOctetString      UniversalTagNumber = 0x04
	TagNull             UniversalTagNumber = 0x05
	TagObjectIdentifier UniversalTagNumber = 0x06
	TagEnumerated       UniversalTagNumber = 0x0A
	TagUTF8String       UniversalTagNumber = 0x0C
	TagSequence         UniversalTagNumber = 0x10
	TagSetOf            UniversalTagNumber = 0x11
	TagPrintableString  UniversalTagNumber = 0x13
	TagIA5String        UniversalTagNumber = 0x16
	TagUTCTime          UniversalTagNumber = 0x17
	TagGeneralizedTime  UniversalTagNumber = 0x18
)

// Length encoding constants
const (
	// LengthLongFormBit indicates long form length encoding (bit 8 set).
	// On its own it is the indefinite length octet.
	LengthLongFormBit = 0x80
	// MaxShortFormLength is the maximum length encodable in short form (0-127)
	MaxShortFormLength = 127
	// maxLengthOctets bounds long-form lengths to 32-bit magnitudes.
	maxLengthOctets = 4
)
