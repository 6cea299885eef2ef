package ber

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by the writer
var (
	// ErrDisposed is returned by every operation on a disposed Writer.
	ErrDisposed = errors.New("ber: writer has been disposed")

	// ErrPopWrongTag is returned when a pop does not match the open frame.
	ErrPopWrongTag = errors.New("ber: cannot pop the requested tag as it is not currently in progress")

	// ErrUnbalanced is returned when output is requested while a constructed
	// value is still open.
	ErrUnbalanced = errors.New("ber: encode cannot be called while a constructed value is still open")

	// ErrUnsupportedRuleSet is returned for rule sets other than BER, CER and DER.
	ErrUnsupportedRuleSet = errors.New("ber: unsupported encoding rule set")

	// ErrInvalidLength is returned for negative definite lengths.
	ErrInvalidLength = errors.New("ber: invalid length")

	// ErrLengthOverflow is returned when a length or pending byte count
	// cannot be represented.
	ErrLengthOverflow = errors.New("ber: length value overflow")

	ErrInvalidTagClass  = errors.New("ber: invalid tag class")
	ErrInvalidTagNumber = errors.New("ber: invalid tag number")

	// ErrUniversalTagFixed is returned when a universal-class tag is used
	// with a number other than the one of the type being written.
	ErrUniversalTagFixed = errors.New("ber: universal tags must carry the number of the type being written")

	ErrInvalidInteger   = errors.New("ber: invalid integer encoding")
	ErrIntegerTooLong   = errors.New("ber: integer does not fit the target length")
	ErrInvalidBitString = errors.New("ber: invalid bit string")
	ErrInvalidOID       = errors.New("ber: invalid object identifier")
	ErrInvalidTime      = errors.New("ber: time out of range for encoding")
)

// UsageError reports a call the Writer cannot honor because the caller broke
// its contract: mismatched push/pop, use after Dispose, unbalanced encode.
// Retrying the same call never succeeds.
type UsageError struct {
	Op  string // Writer method that failed
	Err error  // Underlying error
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	return fmt.Sprintf("ber: %s: %s", e.Op, strings.TrimPrefix(e.Err.Error(), "ber: "))
}

// Unwrap returns the underlying error.
func (e *UsageError) Unwrap() error {
	return e.Err
}

// IsUsageError reports whether err, or any error it wraps, is a *UsageError.
func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

func usage(op string, err error) error {
	return &UsageError{Op: op, Err: err}
}

// PopError provides detailed information about a failed pop.
type PopError struct {
	Want     Tag
	WantType UniversalTagNumber
	Got      Tag
	GotType  UniversalTagNumber
	Empty    bool // no constructed value was open
}

// Error implements the error interface.
func (e *PopError) Error() string {
	if e.Empty {
		return fmt.Sprintf("ber: cannot pop %s (type %d): nothing is open", e.Want, e.WantType)
	}
	return fmt.Sprintf("ber: cannot pop %s (type %d): open value is %s (type %d)",
		e.Want, e.WantType, e.Got, e.GotType)
}

// Is allows PopError to match ErrPopWrongTag with errors.Is.
func (e *PopError) Is(target error) bool {
	return target == ErrPopWrongTag
}
