package ber

import (
	"io"

	"github.com/KilimcininKorOglu/asnw/internal/logging"
)

// growthBlockSize is the step the buffer grows in, so a run of small writes
// does not reallocate on every call.
const growthBlockSize = 1024

// Writer encodes ASN.1 values with BER, CER or DER.
//
// Values are appended in order; constructed values are opened with a Push
// call and closed with the matching Pop call. The output may hold private
// key material, so every byte written is zeroed before the buffer is
// returned to its Pool or reused.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	buf    []byte
	offset int // write cursor; -1 once disposed
	stack  []frame
	rules  RuleSet
	pool   Pool
	logger logging.Logger
}

// Option configures a Writer.
type Option func(*Writer)

// WithPool makes the writer acquire its buffers from p instead of SharedPool.
func WithPool(p Pool) Option {
	return func(w *Writer) {
		if p != nil {
			w.pool = p
		}
	}
}

// WithLogger sets the logger used for buffer lifecycle events.
func WithLogger(l logging.Logger) Option {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWriter creates a Writer for the given rule set.
func NewWriter(rules RuleSet, opts ...Option) (*Writer, error) {
	if !rules.Valid() {
		return nil, usage("new", ErrUnsupportedRuleSet)
	}

	w := &Writer{
		rules:  rules,
		pool:   SharedPool,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.WithFields("rules", rules.String())
	return w, nil
}

// RuleSet returns the encoding rules the writer was created with.
func (w *Writer) RuleSet() RuleSet {
	return w.rules
}

// Depth returns the number of constructed values currently open.
func (w *Writer) Depth() int {
	return len(w.stack)
}

// Dispose zeroes the written bytes, returns the buffer to the pool and
// makes the writer unusable. Calling Dispose again has no effect.
func (w *Writer) Dispose() {
	if w.offset < 0 {
		return
	}

	w.stack = nil
	if w.buf != nil {
		w.release()
	}
	w.offset = -1
	w.logger.Debug("ber: writer disposed")
}

// Reset zeroes the written bytes and discards all state without releasing
// the buffer, so the writer can encode another value.
func (w *Writer) Reset() error {
	if err := w.checkDisposed("reset"); err != nil {
		return err
	}

	if w.offset > 0 {
		clear(w.buf[:w.offset])
		w.offset = 0
	}
	w.stack = w.stack[:0]
	return nil
}

// EncodedLength returns the number of bytes Encode would produce, or -1 while
// a constructed value is still open.
func (w *Writer) EncodedLength() (int, error) {
	if err := w.checkDisposed("encoded length"); err != nil {
		return 0, err
	}
	if len(w.stack) != 0 {
		return -1, nil
	}
	return w.offset, nil
}

// TryEncode copies the encoding into dst. It reports ok == false, with
// n == 0, when dst is too small; callers may retry with a larger buffer.
func (w *Writer) TryEncode(dst []byte) (n int, ok bool, err error) {
	if err := w.checkBalanced("try encode"); err != nil {
		return 0, false, err
	}
	if len(dst) < w.offset {
		return 0, false, nil
	}
	if w.offset == 0 {
		return 0, true, nil
	}
	return copy(dst, w.buf[:w.offset]), true, nil
}

// Encode returns a new, exactly sized copy of the encoding.
func (w *Writer) Encode() ([]byte, error) {
	if err := w.checkBalanced("encode"); err != nil {
		return nil, err
	}
	out := make([]byte, w.offset)
	copy(out, w.buf[:w.offset])
	return out, nil
}

// WriteTo writes the encoding to dst.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	if err := w.checkBalanced("write to"); err != nil {
		return 0, err
	}
	if w.offset == 0 {
		return 0, nil
	}
	n, err := dst.Write(w.buf[:w.offset])
	return int64(n), err
}

func (w *Writer) checkDisposed(op string) error {
	if w.offset < 0 {
		return usage(op, ErrDisposed)
	}
	return nil
}

func (w *Writer) checkBalanced(op string) error {
	if err := w.checkDisposed(op); err != nil {
		return err
	}
	if len(w.stack) != 0 {
		return usage(op, ErrUnbalanced)
	}
	return nil
}

// ensureCapacity makes room for pending more bytes at the cursor. The buffer
// grows in whole blocks; the old region is zeroed and returned to the pool.
func (w *Writer) ensureCapacity(pending int) error {
	if err := w.checkDisposed("write"); err != nil {
		return err
	}
	if pending < 0 {
		return ErrLengthOverflow
	}
	if w.buf != nil && len(w.buf)-w.offset >= pending {
		return nil
	}

	need := w.offset + pending
	if need < w.offset || need > maxBufferSize {
		return ErrLengthOverflow
	}
	blocks := (need + growthBlockSize - 1) / growthBlockSize
	grown := w.pool.Get(blocks * growthBlockSize)

	if w.buf != nil {
		copy(grown, w.buf[:w.offset])
		w.release()
	}
	w.buf = grown
	w.logger.Debug("ber: buffer grown", "size", len(grown), "used", w.offset)
	return nil
}

// maxBufferSize keeps block rounding from overflowing int.
const maxBufferSize = int(^uint(0)>>1) - growthBlockSize

// release zeroes the written prefix of the buffer and returns it to the pool.
func (w *Writer) release() {
	clear(w.buf[:w.offset])
	w.pool.Put(w.buf)
	w.buf = nil
}

func (w *Writer) writeTag(tag Tag) error {
	if err := tag.validate(); err != nil {
		return usage("write tag", err)
	}
	size := tag.EncodedSize()
	if err := w.ensureCapacity(size); err != nil {
		return err
	}
	w.offset += tag.encode(w.buf[w.offset:])
	return nil
}

// writeLength writes the length field (X.690 8.1.3). For definite lengths it
// also reserves room for the content that follows.
func (w *Writer) writeLength(l Length) error {
	if l.indefinite {
		if err := w.ensureCapacity(1); err != nil {
			return err
		}
		w.buf[w.offset] = LengthLongFormBit
		w.offset++
		return nil
	}

	if l.n < 0 {
		return usage("write length", ErrInvalidLength)
	}
	k, err := lengthByteCount(l.n)
	if err != nil {
		return err
	}
	if err := w.ensureCapacity(1 + k + l.n); err != nil {
		return err
	}
	putLength(w.buf[w.offset:], l, k)
	w.offset += 1 + k
	return nil
}

// writeEndOfContents writes the two zero octets closing an indefinite
// length value (X.690 8.1.5).
func (w *Writer) writeEndOfContents() error {
	if err := w.ensureCapacity(2); err != nil {
		return err
	}
	w.buf[w.offset] = 0
	w.buf[w.offset+1] = 0
	w.offset += 2
	return nil
}

// writeBytes appends b at the cursor.
func (w *Writer) writeBytes(b []byte) error {
	if err := w.ensureCapacity(len(b)); err != nil {
		return err
	}
	w.offset += copy(w.buf[w.offset:], b)
	return nil
}
