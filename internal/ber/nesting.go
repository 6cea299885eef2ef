package ber

// frame records an open constructed value. lenOffset is the offset of its
// length placeholder.
type frame struct {
	tag       Tag
	tagType   UniversalTagNumber
	lenOffset int
}

// PushSequence opens a SEQUENCE.
func (w *Writer) PushSequence() error {
	return w.PushSequenceTag(UniversalTag(TagSequence))
}

// PopSequence closes the SEQUENCE opened by PushSequence.
func (w *Writer) PopSequence() error {
	return w.PopSequenceTag(UniversalTag(TagSequence))
}

// PushSequenceTag opens a SEQUENCE encoded with an implicit tag.
func (w *Writer) PushSequenceTag(tag Tag) error {
	if err := checkUniversalTag("push sequence", tag, TagSequence); err != nil {
		return err
	}
	return w.pushTag("push sequence", tag.AsConstructed(), TagSequence)
}

// PopSequenceTag closes a SEQUENCE opened by PushSequenceTag with the same tag.
func (w *Writer) PopSequenceTag(tag Tag) error {
	return w.popTag("pop sequence", tag.AsConstructed(), TagSequence)
}

// PushSetOf opens a SET OF. Children are written in the order given; DER
// callers are responsible for sorting them.
func (w *Writer) PushSetOf() error {
	return w.PushSetOfTag(UniversalTag(TagSetOf))
}

// PopSetOf closes the SET OF opened by PushSetOf.
func (w *Writer) PopSetOf() error {
	return w.PopSetOfTag(UniversalTag(TagSetOf))
}

// PushSetOfTag opens a SET OF encoded with an implicit tag.
func (w *Writer) PushSetOfTag(tag Tag) error {
	if err := checkUniversalTag("push set of", tag, TagSetOf); err != nil {
		return err
	}
	return w.pushTag("push set of", tag.AsConstructed(), TagSetOf)
}

// PopSetOfTag closes a SET OF opened by PushSetOfTag with the same tag.
func (w *Writer) PopSetOfTag(tag Tag) error {
	return w.popTag("pop set of", tag.AsConstructed(), TagSetOf)
}

// PushOctetString opens a constructed OCTET STRING whose segments are
// written as primitive OCTET STRING children.
func (w *Writer) PushOctetString() error {
	return w.PushOctetStringTag(UniversalTag(TagOctetString))
}

// PopOctetString closes the value opened by PushOctetString.
func (w *Writer) PopOctetString() error {
	return w.PopOctetStringTag(UniversalTag(TagOctetString))
}

// PushOctetStringTag opens a constructed OCTET STRING with an implicit tag.
func (w *Writer) PushOctetStringTag(tag Tag) error {
	if err := checkUniversalTag("push octet string", tag, TagOctetString); err != nil {
		return err
	}
	return w.pushTag("push octet string", tag.AsConstructed(), TagOctetString)
}

// PopOctetStringTag closes a value opened by PushOctetStringTag.
func (w *Writer) PopOctetStringTag(tag Tag) error {
	return w.popTag("pop octet string", tag.AsConstructed(), TagOctetString)
}

// PushExplicit opens an EXPLICIT tag wrapper around the next value(s).
// Universal tags cannot be used as explicit wrappers.
func (w *Writer) PushExplicit(tag Tag) error {
	if tag.Class == ClassUniversal {
		return usage("push explicit", ErrUniversalTagFixed)
	}
	return w.pushTag("push explicit", tag.AsConstructed(), TagEndOfContents)
}

// PopExplicit closes a wrapper opened by PushExplicit with the same tag.
func (w *Writer) PopExplicit(tag Tag) error {
	return w.popTag("pop explicit", tag.AsConstructed(), TagEndOfContents)
}

// pushTag writes the identifier and an indefinite length placeholder, and
// records the placeholder's offset. The real length is filled in by popTag.
func (w *Writer) pushTag(op string, tag Tag, tagType UniversalTagNumber) error {
	if err := w.checkDisposed(op); err != nil {
		return err
	}
	if err := w.writeTag(tag); err != nil {
		return err
	}

	lenOffset := w.offset
	if err := w.writeLength(IndefiniteLength); err != nil {
		return err
	}
	w.stack = append(w.stack, frame{tag: tag, tagType: tagType, lenOffset: lenOffset})
	return nil
}

// popTag closes the innermost constructed value.
//
// Under CER the placeholder already says "indefinite" and only the
// end-of-contents marker is appended. Under BER and DER the placeholder is
// replaced by the definite length; when that needs the long form the
// content is moved forward to make room for the extra length octets.
func (w *Writer) popTag(op string, tag Tag, tagType UniversalTagNumber) error {
	if err := w.checkDisposed(op); err != nil {
		return err
	}
	if len(w.stack) == 0 {
		return usage(op, &PopError{Want: tag, WantType: tagType, Empty: true})
	}

	top := w.stack[len(w.stack)-1]
	if top.tag != tag || top.tagType != tagType {
		return usage(op, &PopError{Want: tag, WantType: tagType, Got: top.tag, GotType: top.tagType})
	}

	if w.rules.indefiniteConstructed() {
		if err := w.writeEndOfContents(); err != nil {
			return err
		}
		w.stack = w.stack[:len(w.stack)-1]
		return nil
	}

	contained := w.offset - 1 - top.lenOffset
	shift, err := lengthByteCount(contained)
	if err != nil {
		return err
	}

	// Length fits the placeholder octet
	if shift == 0 {
		w.buf[top.lenOffset] = byte(contained)
		w.stack = w.stack[:len(w.stack)-1]
		return nil
	}

	if err := w.ensureCapacity(shift); err != nil {
		return err
	}
	shiftForward(w.buf, top.lenOffset+1, contained, shift)
	putLength(w.buf[top.lenOffset:], DefiniteLength(contained), shift)
	w.offset += shift
	w.stack = w.stack[:len(w.stack)-1]
	return nil
}

// shiftForward moves the n bytes at buf[start:] to buf[start+by:]. The
// ranges overlap; copy has memmove semantics so the move is safe.
func shiftForward(buf []byte, start, n, by int) {
	copy(buf[start+by:start+by+n], buf[start:start+n])
}

func checkUniversalTag(op string, tag Tag, n UniversalTagNumber) error {
	if tag.Class == ClassUniversal && tag.Number != int(n) {
		return usage(op, ErrUniversalTagFixed)
	}
	return nil
}
