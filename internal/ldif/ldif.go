// Package ldif reads RFC 2849 LDIF content records into LDAP add requests.
package ldif

import (
	"bufio"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KilimcininKorOglu/asnw/internal/ldap"
)

// LDIF errors.
var (
	ErrInvalidLDIF       = errors.New("ldif: invalid LDIF format")
	ErrMissingDN         = errors.New("ldif: missing DN in LDIF entry")
	ErrInvalidBase64     = errors.New("ldif: invalid base64 encoding")
	ErrEmptyReader       = errors.New("ldif: empty reader")
	ErrUnsupportedChange = errors.New("ldif: only add change records are supported")
)

// Record is one LDIF entry. Attribute types keep the spelling of their
// first occurrence and values keep file order.
type Record struct {
	DN         string
	Attributes []ldap.Attribute
	line       int
}

// Line returns the line the record's dn appeared on.
func (r *Record) Line() int {
	return r.line
}

// AddValue appends value to the attribute attrType, matched case-insensitively.
func (r *Record) AddValue(attrType string, value []byte) {
	for i := range r.Attributes {
		if strings.EqualFold(r.Attributes[i].Type, attrType) {
			r.Attributes[i].Values = append(r.Attributes[i].Values, value)
			return
		}
	}
	r.Attributes = append(r.Attributes, ldap.Attribute{Type: attrType, Values: [][]byte{value}})
}

// AddRequest returns the add request creating the entry.
func (r *Record) AddRequest() *ldap.AddRequest {
	return &ldap.AddRequest{Entry: r.DN, Attributes: r.Attributes}
}

// Parse reads every record from r. Folded lines are joined, comments and
// the version line are skipped.
func Parse(r io.Reader) ([]*Record, error) {
	if r == nil {
		return nil, ErrEmptyReader
	}

	scanner := bufio.NewScanner(r)
	var records []*Record
	var record *Record
	var continuedLine string
	lineNum, startLine := 0, 0

	flush := func() error {
		if continuedLine == "" {
			return nil
		}
		line := continuedLine
		continuedLine = ""

		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "dn:"):
			if record != nil {
				return fmt.Errorf("%w: dn inside an entry", ErrInvalidLDIF)
			}
			record = &Record{line: startLine}
			return processDNLine(record, line)
		case record == nil && strings.HasPrefix(lower, "version:"):
			// Only version 1 exists
			return nil
		case record == nil:
			return ErrMissingDN
		}
		return processLine(record, line)
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		// Handle line continuation (lines starting with single space)
		if len(line) > 0 && line[0] == ' ' {
			continuedLine += line[1:]
			continue
		}

		if err := flush(); err != nil {
			return nil, fmt.Errorf("line %d: %w", startLine, err)
		}

		// Skip comments
		if len(line) > 0 && line[0] == '#' {
			continue
		}

		// Empty line marks end of entry
		if strings.TrimSpace(line) == "" {
			if record != nil {
				records = append(records, record)
				record = nil
			}
			continue
		}

		continuedLine = line
		startLine = lineNum
	}

	if err := flush(); err != nil {
		return nil, fmt.Errorf("line %d: %w", startLine, err)
	}
	if record != nil {
		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLDIF, err)
	}

	return records, nil
}

// processDNLine processes a DN line and sets the entry's DN.
func processDNLine(record *Record, line string) error {
	rest := line[3:]
	if strings.HasPrefix(rest, ":") {
		encoded := strings.TrimSpace(rest[1:])
		if encoded == "" {
			return ErrMissingDN
		}
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidBase64, err)
		}
		record.DN = string(decoded)
	} else {
		record.DN = strings.TrimSpace(rest)
	}

	if record.DN == "" {
		return ErrMissingDN
	}
	return nil
}

// processLine processes an attribute line and adds it to the record.
func processLine(record *Record, line string) error {
	colonIdx := strings.Index(line, ":")
	if colonIdx <= 0 {
		return fmt.Errorf("%w: missing attribute type in line: %s", ErrInvalidLDIF, line)
	}

	attr := strings.TrimSpace(line[:colonIdx])
	rest := line[colonIdx+1:]

	var value []byte
	if len(rest) > 0 && rest[0] == ':' {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(rest[1:]))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidBase64, err)
		}
		value = decoded
	} else {
		value = []byte(strings.TrimSpace(rest))
	}

	if strings.EqualFold(attr, "changetype") {
		if !strings.EqualFold(string(value), "add") {
			return fmt.Errorf("%w: %s", ErrUnsupportedChange, value)
		}
		return nil
	}

	record.AddValue(attr, value)
	return nil
}
