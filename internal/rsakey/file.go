package rsakey

import (
	"bytes"
	"encoding/pem"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// PEMType is the block type of a PKCS#1 private key.
const PEMType = "RSA PRIVATE KEY"

// Format selects how a key is stored.
type Format int

const (
	// FormatPEM stores the DER bytes inside an "RSA PRIVATE KEY" PEM block.
	FormatPEM Format = iota
	// FormatDER stores the raw DER bytes.
	FormatDER
)

// String returns the lowercase format name.
func (f Format) String() string {
	if f == FormatDER {
		return "der"
	}
	return "pem"
}

// ParseFormat parses "pem" or "der".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pem":
		return FormatPEM, nil
	case "der":
		return FormatDER, nil
	default:
		return FormatPEM, errors.Errorf("rsakey: unknown format %q", s)
	}
}

// ErrNoPEMBlock is returned when PEM input holds no private key block.
var ErrNoPEMBlock = errors.New("rsakey: no RSA PRIVATE KEY block found")

// EncodePEM wraps DER bytes in an "RSA PRIVATE KEY" block.
func EncodePEM(der []byte) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: PEMType, Bytes: der})
}

// DecodePEM returns the DER bytes of the first "RSA PRIVATE KEY" block.
func DecodePEM(data []byte) ([]byte, error) {
	for len(data) > 0 {
		block, rest := pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type == PEMType {
			return block.Bytes, nil
		}
		data = rest
	}
	return nil, ErrNoPEMBlock
}

// Encode serializes the key in the given format.
func (p *Parameters) Encode(format Format) ([]byte, error) {
	der, err := p.MarshalPKCS1()
	if err != nil {
		return nil, err
	}
	if format == FormatDER {
		return der, nil
	}
	out := EncodePEM(der)
	clear(der)
	return out, nil
}

// Decode parses a key in PEM or DER form. PEM is detected by its header.
func Decode(data []byte) (*Parameters, error) {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("-----BEGIN")) {
		der, err := DecodePEM(data)
		if err != nil {
			return nil, err
		}
		return ParsePKCS1(der)
	}
	return ParsePKCS1(data)
}

// SaveToFile writes the key to path with owner-only permissions.
func SaveToFile(p *Parameters, path string, format Format) error {
	data, err := p.Encode(format)
	if err != nil {
		return err
	}
	defer clear(data)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrapf(err, "rsakey: write %s", path)
	}
	return nil
}

// LoadFromFile reads a PEM or DER key from path.
func LoadFromFile(path string) (*Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "rsakey: read %s", path)
	}
	defer clear(data)

	p, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "rsakey: load %s", path)
	}
	return p, nil
}
