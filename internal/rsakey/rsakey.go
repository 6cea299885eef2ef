package rsakey

import (
	"crypto/rand"
	"crypto/rsa"
	"io"
	"math/big"

	"github.com/pkg/errors"
	"golang.org/x/crypto/cryptobyte"
	casn1 "golang.org/x/crypto/cryptobyte/asn1"

	"github.com/KilimcininKorOglu/asnw/internal/ber"
)

// Key size limits accepted by Generate.
const (
	MinBits = 1024
	MaxBits = 16384
)

// pkcs1Version is the only RSAPrivateKey version supported (two primes).
const pkcs1Version = 0

// Errors returned by key operations.
var (
	ErrMalformedKey       = errors.New("rsakey: malformed PKCS#1 private key")
	ErrUnsupportedVersion = errors.New("rsakey: unsupported PKCS#1 version")
	ErrMultiPrime         = errors.New("rsakey: multi-prime keys are not supported")
	ErrInvalidBits        = errors.New("rsakey: key size out of range")
	ErrMissingParameter   = errors.New("rsakey: missing key parameter")
)

// Parameters holds the components of an RSA private key as unsigned
// big-endian byte strings.
//
// Modulus and Exponent are minimal. D has the width of the modulus and the
// CRT fields have half of it, rounded up, left-padded with zeros.
type Parameters struct {
	Modulus  []byte
	Exponent []byte
	D        []byte
	P        []byte
	Q        []byte
	DP       []byte
	DQ       []byte
	InverseQ []byte
}

// Generate creates a new random key of the given size.
func Generate(bits int, random io.Reader) (*Parameters, error) {
	if bits < MinBits || bits > MaxBits {
		return nil, errors.Wrapf(ErrInvalidBits, "%d bits", bits)
	}
	if random == nil {
		random = rand.Reader
	}
	key, err := rsa.GenerateKey(random, bits)
	if err != nil {
		return nil, errors.Wrap(err, "rsakey: generate")
	}
	return FromPrivateKey(key)
}

// FromPrivateKey extracts the parameters of a two-prime key.
func FromPrivateKey(key *rsa.PrivateKey) (*Parameters, error) {
	if key == nil || key.N == nil || key.D == nil {
		return nil, ErrMissingParameter
	}
	if len(key.Primes) != 2 {
		return nil, ErrMultiPrime
	}
	if key.Precomputed.Dp == nil {
		key.Precompute()
	}

	modulus := key.N.Bytes()
	half := halfWidth(len(modulus))

	p := &Parameters{
		Modulus:  modulus,
		Exponent: big.NewInt(int64(key.E)).Bytes(),
	}
	fields := []struct {
		dst   *[]byte
		value *big.Int
		width int
	}{
		{&p.D, key.D, len(modulus)},
		{&p.P, key.Primes[0], half},
		{&p.Q, key.Primes[1], half},
		{&p.DP, key.Precomputed.Dp, half},
		{&p.DQ, key.Precomputed.Dq, half},
		{&p.InverseQ, key.Precomputed.Qinv, half},
	}
	for _, f := range fields {
		raw := f.value.Bytes()
		fixed, err := ber.NormalizeInteger(raw, f.width)
		clear(raw)
		if err != nil {
			p.Clear()
			return nil, errors.Wrap(err, "rsakey: normalize parameter")
		}
		*f.dst = fixed
	}
	return p, nil
}

// PrivateKey rebuilds an *rsa.PrivateKey and validates it.
func (p *Parameters) PrivateKey() (*rsa.PrivateKey, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	e := new(big.Int).SetBytes(p.Exponent)
	if !e.IsInt64() || e.Int64() > int64(^uint32(0)>>1) {
		return nil, errors.Wrap(ErrMalformedKey, "public exponent too large")
	}

	key := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{
			N: new(big.Int).SetBytes(p.Modulus),
			E: int(e.Int64()),
		},
		D: new(big.Int).SetBytes(p.D),
		Primes: []*big.Int{
			new(big.Int).SetBytes(p.P),
			new(big.Int).SetBytes(p.Q),
		},
	}
	if err := key.Validate(); err != nil {
		return nil, errors.Wrap(err, "rsakey: validate")
	}
	key.Precompute()
	return key, nil
}

// MarshalPKCS1 encodes the key as a DER RSAPrivateKey (RFC 8017 A.1.2).
func (p *Parameters) MarshalPKCS1() ([]byte, error) {
	if err := p.check(); err != nil {
		return nil, err
	}

	w, err := ber.NewWriter(ber.DER)
	if err != nil {
		return nil, err
	}
	defer w.Dispose()

	if err := w.PushSequence(); err != nil {
		return nil, err
	}
	if err := w.WriteInteger(pkcs1Version); err != nil {
		return nil, err
	}
	for _, field := range p.fields() {
		if err := w.WriteKeyParameterInteger(field); err != nil {
			return nil, errors.Wrap(err, "rsakey: write parameter")
		}
	}
	if err := w.PopSequence(); err != nil {
		return nil, err
	}
	return w.Encode()
}

// ParsePKCS1 decodes a DER RSAPrivateKey. The returned parameters use the
// fixed widths described on Parameters.
func ParsePKCS1(der []byte) (*Parameters, error) {
	input := cryptobyte.String(der)
	var seq cryptobyte.String
	if !input.ReadASN1(&seq, casn1.SEQUENCE) || !input.Empty() {
		return nil, ErrMalformedKey
	}

	var version int
	if !seq.ReadASN1Integer(&version) {
		return nil, errors.Wrap(ErrMalformedKey, "version")
	}
	switch version {
	case pkcs1Version:
	case 1:
		return nil, ErrMultiPrime
	default:
		return nil, errors.Wrapf(ErrUnsupportedVersion, "version %d", version)
	}

	raw := make([][]byte, 8)
	for i := range raw {
		if !seq.ReadASN1Integer(&raw[i]) {
			return nil, errors.Wrapf(ErrMalformedKey, "parameter %d", i+1)
		}
	}
	if !seq.Empty() {
		return nil, errors.Wrap(ErrMalformedKey, "trailing data")
	}

	modulus := append([]byte(nil), raw[0]...)
	half := halfWidth(len(modulus))
	widths := []int{len(modulus), half, half, half, half, half}

	p := &Parameters{
		Modulus:  modulus,
		Exponent: append([]byte(nil), raw[1]...),
	}
	dsts := []*[]byte{&p.D, &p.P, &p.Q, &p.DP, &p.DQ, &p.InverseQ}
	for i, dst := range dsts {
		fixed, err := ber.NormalizeInteger(raw[i+2], widths[i])
		if err != nil {
			p.Clear()
			return nil, errors.Wrapf(ErrMalformedKey, "parameter %d: %v", i+3, err)
		}
		*dst = fixed
	}
	return p, nil
}

// Clear zeroes every field.
func (p *Parameters) Clear() {
	for _, f := range p.fields() {
		clear(f)
	}
	*p = Parameters{}
}

// Bits returns the modulus size in bits.
func (p *Parameters) Bits() int {
	return new(big.Int).SetBytes(p.Modulus).BitLen()
}

func (p *Parameters) fields() [][]byte {
	return [][]byte{p.Modulus, p.Exponent, p.D, p.P, p.Q, p.DP, p.DQ, p.InverseQ}
}

func (p *Parameters) check() error {
	names := []string{"modulus", "exponent", "d", "p", "q", "dp", "dq", "inverseQ"}
	for i, f := range p.fields() {
		if len(f) == 0 {
			return errors.Wrap(ErrMissingParameter, names[i])
		}
	}
	return nil
}

func halfWidth(n int) int {
	return (n + 1) / 2
}
