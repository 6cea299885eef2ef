// Package rsakey converts RSA private keys to and from PKCS#1.
//
// Keys are exchanged as Parameters, a set of unsigned big-endian fields
// with fixed widths: D is as wide as the modulus, and P, Q, DP, DQ and
// InverseQ are half as wide, rounded up. Export goes through a DER
// ber.Writer; import reads the DER with cryptobyte.
//
// Usage:
//
//	params, err := rsakey.Generate(2048, nil)
//	if err != nil {
//	    return err
//	}
//	defer params.Clear()
//
//	der, err := params.MarshalPKCS1()
//	pemBytes := rsakey.EncodePEM(der)
//
//	parsed, err := rsakey.ParsePKCS1(der)
//	key, err := parsed.PrivateKey()
//
// Writers used for export are disposed before MarshalPKCS1 returns, so the
// pooled buffer that held the key is zeroed. Call Clear on Parameters when
// done with them.
package rsakey
