// Package ber implements ASN.1 encoding with the Basic, Canonical and
// Distinguished Encoding Rules (BER, CER, DER) as specified in ITU-T X.690.
//
// BER is the wire format used by LDAP for all protocol messages; DER is the
// format of X.509 certificates and PKCS key structures. This package
// provides a Writer that serializes a tree of tagged values into a single
// contiguous buffer.
//
// # Tag Classes
//
// BER uses four tag classes to identify data types:
//
//   - Universal (0x00): Standard ASN.1 types like INTEGER, BOOLEAN, SEQUENCE
//   - Application (0x40): Protocol-specific types (LDAP operations)
//   - Context-specific (0x80): Context-dependent types within a structure
//   - Private (0xC0): Organization-specific types
//
// # Encoding
//
// Create a Writer for one of the rule sets and write values in order:
//
//	w, err := ber.NewWriter(ber.DER)
//	if err != nil {
//	    // handle error
//	}
//	defer w.Dispose()
//
//	w.WriteInteger(42)
//	w.WriteOctetString([]byte("hello"))
//	data, err := w.Encode()
//
// Constructed values (SEQUENCE, SET OF, explicit tags) are opened with a
// Push call and closed with the matching Pop call. Their length does not
// have to be known up front:
//
//	w.PushSequence()
//	w.WriteInteger(1)
//	w.PushExplicit(ber.ContextTag(0))
//	w.WriteBoolean(true)
//	w.PopExplicit(ber.ContextTag(0))
//	w.PopSequence()
//
// Each Push reserves a single length octet. When the value is closed under
// BER or DER the real length is written there; if it needs the long form,
// the content is moved forward to make room. Under CER the reserved octet
// stays the indefinite form (0x80) and an end-of-contents marker (0x00 0x00)
// is appended.
//
// # Sensitive Data
//
// Buffers come from a Pool (SharedPool by default). The written bytes are
// zeroed whenever a buffer is grown, on Reset and on Dispose, so key
// material does not linger in pooled memory. Always Dispose a Writer that
// held secrets.
//
// # Errors
//
// Contract violations (mismatched Pop, Encode with open values, use after
// Dispose) are returned as *UsageError and never succeed on retry. A
// destination too small for TryEncode is reported with ok == false.
//
// # References
//
//   - ITU-T X.690: ASN.1 encoding rules
//   - RFC 4511: LDAP Protocol (uses BER encoding)
//   - RFC 8017: PKCS #1 RSA private key syntax (uses DER encoding)
package ber
