// Package filter parses and encodes LDAP search filters.
//
// # Parsing
//
// Parse accepts the string form of RFC 4515:
//
//	f, err := filter.Parse("(&(objectClass=person)(cn=Bab*))")
//
// Assertion values may carry \XX escapes, so "(cn=a\2ab)" asserts the
// literal value "a*b". Empty AND and OR lists are accepted; they are the
// absolute true and false filters of RFC 4526.
//
// # Encoding
//
// EncodeTo writes a filter onto a ber.Writer as the Filter CHOICE of
// RFC 4511. The context tag of every alternative equals its FilterType
// value:
//
//	w, _ := ber.NewWriter(ber.BER)
//	defer w.Dispose()
//	if err := f.EncodeTo(w); err != nil {
//		return err
//	}
//	encoded, err := w.Encode()
//
// AND and OR are implicitly tagged SET OF, NOT is an explicit wrapper
// and present is a primitive OCTET STRING. The remaining alternatives
// are implicitly tagged SEQUENCEs.
package filter
