// Package ldap encodes LDAPv3 protocol messages (RFC 4511) with the ber
// writer.
//
// Every request and response type implements Operation. A Message wraps
// one operation with its message ID and optional controls:
//
//	req := ldap.NewSimpleBindRequest("cn=admin,dc=example,dc=com", []byte("secret"))
//	encoded, err := ldap.NewMessage(1, req).Encode(ber.BER)
//
// Operations validate themselves before writing, so a rejected message
// leaves the writer as it was. Distinguished names are checked with the
// RFC 4514 parser of github.com/go-ldap/ldap/v3 and search filters are
// parsed and encoded by the filter package.
//
// The package only writes. Reading LDAP messages is left to decoders such
// as github.com/go-asn1-ber/asn1-ber.
package ldap
