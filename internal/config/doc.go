// Package config loads the asnw command configuration.
//
// # Configuration File
//
// The file is a small YAML subset: top-level sections holding indented
// "key: value" lines. Values may reference the environment as ${VAR} or
// ${VAR:-default}:
//
//	encoding:
//	  rules: der
//	  hex: true
//	key:
//	  bits: 3072
//	  format: pem
//	  output: ${HOME}/keys/signing.pem
//	ldap:
//	  baseDN: dc=example,dc=com
//	  pageSize: 100
//	logging:
//	  level: ${ASNW_LEVEL:-info}
//	  format: json
//
// Missing keys keep their DefaultConfig values. Unknown sections and keys
// are rejected so typos do not pass silently.
//
// # Precedence
//
// Defaults are overridden by the file, the file by ASNW_* environment
// variables (ApplyEnv), and those by command-line flags. ValidateConfig
// reports every invalid field at once as ValidationError values.
package config
