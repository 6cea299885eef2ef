package config

import (
	"os"

	"github.com/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ASNW_"

// envBinding maps one environment variable onto a config field.
type envBinding struct {
	name  string
	apply func(c *Config, value string) error
}

var envBindings = []envBinding{
	{"ENCODING_RULES", func(c *Config, v string) error { c.Encoding.Rules = v; return nil }},
	{"ENCODING_HEX", func(c *Config, v string) error { return setBool(&c.Encoding.Hex, v) }},
	{"KEY_BITS", func(c *Config, v string) error { return setInt(&c.Key.Bits, v) }},
	{"KEY_FORMAT", func(c *Config, v string) error { c.Key.Format = v; return nil }},
	{"KEY_OUTPUT", func(c *Config, v string) error { c.Key.Output = v; return nil }},
	{"LDAP_BASE_DN", func(c *Config, v string) error { c.LDAP.BaseDN = v; return nil }},
	{"LDAP_BIND_DN", func(c *Config, v string) error { c.LDAP.BindDN = v; return nil }},
	{"LDAP_PAGE_SIZE", func(c *Config, v string) error { return setInt(&c.LDAP.PageSize, v) }},
	{"LOG_LEVEL", func(c *Config, v string) error { c.Logging.Level = v; return nil }},
	{"LOG_FORMAT", func(c *Config, v string) error { c.Logging.Format = v; return nil }},
	{"LOG_OUTPUT", func(c *Config, v string) error { c.Logging.Output = v; return nil }},
}

// ApplyEnv overrides config fields from ASNW_* environment variables.
// Unset and empty variables leave the field alone.
func ApplyEnv(config *Config) error {
	return applyEnv(config, os.LookupEnv)
}

func applyEnv(config *Config, lookup func(string) (string, bool)) error {
	for _, b := range envBindings {
		value, ok := lookup(EnvPrefix + b.name)
		if !ok || value == "" {
			continue
		}
		if err := b.apply(config, value); err != nil {
			return errors.Wrap(err, EnvPrefix+b.name)
		}
	}
	return nil
}
