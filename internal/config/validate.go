package config

import (
	"fmt"

	goldap "github.com/go-ldap/ldap/v3"

	"github.com/KilimcininKorOglu/asnw/internal/ber"
	"github.com/KilimcininKorOglu/asnw/internal/ldap"
	"github.com/KilimcininKorOglu/asnw/internal/logging"
	"github.com/KilimcininKorOglu/asnw/internal/rsakey"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig validates the configuration and returns a list of validation errors.
// An empty slice indicates the configuration is valid.
func ValidateConfig(config *Config) []error {
	var errs []error
	errs = append(errs, validateEncodingConfig(&config.Encoding)...)
	errs = append(errs, validateKeyConfig(&config.Key)...)
	errs = append(errs, validateLDAPConfig(&config.LDAP)...)
	errs = append(errs, validateLogConfig(&config.Logging)...)
	return errs
}

func validateEncodingConfig(config *EncodingConfig) []error {
	if _, err := ber.ParseRuleSet(config.Rules); err != nil {
		return []error{ValidationError{
			Field:   "encoding.rules",
			Message: fmt.Sprintf("must be ber, cer or der, got %q", config.Rules),
		}}
	}
	return nil
}

func validateKeyConfig(config *KeyConfig) []error {
	var errs []error

	if config.Bits < rsakey.MinBits || config.Bits > rsakey.MaxBits {
		errs = append(errs, ValidationError{
			Field:   "key.bits",
			Message: fmt.Sprintf("must be between %d and %d, got %d", rsakey.MinBits, rsakey.MaxBits, config.Bits),
		})
	}
	if _, err := rsakey.ParseFormat(config.Format); err != nil {
		errs = append(errs, ValidationError{
			Field:   "key.format",
			Message: fmt.Sprintf("must be pem or der, got %q", config.Format),
		})
	}
	return errs
}

func validateLDAPConfig(config *LDAPConfig) []error {
	var errs []error

	for _, dn := range []struct {
		field string
		value string
	}{
		{"ldap.baseDN", config.BaseDN},
		{"ldap.bindDN", config.BindDN},
	} {
		if dn.value == "" {
			continue
		}
		if _, err := goldap.ParseDN(dn.value); err != nil {
			errs = append(errs, ValidationError{Field: dn.field, Message: err.Error()})
		}
	}

	if config.MessageID < ldap.MinMessageID || config.MessageID > ldap.MaxMessageID {
		errs = append(errs, ValidationError{
			Field:   "ldap.messageID",
			Message: fmt.Sprintf("must be between %d and %d", ldap.MinMessageID, ldap.MaxMessageID),
		})
	}

	for _, limit := range []struct {
		field string
		value int
	}{
		{"ldap.sizeLimit", config.SizeLimit},
		{"ldap.timeLimit", config.TimeLimit},
		{"ldap.pageSize", config.PageSize},
	} {
		if limit.value < 0 || limit.value > ldap.MaxMessageID {
			errs = append(errs, ValidationError{
				Field:   limit.field,
				Message: "must be between 0 and maxInt",
			})
		}
	}
	return errs
}

func validateLogConfig(config *LogConfig) []error {
	var errs []error

	if _, ok := logging.ParseLevel(config.Level); !ok {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("must be debug, info, warn or error, got %q", config.Level),
		})
	}
	if _, ok := logging.ParseFormat(config.Format); !ok {
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("must be text or json, got %q", config.Format),
		})
	}
	return errs
}
