package config

import (
	"strconv"

	"github.com/KilimcininKorOglu/asnw/internal/logging"
)

// Config holds the complete CLI configuration.
type Config struct {
	Encoding EncodingConfig `yaml:"encoding" json:"encoding"`
	Key      KeyConfig      `yaml:"key" json:"key"`
	LDAP     LDAPConfig     `yaml:"ldap" json:"ldap"`
	Logging  LogConfig      `yaml:"logging" json:"logging"`
}

// EncodingConfig selects how the encode and ldap commands write output.
type EncodingConfig struct {
	// Rules is "ber", "cer" or "der".
	Rules string `yaml:"rules" json:"rules"`
	// Hex prints hex instead of raw bytes.
	Hex bool `yaml:"hex" json:"hex"`
}

// KeyConfig holds the rsakey command defaults.
type KeyConfig struct {
	Bits   int    `yaml:"bits" json:"bits"`
	Format string `yaml:"format" json:"format"`
	// Output is a file path; empty means stdout.
	Output string `yaml:"output" json:"output"`
}

// LDAPConfig holds defaults for the ldap command.
type LDAPConfig struct {
	BaseDN    string `yaml:"baseDN" json:"baseDN"`
	BindDN    string `yaml:"bindDN" json:"bindDN"`
	MessageID int    `yaml:"messageID" json:"messageID"`
	SizeLimit int    `yaml:"sizeLimit" json:"sizeLimit"`
	TimeLimit int    `yaml:"timeLimit" json:"timeLimit"`
	// PageSize adds a paged results control to searches when positive.
	PageSize int `yaml:"pageSize" json:"pageSize"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	Output string `yaml:"output" json:"output"`
}

// LoggerConfig converts the section for logging.New.
func (c LogConfig) LoggerConfig() logging.Config {
	return logging.Config{Level: c.Level, Format: c.Format, Output: c.Output}
}

// String renders config in the file format ParseConfig reads.
func (c *Config) String() string {
	q := strconv.Quote
	return "encoding:\n" +
		"  rules: " + c.Encoding.Rules + "\n" +
		"  hex: " + strconv.FormatBool(c.Encoding.Hex) + "\n" +
		"key:\n" +
		"  bits: " + strconv.Itoa(c.Key.Bits) + "\n" +
		"  format: " + c.Key.Format + "\n" +
		"  output: " + q(c.Key.Output) + "\n" +
		"ldap:\n" +
		"  baseDN: " + q(c.LDAP.BaseDN) + "\n" +
		"  bindDN: " + q(c.LDAP.BindDN) + "\n" +
		"  messageID: " + strconv.Itoa(c.LDAP.MessageID) + "\n" +
		"  sizeLimit: " + strconv.Itoa(c.LDAP.SizeLimit) + "\n" +
		"  timeLimit: " + strconv.Itoa(c.LDAP.TimeLimit) + "\n" +
		"  pageSize: " + strconv.Itoa(c.LDAP.PageSize) + "\n" +
		"logging:\n" +
		"  level: " + c.Logging.Level + "\n" +
		"  format: " + c.Logging.Format + "\n" +
		"  output: " + c.Logging.Output + "\n"
}
