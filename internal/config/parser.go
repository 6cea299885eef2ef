package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parser errors.
var (
	ErrInvalidYAML   = errors.New("config: invalid YAML format")
	ErrInvalidIndent = errors.New("config: invalid indentation")
	ErrUnknownKey    = errors.New("config: unknown key")
	ErrInvalidNumber = errors.New("config: invalid number format")
	ErrInvalidBool   = errors.New("config: invalid boolean")
	ErrFileNotFound  = errors.New("config: configuration file not found")
)

// LoadConfig loads configuration from a file path.
// It reads the file, substitutes environment variables, parses YAML,
// and applies defaults for missing values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrFileNotFound, path)
		}
		return nil, errors.Wrapf(err, "config: read %s", path)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cfg, nil
}

// ParseConfig parses configuration from YAML data.
// It substitutes environment variables and applies defaults for missing values.
func ParseConfig(data []byte) (*Config, error) {
	data = substituteEnvVars(data)

	config := DefaultConfig()
	if err := parseYAML(data, config); err != nil {
		return nil, err
	}
	return config, nil
}

var envPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// substituteEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment variable values.
func substituteEnvVars(data []byte) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		content := string(match[2 : len(match)-1])

		if idx := strings.Index(content, ":-"); idx != -1 {
			if val := os.Getenv(content[:idx]); val != "" {
				return []byte(val)
			}
			return []byte(content[idx+2:])
		}
		return []byte(os.Getenv(content))
	})
}

// yamlLine is one "key: value" line of the accepted YAML subset.
type yamlLine struct {
	num    int
	indent int
	key    string
	value  string
}

// section is a top-level key and the lines indented under it.
type section struct {
	line     yamlLine
	children []yamlLine
}

// parseYAML parses the two-level mapping subset used by the config file:
// top-level section keys, each followed by indented "key: value" lines.
func parseYAML(data []byte, config *Config) error {
	sections, err := buildSections(strings.Split(string(data), "\n"))
	if err != nil {
		return err
	}
	for _, s := range sections {
		if err := applySection(s, config); err != nil {
			return err
		}
	}
	return nil
}

func buildSections(lines []string) ([]*section, error) {
	var sections []*section
	childIndent := -1

	for i, raw := range lines {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		line, err := parseLine(trimmed)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", i+1)
		}
		line.num = i + 1
		line.indent = countIndent(raw)

		if line.indent == 0 {
			sections = append(sections, &section{line: line})
			childIndent = -1
			continue
		}
		if len(sections) == 0 {
			return nil, errors.Wrapf(ErrInvalidIndent, "line %d", line.num)
		}
		if childIndent == -1 {
			childIndent = line.indent
		}
		if line.indent != childIndent {
			return nil, errors.Wrapf(ErrInvalidIndent, "line %d", line.num)
		}
		current := sections[len(sections)-1]
		current.children = append(current.children, line)
	}
	return sections, nil
}

// countIndent counts the number of leading spaces.
func countIndent(line string) int {
	count := 0
	for _, ch := range line {
		if ch == ' ' {
			count++
		} else if ch == '\t' {
			count += 2 // Treat tab as 2 spaces
		} else {
			break
		}
	}
	return count
}

// parseLine parses a single "key: value" line. Trailing comments are
// stripped from unquoted values.
func parseLine(line string) (yamlLine, error) {
	colonIdx := strings.Index(line, ":")
	if colonIdx <= 0 {
		return yamlLine{}, ErrInvalidYAML
	}

	key := strings.TrimSpace(line[:colonIdx])
	value := strings.TrimSpace(line[colonIdx+1:])
	if len(value) > 0 && value[0] != '"' && value[0] != '\'' {
		if idx := strings.Index(value, " #"); idx != -1 {
			value = strings.TrimSpace(value[:idx])
		}
	}
	return yamlLine{key: key, value: unquote(value)}, nil
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func applySection(s *section, config *Config) error {
	var apply func(yamlLine) error
	switch s.line.key {
	case "encoding":
		apply = func(l yamlLine) error { return applyEncoding(l, &config.Encoding) }
	case "key":
		apply = func(l yamlLine) error { return applyKey(l, &config.Key) }
	case "ldap":
		apply = func(l yamlLine) error { return applyLDAP(l, &config.LDAP) }
	case "logging":
		apply = func(l yamlLine) error { return applyLog(l, &config.Logging) }
	default:
		return errors.Wrapf(ErrUnknownKey, "line %d: %q", s.line.num, s.line.key)
	}
	if s.line.value != "" {
		return errors.Wrapf(ErrInvalidYAML, "line %d: section %q has a value", s.line.num, s.line.key)
	}

	for _, child := range s.children {
		if err := apply(child); err != nil {
			return errors.Wrapf(err, "line %d: %s.%s", child.num, s.line.key, child.key)
		}
	}
	return nil
}

func applyEncoding(l yamlLine, config *EncodingConfig) error {
	switch l.key {
	case "rules":
		setString(&config.Rules, l.value)
	case "hex":
		return setBool(&config.Hex, l.value)
	default:
		return ErrUnknownKey
	}
	return nil
}

func applyKey(l yamlLine, config *KeyConfig) error {
	switch l.key {
	case "bits":
		return setInt(&config.Bits, l.value)
	case "format":
		setString(&config.Format, l.value)
	case "output":
		setString(&config.Output, l.value)
	default:
		return ErrUnknownKey
	}
	return nil
}

func applyLDAP(l yamlLine, config *LDAPConfig) error {
	switch l.key {
	case "baseDN":
		setString(&config.BaseDN, l.value)
	case "bindDN":
		setString(&config.BindDN, l.value)
	case "messageID":
		return setInt(&config.MessageID, l.value)
	case "sizeLimit":
		return setInt(&config.SizeLimit, l.value)
	case "timeLimit":
		return setInt(&config.TimeLimit, l.value)
	case "pageSize":
		return setInt(&config.PageSize, l.value)
	default:
		return ErrUnknownKey
	}
	return nil
}

func applyLog(l yamlLine, config *LogConfig) error {
	switch l.key {
	case "level":
		setString(&config.Level, l.value)
	case "format":
		setString(&config.Format, l.value)
	case "output":
		setString(&config.Output, l.value)
	default:
		return ErrUnknownKey
	}
	return nil
}

// setString keeps the default when value is empty.
func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func setInt(dst *int, value string) error {
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return errors.Wrapf(ErrInvalidNumber, "%q", value)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, value string) error {
	if value == "" {
		return nil
	}
	b, ok := parseBool(value)
	if !ok {
		return errors.Wrapf(ErrInvalidBool, "%q", value)
	}
	*dst = b
	return nil
}

// parseBool accepts the YAML 1.1 spellings the config files use.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0":
		return false, true
	default:
		return false, false
	}
}
