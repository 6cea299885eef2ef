package config

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Encoding: EncodingConfig{
			Rules: "der",
			Hex:   false,
		},
		Key: KeyConfig{
			Bits:   2048,
			Format: "pem",
			Output: "",
		},
		LDAP: LDAPConfig{
			BaseDN:    "",
			BindDN:    "",
			MessageID: 1,
			SizeLimit: 0,
			TimeLimit: 0,
			PageSize:  0,
		},
		Logging: LogConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
