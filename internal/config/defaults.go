package config

// DefaultConfig returns the built-in configuration used when no config file
// or environment overrides are present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 16009,
		},
		LLM: LLMConfig{
			Model:   "gpt-4o-mini",
			BaseURL: "https://api.openai.com/v1",
			APIKey:  "${OPENAI_API_KEY}",
		},
		Analysis: AnalysisConfig{
			MaxIterations: 20,
			MaxKeywords:   10,
		},
	}
}
