package config

// DefaultPrecision mirrors PHP's stock precision ini value.
const DefaultPrecision = 14

// Default returns a Config that reproduces the original snippets' literals.
func Default() *Config {
	return &Config{
		PHP: PHPConfig{
			INI: map[string]string{
				"precision": "14",
			},
		},
		Scenarios: ScenariosConfig{
			Uppercase: UppercaseConfig{
				Input:    []string{"a", "b", "c", "d", "e"},
				CaseMode: "ascii",
			},
			Construct: ConstructConfig{
				Count: 7,
				Ratio: 10.888,
			},
		},
		Logging: LogConfig{
			Level:  "warn",
			Format: "text",
			Output: "stderr",
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}
