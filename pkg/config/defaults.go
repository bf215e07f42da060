package config

const (
	defaultBaseURL = "http://localhost:8001"
	defaultBank    = "aletheia"

	defaultAutoRetain = true

	// Auto-recall injects text ahead of the model's input, which changes
	// model behavior unpredictably. Opt-in.
	defaultAutoRecall = false

	defaultRetentionMaxPerTurn = 5
	defaultRetentionMinLength  = 10

	defaultRecallMaxTokens   = 1500
	defaultRecallMaxInjected = 5

	defaultAPIListen = ":8090"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	autoRetain := defaultAutoRetain
	autoRecall := defaultAutoRecall

	return &Config{
		Version: CurrentV,
		Service: ServiceConfig{
			BaseURL: defaultBaseURL,
			Bank:    defaultBank,
		},
		Hooks: HooksConfig{
			AutoRetain: &autoRetain,
			AutoRecall: &autoRecall,
		},
		Retention: RetentionConfig{
			MaxPerTurn: defaultRetentionMaxPerTurn,
			MinLength:  defaultRetentionMinLength,
		},
		Recall: RecallConfig{
			MaxTokens:   defaultRecallMaxTokens,
			MaxInjected: defaultRecallMaxInjected,
		},
		API: APIConfig{
			Listen: defaultAPIListen,
		},
	}
}
