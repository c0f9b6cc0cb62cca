package tutor

// GenerationConfig holds per-request-type generation settings.
type GenerationConfig struct {
	MaxTokens   int
	Temperature float64
}

// Config holds tutor generation settings.
type Config struct {
	Explain  GenerationConfig
	Quiz     GenerationConfig
	Evaluate GenerationConfig
}

// DefaultConfig returns sensible defaults. Quizzes carry eight questions
// with four options each and need the most room.
func DefaultConfig() Config {
	return Config{
		Explain:  GenerationConfig{MaxTokens: 2048, Temperature: 0.7},
		Quiz:     GenerationConfig{MaxTokens: 4096, Temperature: 0.7},
		Evaluate: GenerationConfig{MaxTokens: 512, Temperature: 0.3},
	}
}
