package advice

// Config holds advice generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// SummaryMaxTokens bounds the short summary, which is limited to
	// about 150 words.
	SummaryMaxTokens int
}

// DefaultConfig returns sensible defaults for advice generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:        1500,
		Temperature:      0.7,
		SummaryMaxTokens: 400,
	}
}

func (c Config) maxTokens(k Kind) int {
	if k == Summary && c.SummaryMaxTokens > 0 {
		return c.SummaryMaxTokens
	}
	return c.MaxTokens
}
