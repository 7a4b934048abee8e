package engine

// ============================================================================
// ENGINE OPTIONS — Functional options for Analyze() and FilterByThreshold()
// ============================================================================

// AnalyzeOption configures Analyze.
type AnalyzeOption func(*analyzeConfig)

type analyzeConfig struct {
	Vocabulary []string // categories always reported, zero if unobserved
}

// WithCategoryVocabulary makes every listed category appear in the
// distribution, with a zero count when no record carries it.
// Without it the distribution holds observed values only.
func WithCategoryVocabulary(vocab ...string) AnalyzeOption {
	return func(c *analyzeConfig) {
		c.Vocabulary = append([]string(nil), vocab...)
	}
}

func applyAnalyzeOptions(opts []AnalyzeOption) *analyzeConfig {
	cfg := &analyzeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// FilterOption configures FilterByThreshold.
type FilterOption func(*filterConfig)

type filterConfig struct {
	Comparator Comparator
}

// WithComparator replaces the default inclusive >= comparison.
func WithComparator(c Comparator) FilterOption {
	return func(cfg *filterConfig) {
		cfg.Comparator = c
	}
}

func applyFilterOptions(opts []FilterOption) *filterConfig {
	cfg := &filterConfig{
		Comparator: GreaterOrEqual,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
