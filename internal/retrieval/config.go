package retrieval

import "github.com/andeslegal/consulta/internal/classify"

// CategoryConfig tunes retrieval for one category.
type CategoryConfig struct {
	// ResultCount is the k passed to the vector index.
	ResultCount int `yaml:"result_count"`
	// Threshold is the minimum blended relevance a passage must reach.
	Threshold float64 `yaml:"threshold"`
	// BoostKeywords raise passage relevance and enrich the query text.
	// Order matters: the first unmatched ones are injected into the query.
	BoostKeywords []string `yaml:"boost_keywords"`
}

// Config holds all retrieval tuning. The boost constants were chosen
// empirically; treat them as calibration candidates, not ground truth.
type Config struct {
	Categories map[string]CategoryConfig `yaml:"categories"`
	// SourceBoosts maps a source-type tag (matched as a substring of the
	// passage source identifier) to a multiplier >= 1.0.
	SourceBoosts map[string]float64 `yaml:"source_boosts"`
	// KeywordBoostStep is the per-matching-keyword relevance increment.
	KeywordBoostStep float64 `yaml:"keyword_boost_step"`
	// MaxPassages caps how many passages survive into the context block.
	MaxPassages int `yaml:"max_passages"`
	// MaxPassageChars bounds each passage's text in the context block.
	MaxPassageChars int `yaml:"max_passage_chars"`
	// InjectKeywords is how many unmatched boost keywords the preprocessor
	// appends to the query text.
	InjectKeywords int `yaml:"inject_keywords"`
}

// DefaultConfig returns the built-in retrieval tuning.
func DefaultConfig() *Config {
	return &Config{
		Categories: map[string]CategoryConfig{
			classify.CategoryFormation.String(): {
				ResultCount:   7,
				Threshold:     0.4,
				BoostKeywords: []string{"sas", "empresa", "constituir", "cámara", "comercio"},
			},
			classify.CategoryLabor.String(): {
				ResultCount:   6,
				Threshold:     0.45,
				BoostKeywords: []string{"contrato", "trabajo", "empleado", "prestaciones", "liquidación"},
			},
			classify.CategoryTax.String(): {
				ResultCount:   8,
				Threshold:     0.5,
				BoostKeywords: []string{"impuesto", "dian", "tributario", "renta", "iva"},
			},
			classify.CategoryContractual.String(): {
				ResultCount:   5,
				Threshold:     0.4,
				BoostKeywords: []string{"contrato", "cláusula", "obligación", "comercial"},
			},
			classify.CategoryGeneral.String(): {
				ResultCount:   5,
				Threshold:     0.5,
				BoostKeywords: []string{},
			},
		},
		SourceBoosts: map[string]float64{
			"codigo_civil":              1.1,
			"codigo_comercio":           1.15,
			"codigo_sustantivo_trabajo": 1.1,
			"estatuto_tributario":       1.2,
		},
		KeywordBoostStep: 0.05,
		MaxPassages:      4,
		MaxPassageChars:  900,
		InjectKeywords:   2,
	}
}

// ApplyDefaults fills zero values with defaults, merging partial YAML config.
func (c *Config) ApplyDefaults() {
	defaults := DefaultConfig()

	if c.Categories == nil {
		c.Categories = defaults.Categories
	} else {
		for name, def := range defaults.Categories {
			got, ok := c.Categories[name]
			if !ok {
				c.Categories[name] = def
				continue
			}
			if got.ResultCount == 0 {
				got.ResultCount = def.ResultCount
			}
			if got.Threshold == 0 {
				got.Threshold = def.Threshold
			}
			if got.BoostKeywords == nil {
				got.BoostKeywords = def.BoostKeywords
			}
			c.Categories[name] = got
		}
	}
	if c.SourceBoosts == nil {
		c.SourceBoosts = defaults.SourceBoosts
	}
	if c.KeywordBoostStep == 0 {
		c.KeywordBoostStep = defaults.KeywordBoostStep
	}
	if c.MaxPassages == 0 {
		c.MaxPassages = defaults.MaxPassages
	}
	if c.MaxPassageChars == 0 {
		c.MaxPassageChars = defaults.MaxPassageChars
	}
	if c.InjectKeywords == 0 {
		c.InjectKeywords = defaults.InjectKeywords
	}
}

// CategoryConfig returns the tuning for cat, falling back to the general
// category when the category has no entry.
func (c *Config) CategoryConfig(cat classify.Category) CategoryConfig {
	if cfg, ok := c.Categories[cat.String()]; ok {
		return cfg
	}
	return c.Categories[classify.CategoryGeneral.String()]
}
