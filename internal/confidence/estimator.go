// Package confidence estimates how much trust to place in an answer. The
// score is a calibrated heuristic over evidence volume and category
// difficulty, not a statistical guarantee.
package confidence

import (
	"github.com/andeslegal/consulta/internal/classify"
	"github.com/andeslegal/consulta/pkg/utils"
)

// Config holds the estimation constants. Defaults come from manual
// calibration against answered questions.
type Config struct {
	// Base is the starting score before evidence adjustments.
	Base float64 `yaml:"base"`
	// PerSource and SourceCap bound the legal-evidence bonus, counted over
	// distinct source identifiers rather than raw passages.
	PerSource float64 `yaml:"per_source"`
	SourceCap float64 `yaml:"source_cap"`
	// PerDocument and DocumentCap bound the user-document bonus.
	PerDocument float64 `yaml:"per_document"`
	DocumentCap float64 `yaml:"document_cap"`
	// CategoryMultipliers discount categories the model answers less
	// reliably. Missing categories use UnknownMultiplier.
	CategoryMultipliers map[string]float64 `yaml:"category_multipliers"`
	UnknownMultiplier   float64            `yaml:"unknown_multiplier"`
	// FailurePenalty multiplies the score when synthesis failed and the
	// answer is a fallback text.
	FailurePenalty float64 `yaml:"failure_penalty"`
}

// DefaultConfig returns the calibrated constants.
func DefaultConfig() *Config {
	return &Config{
		Base:        0.70,
		PerSource:   0.05,
		SourceCap:   0.15,
		PerDocument: 0.03,
		DocumentCap: 0.08,
		CategoryMultipliers: map[string]float64{
			classify.CategoryFormation.String():   1.0,
			classify.CategoryLabor.String():       0.98,
			classify.CategoryTax.String():         0.95,
			classify.CategoryContractual.String(): 0.92,
			classify.CategoryGeneral.String():     0.85,
		},
		UnknownMultiplier: 0.80,
		FailurePenalty:    0.3,
	}
}

// ApplyDefaults fills zero values from the defaults.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if c.Base == 0 {
		c.Base = d.Base
	}
	if c.PerSource == 0 {
		c.PerSource = d.PerSource
	}
	if c.SourceCap == 0 {
		c.SourceCap = d.SourceCap
	}
	if c.PerDocument == 0 {
		c.PerDocument = d.PerDocument
	}
	if c.DocumentCap == 0 {
		c.DocumentCap = d.DocumentCap
	}
	if c.CategoryMultipliers == nil {
		c.CategoryMultipliers = d.CategoryMultipliers
	}
	if c.UnknownMultiplier == 0 {
		c.UnknownMultiplier = d.UnknownMultiplier
	}
	if c.FailurePenalty == 0 {
		c.FailurePenalty = d.FailurePenalty
	}
}

// Estimator computes confidence scores.
type Estimator struct {
	config *Config
}

// NewEstimator creates an estimator. A nil config uses defaults.
func NewEstimator(config *Config) *Estimator {
	if config == nil {
		config = DefaultConfig()
	}
	return &Estimator{config: config}
}

// Signals are the inputs to one estimate. LegalSources counts distinct
// source identifiers, not passages, so several excerpts from one statute
// only count once.
type Signals struct {
	Category        classify.Category
	LegalSources    int
	MatchedDocs     int
	SynthesisFailed bool
}

// Estimate returns the confidence score in [0, 1], rounded to three decimals.
func (e *Estimator) Estimate(s Signals) float64 {
	score := e.config.Base
	score += min(e.config.SourceCap, float64(s.LegalSources)*e.config.PerSource)
	score += min(e.config.DocumentCap, float64(s.MatchedDocs)*e.config.PerDocument)

	if m, ok := e.config.CategoryMultipliers[s.Category.String()]; ok {
		score *= m
	} else {
		score *= e.config.UnknownMultiplier
	}

	if s.SynthesisFailed {
		score *= e.config.FailurePenalty
	}

	return utils.Round3(utils.Clamp01(score))
}
