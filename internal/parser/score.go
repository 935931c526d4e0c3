package parser

import "github.com/bharat-properties/intake-cli/internal/model"

// Outcome records which extraction passes succeeded for one segment.
type Outcome struct {
	Locality  bool
	Unit      bool
	Price     bool
	Size      bool
	TypeKnown bool
}

// Score weights. A bare city match carries no weight: it populates the
// location fields but city alone is too weak a completeness signal. These
// weights are a contract with downstream filtering thresholds.
const (
	weightLocality = 30
	weightUnit     = 30
	weightPrice    = 15
	weightSize     = 15
	weightType     = 10
)

// ComputeScore returns the 0-100 completeness score for an outcome.
func ComputeScore(o Outcome) int {
	score := 0
	if o.Locality {
		score += weightLocality
	}
	if o.Unit {
		score += weightUnit
	}
	if o.Price {
		score += weightPrice
	}
	if o.Size {
		score += weightSize
	}
	if o.TypeKnown {
		score += weightType
	}
	return score
}

// ScoreBucket maps a numeric score to its qualitative bucket.
func ScoreBucket(score int) model.Confidence {
	switch {
	case score >= 70:
		return model.ConfidenceHigh
	case score >= 40:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}
