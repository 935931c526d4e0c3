package parser

import (
	"strings"

	"github.com/bharat-properties/intake-cli/internal/model"
)

var buyerSignals = []string{"want", "need", "require", "looking for", "urgent", "buy", "budget"}

var sellerSignals = []string{"available", "sale", "sell", "inventory", "offer", "hot", "fresh", "resale", "booking"}

// ClassifyIntent labels a lower-cased segment with the transactional role it
// implies. Literal phrases win over keyword scoring; ties go to SELLER.
func ClassifyIntent(lowerSegment string) model.Intent {
	switch {
	case strings.Contains(lowerSegment, "want to sell"):
		return model.IntentSeller
	case strings.Contains(lowerSegment, "available for rent"):
		return model.IntentLandlord
	case strings.Contains(lowerSegment, "want to rent"):
		return model.IntentTenant
	}

	buyer := countSignals(lowerSegment, buyerSignals)
	seller := countSignals(lowerSegment, sellerSignals)
	if buyer > seller {
		return model.IntentBuyer
	}
	return model.IntentSeller
}

// countSignals counts presence, not frequency.
func countSignals(text string, signals []string) int {
	n := 0
	for _, s := range signals {
		if strings.Contains(text, s) {
			n++
		}
	}
	return n
}
