package parser

import "strings"

// Tag labels derivable from a segment.
const (
	TagDirect  = "DIRECT"
	TagCIH     = "CIH"
	TagResale  = "RESALE"
	TagFresh   = "FRESH"
	TagUrgent  = "URGENT"
	TagPremium = "PREMIUM"
)

// DeriveTags produces categorical labels from keyword presence in the
// lower-cased segment. Each tag is appended at most once; RESALE and FRESH
// are mutually exclusive with RESALE checked first.
func DeriveTags(lowerSegment string) []string {
	var tags []string

	if containsAny(lowerSegment, "direct", "party", "owner") {
		tags = append(tags, TagDirect)
	}
	if containsAny(lowerSegment, "client in hand", "cih") {
		tags = append(tags, TagCIH)
	}
	if containsAny(lowerSegment, "resale", "secondary") {
		tags = append(tags, TagResale)
	} else if containsAny(lowerSegment, "fresh", "booking", "launch", "new") {
		tags = append(tags, TagFresh)
	}
	if containsAny(lowerSegment, "urgent", "immediate", "fire", "hot") {
		tags = append(tags, TagUrgent)
	}
	if containsAny(lowerSegment, "corner", "park facing") {
		tags = append(tags, TagPremium)
	}

	return tags
}

func containsAny(text string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
