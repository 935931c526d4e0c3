package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bharat-properties/intake-cli/internal/model"
	"github.com/bharat-properties/intake-cli/internal/pattern"
)

// match is one successful extraction: the normalized value and the exact
// substring to consume from the working text.
type match struct {
	value   string
	matched string
}

// priceWordRe strips bare pricing words once a price token has been consumed.
var priceWordRe = regexp.MustCompile(`(?i)\b(?:price|rate|ask|demand)\b`)

// title returns s in English title case. A fresh caser per call keeps the
// extractors safe under concurrent segment parsing.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

func extractCity(rs *pattern.RuleSet, text string) *match {
	m := rs.City.FindString(text)
	if m == "" {
		return nil
	}
	return &match{value: strings.ToUpper(m), matched: m}
}

func extractLocality(rs *pattern.RuleSet, text string) *match {
	if m := rs.Sector.FindStringSubmatch(text); m != nil {
		return &match{value: "Sector " + strings.ToUpper(m[1]), matched: m[0]}
	}
	if m := rs.Locality.FindString(text); m != "" {
		return &match{value: title(m), matched: m}
	}
	return nil
}

// extractUnit tries the three unit-identifier forms in order; the first tier
// to match wins and later tiers are not attempted.
func extractUnit(rs *pattern.RuleSet, text string) *match {
	for _, re := range []*regexp.Regexp{rs.UnitExplicit, rs.UnitImplicit, rs.UnitGeneric} {
		if m := re.FindStringSubmatch(text); m != nil {
			return &match{value: strings.ToUpper(m[1]), matched: m[0]}
		}
	}
	return nil
}

func extractSize(rs *pattern.RuleSet, text string) *match {
	m := rs.Size.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return &match{value: m[1] + " " + title(m[2]), matched: m[0]}
}

func extractPrice(rs *pattern.RuleSet, text string) *match {
	m := rs.Price.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	number, unit := m[1], strings.ToLower(m[2])
	var value string
	switch {
	case strings.HasPrefix(unit, "c"):
		value = number + " Cr"
	case strings.HasPrefix(unit, "l"):
		value = number + " Lac"
	default:
		// Thousands are expressed as their lakh equivalent.
		n, err := strconv.ParseFloat(number, 64)
		if err != nil {
			return nil
		}
		value = fmt.Sprintf("%.2f Lac", n/100)
	}

	return &match{value: value, matched: m[0]}
}

// classifyType resolves the property category and type label against the full
// lower-cased segment. A BHK shorthand short-circuits the keyword table.
// Returns the category, the type label, and the substring to consume ("" when
// nothing matched).
func classifyType(rs *pattern.RuleSet, lowerSegment string) (model.Category, string, string) {
	if m := rs.BHK.FindStringSubmatch(lowerSegment); m != nil {
		return model.CategoryResidential, m[1] + " BHK Flat", m[0]
	}

	for _, rule := range rs.Categories {
		for _, kw := range rule.Keywords {
			if strings.Contains(lowerSegment, kw) {
				return rule.Category, title(kw), kw
			}
		}
	}

	return model.CategoryResidential, "Unknown", ""
}
