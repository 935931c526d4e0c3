// Package pattern builds the effective rule set used by the parser. A
// compiled-in default table covers the tricity market; a remote or file-based
// override can replace individual pieces per parse invocation. Resolution is
// pure: overrides produce a new RuleSet and never mutate the defaults.
package pattern

import (
	"regexp"
	"strings"

	"github.com/bharat-properties/intake-cli/internal/model"
)

// CategoryRule maps one property category to its ordered keyword list.
type CategoryRule struct {
	Category model.Category `json:"category" yaml:"category"`
	Keywords []string       `json:"keywords" yaml:"keywords"`
}

// RuleSet is the effective pattern set for one parse invocation.
type RuleSet struct {
	City         *regexp.Regexp
	Sector       *regexp.Regexp
	Locality     *regexp.Regexp
	UnitExplicit *regexp.Regexp
	UnitImplicit *regexp.Regexp
	UnitGeneric  *regexp.Regexp
	Size         *regexp.Regexp
	Price        *regexp.Regexp
	BHK          *regexp.Regexp
	Categories   []CategoryRule
}

// Override replaces parts of the default rule set. Empty fields mean "no
// override for that field".
type Override struct {
	Cities    []string       `yaml:"cities"`
	Locations []string       `yaml:"locations"`
	Types     []CategoryRule `yaml:"types"`
}

var defaultCities = []string{
	"new chandigarh", "chandigarh", "mohali", "panchkula", "zirakpur",
	"kharar", "derabassi", "mullanpur", "kurali", "banur", "landran",
}

var defaultLocalities = []string{
	"aerocity", "ecocity", "it city", "sunny enclave", "tdi city",
	"wave estate", "omaxe city", "jlpl", "dhakoli", "peer muchalla",
}

// defaultCategories is scanned in slice order; within a category the keyword
// list order decides ties. Matching is substring-based, so more specific
// categories come first.
var defaultCategories = []CategoryRule{
	{model.CategoryAgricultural, []string{"agricultural land", "farm land", "farmhouse", "farm house", "killa"}},
	{model.CategoryIndustrial, []string{"factory", "warehouse", "godown", "industrial shed", "industrial plot"}},
	{model.CategoryInstitutional, []string{"school site", "hospital site", "institutional plot", "institute"}},
	{model.CategoryCommercial, []string{"showroom", "sco", "scf", "dss", "booth", "shop", "office", "soho", "food court"}},
	{model.CategoryResidential, []string{"kothi", "villa", "duplex", "penthouse", "apartment", "flat", "floor", "house", "plot"}},
}

const (
	sectorPattern       = `(?i)\bsector[\s-]*(\d+[a-z]?)\b`
	unitExplicitPattern = `(?i)\b(?:plot|sco|dss|house|shop|booth|flat|scf)\s*no[.:#]?\s*([a-z0-9][a-z0-9/-]*)`
	unitImplicitPattern = `(?i)\b(?:plot|sco|dss|house|shop|booth|flat|scf)[\s-]*([a-z]*\d[a-z0-9/-]*)\b`
	unitGenericPattern  = `(?i)(?:\bunit|\bno\.|#)\s*([a-z0-9/-]*\d[a-z0-9/-]*)\b`
	sizePattern         = `(?i)\b(\d+(?:\.\d+)?)\s*(kanal|marla|gaz|sq\.?\s?yds?|sqyds?|sq\.?\s?ft|sqft|bigha|acres?)\b`
	pricePattern        = `(?i)\b(\d+(?:\.\d+)?)\s*(crores?|cr|c|lakhs?|lacs?|l|thousand|k)\b`
	bhkPattern          = `(?i)\b(\d+)\s*bhk\b`
)

var defaultSet = compile(defaultCities, defaultLocalities, defaultCategories)

// Default returns the compiled-in rule set.
func Default() *RuleSet {
	return defaultSet
}

// Resolve merges an override into the defaults and returns a new RuleSet.
// A nil or empty override yields the defaults verbatim.
func Resolve(o *Override) *RuleSet {
	if o == nil {
		return defaultSet
	}

	cities := defaultCities
	if len(o.Cities) > 0 {
		cities = o.Cities
	}

	localities := defaultLocalities
	if len(o.Locations) > 0 {
		// A literal "sector" term would duplicate the sector directive and
		// produce a self-referential alternation.
		localities = nil
		for _, loc := range o.Locations {
			if strings.EqualFold(strings.TrimSpace(loc), "sector") {
				continue
			}
			localities = append(localities, loc)
		}
		if len(localities) == 0 {
			localities = defaultLocalities
		}
	}

	categories := mergeCategories(defaultCategories, o.Types)

	return compile(cities, localities, categories)
}

// mergeCategories replaces same-named default entries with override entries,
// keeps defaults for categories the override does not name, and appends
// override-only categories at the end in override order.
func mergeCategories(defaults, overrides []CategoryRule) []CategoryRule {
	if len(overrides) == 0 {
		return defaults
	}

	byName := make(map[model.Category][]string, len(overrides))
	for _, o := range overrides {
		if len(o.Keywords) > 0 {
			byName[o.Category] = o.Keywords
		}
	}

	merged := make([]CategoryRule, 0, len(defaults)+len(overrides))
	seen := make(map[model.Category]bool, len(defaults))
	for _, d := range defaults {
		seen[d.Category] = true
		if kws, ok := byName[d.Category]; ok {
			merged = append(merged, CategoryRule{Category: d.Category, Keywords: kws})
			continue
		}
		merged = append(merged, d)
	}
	for _, o := range overrides {
		if !seen[o.Category] && len(o.Keywords) > 0 {
			merged = append(merged, CategoryRule{Category: o.Category, Keywords: o.Keywords})
			seen[o.Category] = true
		}
	}
	return merged
}

func compile(cities, localities []string, categories []CategoryRule) *RuleSet {
	return &RuleSet{
		City:         regexp.MustCompile(`(?i)\b(?:` + alternation(cities) + `)\b`),
		Sector:       regexp.MustCompile(sectorPattern),
		Locality:     regexp.MustCompile(`(?i)\b(?:` + alternation(localities) + `)\b`),
		UnitExplicit: regexp.MustCompile(unitExplicitPattern),
		UnitImplicit: regexp.MustCompile(unitImplicitPattern),
		UnitGeneric:  regexp.MustCompile(unitGenericPattern),
		Size:         regexp.MustCompile(sizePattern),
		Price:        regexp.MustCompile(pricePattern),
		BHK:          regexp.MustCompile(bhkPattern),
		Categories:   categories,
	}
}

// alternation quotes each term and joins them, longest first so that
// overlapping terms ("new chandigarh" vs "chandigarh") match greedily.
func alternation(terms []string) string {
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(strings.ToLower(t))
		if t == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(t))
	}
	if len(quoted) == 0 {
		// Alternation that can never match, keeping the regexp valid.
		return `\b\B`
	}
	for i := 1; i < len(quoted); i++ {
		for j := i; j > 0 && len(quoted[j]) > len(quoted[j-1]); j-- {
			quoted[j], quoted[j-1] = quoted[j-1], quoted[j]
		}
	}
	return strings.Join(quoted, "|")
}
