// Package model defines the records produced by the deal intake engine.
package model

// Intent is the transactional role implied by a posting.
type Intent string

const (
	IntentBuyer    Intent = "BUYER"
	IntentSeller   Intent = "SELLER"
	IntentLandlord Intent = "LANDLORD"
	IntentTenant   Intent = "TENANT"
)

// Category is the fixed property taxonomy.
type Category string

const (
	CategoryResidential   Category = "Residential"
	CategoryCommercial    Category = "Commercial"
	CategoryIndustrial    Category = "Industrial"
	CategoryAgricultural  Category = "Agricultural"
	CategoryInstitutional Category = "Institutional"
)

// Confidence is the qualitative bucket derived from the numeric score.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Contact is a phone-shaped token detected in a segment. The engine never
// resolves identity, so Name and Role always carry placeholder values.
type Contact struct {
	Mobile string `json:"mobile"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	IsNew  bool   `json:"isNew"`
}

// Address holds the structured location components of a deal.
// UnitNumber and UnitNo always carry the same value; the duplicate field is
// redundant but kept for compatibility with existing callers.
type Address struct {
	City       *string `json:"city"`
	Sector     *string `json:"sector"`
	UnitNumber *string `json:"unitNumber"`
	UnitNo     *string `json:"unitNo"`
}

// Specs holds the normalized size and price strings, when matched.
type Specs struct {
	Size  *string `json:"size"`
	Price *string `json:"price"`
}

// ParsedDeal is the immutable record produced once per segment.
type ParsedDeal struct {
	Intent          Intent     `json:"intent"`
	Category        Category   `json:"category"`
	Type            string     `json:"type"`
	Location        string     `json:"location"`
	Address         Address    `json:"address"`
	Specs           Specs      `json:"specs"`
	Remarks         *string    `json:"remarks"`
	Contacts        []Contact  `json:"contacts"`
	Tags            []string   `json:"tags"`
	Raw             string     `json:"raw"`
	Confidence      Confidence `json:"confidence"`
	ConfidenceScore int        `json:"confidenceScore"`
}
