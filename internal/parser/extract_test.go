package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bharat-properties/intake-cli/internal/model"
	"github.com/bharat-properties/intake-cli/internal/pattern"
)

func TestExtractCity(t *testing.T) {
	rs := pattern.Default()

	m := extractCity(rs, "flat available Mohali urgent")
	require.NotNil(t, m)
	assert.Equal(t, "MOHALI", m.value)
	assert.Equal(t, "Mohali", m.matched)

	assert.Nil(t, extractCity(rs, "flat available in Delhi"))
}

func TestExtractCity_LongestTermWins(t *testing.T) {
	rs := pattern.Default()

	m := extractCity(rs, "plot in New Chandigarh area")
	require.NotNil(t, m)
	assert.Equal(t, "NEW CHANDIGARH", m.value)
}

func TestExtractLocality_SectorDirective(t *testing.T) {
	rs := pattern.Default()

	m := extractLocality(rs, "Sector 82 plot for sale")
	require.NotNil(t, m)
	assert.Equal(t, "Sector 82", m.value)
	assert.Equal(t, "Sector 82", m.matched)
}

func TestExtractLocality_SectorVariants(t *testing.T) {
	rs := pattern.Default()

	m := extractLocality(rs, "kothi sector-21a for sale")
	require.NotNil(t, m)
	assert.Equal(t, "Sector 21A", m.value)
}

func TestExtractLocality_NamedLocality(t *testing.T) {
	rs := pattern.Default()

	m := extractLocality(rs, "showroom in aerocity on main road")
	require.NotNil(t, m)
	assert.Equal(t, "Aerocity", m.value)
}

func TestExtractLocality_NoMatch(t *testing.T) {
	assert.Nil(t, extractLocality(pattern.Default(), "plot for sale"))
}

func TestExtractUnit_ExplicitForm(t *testing.T) {
	rs := pattern.Default()

	m := extractUnit(rs, "Plot No 245 for sale")
	require.NotNil(t, m)
	assert.Equal(t, "245", m.value)
	assert.Equal(t, "Plot No 245", m.matched)

	m = extractUnit(rs, "house no. 123 on corner")
	require.NotNil(t, m)
	assert.Equal(t, "123", m.value)
}

func TestExtractUnit_ImplicitForm(t *testing.T) {
	rs := pattern.Default()

	m := extractUnit(rs, "sco 45-a phase 5 for rent")
	require.NotNil(t, m)
	assert.Equal(t, "45-A", m.value)
}

func TestExtractUnit_GenericFallback(t *testing.T) {
	rs := pattern.Default()

	m := extractUnit(rs, "unit 12 available")
	require.NotNil(t, m)
	assert.Equal(t, "12", m.value)

	m = extractUnit(rs, "available #B-12 corner")
	require.NotNil(t, m)
	assert.Equal(t, "B-12", m.value)
}

func TestExtractUnit_ExplicitTierWins(t *testing.T) {
	rs := pattern.Default()

	m := extractUnit(rs, "shop 22 near plot no 10")
	require.NotNil(t, m)
	assert.Equal(t, "10", m.value)
	assert.Equal(t, "plot no 10", m.matched)
}

func TestExtractUnit_NoMatch(t *testing.T) {
	assert.Nil(t, extractUnit(pattern.Default(), "good location near park"))
}

func TestExtractSize(t *testing.T) {
	rs := pattern.Default()

	tests := []struct {
		text string
		want string
	}{
		{"300 gaz prime location", "300 Gaz"},
		{"2 kanal kothi", "2 Kanal"},
		{"10 marla house", "10 Marla"},
		{"120 sq yd plot", "120 Sq Yd"},
		{"1000 sqft office", "1000 Sqft"},
		{"2.5 acre farm land", "2.5 Acre"},
	}
	for _, tt := range tests {
		m := extractSize(rs, tt.text)
		require.NotNil(t, m, tt.text)
		assert.Equal(t, tt.want, m.value, tt.text)
	}

	assert.Nil(t, extractSize(rs, "big plot for sale"))
}

func TestExtractPrice(t *testing.T) {
	rs := pattern.Default()

	tests := []struct {
		text string
		want string
	}{
		{"demand 1.5 cr", "1.5 Cr"},
		{"price 2 crore", "2 Cr"},
		{"asking 5 c", "5 Cr"},
		{"85 lakh negotiable", "85 Lac"},
		{"rate 45 lac", "45 Lac"},
		{"just 90 l", "90 Lac"},
		{"token 50 k", "0.50 Lac"},
		{"250 thousand only", "2.50 Lac"},
	}
	for _, tt := range tests {
		m := extractPrice(rs, tt.text)
		require.NotNil(t, m, tt.text)
		assert.Equal(t, tt.want, m.value, tt.text)
	}

	assert.Nil(t, extractPrice(rs, "price on request"))
}

func TestClassifyType_BHKShortCircuit(t *testing.T) {
	rs := pattern.Default()

	cat, label, matched := classifyType(rs, "3 bhk flat available mohali")
	assert.Equal(t, model.CategoryResidential, cat)
	assert.Equal(t, "3 BHK Flat", label)
	assert.Equal(t, "3 bhk", matched)
}

func TestClassifyType_KeywordTable(t *testing.T) {
	rs := pattern.Default()

	cat, label, matched := classifyType(rs, "plot for sale sector 70")
	assert.Equal(t, model.CategoryResidential, cat)
	assert.Equal(t, "Plot", label)
	assert.Equal(t, "plot", matched)

	cat, label, _ = classifyType(rs, "showroom on main road")
	assert.Equal(t, model.CategoryCommercial, cat)
	assert.Equal(t, "Showroom", label)

	cat, label, _ = classifyType(rs, "warehouse near highway")
	assert.Equal(t, model.CategoryIndustrial, cat)
	assert.Equal(t, "Warehouse", label)

	cat, label, _ = classifyType(rs, "farm house with pool")
	assert.Equal(t, model.CategoryAgricultural, cat)
	assert.Equal(t, "Farm House", label)
}

func TestClassifyType_Unknown(t *testing.T) {
	cat, label, matched := classifyType(pattern.Default(), "prime location great deal")
	assert.Equal(t, model.CategoryResidential, cat)
	assert.Equal(t, "Unknown", label)
	assert.Empty(t, matched)
}
