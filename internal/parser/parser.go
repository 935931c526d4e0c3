package parser

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bharat-properties/intake-cli/internal/model"
	"github.com/bharat-properties/intake-cli/internal/pattern"
)

const defaultMaxConcurrent = 8

// Parser runs the extraction pipeline against one effective rule set.
// It holds no mutable state, so one Parser may serve concurrent calls.
type Parser struct {
	rules         *pattern.RuleSet
	maxConcurrent int
}

// Option configures a Parser.
type Option func(*Parser)

// WithConcurrency bounds the number of segments parsed in parallel.
func WithConcurrency(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxConcurrent = n
		}
	}
}

// New creates a Parser over the given rule set. A nil rule set uses the
// compiled-in defaults.
func New(rs *pattern.RuleSet, opts ...Option) *Parser {
	if rs == nil {
		rs = pattern.Default()
	}
	p := &Parser{rules: rs, maxConcurrent: defaultMaxConcurrent}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse segments the text and parses every segment, preserving segment order.
func (p *Parser) Parse(ctx context.Context, text string) ([]model.ParsedDeal, error) {
	segments := SplitIntakeMessage(text)
	deals := make([]model.ParsedDeal, len(segments))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxConcurrent)
	for i, seg := range segments {
		i, seg := i, seg
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			deals[i] = p.ParseSegment(seg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return deals, nil
}

// ParseSegment runs the fixed-order extraction pipeline over one segment and
// assembles the resulting deal. It never fails: a segment with no recognized
// tokens yields a valid low-confidence record.
func (p *Parser) ParseSegment(segment string) model.ParsedDeal {
	working := segment
	lower := strings.ToLower(segment)

	city := extractCity(p.rules, working)
	if city != nil {
		working = removeFold(working, city.matched)
	}

	locality := extractLocality(p.rules, working)
	if locality != nil {
		working = removeFold(working, locality.matched)
	}

	unit := extractUnit(p.rules, working)
	if unit != nil {
		working = removeFold(working, unit.matched)
	}

	size := extractSize(p.rules, working)
	if size != nil {
		working = removeFold(working, size.matched)
	}

	price := extractPrice(p.rules, working)
	if price != nil {
		working = removeFold(working, price.matched)
		working = priceWordRe.ReplaceAllString(working, "")
	}

	// Category scans the full segment, not the shrunken copy: the keyword may
	// already have been consumed as part of a unit identifier.
	category, typeLabel, typeMatched := classifyType(p.rules, lower)
	if typeMatched != "" {
		working = removeFold(working, typeMatched)
	}

	contacts, mobiles := extractContacts(segment)
	for _, mobile := range mobiles {
		working = removeMobile(working, mobile)
	}

	location := "Unspecified"
	switch {
	case locality != nil:
		location = locality.value
	case city != nil:
		location = city.value
	}

	score := ComputeScore(Outcome{
		Locality:  locality != nil,
		Unit:      unit != nil,
		Price:     price != nil,
		Size:      size != nil,
		TypeKnown: typeLabel != "Unknown",
	})

	deal := model.ParsedDeal{
		Intent:          ClassifyIntent(lower),
		Category:        category,
		Type:            typeLabel,
		Location:        location,
		Remarks:         remarks(working),
		Contacts:        contacts,
		Tags:            DeriveTags(lower),
		Raw:             segment,
		Confidence:      ScoreBucket(score),
		ConfidenceScore: score,
	}
	if city != nil {
		deal.Address.City = ptr(city.value)
	}
	if locality != nil {
		deal.Address.Sector = ptr(locality.value)
	}
	if unit != nil {
		deal.Address.UnitNumber = ptr(unit.value)
		deal.Address.UnitNo = ptr(unit.value)
	}
	if size != nil {
		deal.Specs.Size = ptr(size.value)
	}
	if price != nil {
		deal.Specs.Price = ptr(price.value)
	}
	return deal
}

// remarks normalizes the leftover working text. Returns nil when nothing
// meaningful remains.
func remarks(working string) *string {
	collapsed := strings.Join(strings.Fields(working), " ")
	trimmed := strings.Trim(collapsed, " \t\r\n.,-")
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// removeFold removes the first case-insensitive occurrence of sub from s.
func removeFold(s, sub string) string {
	if sub == "" {
		return s
	}
	idx := strings.Index(strings.ToLower(s), strings.ToLower(sub))
	if idx < 0 {
		return s
	}
	return s[:idx] + s[idx+len(sub):]
}

// removeMobile strips an accepted mobile from the working text, trying the
// prefixed forms it may have appeared under.
func removeMobile(s, mobile string) string {
	for _, form := range []string{"+91" + mobile, "91" + mobile, "0" + mobile, mobile} {
		if idx := strings.Index(s, form); idx >= 0 {
			return s[:idx] + s[idx+len(form):]
		}
	}
	return s
}

func ptr(s string) *string {
	return &s
}
