package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/bharat-properties/intake-cli/internal/model"
)

// mobileRe accepts Indian mobile numbers after prefix stripping.
var mobileRe = regexp.MustCompile(`^[6-9]\d{9}$`)

const (
	placeholderName = "Unknown"
	placeholderRole = "New Contact"
)

// extractContacts detects phone-shaped tokens in the original segment text.
// It returns the contact records and the accepted 10-digit numbers so the
// assembler can strip them from the working text. Duplicates are removed.
func extractContacts(segment string) ([]model.Contact, []string) {
	var b strings.Builder
	for _, r := range segment {
		switch {
		case r >= '0' && r <= '9', r == '+':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	var contacts []model.Contact
	var mobiles []string
	seen := make(map[string]bool)

	for _, tok := range strings.Fields(b.String()) {
		switch {
		case strings.HasPrefix(tok, "+91"):
			tok = tok[3:]
		case len(tok) == 12 && strings.HasPrefix(tok, "91"):
			tok = tok[2:]
		case len(tok) == 11 && strings.HasPrefix(tok, "0"):
			tok = tok[1:]
		}

		if !mobileRe.MatchString(tok) || seen[tok] {
			continue
		}
		seen[tok] = true
		mobiles = append(mobiles, tok)
		contacts = append(contacts, model.Contact{
			Mobile: tok,
			Name:   placeholderName,
			Role:   placeholderRole,
			IsNew:  true,
		})
	}

	return contacts, mobiles
}
