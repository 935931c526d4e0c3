package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractContacts_PlainNumber(t *testing.T) {
	contacts, mobiles := extractContacts("contact 9876543210 for details")
	require.Len(t, contacts, 1)
	assert.Equal(t, "9876543210", contacts[0].Mobile)
	assert.Equal(t, "Unknown", contacts[0].Name)
	assert.Equal(t, "New Contact", contacts[0].Role)
	assert.True(t, contacts[0].IsNew)
	assert.Equal(t, []string{"9876543210"}, mobiles)
}

func TestExtractContacts_PrefixStripping(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"call +919876543210", "9876543210"},
		{"call +91 9876543210", "9876543210"},
		{"call 919876543210", "9876543210"},
		{"call 09876543210", "9876543210"},
	}
	for _, tt := range tests {
		contacts, _ := extractContacts(tt.text)
		require.Len(t, contacts, 1, tt.text)
		assert.Equal(t, tt.want, contacts[0].Mobile, tt.text)
	}
}

func TestExtractContacts_FormattedNumber(t *testing.T) {
	// Punctuation inside the number is stripped, not treated as a separator.
	contacts, _ := extractContacts("call 98765-43210 today")
	require.Len(t, contacts, 1)
	assert.Equal(t, "9876543210", contacts[0].Mobile)
}

func TestExtractContacts_Rejections(t *testing.T) {
	for _, text := range []string{
		"plot number 1234567890", // starts below 6
		"call 98765",             // too short
		"demand 1.5 cr only",     // not phone-shaped
		"",
	} {
		contacts, mobiles := extractContacts(text)
		assert.Empty(t, contacts, text)
		assert.Empty(t, mobiles, text)
	}
}

func TestExtractContacts_Dedupe(t *testing.T) {
	contacts, _ := extractContacts("9876543210 or +919876543210 or 9988776655")
	require.Len(t, contacts, 2)
	assert.Equal(t, "9876543210", contacts[0].Mobile)
	assert.Equal(t, "9988776655", contacts[1].Mobile)
}
