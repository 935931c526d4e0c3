package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitIntakeMessage_Empty(t *testing.T) {
	assert.Empty(t, SplitIntakeMessage(""))
	assert.Empty(t, SplitIntakeMessage("     "))
	assert.Empty(t, SplitIntakeMessage("hello"))
}

func TestSplitIntakeMessage_NoiseFilter(t *testing.T) {
	// Trimmed length of exactly 10 is still noise.
	assert.Empty(t, SplitIntakeMessage("  1234567890  "))
	assert.Len(t, SplitIntakeMessage("12345678901"), 1)
}

func TestSplitIntakeMessage_NumberedList(t *testing.T) {
	segments := SplitIntakeMessage("1. Need 2BHK Chandigarh\n2. Need plot Mohali")
	assert.Equal(t, []string{"Need 2BHK Chandigarh", "Need plot Mohali"}, segments)
}

func TestSplitIntakeMessage_NumberedListParen(t *testing.T) {
	segments := SplitIntakeMessage("1) Plot for sale Sector 70\n2) Kothi available Sector 8")
	assert.Equal(t, []string{"Plot for sale Sector 70", "Kothi available Sector 8"}, segments)
}

func TestSplitIntakeMessage_BlankLines(t *testing.T) {
	segments := SplitIntakeMessage("Plot for sale Sector 70\n\nKothi available Sector 8")
	assert.Equal(t, []string{"Plot for sale Sector 70", "Kothi available Sector 8"}, segments)
}

func TestSplitIntakeMessage_BlankLineWithSpaces(t *testing.T) {
	segments := SplitIntakeMessage("Plot for sale Sector 70\n   \n\nKothi available Sector 8")
	assert.Len(t, segments, 2)
}

func TestSplitIntakeMessage_NumberedListWinsOverBlankLines(t *testing.T) {
	segments := SplitIntakeMessage("1. Need 2BHK Chandigarh\n\n2. Need plot Mohali")
	assert.Equal(t, []string{"Need 2BHK Chandigarh", "Need plot Mohali"}, segments)
}

func TestSplitIntakeMessage_WholeText(t *testing.T) {
	text := "3 BHK flat available Mohali, 85 lakh"
	assert.Equal(t, []string{text}, SplitIntakeMessage(text))
}

func TestSplitIntakeMessage_CRLF(t *testing.T) {
	segments := SplitIntakeMessage("Plot for sale Sector 70\r\n\r\nKothi available Sector 8")
	assert.Equal(t, []string{"Plot for sale Sector 70", "Kothi available Sector 8"}, segments)
}

func TestSplitIntakeMessage_DropsShortPieces(t *testing.T) {
	segments := SplitIntakeMessage("1. ok\n2. Need plot Mohali urgently")
	assert.Equal(t, []string{"Need plot Mohali urgently"}, segments)
}
