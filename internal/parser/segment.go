// Package parser turns unstructured classified text into ParsedDeal records.
package parser

import (
	"regexp"
	"strings"
)

// Segments shorter than this after trimming are noise, not postings.
const minSegmentLen = 10

var (
	listMarkerRe = regexp.MustCompile(`(?m)^\s*\d+[.)]\s+`)
	blankLineRe  = regexp.MustCompile(`\n[ \t]*\n+`)
)

// SplitIntakeMessage splits a raw text blob into independent candidate
// segments. Numbered-list markers win over blank-line boundaries; a text with
// neither is one segment. Segments with trimmed length <= 10 are dropped.
func SplitIntakeMessage(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	var pieces []string
	switch {
	case listMarkerRe.MatchString(normalized):
		pieces = listMarkerRe.Split(normalized, -1)
	case blankLineRe.MatchString(normalized):
		pieces = blankLineRe.Split(normalized, -1)
	default:
		pieces = []string{normalized}
	}

	segments := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if len(piece) <= minSegmentLen {
			continue
		}
		segments = append(segments, piece)
	}
	return segments
}
