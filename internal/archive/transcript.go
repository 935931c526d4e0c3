package archive

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bharat-properties/intake-cli/internal/model"
)

// headerRe matches a chat timestamp header, bracketed or unbracketed:
//
//	[12/10/22, 10:45:30 AM] Raju: message
//	12/10/22, 10:45 AM - Raju: message
//
// Group 1 is the timestamp, group 2 the message body (sender prefix kept).
var headerRe = regexp.MustCompile(
	`^\[?(\d{1,2}/\d{1,2}/\d{2,4},?\s+\d{1,2}:\d{2}(?::\d{2})?\s*(?:[AaPp][Mm])?)\]?\s*-?\s*(.+)$`)

// bidiRe strips bidirectional-control invisible characters exporters embed.
var bidiRe = regexp.MustCompile(`[\x{200E}\x{200F}\x{202A}-\x{202E}\x{2066}-\x{2069}]`)

// systemLineDenylist drops security boilerplate, group-management messages
// and media placeholders. Matched as lower-cased substrings.
var systemLineDenylist = []string{
	"messages and calls are end-to-end encrypted",
	"media omitted",
	"image omitted",
	"video omitted",
	"audio omitted",
	"document omitted",
	"sticker omitted",
	"gif omitted",
	"this message was deleted",
	"you deleted this message",
	"created this group",
	"created group",
	"changed the subject",
	"changed this group's icon",
	"changed the group description",
	"joined using this group's invite link",
	"security code changed",
}

var timestampLayouts = []string{
	"2/1/06, 3:04:05 PM",
	"2/1/06, 3:04 PM",
	"2/1/2006, 3:04:05 PM",
	"2/1/2006, 3:04 PM",
	"2/1/06, 15:04:05",
	"2/1/06, 15:04",
	"2/1/2006, 15:04",
}

// ParseTranscript reassembles multi-line chat entries from a line-oriented
// transcript. A header line starts a new message; continuation lines are
// appended newline-joined. Denylisted bodies and orphan lines with no open
// message are silently dropped. Messages come back in file order.
func ParseTranscript(content, source string) []model.ImportedMessage {
	var messages []model.ImportedMessage
	open := -1

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(bidiRe.ReplaceAllString(line, ""), "\r")

		m := headerRe.FindStringSubmatch(line)
		if m == nil {
			if open >= 0 && strings.TrimSpace(line) != "" {
				messages[open].Content += "\n" + line
			}
			continue
		}

		body := strings.TrimSpace(m[2])
		if body == "" || denied(body) {
			open = -1
			continue
		}

		messages = append(messages, model.ImportedMessage{
			ID:         uuid.NewString(),
			Source:     source,
			Content:    body,
			ReceivedAt: parseTimestamp(m[1]),
			Metadata:   map[string]string{"timestamp": m[1]},
		})
		open = len(messages) - 1
	}

	return messages
}

func denied(body string) bool {
	lower := strings.ToLower(body)
	for _, entry := range systemLineDenylist {
		if strings.Contains(lower, entry) {
			return true
		}
	}
	return false
}

func parseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
