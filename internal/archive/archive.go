// Package archive reads chat-export archives and reconstructs the messages
// they contain for downstream parsing.
package archive

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"io"
	"path"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/bharat-properties/intake-cli/internal/model"
)

// ErrNoTranscript is returned when an archive holds no eligible transcript.
var ErrNoTranscript = eris.New("archive: no transcript file found")

// ReadArchive decompresses a chat-export zip and returns the reconstructed
// messages, latest-parsed-first. Decoding is all-or-nothing: a corrupt
// archive fails the whole call.
func ReadArchive(data []byte) ([]model.ImportedMessage, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, eris.Wrap(err, "archive: open zip")
	}

	entry := findTranscript(r)
	if entry == nil {
		return nil, ErrNoTranscript
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, eris.Wrapf(err, "archive: open transcript %s", entry.Name)
	}
	defer rc.Close() //nolint:errcheck

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, eris.Wrapf(err, "archive: read transcript %s", entry.Name)
	}

	messages := ParseTranscript(string(content), path.Base(entry.Name))

	// Latest-parsed-first: the observable contract reverses file order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// ReadArchiveBase64 decodes a base64 zip payload and reads it.
func ReadArchiveBase64(payload string) ([]model.ImportedMessage, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, eris.Wrap(err, "archive: decode base64 payload")
	}
	return ReadArchive(data)
}

// findTranscript locates the first eligible transcript entry: a plain .txt
// file that is not platform metadata and not hidden.
func findTranscript(r *zip.Reader) *zip.File {
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := f.Name
		if strings.HasPrefix(name, "__MACOSX/") {
			continue
		}
		base := path.Base(name)
		if strings.HasPrefix(base, ".") {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(base), ".txt") {
			continue
		}
		return f
	}
	return nil
}
