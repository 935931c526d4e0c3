package archive

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

const sampleTranscript = "12/10/22, 10:45 AM - Raju: Plot for sale Sector 70 Mohali\n" +
	"12/10/22, 10:47 AM - Sham: 3 BHK flat available Mohali, 85 lakh\n" +
	"12/10/22, 10:50 AM - Raju: Showroom aerocity for sale\n"

func TestReadArchive_LatestFirst(t *testing.T) {
	data := buildZip(t, map[string]string{"WhatsApp Chat with Dealers.txt": sampleTranscript})

	msgs, err := ReadArchive(data)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "Raju: Showroom aerocity for sale", msgs[0].Content)
	assert.Equal(t, "Sham: 3 BHK flat available Mohali, 85 lakh", msgs[1].Content)
	assert.Equal(t, "Raju: Plot for sale Sector 70 Mohali", msgs[2].Content)
	assert.Equal(t, "WhatsApp Chat with Dealers.txt", msgs[0].Source)
}

func TestReadArchive_SkipsMetadataEntries(t *testing.T) {
	data := buildZip(t, map[string]string{
		"__MACOSX/chat.txt": "junk",
		".hidden.txt":       "junk",
		"readme.md":         "junk",
		"export/chat.txt":   "12/10/22, 10:45 AM - Raju: Plot for sale Sector 70",
	})

	msgs, err := ReadArchive(data)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "chat.txt", msgs[0].Source)
	assert.Equal(t, "Raju: Plot for sale Sector 70", msgs[0].Content)
}

func TestReadArchive_NoTranscript(t *testing.T) {
	data := buildZip(t, map[string]string{"photo.jpg": "binary"})

	_, err := ReadArchive(data)
	require.Error(t, err)
	assert.Equal(t, ErrNoTranscript, eris.Cause(err))
}

func TestReadArchive_CorruptZip(t *testing.T) {
	_, err := ReadArchive([]byte("this is not a zip file"))
	assert.Error(t, err)
}

func TestReadArchive_EmptyTranscript(t *testing.T) {
	data := buildZip(t, map[string]string{"chat.txt": ""})

	msgs, err := ReadArchive(data)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestReadArchiveBase64(t *testing.T) {
	data := buildZip(t, map[string]string{"chat.txt": sampleTranscript})
	payload := base64.StdEncoding.EncodeToString(data)

	msgs, err := ReadArchiveBase64("  " + payload + "\n")
	require.NoError(t, err)
	assert.Len(t, msgs, 3)
}

func TestReadArchiveBase64_Invalid(t *testing.T) {
	_, err := ReadArchiveBase64("!!!not-base64!!!")
	assert.Error(t, err)
}
