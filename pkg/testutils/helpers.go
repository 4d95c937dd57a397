package testutils

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateTree creates files and directories under dir. Names ending in "/" are
// directories; every other entry is written with its content. Parent
// directories are created as needed.
func CreateTree(t *testing.T, dir string, entries map[string]string) {
	t.Helper()
	for name, content := range entries {
		full := filepath.Join(dir, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			require.NoError(t, os.MkdirAll(full, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
}

// Frame is a raw ID3v2.3 frame used to build fixtures.
type Frame struct {
	ID   string
	Data []byte
}

// TextFrame builds an ISO-8859-1 text frame such as TIT2 or TALB.
func TextFrame(id, text string) Frame {
	return Frame{ID: id, Data: append([]byte{0x00}, text...)}
}

// CommentFrame builds a COMM frame with language "eng".
func CommentFrame(description, text string) Frame {
	var b bytes.Buffer
	b.WriteByte(0x00)
	b.WriteString("eng")
	b.WriteString(description)
	b.WriteByte(0x00)
	b.WriteString(text)
	return Frame{ID: "COMM", Data: b.Bytes()}
}

// PictureFrame builds an APIC front-cover frame with a few bytes of image data.
func PictureFrame(mimeType, description string) Frame {
	var b bytes.Buffer
	b.WriteByte(0x00)
	b.WriteString(mimeType)
	b.WriteByte(0x00)
	b.WriteByte(0x03)
	b.WriteString(description)
	b.WriteByte(0x00)
	b.Write([]byte{0xff, 0xd8, 0xff, 0xe0})
	return Frame{ID: "APIC", Data: b.Bytes()}
}

// ID3v23 encodes frames as a complete ID3v2.3 tag.
func ID3v23(frames ...Frame) []byte {
	var body bytes.Buffer
	for _, f := range frames {
		body.WriteString(f.ID)
		binary.Write(&body, binary.BigEndian, uint32(len(f.Data)))
		body.Write([]byte{0x00, 0x00})
		body.Write(f.Data)
	}

	size := body.Len()
	var out bytes.Buffer
	out.WriteString("ID3")
	out.Write([]byte{0x03, 0x00, 0x00})
	out.Write([]byte{
		byte(size >> 21 & 0x7f),
		byte(size >> 14 & 0x7f),
		byte(size >> 7 & 0x7f),
		byte(size & 0x7f),
	})
	out.Write(body.Bytes())
	return out.Bytes()
}

// WriteMP3 writes an ID3v2.3-tagged file at path, creating parent directories.
func WriteMP3(t *testing.T, path string, frames ...Frame) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	data := append(ID3v23(frames...), make([]byte, 128)...)
	require.NoError(t, os.WriteFile(path, data, 0644))
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	var result []rune
	inEscape := false
	for _, r := range str {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		result = append(result, r)
	}
	return string(result)
}
