package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSniffImageMIME(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want string
	}{
		{"png", []byte("\x89PNG\r\n\x1a\n more bytes"), "image/png"},
		{"jpeg", []byte("\xFF\xD8\xFF\xE0 more bytes here"), "image/jpeg"},
		{"gif", []byte("GIF89a and then some"), "image/gif"},
		{"webp", append([]byte("RIFF0000"), []byte("WEBPxxxx")...), "image/webp"},
		{"unknown", []byte("definitely not an image"), "image/jpeg"},
		{"tiny", []byte("abc"), "image/jpeg"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sniffImageMIME(tc.data))
		})
	}
}

func TestImageDataURI(t *testing.T) {
	uri := imageDataURI([]byte("\x89PNG\r\n\x1a\n payload"))
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	assert.NotContains(t, uri, "\n")
}
