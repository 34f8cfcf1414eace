package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
)

// sniffImageMIME determines the MIME type from the image's magic bytes.
func sniffImageMIME(data []byte) string {
	if len(data) < 12 {
		return "image/jpeg"
	}
	switch {
	case bytes.HasPrefix(data, []byte("\xFF\xD8\xFF")):
		return "image/jpeg"
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "image/png"
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return "image/gif"
	case bytes.HasPrefix(data, []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return "image/webp"
	}
	return "image/jpeg"
}

// imageDataURI encodes raw image bytes as a base64 data URI suitable for
// a vision-model image part.
func imageDataURI(data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", sniffImageMIME(data), base64.StdEncoding.EncodeToString(data))
}
