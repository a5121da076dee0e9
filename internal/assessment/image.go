// image.go: defensive image handling for uploaded field photos
package assessment

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/cvsuagritech/agrisight-go/internal/logging"
)

// usableImage returns the image bytes when they decode as a supported format,
// nil otherwise. Malformed uploads are logged and dropped; the assessment
// itself proceeds without image data.
func usableImage(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}
	format, err := sniffImage(data)
	if err != nil {
		logging.ForService("assessment").Warn("discarding undecodable image upload",
			"size_bytes", len(data), "error", err)
		return nil
	}
	logging.ForService("assessment").Debug("accepted image upload",
		"format", format, "size_bytes", len(data))
	return data
}

// sniffImage validates the image header without decoding pixel data.
func sniffImage(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return format, nil
}
