// Package imagedata converts between PNG bytes and the base64 text carried
// in JSON payloads.
package imagedata

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"
)

const pngPrefix = "data:image/png;base64,"

var ErrNotPNG = errors.New("image data is not a PNG")

// StripDataURI removes a "data:<mime>;base64," prefix if one is present.
func StripDataURI(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if i := strings.Index(s, ","); i >= 0 {
		return s[i+1:]
	}
	return s
}

func Encode(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}

// DataURI prefixes the base64 text the way a browser canvas does.
func DataURI(raw []byte) string {
	return pngPrefix + Encode(raw)
}

// Decode returns the raw bytes behind a base64 payload, tolerating a data-URI prefix.
func Decode(s string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(StripDataURI(s))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image data: %w", err)
	}
	return raw, nil
}

// DecodePNG decodes the payload and checks that it carries a PNG header.
func DecodePNG(s string) ([]byte, image.Config, error) {
	raw, err := Decode(s)
	if err != nil {
		return nil, image.Config{}, err
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, image.Config{}, fmt.Errorf("%w: %v", ErrNotPNG, err)
	}
	return raw, cfg, nil
}
