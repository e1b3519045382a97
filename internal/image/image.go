package image

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNotFound          = errors.New("image file does not exist")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// mimeTypes maps accepted extensions to the MIME type used in the
// data-URI. GIF is deliberately absent.
var mimeTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"bmp":  "image/bmp",
	"webp": "image/webp",
	"tiff": "image/tiff",
	"tif":  "image/tiff",
}

// Validate checks that path exists and carries a supported extension.
func Validate(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if _, ok := mimeTypes[ext(path)]; !ok {
		return fmt.Errorf("%w: %s (supported: PNG, JPG, JPEG, BMP, WEBP, TIFF, TIF)", ErrUnsupportedFormat, path)
	}
	return nil
}

// DataURI validates the file and returns its contents as a base64
// data-URI with the MIME type detected from the extension.
func DataURI(path string) (string, error) {
	if err := Validate(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	return fmt.Sprintf("data:%s;base64,%s", MimeType(path), encoded), nil
}

// MimeType returns the MIME type for the file's extension, defaulting
// to image/png for anything unrecognized.
func MimeType(path string) string {
	if m, ok := mimeTypes[ext(path)]; ok {
		return m
	}
	return "image/png"
}

func ext(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
