// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package encode turns a local image into an inline base64 data URL suitable
// for the image_url part of a chat completion request.
package encode

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMIMEType is used when neither the extension nor the content
// identify the file. The scanned survey plans are JPEG.
const DefaultMIMEType = "image/jpeg"

const base64Marker = ";base64,"

// FileAccessError reports that the source image could not be read.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("reading image %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// DataURL reads the file at path and returns "data:<mime>;base64,<payload>".
// The whole file is buffered in memory. When mimeType is empty it is
// resolved from the extension, then from the content.
func DataURL(path, mimeType string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &FileAccessError{Path: path, Err: err}
	}
	if mimeType == "" {
		mimeType = DetectMIME(path, data)
	}
	return FromBytes(data, mimeType), nil
}

// FromBytes wraps data in a data URL of the given media type.
func FromBytes(data []byte, mimeType string) string {
	return "data:" + mimeType + base64Marker + base64.StdEncoding.EncodeToString(data)
}

// DetectMIME guesses the media type of an image from its file extension,
// falling back to content sniffing and finally DefaultMIMEType.
func DetectMIME(path string, data []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); t != "" {
		return stripParams(t)
	}
	t := stripParams(http.DetectContentType(data))
	if t == "application/octet-stream" {
		return DefaultMIMEType
	}
	return t
}

// Decode splits a base64 data URL back into its media type and bytes.
func Decode(dataURL string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}
	mimeType, payload, ok := strings.Cut(rest, base64Marker)
	if !ok {
		return "", nil, fmt.Errorf("data URL is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decoding data URL payload: %w", err)
	}
	return mimeType, data, nil
}

func stripParams(t string) string {
	t, _, _ = strings.Cut(t, ";")
	return strings.TrimSpace(t)
}
