package domain

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const MsgNoFileSelected = "Please select an image first"

// ImageFile is an uploaded image held for submission.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// NewImageFile fills in the content type by sniffing when the client did not
// send a usable one.
func NewImageFile(name, contentType string, data []byte) ImageFile {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return ImageFile{Name: name, ContentType: contentType, Data: data}
}

// DataURI encodes the file as a base64 data URI usable as an <img> src.
func (f ImageFile) DataURI() string {
	return EncodeDataURI(f.ContentType, f.Data)
}

// EncodeDataURI builds `data:<mime>;base64,<payload>`.
func EncodeDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI parses `data:[<mime>][;base64],<payload>` and returns the
// payload bytes and media type.
func DecodeDataURI(uri string) ([]byte, string, error) {
	if !IsDataURI(uri) {
		return nil, "", errors.New("data uri: missing data: scheme")
	}
	rest := uri[len("data:"):]
	comma := strings.IndexByte(rest, ',')
	if comma < 0 {
		return nil, "", errors.New("data uri: missing payload separator")
	}
	meta, payload := rest[:comma], rest[comma+1:]
	isBase64 := false
	if strings.HasSuffix(strings.ToLower(meta), ";base64") {
		isBase64 = true
		meta = meta[:len(meta)-len(";base64")]
	}
	mime := meta
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if mime == "" {
		mime = "text/plain"
	}
	if !isBase64 {
		return []byte(payload), mime, nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, "", fmt.Errorf("data uri: decode payload: %w", err)
		}
	}
	return data, mime, nil
}

// IsDataURI reports whether s uses the data: scheme.
func IsDataURI(s string) bool {
	return len(s) >= 5 && strings.EqualFold(s[:5], "data:")
}
