package board

import (
	"encoding/base64"
	"net/http"
	"strings"
)

// EncodeImageDataURL sniffs the payload and, when it is an image, returns
// it as a base64 data URL. Anything else is rejected.
func EncodeImageDataURL(data []byte) (string, bool) {
	if len(data) == 0 {
		return "", false
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", false
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), true
}

// DecodeImageDataURL returns the raw bytes behind a data URL produced by
// EncodeImageDataURL (or by a persisted record).
func DecodeImageDataURL(dataURL string) ([]byte, bool) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return nil, false
	}
	idx := strings.Index(rest, ";base64,")
	if idx < 0 {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(rest[idx+len(";base64,"):])
	if err != nil {
		return nil, false
	}
	return raw, true
}
