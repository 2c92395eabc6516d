package utils

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// ImageValidator checks base64 image payloads before they are stored inline.
// The payload itself is kept exactly as the client sent it.
type ImageValidator struct {
	enabled bool
	maxSize int
}

func NewImageValidator(enabled bool, maxSizeMB int) *ImageValidator {
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	return &ImageValidator{enabled: enabled, maxSize: maxSizeMB << 20}
}

// Validate decodes an optional "data:<mime>;base64," prefixed payload and
// sniffs it. It returns the detected content type, or "" when disabled.
func (v *ImageValidator) Validate(encoded string) (string, error) {
	if v == nil || !v.enabled {
		return "", nil
	}

	payload := encoded
	if strings.HasPrefix(payload, "data:") {
		comma := strings.IndexByte(payload, ',')
		if comma < 0 || !strings.HasSuffix(payload[:comma], ";base64") {
			return "", fmt.Errorf("image must be a base64 data url")
		}
		payload = payload[comma+1:]
	}
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return "", fmt.Errorf("image is empty")
	}

	if base64.StdEncoding.DecodedLen(len(payload)) > v.maxSize {
		return "", fmt.Errorf("image too large (max %d MB)", v.maxSize>>20)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("image is not valid base64")
	}

	head := raw
	if len(head) > 512 {
		head = head[:512]
	}
	detected := strings.ToLower(http.DetectContentType(head))
	if !strings.HasPrefix(detected, "image/") {
		return "", fmt.Errorf("invalid image type")
	}
	return detected, nil
}
