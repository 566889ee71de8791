package utils

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var dataURLPrefix = regexp.MustCompile(`^data:[^;,]*(;[^,]*)?,`)

// StripDataURLPrefix removes a leading "data:<mime>;base64," header if present.
func StripDataURLPrefix(dataURL string) string {
	return dataURLPrefix.ReplaceAllString(strings.TrimSpace(dataURL), "")
}

// DecodeDataURL returns the raw bytes behind a base64 data URL or bare
// base64 payload.
func DecodeDataURL(dataURL string) ([]byte, error) {
	payload := StripDataURLPrefix(dataURL)
	if payload == "" {
		return nil, fmt.Errorf("empty image data")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image data: %w", err)
	}

	return data, nil
}

// EncodeDataURL builds a base64 data URL the way a browser FileReader does.
func EncodeDataURL(contentType string, data []byte) string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// IsValidImageType checks if content type is a valid image type
func IsValidImageType(contentType string) bool {
	validTypes := []string{
		"image/jpeg",
		"image/jpg",
		"image/png",
		"image/gif",
		"image/webp",
		"image/bmp",
	}

	ct := strings.ToLower(contentType)
	for _, validType := range validTypes {
		if strings.Contains(ct, validType) {
			return true
		}
	}
	return false
}

// GeneratePreviewID returns a fresh opaque id for a held preview.
func GeneratePreviewID() string {
	return uuid.New().String()
}

// IsPreviewID rejects anything that could not have come from GeneratePreviewID.
func IsPreviewID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
