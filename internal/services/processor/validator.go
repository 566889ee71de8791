package processor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/phambaophuc/image-analyzer/pkg/utils"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	ErrEmptyImage       = errors.New("empty image data")
	ErrFileTooLarge     = errors.New("file too large")
	ErrUnsupportedImage = errors.New("unsupported image type")
)

// ValidateImage checks an upload before it is held as a preview and returns
// its sniffed content type.
func (p *ImageProcessor) ValidateImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImage
	}

	if p.maxFileSize > 0 && int64(len(data)) > p.maxFileSize {
		return "", fmt.Errorf("%w: %d bytes exceeds maximum allowed size %d", ErrFileTooLarge, len(data), p.maxFileSize)
	}

	contentType := http.DetectContentType(data)
	if !utils.IsValidImageType(contentType) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	return contentType, nil
}
