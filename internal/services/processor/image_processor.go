package processor

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

const (
	ThumbnailWidth   = 300
	ThumbnailHeight  = 200
	ThumbnailQuality = 80
)

type ImageProcessor struct {
	maxFileSize int64
}

func NewImageProcessor(maxFileSize int64) *ImageProcessor {
	return &ImageProcessor{maxFileSize: maxFileSize}
}

// Thumbnail renders the preview shown next to the form as a JPEG.
func (p *ImageProcessor) Thumbnail(data []byte) (*bytes.Buffer, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := p.fillImage(img, ThumbnailWidth, ThumbnailHeight)

	buffer := &bytes.Buffer{}
	if err := p.encodeImage(buffer, thumb, ThumbnailQuality); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return buffer, nil
}
