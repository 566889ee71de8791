package processor

import (
	"image"
	"image/jpeg"
	"io"
)

// Thumbnails are always served as JPEG.
func (p *ImageProcessor) encodeImage(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}
