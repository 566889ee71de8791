package processor

import (
	"image"

	"github.com/disintegration/imaging"
)

func (p *ImageProcessor) fillImage(img image.Image, width, height int) image.Image {
	return imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)
}
