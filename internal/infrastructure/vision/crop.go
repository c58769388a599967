package vision

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

const (
	cropInset   = 25
	borderWidth = 3
)

// CenterCropWithPadding вырезает центральный квадрат, срезает по 25 px
// с каждой стороны и добавляет белую рамку в 3 px.
// Не входит в обязательный конвейер, включается конфигурацией.
func CenterCropWithPadding(img image.Image) (*image.NRGBA, error) {
	b := img.Bounds()
	size := min(b.Dx(), b.Dy())
	if size <= 2*cropInset {
		return nil, fmt.Errorf("%w: %dx%d is too small to crop", ErrInvalidImage, b.Dx(), b.Dy())
	}

	square := imaging.CropCenter(img, size, size)
	inner := imaging.Crop(square, image.Rect(cropInset, cropInset, size-cropInset, size-cropInset))

	side := inner.Bounds().Dx() + 2*borderWidth
	canvas := imaging.New(side, side, color.White)
	return imaging.Paste(canvas, inner, image.Pt(borderWidth, borderWidth)), nil
}
