package vision

import (
	"errors"
	"fmt"
	"image"

	"pip-counter/internal/domain/entity"
)

var (
	// ErrInvalidImage — буфер не описывает корректное 8-битное изображение.
	ErrInvalidImage = entity.ErrInvalidImage

	// ErrBackendUnavailable — бэкенд не собран в этот бинарник.
	ErrBackendUnavailable = errors.New("gocv build tag is not enabled")
)

// FromPixels собирает изображение из сырого буфера H×W×C с 8-битными каналами.
// Поддерживаются 3 и 4 канала; четвёртый канал (альфа) отбрасывается,
// первые три копируются как есть.
func FromPixels(pix []byte, width, height, channels int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: zero size %dx%d", ErrInvalidImage, width, height)
	}
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("%w: unsupported channel count %d", ErrInvalidImage, channels)
	}
	if len(pix) != width*height*channels {
		return nil, fmt.Errorf("%w: buffer has %d bytes, want %d", ErrInvalidImage, len(pix), width*height*channels)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, j := 0, 0; i < len(pix); i, j = i+channels, j+4 {
		img.Pix[j] = pix[i]
		img.Pix[j+1] = pix[i+1]
		img.Pix[j+2] = pix[i+2]
		img.Pix[j+3] = 0xff
	}

	return img, nil
}
