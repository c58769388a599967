//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"image"

	"pip-counter/internal/domain/entity"
)

// GoCVDetector — заглушка для сборки без OpenCV.
type GoCVDetector struct {
	ReferenceHue int
}

// NewGoCVDetector возвращает ошибку, если сборка без тега gocv.
func NewGoCVDetector(referenceHue int) (*GoCVDetector, error) {
	return nil, ErrBackendUnavailable
}

// Count возвращает ошибку, если сборка без тега gocv.
func (d *GoCVDetector) Count(ctx context.Context, img image.Image, hueThreshold int) (*entity.PipResult, error) {
	_ = ctx
	_ = img
	_ = hueThreshold
	return nil, ErrBackendUnavailable
}

// Name возвращает имя бэкенда
func (d *GoCVDetector) Name() string {
	return "gocv"
}
