package vision

import (
	"context"
	"image"

	"pip-counter/internal/domain/entity"
	"pip-counter/internal/domain/port"
)

// NativeDetector считает пипсы на чистом Go, без OpenCV.
type NativeDetector struct {
	ReferenceHue int
}

// NewNativeDetector создаёт детектор с фиксированным опорным оттенком.
func NewNativeDetector(referenceHue int) *NativeDetector {
	return &NativeDetector{ReferenceHue: referenceHue}
}

// Count приводит изображение к кадру 512x512, строит маску и считает пипсы.
func (d *NativeDetector) Count(ctx context.Context, img image.Image, hueThreshold int) (*entity.PipResult, error) {
	if entity.IsNilImage(img) {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	frame, mask, err := Prepare(img, d.ReferenceHue, hueThreshold)
	if err != nil {
		return nil, err
	}

	return Analyze(mask, frame), nil
}

// Name возвращает имя бэкенда
func (d *NativeDetector) Name() string {
	return "native"
}

var _ port.PipDetector = (*NativeDetector)(nil)
