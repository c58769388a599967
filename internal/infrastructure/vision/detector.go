//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"pip-counter/internal/domain/entity"
	"pip-counter/internal/domain/port"
)

// GoCVDetector считает пипсы через OpenCV.
type GoCVDetector struct {
	ReferenceHue int
}

// NewGoCVDetector создаёт детектор с фиксированным опорным оттенком.
func NewGoCVDetector(referenceHue int) (*GoCVDetector, error) {
	return &GoCVDetector{ReferenceHue: referenceHue}, nil
}

// Count запускает конвейер OpenCV: resize, BGR->HSV, inRange, внешние контуры.
func (d *GoCVDetector) Count(ctx context.Context, img image.Image, hueThreshold int) (*entity.PipResult, error) {
	if entity.IsNilImage(img) {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: zero size %dx%d", ErrInvalidImage, b.Dx(), b.Dy())
	}

	// ImageToMatRGB отдаёт Mat в порядке BGR, поэтому дальше BGR2HSV.
	src, err := gocv.ImageToMatRGB(stripAlpha(img))
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer src.Close()
	if src.Empty() {
		return nil, errors.New("empty image")
	}

	frame := gocv.NewMat()
	defer frame.Close()
	gocv.Resize(src, &frame, image.Pt(FrameSize, FrameSize), 0, 0, gocv.InterpolationLinear)

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(frame, &hsv, gocv.ColorBGRToHSV)

	window := NewHueWindow(d.ReferenceHue, hueThreshold)
	lower := gocv.NewScalar(float64(window.LowerHue), MinSaturation, MinValue, 0)
	upper := gocv.NewScalar(float64(window.UpperHue), 255, 255, 0)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.InRangeWithScalar(hsv, lower, upper, &mask)

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	detections := make([]entity.Detection, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		area := gocv.ContourArea(c)
		if !AcceptArea(area) {
			continue
		}

		points := c.ToPoints()
		cx, cy := Centroid(PolygonMoments(points))
		det := entity.Detection{
			Index:   len(detections) + 1,
			Contour: points,
			Area:    area,
			CX:      cx,
			CY:      cy,
		}

		gocv.DrawContours(&frame, contours, i, toRGBA(OutlineColor), outlineThickness)
		gocv.Circle(&frame, image.Pt(cx, cy), markerRadius, toRGBA(MarkerColor), -1)
		gocv.PutText(&frame, det.Label(), image.Pt(cx+labelOffsetX, cy+labelOffsetY),
			gocv.FontHersheySimplex, 0.5, toRGBA(LabelColor), 1)

		detections = append(detections, det)
	}

	caption := entity.PipCaption(len(detections))
	gocv.PutTextWithParams(&frame, caption, image.Pt(captionX, frame.Rows()-captionMargin),
		gocv.FontHersheySimplex, 1, toRGBA(CaptionColor), 2, gocv.LineAA, false)

	annotated, err := frame.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert result: %w", err)
	}

	return &entity.PipResult{
		Count:      len(detections),
		Detections: detections,
		Caption:    caption,
		Annotated:  annotated,
	}, nil
}

// Name возвращает имя бэкенда
func (d *GoCVDetector) Name() string {
	return "gocv"
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

var _ port.PipDetector = (*GoCVDetector)(nil)
