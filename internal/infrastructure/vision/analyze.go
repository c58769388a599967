package vision

import (
	"image"

	"github.com/disintegration/imaging"

	"pip-counter/internal/domain/entity"
)

// Analyze находит пипсы на маске и размечает копию кадра.
// Кадр вызывающего не меняется.
func Analyze(mask *Mask, frame *image.NRGBA) *entity.PipResult {
	return annotateRegions(FindRegions(mask), frame)
}

// annotateRegions фильтрует области по площади и рисует разметку для принятых.
func annotateRegions(regions []Region, frame *image.NRGBA) *entity.PipResult {
	canvas := imaging.Clone(frame)

	detections := make([]entity.Detection, 0, len(regions))
	for _, r := range regions {
		if !AcceptArea(r.Area) {
			continue
		}

		cx, cy := Centroid(r.Moments)
		d := entity.Detection{
			Index:   len(detections) + 1,
			Contour: r.Contour,
			Area:    r.Area,
			CX:      cx,
			CY:      cy,
		}

		x, y := d.Center()
		drawOutline(canvas, r.Contour, outlineThickness, OutlineColor)
		fillCircle(canvas, x, y, markerRadius, MarkerColor)
		drawLabel(canvas, x+labelOffsetX, y+labelOffsetY, d.Label(), LabelColor)

		detections = append(detections, d)
	}

	caption := entity.PipCaption(len(detections))
	drawCaption(canvas, captionX, canvas.Bounds().Dy()-captionMargin, caption, CaptionColor)

	return &entity.PipResult{
		Count:      len(detections),
		Detections: detections,
		Caption:    caption,
		Annotated:  canvas,
	}
}
