package vision

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	OutlineColor = color.NRGBA{G: 255, A: 255}
	MarkerColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	LabelColor   = color.NRGBA{R: 255, A: 255}
	CaptionColor = color.NRGBA{R: 255, G: 255, A: 255}
)

const (
	outlineThickness = 2
	markerRadius     = 3
	labelOffsetX     = -16
	labelOffsetY     = 10
	captionX         = 10
	captionMargin    = 30
	captionScale     = 2
)

// drawOutline рисует замкнутый контур линией заданной толщины.
func drawOutline(img *image.NRGBA, contour []image.Point, thickness int, c color.NRGBA) {
	n := len(contour)
	for i, p := range contour {
		q := contour[(i+1)%n]
		drawThickLine(img, p.X, p.Y, q.X, q.Y, thickness, c)
	}
}

// drawThickLine рисует отрезок по Брезенхему квадратной кистью.
func drawThickLine(img *image.NRGBA, x1, y1, x2, y2, thickness int, c color.NRGBA) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		stamp(img, x1, y1, thickness, c)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// stamp закрашивает квадрат size×size вокруг точки.
func stamp(img *image.NRGBA, x, y, size int, c color.NRGBA) {
	lo := -size / 2
	hi := lo + size
	for yy := y + lo; yy < y+hi; yy++ {
		for xx := x + lo; xx < x+hi; xx++ {
			setPixel(img, xx, yy, c)
		}
	}
}

// fillCircle закрашивает круг.
func fillCircle(img *image.NRGBA, cx, cy, r int, c color.NRGBA) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				setPixel(img, x, y, c)
			}
		}
	}
}

func setPixel(img *image.NRGBA, x, y int, c color.NRGBA) {
	if !(image.Point{x, y}).In(img.Bounds()) {
		return
	}
	img.SetNRGBA(x, y, c)
}

// drawLabel пишет текст так, что (x, y) — левый край базовой линии.
func drawLabel(img draw.Image, x, y int, text string, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// drawCaption пишет текст, увеличенный в captionScale раз, с базовой линией на y.
func drawCaption(img *image.NRGBA, x, y int, text string, c color.Color) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()
	if width <= 0 {
		return
	}

	glyphs := image.NewNRGBA(image.Rect(0, 0, width, height))
	drawLabel(glyphs, 0, ascent, text, c)

	scaled := imaging.Resize(glyphs, width*captionScale, height*captionScale, imaging.NearestNeighbor)
	top := image.Pt(x, y-ascent*captionScale)
	draw.Draw(img, scaled.Bounds().Add(top), scaled, image.Point{}, draw.Over)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
