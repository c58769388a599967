package vision

import (
	"image"
	"image/color"
)

var (
	black = color.NRGBA{A: 255}
	red   = color.NRGBA{R: 255, A: 255}
)

// newFrame создаёт однотонное изображение
func newFrame(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// fillDisk закрашивает круг на изображении
func fillDisk(img *image.NRGBA, cx, cy, r int, c color.NRGBA) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}

// fillRect выставляет прямоугольник w×h в маске
func fillRect(m *Mask, x, y, w, h int) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			m.Set(xx, yy, true)
		}
	}
}

// threeDisks — кадр 512x512 с тремя красными кругами площадью около 500 px на чёрном фоне
func threeDisks() *image.NRGBA {
	img := newFrame(FrameSize, FrameSize, black)
	fillDisk(img, 100, 100, 13, red)
	fillDisk(img, 250, 300, 13, red)
	fillDisk(img, 400, 150, 13, red)
	return img
}
