package vision

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"pip-counter/internal/domain/entity"
)

const (
	// FrameSize — сторона канонического кадра, к которому приводится любое изображение.
	FrameSize = 512

	MaxHue        = 179
	MinSaturation = 50
	MinValue      = 20
)

// HSV — пиксель в 8-битной шкале OpenCV: H в [0,179], S и V в [0,255].
type HSV struct {
	H, S, V uint8
}

// ToHSV переводит RGB в HSV в шкале OpenCV.
func ToHSV(r, g, b uint8) HSV {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, v := c.Hsv()

	return HSV{
		H: uint8(int(math.Round(h/2)) % (MaxHue + 1)),
		S: uint8(math.Round(s * 255)),
		V: uint8(math.Round(v * 255)),
	}
}

// HueWindow — окно приёма в HSV. Границы включительные.
type HueWindow struct {
	LowerHue int
	UpperHue int
}

// NewHueWindow строит окно вокруг referenceHue шириной ±hueThreshold.
// Окно обрезается по [0,179] и никогда не заворачивается через 0.
func NewHueWindow(referenceHue, hueThreshold int) HueWindow {
	return HueWindow{
		LowerHue: clamp(referenceHue-hueThreshold, 0, MaxHue),
		UpperHue: clamp(referenceHue+hueThreshold, 0, MaxHue),
	}
}

// Contains проверяет, попадает ли пиксель в окно.
func (w HueWindow) Contains(p HSV) bool {
	h := int(p.H)
	return h >= w.LowerHue && h <= w.UpperHue &&
		p.S >= MinSaturation &&
		p.V >= MinValue
}

// Mask — бинарная маска: 255 там, где пиксель попал в окно, иначе 0.
type Mask struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewMask создаёт пустую маску.
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// At сообщает, выставлен ли пиксель. Всё за пределами маски считается фоном.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Pix[y*m.Width+x] != 0
}

// Set выставляет или сбрасывает пиксель.
func (m *Mask) Set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	if on {
		m.Pix[y*m.Width+x] = 0xff
	} else {
		m.Pix[y*m.Width+x] = 0
	}
}

// CountNonZero возвращает число выставленных пикселей.
func (m *Mask) CountNonZero() int {
	n := 0
	for _, v := range m.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// Prepare нормализует изображение и строит маску по окну оттенка.
// Для отсутствующего изображения возвращает nil без ошибки.
func Prepare(img image.Image, referenceHue, hueThreshold int) (*image.NRGBA, *Mask, error) {
	if entity.IsNilImage(img) {
		return nil, nil, nil
	}

	frame, err := Normalize(img)
	if err != nil {
		return nil, nil, err
	}

	return frame, BuildMask(frame, NewHueWindow(referenceHue, hueThreshold)), nil
}

// Normalize отбрасывает альфа-канал и приводит изображение к FrameSize×FrameSize.
func Normalize(img image.Image) (*image.NRGBA, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: zero size %dx%d", ErrInvalidImage, b.Dx(), b.Dy())
	}

	return imaging.Resize(stripAlpha(img), FrameSize, FrameSize, imaging.Linear), nil
}

// BuildMask применяет окно к каждому пикселю кадра.
func BuildMask(frame *image.NRGBA, window HueWindow) *Mask {
	b := frame.Bounds()
	mask := NewMask(b.Dx(), b.Dy())

	for y := 0; y < b.Dy(); y++ {
		row := frame.Pix[y*frame.Stride:]
		for x := 0; x < b.Dx(); x++ {
			i := x * 4
			if window.Contains(ToHSV(row[i], row[i+1], row[i+2])) {
				mask.Pix[y*mask.Width+x] = 0xff
			}
		}
	}

	return mask
}

// stripAlpha копирует первые три канала без изменений и делает кадр непрозрачным.
func stripAlpha(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			s := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+b.Dx()*4], src.Pix[s:s+b.Dx()*4])
		}
	} else {
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				i := dst.PixOffset(x, y)
				dst.Pix[i] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
			}
		}
	}

	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}

	return dst
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
