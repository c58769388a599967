package vision

import (
	"image"
	"math"
)

// Границы площади пипсы на кадре 512x512, обе исключающие.
const (
	MinPipArea = 200
	MaxPipArea = 10000
)

// Moments — моменты нулевого и первого порядка многоугольника.
type Moments struct {
	M00 float64
	M10 float64
	M01 float64
}

// Region — внешний контур области маски с его геометрией.
type Region struct {
	Contour []image.Point
	Area    float64
	Moments Moments
}

// FindRegions извлекает внешние контуры маски и считает их площадь и моменты.
func FindRegions(m *Mask) []Region {
	contours := FindExternalContours(m)
	regions := make([]Region, 0, len(contours))
	for _, c := range contours {
		regions = append(regions, Region{
			Contour: c,
			Area:    ContourArea(c),
			Moments: PolygonMoments(c),
		})
	}
	return regions
}

// ContourArea возвращает площадь многоугольника по формуле шнурования.
func ContourArea(contour []image.Point) float64 {
	n := len(contour)
	if n < 3 {
		return 0
	}

	var sum float64
	prev := contour[n-1]
	for _, p := range contour {
		sum += float64(prev.X*p.Y - p.X*prev.Y)
		prev = p
	}

	return math.Abs(sum) / 2
}

// PolygonMoments считает моменты многоугольника по его вершинам.
// Знак нормализуется так, что M00 >= 0 независимо от направления обхода.
func PolygonMoments(contour []image.Point) Moments {
	n := len(contour)
	if n < 2 {
		return Moments{}
	}

	var a00, a10, a01 float64
	prev := contour[n-1]
	for _, p := range contour {
		x0, y0 := float64(prev.X), float64(prev.Y)
		x1, y1 := float64(p.X), float64(p.Y)
		dxy := x0*y1 - x1*y0
		a00 += dxy
		a10 += dxy * (x0 + x1)
		a01 += dxy * (y0 + y1)
		prev = p
	}

	m := Moments{M00: a00 / 2, M10: a10 / 6, M01: a01 / 6}
	if m.M00 < 0 {
		m = Moments{M00: -m.M00, M10: -m.M10, M01: -m.M01}
	}
	return m
}

// Centroid возвращает центр масс. При M00 == 0 центр — (0, 0).
func Centroid(m Moments) (x, y int) {
	if m.M00 == 0 {
		return 0, 0
	}
	return int(m.M10 / m.M00), int(m.M01 / m.M00)
}

// AcceptArea проверяет площадь по открытому интервалу (MinPipArea, MaxPipArea).
func AcceptArea(area float64) bool {
	return area > MinPipArea && area < MaxPipArea
}
