package entity

import (
	"fmt"
	"image"
	"reflect"
	"strconv"
)

// Detection представляет одну засчитанную пипсу
type Detection struct {
	Index   int           // порядковый номер среди принятых областей, с 1
	Contour []image.Point // внешний контур в координатах кадра 512x512
	Area    float64       // площадь контура в пикселях
	CX      int           // центр масс по X
	CY      int           // центр масс по Y
}

// Center возвращает координаты центра пипсы
func (d Detection) Center() (x, y int) {
	return d.CX, d.CY
}

// Label возвращает подпись, которая рисуется рядом с центром
func (d Detection) Label() string {
	return strconv.Itoa(d.Index)
}

// PipResult хранит итог подсчёта на одном изображении.
type PipResult struct {
	Count      int         // число принятых областей
	Detections []Detection // в порядке обнаружения
	Caption    string      // итоговая подпись на изображении
	Annotated  image.Image // нормализованный кадр с разметкой
}

// IsNilImage сообщает, что изображения нет: nil-интерфейс
// или nil-указатель конкретного типа (например, (*image.NRGBA)(nil)).
func IsNilImage(img image.Image) bool {
	if img == nil {
		return true
	}
	v := reflect.ValueOf(img)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// PipCaption формирует итоговую подпись для заданного количества.
func PipCaption(count int) string {
	return fmt.Sprintf("Total pip count is: %d", count)
}
