package entity

import "errors"

var (
	// ErrInvalidImage изображение не удалось прочитать или оно не подходит для подсчёта
	ErrInvalidImage = errors.New("invalid image")

	// ErrInvalidThreshold порог вне допустимых границ ползунка
	ErrInvalidThreshold = errors.New("invalid hue threshold")
)
