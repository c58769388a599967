package port

import (
	"context"
	"image"

	"pip-counter/internal/domain/entity"
)

// PipDetector интерфейс детектора пипс
type PipDetector interface {
	// Count нормализует изображение, считает пипсы и возвращает размеченный кадр.
	// Для img == nil возвращает (nil, nil): результата нет, но это не ошибка.
	Count(ctx context.Context, img image.Image, hueThreshold int) (*entity.PipResult, error)

	// Name возвращает имя бэкенда для логов
	Name() string
}
