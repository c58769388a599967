package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"pip-counter/internal/domain/entity"
	"pip-counter/internal/domain/port"
)

var (
	ErrNoImage               = errors.New("no image data")
	ErrDetectorNotConfigured = errors.New("detector is not configured")
)

// Preprocessor — необязательная нормализация перед детектором.
type Preprocessor func(img image.Image) (image.Image, error)

// CountingOptions настройки сервиса подсчёта.
type CountingOptions struct {
	Format     imaging.Format // формат размеченного изображения
	Preprocess Preprocessor   // nil — без предобработки
}

type CountingService struct {
	users    *UserService
	detector port.PipDetector
	opts     CountingOptions
}

// CountOutput содержит результат подсчёта и закодированную картинку с разметкой.
type CountOutput struct {
	Result    *entity.PipResult
	Annotated []byte
	MimeType  string
	Filename  string
}

// NewCountingService создаёт сервис, который считает пипсы на фотографиях.
func NewCountingService(users *UserService, detector port.PipDetector, opts CountingOptions) *CountingService {
	return &CountingService{
		users:    users,
		detector: detector,
		opts:     opts,
	}
}

// Count считает пипсы на фото пользователя с его порогом оттенка.
func (s *CountingService) Count(ctx context.Context, userID, chatID int64, photo []byte) (*CountOutput, error) {
	user, err := s.users.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	return s.CountBytes(ctx, photo, user.HueThreshold)
}

// CountBytes декодирует изображение с учётом EXIF-ориентации и считает пипсы.
func (s *CountingService) CountBytes(ctx context.Context, data []byte, threshold int) (*CountOutput, error) {
	if len(data) == 0 {
		return nil, ErrNoImage
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", entity.ErrInvalidImage, err)
	}

	return s.CountImage(ctx, img, threshold)
}

// CountImage считает пипсы на уже декодированном изображении.
// Для отсутствующего изображения возвращает (nil, nil).
func (s *CountingService) CountImage(ctx context.Context, img image.Image, threshold int) (*CountOutput, error) {
	if s.detector == nil {
		return nil, ErrDetectorNotConfigured
	}
	if entity.IsNilImage(img) {
		return nil, nil
	}
	if err := s.users.Slider().Validate(threshold); err != nil {
		return nil, err
	}

	if s.opts.Preprocess != nil {
		prepared, err := s.opts.Preprocess(img)
		if err != nil {
			return nil, fmt.Errorf("preprocess image: %w", err)
		}
		img = prepared
	}

	start := time.Now()
	result, err := s.detector.Count(ctx, img, threshold)
	if err != nil {
		return nil, fmt.Errorf("count pips: %w", err)
	}
	if result == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, result.Annotated, s.opts.Format, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	log.Printf("Counted %d pips (backend=%s, threshold=%d) in %s",
		result.Count, s.detector.Name(), threshold, time.Since(start).Round(time.Millisecond))

	mimeType, ext := "image/png", "png"
	if s.opts.Format == imaging.JPEG {
		mimeType, ext = "image/jpeg", "jpg"
	}

	return &CountOutput{
		Result:    result,
		Annotated: buf.Bytes(),
		MimeType:  mimeType,
		Filename:  "pips." + ext,
	}, nil
}
