package container

import (
	"image"

	app "pip-counter/internal/application"
	"pip-counter/internal/domain/entity"
	"pip-counter/internal/domain/port"
	"pip-counter/internal/infrastructure/vision"
)

type Container struct {
	UserService     *app.UserService
	CountingService *app.CountingService
}

// Options собирает параметры, которые не относятся к ядру подсчёта.
type Options struct {
	Slider     entity.ThresholdSlider
	Counting   app.CountingOptions
	CenterCrop bool
}

func New(userRepo port.UserRepository, detector port.PipDetector, opts Options) *Container {
	if opts.CenterCrop {
		opts.Counting.Preprocess = func(img image.Image) (image.Image, error) {
			return vision.CenterCropWithPadding(img)
		}
	}

	userService := app.NewUserService(userRepo, opts.Slider)
	countingService := app.NewCountingService(userService, detector, opts.Counting)

	return &Container{
		UserService:     userService,
		CountingService: countingService,
	}
}
