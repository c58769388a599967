package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/joho/godotenv"

	"pip-counter/internal/domain/entity"
)

const (
	BackendNative = "native"
	BackendGoCV   = "gocv"
)

type Config struct {
	TelegramToken string
	HTTPAddr      string

	// ReferenceHue читается один раз при старте и дальше не меняется.
	ReferenceHue int
	Backend      string
	CenterCrop   bool
	OutputFormat imaging.Format

	Slider entity.ThresholdSlider
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	defaults := entity.DefaultThresholdSlider()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		HTTPAddr:      getEnvOrEmpty("HTTP_ADDR", ":8080"),
		ReferenceHue:  getEnvAsInt("PIP_REFERENCE_HUE", 0),
		Backend:       strings.ToLower(getEnv("PIP_BACKEND", BackendNative)),
		CenterCrop:    getEnvAsBool("PIP_CENTER_CROP", false),
		Slider: entity.ThresholdSlider{
			Min:     getEnvAsInt("HUE_THRESHOLD_MIN", defaults.Min),
			Max:     getEnvAsInt("HUE_THRESHOLD_MAX", defaults.Max),
			Step:    getEnvAsInt("HUE_THRESHOLD_STEP", defaults.Step),
			Default: getEnvAsInt("HUE_THRESHOLD_DEFAULT", defaults.Default),
		},
	}

	if cfg.ReferenceHue < 0 || cfg.ReferenceHue > 179 {
		return nil, fmt.Errorf("PIP_REFERENCE_HUE must be in [0, 179], got %d", cfg.ReferenceHue)
	}

	if cfg.Backend != BackendNative && cfg.Backend != BackendGoCV {
		return nil, fmt.Errorf("unknown PIP_BACKEND %q", cfg.Backend)
	}

	format, err := imaging.FormatFromExtension(getEnv("PIP_OUTPUT_FORMAT", "png"))
	if err != nil || (format != imaging.PNG && format != imaging.JPEG) {
		return nil, fmt.Errorf("PIP_OUTPUT_FORMAT must be png or jpeg")
	}
	cfg.OutputFormat = format

	if err := cfg.Slider.Check(); err != nil {
		return nil, fmt.Errorf("hue threshold slider: %w", err)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrEmpty отличает пустую переменную (выключить) от отсутствующей
func getEnvOrEmpty(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
