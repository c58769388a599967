package entity

import "fmt"

// Допустимый диапазон порога оттенка.
const (
	MinHueThreshold = 0
	MaxHueThreshold = 500
)

// ThresholdSlider описывает ползунок порога оттенка на стороне интерфейса.
type ThresholdSlider struct {
	Min     int
	Max     int
	Step    int
	Default int
}

// DefaultThresholdSlider — ползунок 0..500 с шагом 1, по умолчанию 250.
func DefaultThresholdSlider() ThresholdSlider {
	return ThresholdSlider{Min: MinHueThreshold, Max: MaxHueThreshold, Step: 1, Default: 250}
}

// Validate проверяет, что значение допустимо для ползунка.
func (s ThresholdSlider) Validate(v int) error {
	if v < s.Min || v > s.Max {
		return fmt.Errorf("%w: %d is outside [%d, %d]", ErrInvalidThreshold, v, s.Min, s.Max)
	}
	if s.Step > 1 && (v-s.Min)%s.Step != 0 {
		return fmt.Errorf("%w: %d is not on step %d", ErrInvalidThreshold, v, s.Step)
	}
	return nil
}

// Check проверяет согласованность самих границ.
func (s ThresholdSlider) Check() error {
	if s.Min < MinHueThreshold || s.Max > MaxHueThreshold {
		return fmt.Errorf("slider bounds [%d, %d] must lie within [%d, %d]", s.Min, s.Max, MinHueThreshold, MaxHueThreshold)
	}
	if s.Min > s.Max {
		return fmt.Errorf("slider min %d is greater than max %d", s.Min, s.Max)
	}
	if s.Step <= 0 {
		return fmt.Errorf("slider step must be positive, got %d", s.Step)
	}
	return s.Validate(s.Default)
}
