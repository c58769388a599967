package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestThresholdSlider_Validate(t *testing.T) {
	s := DefaultThresholdSlider()

	require.NoError(t, s.Validate(0))
	require.NoError(t, s.Validate(250))
	require.NoError(t, s.Validate(500))
	require.ErrorIs(t, s.Validate(-1), ErrInvalidThreshold)
	require.ErrorIs(t, s.Validate(501), ErrInvalidThreshold)
}

func TestThresholdSlider_Step(t *testing.T) {
	s := ThresholdSlider{Min: 0, Max: 100, Step: 10, Default: 50}

	require.NoError(t, s.Validate(30))
	require.ErrorIs(t, s.Validate(35), ErrInvalidThreshold)
}

func TestThresholdSlider_Check(t *testing.T) {
	require.NoError(t, DefaultThresholdSlider().Check())
	require.Error(t, ThresholdSlider{Min: 10, Max: 5, Step: 1, Default: 7}.Check())
	require.Error(t, ThresholdSlider{Min: 0, Max: 5, Step: 0, Default: 2}.Check())
	require.ErrorIs(t, ThresholdSlider{Min: 0, Max: 5, Step: 1, Default: 9}.Check(), ErrInvalidThreshold)
}

func TestThresholdSlider_CheckRange(t *testing.T) {
	require.Error(t, ThresholdSlider{Min: -10, Max: 500, Step: 1, Default: 250}.Check())
	require.Error(t, ThresholdSlider{Min: 0, Max: 900, Step: 1, Default: 250}.Check())
	require.NoError(t, ThresholdSlider{Min: 10, Max: 200, Step: 1, Default: 100}.Check())
}
