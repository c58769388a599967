package vision

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCenterCropWithPadding(t *testing.T) {
	img := newFrame(200, 100, red)

	out, err := CenterCropWithPadding(img)
	require.NoError(t, err)
	// 100 -> 50 после обрезки по 25 px, плюс рамка 3 px с каждой стороны
	require.Equal(t, 56, out.Bounds().Dx())
	require.Equal(t, 56, out.Bounds().Dy())

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	require.Equal(t, white, out.NRGBAAt(0, 0))
	require.Equal(t, white, out.NRGBAAt(55, 2))
	require.Equal(t, red, out.NRGBAAt(28, 28))
}

func TestCenterCropWithPadding_TooSmall(t *testing.T) {
	_, err := CenterCropWithPadding(newFrame(50, 80, red))
	require.ErrorIs(t, err, ErrInvalidImage)
}
