//go:build gocv
// +build gocv

package vision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoCVDetector_ThreeDisks(t *testing.T) {
	d, err := NewGoCVDetector(0)
	require.NoError(t, err)

	result, err := d.Count(context.Background(), threeDisks(), 250)
	require.NoError(t, err)
	require.Equal(t, 3, result.Count)
	require.Equal(t, "Total pip count is: 3", result.Caption)
	require.Equal(t, FrameSize, result.Annotated.Bounds().Dx())

	for i, det := range result.Detections {
		require.Equal(t, i+1, det.Index)
	}
}

func TestGoCVDetector_NilImage(t *testing.T) {
	d, err := NewGoCVDetector(0)
	require.NoError(t, err)

	result, err := d.Count(context.Background(), nil, 250)
	require.NoError(t, err)
	require.Nil(t, result)
}
