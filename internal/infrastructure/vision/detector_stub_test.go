//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoCVDetector_Unavailable(t *testing.T) {
	_, err := NewGoCVDetector(0)
	require.ErrorIs(t, err, ErrBackendUnavailable)

	var d GoCVDetector
	_, err = d.Count(context.Background(), threeDisks(), 250)
	require.ErrorIs(t, err, ErrBackendUnavailable)
}
