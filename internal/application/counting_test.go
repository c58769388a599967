package app

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"pip-counter/internal/domain/entity"
	"pip-counter/internal/infrastructure/vision"
)

type stubDetector struct {
	result    *entity.PipResult
	err       error
	threshold int
	calls     int
}

func (d *stubDetector) Count(ctx context.Context, img image.Image, hueThreshold int) (*entity.PipResult, error) {
	d.calls++
	d.threshold = hueThreshold
	return d.result, d.err
}

func (d *stubDetector) Name() string {
	return "stub"
}

func diskImage() *image.NRGBA {
	img := imaging.New(vision.FrameSize, vision.FrameSize, color.Black)
	red := color.NRGBA{R: 255, A: 255}
	for _, c := range []image.Point{{100, 100}, {250, 300}, {400, 150}} {
		for y := c.Y - 13; y <= c.Y+13; y++ {
			for x := c.X - 13; x <= c.X+13; x++ {
				if (x-c.X)*(x-c.X)+(y-c.Y)*(y-c.Y) <= 169 {
					img.SetNRGBA(x, y, red)
				}
			}
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCountingService_CountsWithUserThreshold(t *testing.T) {
	users := newUserService()
	svc := NewCountingService(users, vision.NewNativeDetector(0), CountingOptions{Format: imaging.PNG})
	ctx := context.Background()

	out, err := svc.Count(ctx, 1, 10, encodePNG(t, diskImage()))
	require.NoError(t, err)
	require.Equal(t, 3, out.Result.Count)
	require.Equal(t, "image/png", out.MimeType)
	require.Equal(t, "pips.png", out.Filename)

	decoded, err := png.Decode(bytes.NewReader(out.Annotated))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, vision.FrameSize, vision.FrameSize), decoded.Bounds())
}

func TestCountingService_UsesStoredThreshold(t *testing.T) {
	users := newUserService()
	det := &stubDetector{result: &entity.PipResult{Annotated: image.NewNRGBA(image.Rect(0, 0, 4, 4))}}
	svc := NewCountingService(users, det, CountingOptions{Format: imaging.JPEG})
	ctx := context.Background()

	_, err := users.SetThreshold(ctx, 5, 50, 42)
	require.NoError(t, err)

	out, err := svc.Count(ctx, 5, 50, encodePNG(t, diskImage()))
	require.NoError(t, err)
	require.Equal(t, 42, det.threshold)
	require.Equal(t, "image/jpeg", out.MimeType)
	require.Equal(t, "pips.jpg", out.Filename)
}

func TestCountingService_NoImage(t *testing.T) {
	svc := NewCountingService(newUserService(), vision.NewNativeDetector(0), CountingOptions{})

	_, err := svc.CountBytes(context.Background(), nil, 250)
	require.ErrorIs(t, err, ErrNoImage)
}

func TestCountingService_NilImageHasNoResult(t *testing.T) {
	svc := NewCountingService(newUserService(), vision.NewNativeDetector(0), CountingOptions{})

	out, err := svc.CountImage(context.Background(), nil, 250)
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestCountingService_TypedNilImageHasNoResult(t *testing.T) {
	det := &stubDetector{}
	svc := NewCountingService(newUserService(), det, CountingOptions{})

	var img *image.NRGBA
	out, err := svc.CountImage(context.Background(), img, 250)
	require.NoError(t, err)
	require.Nil(t, out)
	require.Zero(t, det.calls)
}

func TestCountingService_DecodesBMPAndTIFF(t *testing.T) {
	svc := NewCountingService(newUserService(), vision.NewNativeDetector(0), CountingOptions{Format: imaging.PNG})

	var bmpData, tiffData bytes.Buffer
	require.NoError(t, bmp.Encode(&bmpData, diskImage()))
	require.NoError(t, tiff.Encode(&tiffData, diskImage(), nil))

	for _, data := range [][]byte{bmpData.Bytes(), tiffData.Bytes()} {
		out, err := svc.CountBytes(context.Background(), data, 250)
		require.NoError(t, err)
		require.Equal(t, 3, out.Result.Count)
	}
}

func TestCountingService_DecodeError(t *testing.T) {
	svc := NewCountingService(newUserService(), vision.NewNativeDetector(0), CountingOptions{})

	_, err := svc.CountBytes(context.Background(), []byte("not an image"), 250)
	require.ErrorIs(t, err, entity.ErrInvalidImage)
}

func TestCountingService_InvalidThreshold(t *testing.T) {
	det := &stubDetector{}
	svc := NewCountingService(newUserService(), det, CountingOptions{})

	_, err := svc.CountImage(context.Background(), diskImage(), 600)
	require.ErrorIs(t, err, entity.ErrInvalidThreshold)
	require.Zero(t, det.calls)
}

func TestCountingService_DetectorNotConfigured(t *testing.T) {
	svc := NewCountingService(newUserService(), nil, CountingOptions{})

	_, err := svc.CountImage(context.Background(), diskImage(), 250)
	require.ErrorIs(t, err, ErrDetectorNotConfigured)
}

func TestCountingService_DetectorError(t *testing.T) {
	det := &stubDetector{err: vision.ErrBackendUnavailable}
	svc := NewCountingService(newUserService(), det, CountingOptions{})

	_, err := svc.CountImage(context.Background(), diskImage(), 250)
	require.ErrorIs(t, err, vision.ErrBackendUnavailable)
}

func TestCountingService_Preprocess(t *testing.T) {
	det := &stubDetector{result: &entity.PipResult{Annotated: image.NewNRGBA(image.Rect(0, 0, 4, 4))}}
	called := false
	opts := CountingOptions{
		Format: imaging.PNG,
		Preprocess: func(img image.Image) (image.Image, error) {
			called = true
			return vision.CenterCropWithPadding(img)
		},
	}
	svc := NewCountingService(newUserService(), det, opts)

	_, err := svc.CountImage(context.Background(), diskImage(), 250)
	require.NoError(t, err)
	require.True(t, called)

	failing := NewCountingService(newUserService(), det, CountingOptions{
		Preprocess: func(image.Image) (image.Image, error) { return nil, errors.New("boom") },
	})
	_, err = failing.CountImage(context.Background(), diskImage(), 250)
	require.Error(t, err)
}
