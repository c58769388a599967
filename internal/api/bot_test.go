package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"pip-counter/internal/domain/entity"
)

func TestParseThreshold(t *testing.T) {
	slider := entity.DefaultThresholdSlider()

	v, err := parseThreshold(" 40 ", slider)
	require.NoError(t, err)
	require.Equal(t, 40, v)

	_, err = parseThreshold("abc", slider)
	require.ErrorIs(t, err, entity.ErrInvalidThreshold)

	_, err = parseThreshold("501", slider)
	require.ErrorIs(t, err, entity.ErrInvalidThreshold)
}

func TestIsImageDocument(t *testing.T) {
	require.True(t, isImageDocument(&tgbotapi.Document{MimeType: "image/png"}))
	require.True(t, isImageDocument(&tgbotapi.Document{MimeType: "image/heic"}))
	require.False(t, isImageDocument(&tgbotapi.Document{MimeType: "application/pdf"}))
	require.False(t, isImageDocument(nil))
}
