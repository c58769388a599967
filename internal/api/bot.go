package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "pip-counter/internal/application"
	"pip-counter/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я помогаю вести счёт в домино.

📸 Отправьте мне фото костяшек, и я посчитаю на нём пипсы нужного цвета.

📋 Команды:
/threshold — изменить порог оттенка
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте фото костяшек (можно файлом)
2️⃣ Бот найдёт пипсы нужного цвета
3️⃣ Вы получите фото с разметкой и общий счёт

💡 Рекомендации:
• Снимайте при хорошем освещении
• Держите камеру прямо над костяшками
• Если пипсы не находятся, попробуйте другой порог: /threshold 40

📋 Команды:
/threshold [число] — порог оттенка
/cancel — отменить операцию`

	msgAwaitingThreshold = "🎚 Отправьте новый порог оттенка: целое число от %d до %d (сейчас %d)."
	msgThresholdSaved    = "✅ Порог оттенка: %d."
	msgInvalidThreshold  = "⚠️ Порог должен быть целым числом от %d до %d с шагом %d."
	msgCancelled         = "❌ Операция отменена. Отправьте фото для подсчёта."
	msgSendPhoto         = "📸 Пожалуйста, отправьте фото костяшек для подсчёта."
	msgUnknownCommand    = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing        = "⏳ Считаю пипсы..."
	msgProcessingError   = "⚠️ Не удалось обработать изображение. Попробуйте сделать другое фото."
	msgNotAnImage        = "⚠️ Этот файл не похож на изображение."
)

// Bot представляет Telegram-бота
type Bot struct {
	api     *tgbotapi.BotAPI
	users   *app.UserService
	counter *app.CountingService
	client  *http.Client
}

// NewBot создаёт нового бота
func NewBot(token string, users *app.UserService, counter *app.CountingService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:     api,
		users:   users,
		counter: counter,
		client:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}

			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.users.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.Printf("Error getting user: %v", err)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		// Берём файл с максимальным разрешением
		b.handleImage(ctx, msg, msg.Photo[len(msg.Photo)-1].FileID)
		return
	}

	// Изображение, отправленное файлом, приходит без сжатия
	if msg.Document != nil {
		if !isImageDocument(msg.Document) {
			b.sendMessage(msg.Chat.ID, msgNotAnImage)
			return
		}
		b.handleImage(ctx, msg, msg.Document.FileID)
		return
	}

	if user.State == entity.StateAwaitingThreshold {
		b.applyThreshold(ctx, msg, msg.Text)
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	switch msg.Command() {
	case "start":
		b.users.Cancel(ctx, user.ID, user.ChatID)
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "threshold":
		if args := strings.TrimSpace(msg.CommandArguments()); args != "" {
			b.applyThreshold(ctx, msg, args)
			return
		}
		slider := b.users.Slider()
		b.users.AwaitThreshold(ctx, user.ID, user.ChatID)
		b.sendMessage(msg.Chat.ID, fmt.Sprintf(msgAwaitingThreshold, slider.Min, slider.Max, user.HueThreshold))

	case "cancel":
		b.users.Cancel(ctx, user.ID, user.ChatID)
		b.sendMessage(msg.Chat.ID, msgCancelled)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// applyThreshold разбирает и сохраняет порог оттенка
func (b *Bot) applyThreshold(ctx context.Context, msg *tgbotapi.Message, text string) {
	slider := b.users.Slider()

	threshold, err := parseThreshold(text, slider)
	if err != nil {
		b.sendMessage(msg.Chat.ID, fmt.Sprintf(msgInvalidThreshold, slider.Min, slider.Max, slider.Step))
		return
	}

	if _, err := b.users.SetThreshold(ctx, msg.From.ID, msg.Chat.ID, threshold); err != nil {
		log.Printf("Error saving threshold: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	b.sendMessage(msg.Chat.ID, fmt.Sprintf(msgThresholdSaved, threshold))
}

// handleImage скачивает изображение, считает пипсы и отправляет результат
func (b *Bot) handleImage(ctx context.Context, msg *tgbotapi.Message, fileID string) {
	// Устанавливаем состояние "обработка"
	b.users.SetState(ctx, msg.From.ID, msg.Chat.ID, entity.StateProcessing)
	defer b.users.Cancel(ctx, msg.From.ID, msg.Chat.ID)

	b.sendMessage(msg.Chat.ID, msgProcessing)

	imageData, err := b.downloadFile(ctx, fileID)
	if err != nil {
		log.Printf("Error downloading image: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	out, err := b.counter.Count(ctx, msg.From.ID, msg.Chat.ID, imageData)
	if err != nil {
		log.Printf("Error counting pips: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}
	if out == nil {
		b.sendMessage(msg.Chat.ID, msgSendPhoto)
		return
	}

	photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{Name: out.Filename, Bytes: out.Annotated})
	photo.Caption = out.Result.Caption
	if _, err := b.api.Send(photo); err != nil {
		log.Printf("Error sending photo: %v", err)
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// parseThreshold разбирает порог из текста и проверяет его по ползунку
func parseThreshold(text string, slider entity.ThresholdSlider) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, errors.Join(entity.ErrInvalidThreshold, err)
	}
	if err := slider.Validate(v); err != nil {
		return 0, err
	}
	return v, nil
}

// isImageDocument проверяет, что документ — изображение
func isImageDocument(doc *tgbotapi.Document) bool {
	return doc != nil && strings.HasPrefix(doc.MimeType, "image/")
}
