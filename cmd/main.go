package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pip-counter/config"
	telegram "pip-counter/internal/api"
	httpHandler "pip-counter/internal/api/http"
	app "pip-counter/internal/application"
	"pip-counter/internal/container"
	"pip-counter/internal/domain/port"
	"pip-counter/internal/infrastructure/storage"
	"pip-counter/internal/infrastructure/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.TelegramToken == "" && cfg.HTTPAddr == "" {
		log.Fatal("TELEGRAM_TOKEN or HTTP_ADDR is required")
	}

	detector, err := newDetector(cfg)
	if err != nil {
		log.Fatalf("Failed to create detector: %v", err)
	}

	// Создаём хранилище пользователей
	userRepo := storage.NewMemoryUserRepository(cfg.Slider.Default)

	// Собираем сервисы приложения
	appContainer := container.New(userRepo, detector, container.Options{
		Slider:     cfg.Slider,
		Counting:   app.CountingOptions{Format: cfg.OutputFormat},
		CenterCrop: cfg.CenterCrop,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Detector: %s, reference hue: %d", detector.Name(), cfg.ReferenceHue)

	errs := make(chan error, 2)

	if cfg.HTTPAddr != "" {
		handler := httpHandler.NewHandler(appContainer.CountingService, cfg.Slider)
		srv := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           httpHandler.NewRouter(handler),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			log.Printf("🚀 HTTP server listening on %s", cfg.HTTPAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- err
			}
		}()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	if cfg.TelegramToken != "" {
		// Создаём бота
		bot, err := telegram.NewBot(cfg.TelegramToken, appContainer.UserService, appContainer.CountingService)
		if err != nil {
			log.Fatalf("Failed to create bot: %v", err)
		}

		go func() {
			log.Println("Bot is running...")
			if err := bot.Run(ctx); err != nil {
				errs <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		log.Println("Shutting down...")
	case err := <-errs:
		log.Fatalf("Server error: %v", err)
	}
}

func newDetector(cfg *config.Config) (port.PipDetector, error) {
	if cfg.Backend == config.BackendGoCV {
		return vision.NewGoCVDetector(cfg.ReferenceHue)
	}
	return vision.NewNativeDetector(cfg.ReferenceHue), nil
}
