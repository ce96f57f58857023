package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/config"
	httpdelivery "github.com/aliskhannn/vocab-quiz/internal/delivery/http"
	"github.com/aliskhannn/vocab-quiz/internal/delivery/telegram"
	"github.com/aliskhannn/vocab-quiz/internal/service"
	"github.com/aliskhannn/vocab-quiz/internal/storage"
	"github.com/aliskhannn/vocab-quiz/web"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web quiz (and the Telegram bot when a token is set)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.HTTP.Addr, _ = cmd.Flags().GetString("addr")
		}

		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg, log)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (overrides http.addr)")
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	// The bot is authorized before anything is started so a bad token leaves nothing running.
	var bot *tgbotapi.BotAPI
	if cfg.Telegram.Enabled() {
		var err error
		if bot, err = newBot(cfg.Telegram, log); err != nil {
			return err
		}
	} else {
		log.Info("telegram bot disabled: TELEGRAM_API_TOKEN is not set")
	}

	loader, err := newLoader(cfg, log)
	if err != nil {
		return err
	}

	catalog := service.NewCatalog(loader, log)
	catalog.Start(ctx)

	sessions := storage.NewSessionStorage()
	quiz := service.NewQuizService(catalog, sessions, log)
	sweeper := service.NewSessionSweeper(sessions, cfg.Sessions.SweepSchedule, cfg.Sessions.IdleTTL, log)

	h := httpdelivery.NewHandler(quiz, catalog, web.Templates(), web.StaticFS(), cfg.Quiz.FeedbackDelay, log)
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	errCh := make(chan error, 3)

	go func() {
		log.Info("listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	go func() {
		if err := sweeper.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	if bot != nil {
		handler := telegram.NewHandler(bot, log, quiz, cfg.Quiz.FeedbackDelay)
		go func() {
			if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- fmt.Errorf("telegram: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err = <-errCh:
		log.Error("service failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		log.Error("http shutdown", zap.Error(serr))
	}

	return err
}

// newBotAPI is swapped in tests to avoid calling the Telegram API.
var newBotAPI = tgbotapi.NewBotAPI

func newBot(cfg config.Telegram, log *zap.Logger) (*tgbotapi.BotAPI, error) {
	bot, err := newBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	bot.Debug = cfg.Debug

	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "quiz", Description: "Start a new quiz"},
		{Command: "stop", Description: "Stop the current quiz"},
		{Command: "help", Description: "Help"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		log.Warn("failed to set bot commands", zap.Error(err))
	}

	log.Info("authorized on telegram", zap.String("account", bot.Self.UserName))
	return bot, nil
}
