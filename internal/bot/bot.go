package bot

import (
	"context"
	"fmt"
	"net/http"
	"ortus-club/internal/models/config"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"
)

const (
	// таймаут HTTP клиента больше таймаута long polling
	apiTimeout     = 40 * time.Second
	pollingTimeout = 30
	outboxSize     = 100
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot рассылает уведомления администраторам клуба (ADMIN_IDS)
type Bot struct {
	api      *tgbotapi.BotAPI
	sender   sender
	adminIDs []int64
	loc      *time.Location
	outbox   chan string
	logger   *zap.Logger
}

func NewBot(cfg config.BotConfig, loc *time.Location, logger *zap.Logger) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("BOT_TOKEN не установлен в конфигурации")
	}

	api, err := tgbotapi.NewBotAPIWithClient(cfg.Token, &http.Client{Timeout: apiTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	api.Debug = cfg.Debug

	logger.Info("бот инициализирован",
		zap.String("username", api.Self.UserName),
		zap.Bool("debug", cfg.Debug),
		zap.Int64s("admins", cfg.AdminIDs),
	)

	return &Bot{
		api:      api,
		sender:   api,
		adminIDs: cfg.AdminIDs,
		loc:      loc,
		outbox:   make(chan string, outboxSize),
		logger:   logger,
	}, nil
}

// Start слушает входящие сообщения и рассылает очередь уведомлений до отмены ctx.
// Бот отвечает только на /start и /id, чтобы админ мог узнать свой chat id.
func (b *Bot) Start(ctx context.Context) error {
	go b.deliver(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollingTimeout
	updates, err := b.api.GetUpdatesChan(u)
	if err != nil {
		return err
	}

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
			b.handleMessage(update.Message)
		}
	}
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	switch strings.TrimSpace(message.Text) {
	case "/start":
		b.sendMessage(message.Chat.ID, "👋 Это служебный бот ORTUS. Здесь приходят уведомления об отчётах и тренировках.")
	case "/id":
		b.sendMessage(message.Chat.ID, fmt.Sprintf("Ваш chat id: `%d`", message.Chat.ID))
	}
}

func (b *Bot) sendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	_, err := b.sender.Send(msg)
	return err
}

func (b *Bot) broadcast(text string) {
	for _, id := range b.adminIDs {
		if err := b.sendMessage(id, text); err != nil {
			b.logger.Warn("не удалось отправить уведомление", zap.Int64("chat_id", id), zap.Error(err))
		}
	}
}
