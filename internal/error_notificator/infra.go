package error_notificator

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/go-utils/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramInfra шлёт алерты в админский чат
type TelegramInfra struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *logger.ZapLogger
}

func NewTelegramInfra(token string, chatID int64, log *logger.ZapLogger) (*TelegramInfra, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init notify bot: %w", err)
	}
	return &TelegramInfra{bot: bot, chatID: chatID, log: log}, nil
}

func (i *TelegramInfra) Notify(ctx context.Context, action string, err error, details string) error {
	_, sendErr := i.bot.Send(tgbotapi.NewMessage(i.chatID, formatAlert(action, err, details)))
	if sendErr != nil {
		i.log.Log(logger.LogEntry{Level: "error", Message: "[error_notificator] send fail", Error: sendErr})
		return sendErr
	}
	return nil
}

// LogInfra: когда бот не настроен, алерт просто пишется в лог
type LogInfra struct {
	log *logger.ZapLogger
}

func NewLogInfra(log *logger.ZapLogger) *LogInfra {
	return &LogInfra{log: log}
}

func (i *LogInfra) Notify(ctx context.Context, action string, err error, details string) error {
	i.log.Log(logger.LogEntry{
		Level:   "error",
		Message: formatAlert(action, err, details),
		Error:   err,
	})
	return nil
}

func formatAlert(action string, err error, details string) string {
	return fmt.Sprintf("❗ Translator error (%s)\n\nError: %v\n\nDetails: %s", action, err, details)
}
