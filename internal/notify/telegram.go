// Package notify pushes alerts about high-priority complaints to an admin
// Telegram chat. Alerting is best-effort and optional: without a configured
// bot token the notifier is a no-op.
package notify

import (
	"fmt"
	"os"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"sauti/backend/internal/logger"
	"sauti/backend/internal/models"
)

type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *logrus.Entry
}

// NewTelegramNotifier reads TELEGRAM_BOT_TOKEN and TELEGRAM_ALERT_CHAT_ID
// from the environment. Both unset means alerting is disabled and a nil
// notifier is returned without error.
func NewTelegramNotifier(log *logger.Logger) (*TelegramNotifier, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatIDStr := os.Getenv("TELEGRAM_ALERT_CHAT_ID")
	if token == "" || chatIDStr == "" {
		return nil, nil
	}

	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_ALERT_CHAT_ID: %w", err)
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}

	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		log:    log.WithComponent("notify"),
	}, nil
}

// AlertCritical posts a summary of a critical-urgency complaint to the admin
// chat. Safe to call on a nil notifier.
func (n *TelegramNotifier) AlertCritical(complaint *models.Complaint) {
	if n == nil {
		return
	}
	if complaint.Urgency != models.UrgencyCritical {
		return
	}

	text := fmt.Sprintf("🚨 *Critical complaint* (%s)\nCounty: %s\nCategory: %s\n\n%s",
		complaint.ID, complaint.County, complaint.Category, complaint.Summary)
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := n.bot.Send(msg); err != nil {
		n.log.WithField("complaint_id", complaint.ID).WithError(err).Error("failed to send Telegram alert")
	}
}
