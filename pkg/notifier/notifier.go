// Package notifier pushes booking events to linked Telegram chats.
// Notifications are best-effort: a delivery failure is logged and
// never fails the booking operation that triggered it.
package notifier

import (
	"context"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v3"

	"driveshare/pkg/logger"
	"driveshare/pkg/models"
	"driveshare/service"
)

type TelegramNotifier struct {
	bot *tele.Bot
	log logger.ILogger
}

// New builds a Telegram notifier. When token is empty a no-op notifier
// is returned so callers never have to branch on configuration.
func New(token string, log logger.ILogger) (service.Notifier, error) {
	if token == "" {
		log.Info("no telegram token configured, booking notifications disabled")
		return service.NopNotifier(), nil
	}

	bot, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}

	return &TelegramNotifier{bot: bot, log: log}, nil
}

func (n *TelegramNotifier) OrderCreated(_ context.Context, order *models.Order, car *models.Car, owner *models.User) {
	if owner.TelegramChatID == nil {
		return
	}

	msg := fmt.Sprintf(
		"New booking request for your %s %s\n%s → %s (%d days, %.2f)\nConfirm or cancel it in your dashboard.",
		car.Brand, car.Model,
		order.PickupDate, order.ReturnDate,
		order.TotalDays, order.TotalAmount,
	)
	n.send(*owner.TelegramChatID, msg)
}

func (n *TelegramNotifier) OrderStatusChanged(_ context.Context, order *models.Order, car *models.Car, renter *models.User) {
	if renter.TelegramChatID == nil {
		return
	}

	msg := fmt.Sprintf(
		"Your booking of the %s %s (%s → %s) is now %s.",
		car.Brand, car.Model,
		order.PickupDate, order.ReturnDate,
		order.Status,
	)
	n.send(*renter.TelegramChatID, msg)
}

func (n *TelegramNotifier) send(chatID int64, msg string) {
	if _, err := n.bot.Send(tele.ChatID(chatID), msg); err != nil {
		n.log.Error("failed to send telegram notification", logger.Int64("chat_id", chatID), logger.Error(err))
	}
}
