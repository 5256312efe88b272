// internal/app/notification_service.go
package app

import (
	"github.com/sirupsen/logrus"

	"homework_status_bot/internal/domain/failure"
	domainTelegram "homework_status_bot/internal/domain/telegram"
)

// Outcome is the result of a delivery attempt.
type Outcome int

const (
	Delivered Outcome = iota + 1
	Dropped
)

func (o Outcome) String() string {
	switch o {
	case Delivered:
		return "delivered"
	case Dropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Notifier sends text to the single configured chat.
// It never returns an error: failed deliveries are logged and dropped.
type Notifier struct {
	telegramClient domainTelegram.Client
	chatID         string
	logger         *logrus.Entry
}

func NewNotifier(tc domainTelegram.Client, chatID string, logger *logrus.Entry) *Notifier {
	return &Notifier{
		telegramClient: tc,
		chatID:         chatID,
		logger:         logger,
	}
}

// Notify delivers message to the chat.
func (n *Notifier) Notify(message string) Outcome {
	if err := n.telegramClient.SendMessage(n.chatID, message, nil); err != nil {
		n.logger.WithError(failure.Wrap(failure.KindNotificationDeliveryFailure, "app.Notify", err)).
			WithField("kind", failure.KindNotificationDeliveryFailure).
			Errorf("Telegram message not sent: %s", message)
		return Dropped
	}
	n.logger.Infof("Telegram message sent: %s", message)
	return Delivered
}
