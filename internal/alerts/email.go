package alerts

import (
	"StorWatch/internal/notifications"
	"StorWatch/internal/pkg/config"
)

// NewEmailNotifier creates a new email notifier that implements NotificationManager
func NewEmailNotifier(cfg *config.Config) NotificationManager {
	return notifications.NewEmailManager(cfg)
}
