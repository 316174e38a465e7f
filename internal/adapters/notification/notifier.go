// Package notification provides desktop notification utilities.
package notification

import (
	"github.com/gen2brain/beeep"
	"github.com/xvierd/doro/internal/config"
	"github.com/xvierd/doro/internal/domain"
	"github.com/xvierd/doro/internal/ports"
)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg  *config.NotificationConfig
	send func(title, message string) error
}

// Ensure Notifier implements ports.Notifier.
var _ ports.Notifier = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg, send: func(title, message string) error {
		return beeep.Notify(title, message, "")
	}}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}

	return n.send(title, message)
}

// NotifyCycle mirrors a finished-segment notification on the desktop.
func (n *Notifier) NotifyCycle(note domain.Notification) error {
	return n.Notify(iconFor(note.Kind)+" "+note.Title, note.Message)
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}

func iconFor(kind domain.NotificationKind) string {
	switch kind {
	case domain.NotificationFocusDone:
		return "☕"
	case domain.NotificationPlanComplete:
		return "🎉"
	default:
		return "🍅"
	}
}
