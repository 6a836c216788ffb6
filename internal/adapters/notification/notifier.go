// Package notification provides desktop notification dispatch.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/arkadyv/bellhop/internal/config"
	"github.com/arkadyv/bellhop/internal/ports"
)

// Notifier sends desktop notifications gated by the user's permission
// setting.
type Notifier struct {
	cfg *config.NotificationConfig
}

var _ ports.Notifier = (*Notifier)(nil)

// New creates a notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

// Send displays a desktop notification when permission is granted.
// Denied or undecided permission silently drops the notification.
func (n *Notifier) Send(title, body string) error {
	if !n.IsEnabled() {
		return nil
	}
	return beeep.Notify(title, body, "")
}

// IsEnabled reports whether notifications will actually be dispatched.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Permission == config.PermissionGranted
}
