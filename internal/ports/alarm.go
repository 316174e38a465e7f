package ports

import "github.com/xvierd/doro/internal/domain"

// Alarm plays the looping finish sound.
// This is a driven port (implemented by adapters).
type Alarm interface {
	// Play stops any current playback and loops the file at path,
	// falling back to the built-in tone when path is empty or unusable.
	Play(path string)

	// Stop halts playback. Calling it while silent is a no-op.
	Stop()
}

// Notifier sends desktop notifications.
// This is a driven port (implemented by adapters).
type Notifier interface {
	// NotifyCycle mirrors a finished-segment notification.
	NotifyCycle(note domain.Notification) error
}
