// Package notify is the user-facing notification channel. Stores report
// operation outcomes here; the channel is fire-and-forget and never returns
// a value to the caller.
package notify

import (
	"sync"

	"github.com/marineaxis/marine-axis-admin/pkg/logger"
)

// Variant is the visual flavor of a notification.
type Variant string

const (
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
)

// Notification is one user-visible message.
type Notification struct {
	Title       string
	Description string
	Variant     Variant
}

// Notifier delivers notifications to the user.
type Notifier interface {
	Notify(n Notification)
}

// =============================================================================
// Implementations
// =============================================================================

// LogNotifier writes notifications to the structured log. It is the default
// sink when no UI-backed notifier is wired in.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.Nop()
	}
	return &LogNotifier{log: log.WithField("component", "notify")}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(msg Notification) {
	switch msg.Variant {
	case VariantError:
		n.log.Error(msg.Title, "description", msg.Description)
	case VariantWarning:
		n.log.Warn(msg.Title, "description", msg.Description)
	default:
		n.log.Info(msg.Title, "description", msg.Description)
	}
}

// Recorder keeps every notification in memory for assertions in tests.
type Recorder struct {
	mu   sync.Mutex
	seen []Notification
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify implements Notifier.
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, n)
}

// All returns a copy of the recorded notifications in arrival order.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.seen...)
}

// Last returns the most recent notification, or a zero value if none.
func (r *Recorder) Last() Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.seen) == 0 {
		return Notification{}
	}
	return r.seen[len(r.seen)-1]
}

// Reset discards everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = nil
}
