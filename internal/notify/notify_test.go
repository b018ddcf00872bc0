package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marineaxis/marine-axis-admin/pkg/logger"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	assert.Empty(t, r.All())
	assert.Equal(t, Notification{}, r.Last())

	r.Notify(Notification{Title: "Created", Variant: VariantSuccess})
	r.Notify(Notification{Title: "Failed", Variant: VariantError})

	all := r.All()
	assert.Len(t, all, 2)
	assert.Equal(t, "Created", all[0].Title)
	assert.Equal(t, "Failed", r.Last().Title)

	r.Reset()
	assert.Empty(t, r.All())
}

func TestLogNotifier_NilLogger(t *testing.T) {
	n := NewLogNotifier(nil)
	// Must not panic on any variant.
	n.Notify(Notification{Title: "ok", Variant: VariantSuccess})
	n.Notify(Notification{Title: "warn", Variant: VariantWarning})
	n.Notify(Notification{Title: "err", Variant: VariantError})
}

func TestLogNotifier_WithLogger(t *testing.T) {
	n := NewLogNotifier(logger.Nop())
	n.Notify(Notification{Title: "quiet", Description: "nothing to see", Variant: VariantError})
}
