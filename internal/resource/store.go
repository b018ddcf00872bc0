// Package resource implements the generic data-access layer behind the admin
// screens: paginated, filtered collection reads and create/update/delete
// mutations against a transport, with per-operation busy flags and
// notification-based failure reporting.
package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/marineaxis/marine-axis-admin/infra/marineaxis"
	"github.com/marineaxis/marine-axis-admin/internal/notify"
	"github.com/marineaxis/marine-axis-admin/pkg/logger"
)

// Common errors.
var (
	ErrClosed        = errors.New("resource store is closed")
	ErrDeleteBlocked = errors.New("delete blocked by guard")
)

// Transport is the remote contract a store drives. The production
// implementation is the Marine-Axis API client; tests use the in-memory
// fixture.
type Transport interface {
	List(ctx context.Context, resource string, page, pageSize int, filters map[string]string) (marineaxis.ListResult, error)
	Get(ctx context.Context, resource, id string) (json.RawMessage, error)
	Create(ctx context.Context, resource string, payload interface{}) (json.RawMessage, error)
	Update(ctx context.Context, resource, id string, patch interface{}) (json.RawMessage, error)
	Delete(ctx context.Context, resource, id string) error
}

// Config configures a Store.
type Config[T any] struct {
	// Resource is the collection name, e.g. "admins" or "jobs".
	Resource string

	// Label is the singular human name used in notifications. Defaults to
	// Resource.
	Label string

	// Transport performs the remote calls. Required.
	Transport Transport

	// Identify extracts the server-assigned id of an item. Required.
	Identify func(T) string

	// Notifier receives success and failure notifications. Defaults to a
	// discarding sink.
	Notifier notify.Notifier

	// Logger receives diagnostic output. Optional.
	Logger *logger.Logger

	// PageSize is the collection page size. Defaults to 20.
	PageSize int

	// DeleteGuard, when set, is consulted before any delete call, resolving
	// the target through the transport when it is not on the current page.
	// A non-nil error blocks the delete: the transport delete is never
	// invoked and the error message is surfaced as a warning notification.
	DeleteGuard func(T) error

	// AppendOnCreate switches Create from the refetch policy (default,
	// server-assigned fields stay authoritative) to appending the returned
	// item locally.
	AppendOnCreate bool
}

// Flags is a snapshot of the per-operation busy flags.
type Flags struct {
	Loading  bool
	Creating bool
	Updating bool
	Deleting bool
}

// Store is a generic CRUD store for one named collection. A Store owns its
// collection state for its whole lifetime; independent stores never share
// state. All operations are safe for concurrent use, although the intended
// caller is a UI that triggers one operation at a time and disables triggers
// while the matching flag is up.
type Store[T any] struct {
	cfg      Config[T]
	notifier notify.Notifier
	log      *logger.Logger

	mu       sync.Mutex
	closed   bool
	items    []T
	total    int
	page     int
	pageSize int
	filters  Filters
	flags    Flags
}

// NewStore creates a store bound to one resource.
func NewStore[T any](cfg Config[T]) (*Store[T], error) {
	if cfg.Resource == "" {
		return nil, fmt.Errorf("resource name is required")
	}
	if cfg.Transport == nil {
		return nil, fmt.Errorf("transport is required")
	}
	if cfg.Identify == nil {
		return nil, fmt.Errorf("identify func is required")
	}
	if cfg.Label == "" {
		cfg.Label = cfg.Resource
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}

	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notify.NewLogNotifier(nil)
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Store[T]{
		cfg:      cfg,
		notifier: notifier,
		log:      log.WithField("resource", cfg.Resource),
		page:     1,
		pageSize: cfg.PageSize,
		filters:  Filters{},
	}, nil
}

// Close marks the store dead. Late-arriving responses from in-flight
// requests are discarded instead of mutating a store nothing renders.
func (s *Store[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// =============================================================================
// State accessors
// =============================================================================

// Items returns a copy of the current page, in server order.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.items...)
}

// Total returns the server-reported collection size.
func (s *Store[T]) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Page returns the current page number, starting at 1.
func (s *Store[T]) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// PageSize returns the page size.
func (s *Store[T]) PageSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageSize
}

// Filters returns a copy of the current filter mapping.
func (s *Store[T]) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.Clone()
}

// Flags returns a snapshot of the busy flags.
func (s *Store[T]) Flags() Flags {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags
}

// =============================================================================
// Collection reads
// =============================================================================

// Fetch reads the current page with the current filters. On failure the
// previous items stay untouched: stale data beats a blank screen.
func (s *Store[T]) Fetch(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.flags.Loading = true
	page, pageSize := s.page, s.pageSize
	filters := s.filters.Clone()
	s.mu.Unlock()

	defer s.clearFlag(func(f *Flags) { f.Loading = false })

	result, err := s.cfg.Transport.List(ctx, s.cfg.Resource, page, pageSize, filters)
	if err != nil {
		s.notifyError("Failed to load "+s.cfg.Resource, err)
		return err
	}

	items, err := decodeItems[T](result.Items)
	if err != nil {
		s.notifyError("Failed to load "+s.cfg.Resource, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.items = items
	s.total = result.Total
	return nil
}

// SetFilters merges a partial filter mapping into the current one, resets to
// the first page, and fetches exactly once.
func (s *Store[T]) SetFilters(ctx context.Context, partial Filters) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.filters = s.filters.Merge(partial)
	s.page = 1
	s.mu.Unlock()

	return s.Fetch(ctx)
}

// SetPage moves to the given page and fetches it.
func (s *Store[T]) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.page = page
	s.mu.Unlock()

	return s.Fetch(ctx)
}

// =============================================================================
// Mutations
// =============================================================================

// Create inserts a new item. Under the default refetch policy the current
// page is re-read after a successful create so server-assigned fields (id,
// timestamps) are authoritative; with AppendOnCreate the returned item is
// appended locally and total incremented.
func (s *Store[T]) Create(ctx context.Context, payload interface{}) error {
	if err := s.raiseFlag(func(f *Flags) { f.Creating = true }); err != nil {
		return err
	}
	defer s.clearFlag(func(f *Flags) { f.Creating = false })

	data, err := s.cfg.Transport.Create(ctx, s.cfg.Resource, payload)
	if err != nil {
		s.notifyError("Failed to create "+s.cfg.Label, err)
		return err
	}

	if s.cfg.AppendOnCreate {
		var item T
		if err := json.Unmarshal(data, &item); err != nil {
			s.notifyError("Failed to create "+s.cfg.Label, err)
			return fmt.Errorf("decode created %s: %w", s.cfg.Label, err)
		}
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return ErrClosed
		}
		s.items = append(s.items, item)
		s.total++
		s.mu.Unlock()
	} else if err := s.Fetch(ctx); err != nil {
		// The create itself succeeded; the follow-up read already surfaced
		// its own notification.
		return err
	}

	s.notifySuccess("Created", fmt.Sprintf("The %s was created successfully.", s.cfg.Label))
	return nil
}

// Update patches the item with the given id and replaces it in place,
// preserving its position on the page.
func (s *Store[T]) Update(ctx context.Context, id string, patch interface{}) error {
	if err := s.raiseFlag(func(f *Flags) { f.Updating = true }); err != nil {
		return err
	}
	defer s.clearFlag(func(f *Flags) { f.Updating = false })

	data, err := s.cfg.Transport.Update(ctx, s.cfg.Resource, id, patch)
	if err != nil {
		s.notifyError("Failed to update "+s.cfg.Label, err)
		return err
	}

	var updated T
	if err := json.Unmarshal(data, &updated); err != nil {
		s.notifyError("Failed to update "+s.cfg.Label, err)
		return fmt.Errorf("decode updated %s: %w", s.cfg.Label, err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	for i, item := range s.items {
		if s.cfg.Identify(item) == id {
			s.items[i] = updated
			break
		}
	}
	s.mu.Unlock()

	s.notifySuccess("Updated", fmt.Sprintf("The %s was updated successfully.", s.cfg.Label))
	return nil
}

// Delete removes the item with the given id. When a DeleteGuard is
// configured and rejects the item, the transport delete is never called and
// the guard's message is surfaced as a warning. A target outside the current
// page is resolved through the transport first so the guard always judges
// the actual item.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	if err := s.raiseFlag(func(f *Flags) { f.Deleting = true }); err != nil {
		return err
	}
	defer s.clearFlag(func(f *Flags) { f.Deleting = false })

	if s.cfg.DeleteGuard != nil {
		item, ok := s.findByID(id)
		if !ok {
			data, err := s.cfg.Transport.Get(ctx, s.cfg.Resource, id)
			if err != nil {
				s.notifyError("Failed to delete "+s.cfg.Label, err)
				return err
			}
			if err := json.Unmarshal(data, &item); err != nil {
				s.notifyError("Failed to delete "+s.cfg.Label, err)
				return fmt.Errorf("decode %s: %w", s.cfg.Label, err)
			}
		}
		if guardErr := s.cfg.DeleteGuard(item); guardErr != nil {
			s.notifier.Notify(notify.Notification{
				Title:       "Delete blocked",
				Description: guardErr.Error(),
				Variant:     notify.VariantWarning,
			})
			return fmt.Errorf("%w: %v", ErrDeleteBlocked, guardErr)
		}
	}

	if err := s.cfg.Transport.Delete(ctx, s.cfg.Resource, id); err != nil {
		s.notifyError("Failed to delete "+s.cfg.Label, err)
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	for i, item := range s.items {
		if s.cfg.Identify(item) == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	if s.total > 0 {
		s.total--
	}
	s.mu.Unlock()

	s.notifySuccess("Deleted", fmt.Sprintf("The %s was deleted successfully.", s.cfg.Label))
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Store[T]) raiseFlag(set func(*Flags)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	set(&s.flags)
	return nil
}

// clearFlag lowers a busy flag unconditionally, success or failure. Flags on
// a closed store are still lowered so a lingering reference never reports a
// stuck in-flight operation.
func (s *Store[T]) clearFlag(clear func(*Flags)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(&s.flags)
}

func (s *Store[T]) findByID(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if s.cfg.Identify(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (s *Store[T]) notifySuccess(title, description string) {
	s.notifier.Notify(notify.Notification{
		Title:       title,
		Description: description,
		Variant:     notify.VariantSuccess,
	})
}

func (s *Store[T]) notifyError(title string, err error) {
	s.log.WithError(err).Warn("operation failed")
	s.notifier.Notify(notify.Notification{
		Title:       title,
		Description: marineaxis.UserMessage(err),
		Variant:     notify.VariantError,
	})
}

func decodeItems[T any](raw json.RawMessage) ([]T, error) {
	if len(raw) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	return items, nil
}
