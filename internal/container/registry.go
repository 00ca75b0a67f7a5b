package container

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"
)

// Logger defines the logging interface used by the Registry.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Entry is a named container as stored in the registry. Values returned by
// the Registry are snapshots; changing them has no effect on the registry.
type Entry struct {
	ID        int
	Name      string
	Container Container
}

// DefaultName is the label given to a container created without a name.
func DefaultName(id int) string {
	return "Container " + strconv.Itoa(id)
}

// record owns one live Container. mu serialises every read-modify-write of
// the container and name, plus the persistence and notification that follow.
type record struct {
	mu        sync.Mutex
	id        int
	name      string
	container Container
	removed   bool
}

func (rec *record) entryLocked() Entry {
	return Entry{ID: rec.id, Name: rec.name, Container: rec.container}
}

// Registry maps integer ids to named containers.
//
// Ids are issued from a counter that starts at 0 and is incremented before
// each assignment, so the first id is 1 and deleted ids are never reused.
// Unknown ids are never an error: reads report absence and writes are no-ops.
//
// Two lock domains are used. mu guards the structure (records, order and the
// counter); each record has its own mutex for mutations of that entry. A
// structural lock is never held while waiting on an entry lock.
//
// All public methods are thread-safe.
type Registry struct {
	mu      sync.RWMutex
	records map[int]*record
	order   []int
	nextID  int

	repo     Repository
	notifier Notifier
	logger   Logger
}

// NewRegistry creates an empty, memory-only registry.
func NewRegistry() *Registry {
	return &Registry{
		records: make(map[int]*record),
		logger:  noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	r.logger = logger
}

// SetRepository attaches snapshot persistence. Call before serving requests,
// then Load to restore saved state.
func (r *Registry) SetRepository(repo Repository) {
	r.repo = repo
}

// SetNotifier attaches a change listener. Call before serving requests.
func (r *Registry) SetNotifier(n Notifier) {
	r.notifier = n
}

// Load replaces the registry contents with the repository's snapshot.
// Without a repository it does nothing.
func (r *Registry) Load(ctx context.Context) error {
	if r.repo == nil {
		return nil
	}

	entries, err := r.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("loading containers: %w", err)
	}
	lastID, err := r.repo.LastID(ctx)
	if err != nil {
		return fmt.Errorf("loading id counter: %w", err)
	}

	records := make(map[int]*record, len(entries))
	order := make([]int, 0, len(entries))
	for _, e := range entries {
		records[e.ID] = &record{id: e.ID, name: e.Name, container: e.Container}
		order = append(order, e.ID)
		lastID = max(lastID, e.ID)
	}
	slices.Sort(order)

	r.mu.Lock()
	r.records = records
	r.order = order
	r.nextID = lastID
	r.mu.Unlock()

	r.logger.Info("container registry loaded", "count", len(entries), "last_id", lastID)
	return nil
}

// NextID increments the id counter and returns the new value.
func (r *Registry) NextID() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	return r.nextID
}

// Create stores a new container under a fresh id and returns the id.
// An empty name becomes DefaultName(id).
//
// A negative or NaN capacity returns ErrNegativeCapacity and consumes no id.
// A persistence failure is returned wrapped in ErrPersistence together with
// the id: the entry exists in memory regardless.
func (r *Registry) Create(ctx context.Context, name string, capacity, initialLevel float64) (int, error) {
	if !validCapacity(capacity) {
		return 0, ErrNegativeCapacity
	}

	r.mu.Lock()
	r.nextID++
	id := r.nextID
	if name == "" {
		name = DefaultName(id)
	}
	rec := &record{id: id, name: name, container: New(capacity, initialLevel)}
	// Taken before publishing the record so no one mutates it ahead of the
	// create being persisted.
	rec.mu.Lock()
	r.records[id] = rec
	r.order = append(r.order, id)
	r.mu.Unlock()
	defer rec.mu.Unlock()

	r.logger.Debug("container created", "id", id, "name", name, "capacity", capacity)
	err := r.commit(ctx, EventCreated, rec, nil)
	return id, err
}

// Get returns a snapshot of the entry, or false if id is unknown.
func (r *Registry) Get(id int) (Entry, bool) {
	rec := r.lookup(id)
	if rec == nil {
		return Entry{}, false
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.removed {
		return Entry{}, false
	}
	return rec.entryLocked(), true
}

// List returns snapshots of all entries in creation order.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	recs := make([]*record, 0, len(r.order))
	for _, id := range r.order {
		recs = append(recs, r.records[id])
	}
	r.mu.RUnlock()

	entries := make([]Entry, 0, len(recs))
	for _, rec := range recs {
		rec.mu.Lock()
		if !rec.removed {
			entries = append(entries, rec.entryLocked())
		}
		rec.mu.Unlock()
	}
	return entries
}

// Count returns the number of entries.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Rename overwrites the entry's name. Unknown ids are ignored.
func (r *Registry) Rename(ctx context.Context, id int, name string) error {
	rec := r.lookup(id)
	if rec == nil {
		return nil
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.removed {
		return nil
	}

	rec.name = name
	r.logger.Debug("container renamed", "id", id, "name", name)
	return r.commit(ctx, EventUpdated, rec, nil)
}

// Resize replaces the entry's container with New(capacity, currentLevel),
// so the level is kept and re-clamped. The name is untouched. Unknown ids are
// ignored; a negative or NaN capacity returns ErrNegativeCapacity.
func (r *Registry) Resize(ctx context.Context, id int, capacity float64) error {
	if !validCapacity(capacity) {
		return ErrNegativeCapacity
	}
	rec := r.lookup(id)
	if rec == nil {
		return nil
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.removed {
		return nil
	}

	rec.container = New(capacity, rec.container.Level())
	r.logger.Debug("container resized", "id", id, "capacity", capacity, "level", rec.container.Level())
	return r.commit(ctx, EventUpdated, rec, nil)
}

// Deposit adds amount to the entry's container. ok is false for an unknown id.
// The returned Transfer tells how much was actually added.
func (r *Registry) Deposit(ctx context.Context, id int, amount float64) (Transfer, bool, error) {
	return r.transfer(ctx, id, DirectionDeposit, amount)
}

// Withdraw removes amount from the entry's container. ok is false for an
// unknown id. The returned Transfer tells how much was actually removed.
func (r *Registry) Withdraw(ctx context.Context, id int, amount float64) (Transfer, bool, error) {
	return r.transfer(ctx, id, DirectionWithdraw, amount)
}

func (r *Registry) transfer(ctx context.Context, id int, dir Direction, amount float64) (Transfer, bool, error) {
	rec := r.lookup(id)
	if rec == nil {
		return Transfer{}, false, nil
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.removed {
		return Transfer{}, false, nil
	}

	t := Transfer{Direction: dir, Requested: amount}
	event := EventDeposited
	if dir == DirectionDeposit {
		t.Applied = rec.container.Deposit(amount)
	} else {
		t.Applied = rec.container.Withdraw(amount)
		event = EventWithdrawn
	}

	if t.Ignored() {
		return t, true, nil
	}
	r.logger.Debug("container transfer",
		"id", id,
		"direction", dir,
		"requested", t.Requested,
		"applied", t.Applied,
	)
	return t, true, r.commit(ctx, event, rec, &t)
}

// Delete removes the entry. Unknown ids are ignored.
func (r *Registry) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	rec, ok := r.records[id]
	if ok {
		delete(r.records, id)
		if i := slices.Index(r.order, id); i >= 0 {
			r.order = slices.Delete(r.order, i, i+1)
		}
	}
	r.mu.Unlock()
	if !ok {
		return nil
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.removed = true

	r.logger.Debug("container deleted", "id", id)
	return r.commit(ctx, EventDeleted, rec, nil)
}

// Clear removes every entry and resets the id counter to 0.
// It exists for tests and administration, not for user flows.
func (r *Registry) Clear(ctx context.Context) error {
	r.mu.Lock()
	recs := make([]*record, 0, len(r.order))
	for _, id := range r.order {
		recs = append(recs, r.records[id])
	}
	r.records = make(map[int]*record)
	r.order = nil
	r.nextID = 0
	r.mu.Unlock()

	removed := make([]Entry, 0, len(recs))
	for _, rec := range recs {
		rec.mu.Lock()
		rec.removed = true
		removed = append(removed, rec.entryLocked())
		rec.mu.Unlock()
	}

	var err error
	if r.repo != nil {
		if clearErr := r.repo.Clear(ctx); clearErr != nil {
			err = fmt.Errorf("%w: clearing containers: %w", ErrPersistence, clearErr)
			r.logger.Error("failed to clear persisted containers", "error", clearErr)
		}
	}
	if r.notifier != nil {
		now := time.Now()
		for _, e := range removed {
			r.notifier.Notify(ctx, Event{Type: EventDeleted, Entry: e, At: now})
		}
	}

	r.logger.Info("container registry cleared", "count", len(removed))
	return err
}

func (r *Registry) lookup(id int) *record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.records[id]
}

// commit persists and announces a change. Callers hold rec.mu.
func (r *Registry) commit(ctx context.Context, eventType EventType, rec *record, t *Transfer) error {
	entry := rec.entryLocked()

	var err error
	if r.repo != nil {
		if eventType == EventDeleted {
			err = r.repo.Delete(ctx, entry.ID)
		} else {
			err = r.repo.Save(ctx, entry)
		}
		if err != nil {
			r.logger.Error("failed to persist container",
				"id", entry.ID,
				"event", eventType,
				"error", err,
			)
			err = fmt.Errorf("%w: container %d: %w", ErrPersistence, entry.ID, err)
		}
	}

	if r.notifier != nil {
		r.notifier.Notify(ctx, Event{Type: eventType, Entry: entry, Transfer: t, At: time.Now()})
	}
	return err
}

func validCapacity(capacity float64) bool {
	return capacity >= 0
}
