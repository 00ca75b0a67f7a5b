package audit

import (
	"context"

	"github.com/mehutonkka/ohtuvarasto/internal/container"
)

// defaultBuffer is the queue size used when NewRecorder gets a non-positive one.
const defaultBuffer = 256

// Logger defines the logging interface used by the Recorder.
type Logger interface {
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Recorder turns registry events into audit logs.
//
// Notify only enqueues: the registry calls it with an entry lock held. Run
// writes the queue serially, which suits SQLite's single writer. When the
// queue is full the entry is dropped and a warning is logged.
type Recorder struct {
	repo   Repository
	queue  chan *AuditLog
	logger Logger
}

// NewRecorder creates a Recorder writing to repo with room for buffer
// pending entries.
func NewRecorder(repo Repository, buffer int) *Recorder {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Recorder{
		repo:   repo,
		queue:  make(chan *AuditLog, buffer),
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the recorder.
func (rec *Recorder) SetLogger(logger Logger) {
	if logger != nil {
		rec.logger = logger
	}
}

// Notify implements container.Notifier.
func (rec *Recorder) Notify(_ context.Context, event container.Event) {
	entry := fromEvent(event)
	select {
	case rec.queue <- entry:
	default:
		rec.logger.Warn("audit queue full, dropping entry",
			"action", entry.Action,
			"container_id", entry.ContainerID,
		)
	}
}

// Run writes queued entries until ctx is cancelled, then drains what is
// left and returns.
func (rec *Recorder) Run(ctx context.Context) {
	for {
		select {
		case entry := <-rec.queue:
			rec.write(entry)
		case <-ctx.Done():
			for {
				select {
				case entry := <-rec.queue:
					rec.write(entry)
				default:
					return
				}
			}
		}
	}
}

func (rec *Recorder) write(entry *AuditLog) {
	// Entries are written after the request that caused them has finished.
	if err := rec.repo.Create(context.Background(), entry); err != nil {
		rec.logger.Error("audit log write failed",
			"action", entry.Action,
			"container_id", entry.ContainerID,
			"error", err,
		)
	}
}

// fromEvent builds the audit entry for a registry event. Details carry the
// container state after the change, plus the transfer for deposits and
// withdrawals.
func fromEvent(event container.Event) *AuditLog {
	e := event.Entry
	details := map[string]any{
		"capacity": e.Container.Capacity(),
		"level":    e.Container.Level(),
	}
	if t := event.Transfer; t != nil {
		details["requested"] = t.Requested
		details["applied"] = t.Applied
		details["partial"] = t.Partial()
	}

	log := &AuditLog{
		Action:      string(event.Type),
		ContainerID: e.ID,
		Name:        e.Name,
		Details:     details,
	}
	if !event.At.IsZero() {
		log.CreatedAt = event.At.UTC()
	}
	return log
}
