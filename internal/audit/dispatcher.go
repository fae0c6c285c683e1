package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Event struct {
	TenantID string
	BranchID string
	UserID   string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

type Dispatcher struct {
	logger *Logger
	log    *slog.Logger
	queue  chan Event
	wg     sync.WaitGroup
	once   sync.Once
}

func NewDispatcher(logger *Logger, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.logger.Log(ctx, ev); err != nil {
			d.log.Error("audit write failed",
				"action", ev.Action,
				"entity", ev.Entity,
				"entity_id", ev.EntityID,
				"err", err,
			)
		}
		cancel()
	}
}

// Dispatch never blocks the caller. A full queue drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event",
			"action", ev.Action,
			"entity_id", ev.EntityID,
		)
	}
}

// Close drains pending events. Dispatch must not be called afterwards.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

// Sink is what services depend on. Dispatcher is the production sink.
type Sink interface {
	Dispatch(ev Event)
}

var _ Sink = (*Dispatcher)(nil)
