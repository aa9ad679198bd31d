package audit

import "github.com/rs/zerolog/log"

type Event struct {
	ActorID   *uint
	ActorRole string
	Action    string
	Entity    string
	EntityID  *uint
	Metadata  any
}

// Sink receives audit entries; the gorm Logger is the production sink.
type Sink interface {
	Log(actorID *uint, actorRole, action, entity string, entityID *uint, metadata any) error
}

type Dispatcher struct {
	logger Sink
	queue  chan Event
}

func NewDispatcher(logger Sink) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.ActorID,
			ev.ActorRole,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Error().Err(err).Str("action", ev.Action).Msg("audit error")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// never let auditing break the API
		log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}
