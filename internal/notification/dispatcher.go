package notification

import "github.com/rs/zerolog/log"

type Message struct {
	To      string
	Subject string
	Body    string
}

// Dispatcher delivers mail off the request path. Failures are logged and
// never affect a booking outcome; a full queue drops the message.
type Dispatcher struct {
	mailer Mailer
	queue  chan Message
}

func NewDispatcher(mailer Mailer) *Dispatcher {
	d := &Dispatcher{
		mailer: mailer,
		queue:  make(chan Message, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for msg := range d.queue {
		if err := d.mailer.Send(msg.To, msg.Subject, msg.Body); err != nil {
			log.Error().Err(err).Str("to", msg.To).Str("subject", msg.Subject).
				Msg("failed to send notification")
		}
	}
}

func (d *Dispatcher) Dispatch(msg Message) {
	if msg.To == "" {
		return
	}

	select {
	case d.queue <- msg:
	default:
		log.Warn().Str("subject", msg.Subject).Msg("notification queue full, dropping message")
	}
}
