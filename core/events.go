package core

import "github.com/sirupsen/logrus"

// Event is a notification emitted after a chain-crossing operation,
// carrying enough context for a subscriber to react (e.g. a wallet UI
// refreshing a balance) without polling. Grounded on the
// Broadcast(topic, raw) call sites in core/cross_chain.go, adapted from
// a pub/sub topic string to a typed (origin, action, details) triple
// matching this domain's actors rather than that topic namespace.
type Event struct {
	Origin  string
	Action  string
	Details interface{}
}

// EventSink receives Events as they occur. Implementations must not
// block for long, since they run on the calling goroutine.
type EventSink func(Event)

func (r *Registry) emit(e Event) {
	r.mu.RLock()
	sink := r.sink
	r.mu.RUnlock()

	if sink == nil {
		logrus.WithFields(logrus.Fields{
			"origin": e.Origin, "action": e.Action,
		}).Debug("event (no sink registered)")
		return
	}
	sink(e)
}
