package core

import "github.com/rs/zerolog"

// Scope selects which live sessions receive an event.
type Scope int

const (
	// ScopeBroadcastAll delivers to every live session.
	ScopeBroadcastAll Scope = iota
	// ScopeBroadcastExceptSender delivers to everyone but the sender.
	ScopeBroadcastExceptSender
	// ScopeUnicastByName delivers to the named session only.
	ScopeUnicastByName
	// ScopeUnicastSelf delivers to the sender only.
	ScopeUnicastSelf
)

// DeliveryResult reports how a fanout went. A failed session never
// aborts delivery to the remaining targets.
type DeliveryResult struct {
	Sent   int
	Failed []string // IDs of sessions whose outbound queue rejected the event
}

// Router delivers one logical event to every session matched by the
// scope, writing each a single copy on its outbound queue.
type Router struct {
	registry *Registry
	log      *zerolog.Logger
}

// NewRouter builds a router over the given registry.
func NewRouter(registry *Registry, logger *zerolog.Logger) *Router {
	return &Router{registry: registry, log: logger}
}

// Deliver fans ev out according to scope. For ScopeUnicastByName the
// target is resolved against the live set; an absent target yields an
// empty result and the caller decides how to notify the sender.
func (r *Router) Deliver(ev *Event, scope Scope, sender *Session, target string) DeliveryResult {
	var res DeliveryResult

	switch scope {
	case ScopeBroadcastAll:
		for _, s := range r.registry.Sessions() {
			r.send(s, ev, &res)
		}
	case ScopeBroadcastExceptSender:
		for _, s := range r.registry.Sessions() {
			if s == sender {
				continue
			}
			r.send(s, ev, &res)
		}
	case ScopeUnicastByName:
		if s := r.registry.FindByDisplayName(target); s != nil {
			r.send(s, ev, &res)
		}
	case ScopeUnicastSelf:
		if sender != nil {
			r.send(sender, ev, &res)
		}
	}

	return res
}

func (r *Router) send(s *Session, ev *Event, res *DeliveryResult) {
	select {
	case s.Events <- ev:
		res.Sent++
	default:
		// Slow or closing consumer; record and keep going.
		res.Failed = append(res.Failed, s.ID)
		r.log.Warn().Str("session_id", s.ID).Msg("outbound queue full, event dropped")
	}
}
