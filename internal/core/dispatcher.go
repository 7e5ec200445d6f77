package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/idk-code404/TerminusChat/internal/history"
)

// HistoryLog is the bounded public log consulted and mutated by the
// dispatcher. Private messages never pass through it.
type HistoryLog interface {
	Append(e history.Entry)
	Snapshot() []history.Entry
	Clear()
}

// Dispatcher translates one inbound command into registry, log, and
// router operations. It is a pure state-machine step: given a session
// and a command it produces deliveries and state mutations, nothing
// else.
type Dispatcher struct {
	registry *Registry
	router   *Router
	history  HistoryLog
	filter   *Filter
	log      *zerolog.Logger
	now      func() time.Time
}

// NewDispatcher wires the dispatcher over its collaborators.
func NewDispatcher(registry *Registry, router *Router, hist HistoryLog, filter *Filter, logger *zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		router:   router,
		history:  hist,
		filter:   filter,
		log:      logger,
		now:      time.Now,
	}
}

// Connect runs the post-registration handshake: welcome notice, history
// replay, join broadcast, presence update.
func (d *Dispatcher) Connect(s *Session) {
	d.router.Deliver(&Event{
		Kind: EventSystem,
		Text: fmt.Sprintf("Welcome, %s! Type /help for commands.", s.Name()),
	}, ScopeUnicastSelf, s, "")

	d.router.Deliver(&Event{
		Kind:    EventHistory,
		Entries: d.history.Snapshot(),
	}, ScopeUnicastSelf, s, "")

	d.router.Deliver(&Event{
		Kind: EventSystem,
		Text: fmt.Sprintf("%s joined the chat.", s.Name()),
	}, ScopeBroadcastExceptSender, s, "")

	d.broadcastPresence()
}

// Disconnect removes the session and tells everyone else.
func (d *Dispatcher) Disconnect(s *Session) {
	d.registry.Unregister(s)

	d.router.Deliver(&Event{
		Kind: EventSystem,
		Text: fmt.Sprintf("%s left the chat.", s.Name()),
	}, ScopeBroadcastAll, nil, "")

	d.broadcastPresence()
}

// Dispatch handles one inbound command in arrival order for its session.
func (d *Dispatcher) Dispatch(s *Session, cmd *Command) {
	switch cmd.Kind {
	case CommandIdentify:
		d.identify(s, cmd)
	case CommandRename:
		d.rename(s, cmd)
	case CommandAdminLogin:
		d.adminLogin(s, cmd)
	case CommandAdminLogout:
		d.adminLogout(s)
	case CommandPublicMessage:
		d.publicMessage(s, cmd)
	case CommandPrivateMessage:
		d.privateMessage(s, cmd)
	case CommandClearHistory:
		d.clearHistory(s)
	default:
		d.sendError(s, ErrCodeUnknownCommand, fmt.Sprintf("unknown command %q", cmd.RawType))
	}
}

func (d *Dispatcher) identify(s *Session, cmd *Command) {
	name, token := d.registry.Identify(s, cmd.Token, cmd.Name)

	d.router.Deliver(&Event{
		Kind:  EventIdentity,
		Name:  name,
		Token: token,
	}, ScopeUnicastSelf, s, "")

	d.broadcastPresence()
}

func (d *Dispatcher) rename(s *Session, cmd *Command) {
	oldName := s.Name()
	name, err := d.registry.Rename(s, cmd.Name)
	if err != nil {
		d.sendError(s, ErrCodeInvalidName, fmt.Sprintf("name must be 1-%d characters", NameMaxLen))
		return
	}

	d.router.Deliver(&Event{
		Kind: EventSystem,
		Text: fmt.Sprintf("You are now known as %s.", name),
	}, ScopeUnicastSelf, s, "")

	d.router.Deliver(&Event{
		Kind: EventSystem,
		Text: fmt.Sprintf("%s is now known as %s", oldName, name),
	}, ScopeBroadcastExceptSender, s, "")

	d.broadcastPresence()
}

func (d *Dispatcher) adminLogin(s *Session, cmd *Command) {
	if !d.registry.SetAdmin(s, cmd.Secret) {
		d.sendError(s, ErrCodeUnauthorized, "invalid admin key")
		return
	}

	d.router.Deliver(&Event{Kind: EventAdminStatus, Admin: true}, ScopeUnicastSelf, s, "")
	d.router.Deliver(&Event{
		Kind: EventSystem,
		Text: "Admin privileges granted.",
	}, ScopeUnicastSelf, s, "")

	d.broadcastPresence()
}

func (d *Dispatcher) adminLogout(s *Session) {
	d.registry.ClearAdmin(s)

	d.router.Deliver(&Event{Kind: EventAdminStatus, Admin: false}, ScopeUnicastSelf, s, "")
	d.router.Deliver(&Event{
		Kind: EventSystem,
		Text: "Logged out of admin mode.",
	}, ScopeUnicastSelf, s, "")

	d.broadcastPresence()
}

func (d *Dispatcher) publicMessage(s *Session, cmd *Command) {
	text := d.normalize(cmd.Text)
	if text == "" {
		d.sendError(s, ErrCodeBadRequest, "message text is empty")
		return
	}

	entry := history.Entry{
		Kind: history.KindMessage,
		Nick: s.Name(),
		Text: text,
		TS:   d.now().UnixMilli(),
	}
	d.history.Append(entry)

	d.router.Deliver(&Event{Kind: EventMessage, Entry: entry}, ScopeBroadcastAll, s, "")
}

func (d *Dispatcher) privateMessage(s *Session, cmd *Command) {
	if cmd.To == "" {
		d.sendError(s, ErrCodeBadRequest, "recipient is required")
		return
	}
	text := d.normalize(cmd.Text)
	if text == "" {
		d.sendError(s, ErrCodeBadRequest, "message text is empty")
		return
	}

	pm := &PrivateMessage{
		From: s.Name(),
		To:   cmd.To,
		Text: text,
		TS:   d.now().UnixMilli(),
	}
	ev := &Event{Kind: EventPrivate, Private: pm}

	if d.registry.FindByDisplayName(cmd.To) != nil {
		d.router.Deliver(ev, ScopeUnicastByName, s, cmd.To)
	} else {
		d.sendError(s, ErrCodeRecipientNotFound, fmt.Sprintf("user %q not found", cmd.To))
	}

	// The sender always sees their own copy as confirmation.
	d.router.Deliver(ev, ScopeUnicastSelf, s, "")
}

func (d *Dispatcher) clearHistory(s *Session) {
	if !s.IsAdmin() {
		d.sendError(s, ErrCodeUnauthorized, "not authorized to clear chat")
		return
	}

	d.history.Clear()

	d.router.Deliver(&Event{
		Kind: EventSystem,
		Text: "[ADMIN] Global chat cleared.",
	}, ScopeBroadcastAll, s, "")
	d.router.Deliver(&Event{Kind: EventClear}, ScopeBroadcastAll, s, "")

	d.log.Info().Str("session_id", s.ID).Str("nick", s.Name()).Msg("history cleared by admin")
}

func (d *Dispatcher) broadcastPresence() {
	d.router.Deliver(&Event{
		Kind:  EventUserList,
		Users: d.registry.Snapshot(),
	}, ScopeBroadcastAll, nil, "")
}

func (d *Dispatcher) sendError(s *Session, code, msg string) {
	d.router.Deliver(&Event{
		Kind:  EventError,
		Error: coreError(code, msg),
	}, ScopeUnicastSelf, s, "")
}

// normalize applies the shared text rule: trim, cap length, mask
// block-listed terms, and treat an all-whitespace result as empty.
func (d *Dispatcher) normalize(text string) string {
	text = strings.TrimSpace(text)
	if runes := []rune(text); len(runes) > BodyMaxLen {
		text = string(runes[:BodyMaxLen])
	}
	return strings.TrimSpace(d.filter.Apply(text))
}
