package core

import "github.com/idk-code404/TerminusChat/internal/history"

// EventKind is a notification the core emits to sessions.
type EventKind int

const (
	// EventSystem is a server notice.
	EventSystem EventKind = iota
	// EventHistory replays the public log to one session.
	EventHistory
	// EventMessage is a public chat message.
	EventMessage
	// EventPrivate is a direct message (or the sender's echo).
	EventPrivate
	// EventUserList is the presence snapshot.
	EventUserList
	// EventAdminStatus reports the session's admin flag.
	EventAdminStatus
	// EventIdentity acknowledges an identify with the bound token.
	EventIdentity
	// EventClear signals that the public log was emptied.
	EventClear
	// EventError carries a domain error to one session.
	EventError
)

// PrivateMessage is the payload of an EventPrivate. It is never appended
// to the public history log.
type PrivateMessage struct {
	From string
	To   string
	Text string
	TS   int64
}

// Event is sent to sessions to describe what happened in the system.
type Event struct {
	Kind    EventKind
	Text    string          // EventSystem
	Entry   history.Entry   // EventMessage
	Entries []history.Entry // EventHistory
	Private *PrivateMessage // EventPrivate
	Users   []Presence      // EventUserList
	Admin   bool            // EventAdminStatus
	Name    string          // EventIdentity
	Token   string          // EventIdentity
	Error   *CoreError      // EventError
}
