package core

// CommandKind discriminates the closed inbound event vocabulary. Unknown
// frame types map to CommandUnknown rather than being dropped silently.
type CommandKind int

const (
	// CommandIdentify binds an identity token and display name.
	CommandIdentify CommandKind = iota
	// CommandRename changes the session's display name.
	CommandRename
	// CommandAdminLogin presents the shared admin secret.
	CommandAdminLogin
	// CommandAdminLogout drops the admin capability.
	CommandAdminLogout
	// CommandPublicMessage posts to the shared room.
	CommandPublicMessage
	// CommandPrivateMessage sends a direct message to a named user.
	CommandPrivateMessage
	// CommandClearHistory empties the public log (admin only).
	CommandClearHistory
	// CommandUnknown is the documented fall-through for unrecognized kinds.
	CommandUnknown
)

// Command is one inbound client action, already decoded from the wire.
type Command struct {
	Kind    CommandKind
	Token   string // identify
	Name    string // identify, rename
	Secret  string // admin login
	To      string // private message target
	Text    string // message bodies
	RawType string // original frame type for unknown commands
}
