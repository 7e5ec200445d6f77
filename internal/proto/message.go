package proto

import "encoding/json"

// Inbound is the envelope for frames coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

const (
	ProtocolVersion = 1

	InboundTypeIdentify = "identify"
	InboundTypeNick     = "nick"
	InboundTypeMessage  = "message"
	InboundTypePrivate  = "private"
	InboundTypeLogin    = "login"
	InboundTypeLogout   = "logout"
	InboundTypeClear    = "clear"

	OutboundTypeSystem      = "system"
	OutboundTypeHistory     = "history"
	OutboundTypeMessage     = "message"
	OutboundTypePrivate     = "private"
	OutboundTypeUserList    = "user-list"
	OutboundTypeAdminStatus = "admin-status"
	OutboundTypeIdentity    = "identity"
	OutboundTypeClear       = "clear"
	OutboundTypeError       = "error"
)

// IdentifyData binds a stable identity token to the connection.
type IdentifyData struct {
	IdentityToken string `json:"identityToken,omitempty"`
	Nick          string `json:"nick,omitempty"`
}

// NickData requests a display name change.
type NickData struct {
	NewNick string `json:"newNick"`
}

// MessageData is a public chat message from the client.
type MessageData struct {
	Text string `json:"text"`
}

// PrivateData is a direct message to another connected user.
type PrivateData struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

// LoginData carries the shared admin secret.
type LoginData struct {
	Key string `json:"key"`
}

// Outbound is the envelope for frames sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// SystemData is a server notice.
type SystemData struct {
	Text string `json:"text"`
}

// HistoryEntry is one replayed or freshly broadcast public event.
type HistoryEntry struct {
	Kind string `json:"kind"`
	Nick string `json:"nick"`
	Text string `json:"text"`
	TS   int64  `json:"ts"`
}

// HistoryData replays the public log to a newly connected client.
type HistoryData struct {
	Entries []HistoryEntry `json:"entries"`
}

// PrivateEvent is a delivered direct message (or the sender's echo).
type PrivateEvent struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
	TS   int64  `json:"ts"`
}

// UserInfo is one row of the presence list.
type UserInfo struct {
	Nick    string `json:"nick"`
	IsAdmin bool   `json:"isAdmin"`
}

// UserListData is the presence snapshot broadcast to all clients.
type UserListData struct {
	Users []UserInfo `json:"users"`
}

// AdminStatusData reports the connection's admin flag.
type AdminStatusData struct {
	Value bool `json:"value"`
}

// IdentityData acknowledges an identify, returning the (possibly minted)
// token the client should present on its next connection.
type IdentityData struct {
	Nick          string `json:"nick"`
	IdentityToken string `json:"identityToken"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
