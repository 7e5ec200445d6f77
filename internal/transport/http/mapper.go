package http

import (
	"encoding/json"

	"github.com/idk-code404/TerminusChat/internal/core"
	"github.com/idk-code404/TerminusChat/internal/history"
	"github.com/idk-code404/TerminusChat/internal/proto"
)

// inboundToCommand decodes one wire frame into the closed command
// vocabulary. A frame whose payload fails to decode yields a protocol
// error; an unrecognized type maps to CommandUnknown so the dispatcher
// can answer it explicitly.
func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error) {
	malformed := &proto.Error{Code: core.ErrCodeInvalidFormat, Msg: "invalid format"}

	switch inbound.Type {
	case proto.InboundTypeIdentify:
		var data proto.IdentifyData
		if len(inbound.Data) > 0 {
			if err := json.Unmarshal(inbound.Data, &data); err != nil {
				return nil, malformed
			}
		}
		return &core.Command{
			Kind:  core.CommandIdentify,
			Token: data.IdentityToken,
			Name:  data.Nick,
		}, nil
	case proto.InboundTypeNick:
		var data proto.NickData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, malformed
		}
		return &core.Command{Kind: core.CommandRename, Name: data.NewNick}, nil
	case proto.InboundTypeMessage:
		var data proto.MessageData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, malformed
		}
		return &core.Command{Kind: core.CommandPublicMessage, Text: data.Text}, nil
	case proto.InboundTypePrivate:
		var data proto.PrivateData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, malformed
		}
		return &core.Command{Kind: core.CommandPrivateMessage, To: data.To, Text: data.Text}, nil
	case proto.InboundTypeLogin:
		var data proto.LoginData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, malformed
		}
		return &core.Command{Kind: core.CommandAdminLogin, Secret: data.Key}, nil
	case proto.InboundTypeLogout:
		return &core.Command{Kind: core.CommandAdminLogout}, nil
	case proto.InboundTypeClear:
		return &core.Command{Kind: core.CommandClearHistory}, nil
	default:
		return &core.Command{Kind: core.CommandUnknown, RawType: inbound.Type}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventSystem:
		return proto.Outbound{
			Type: proto.OutboundTypeSystem,
			Data: proto.SystemData{Text: event.Text},
		}
	case core.EventHistory:
		return proto.Outbound{
			Type: proto.OutboundTypeHistory,
			Data: proto.HistoryData{Entries: toProtoEntries(event.Entries)},
		}
	case core.EventMessage:
		return proto.Outbound{
			Type: proto.OutboundTypeMessage,
			Data: toProtoEntry(event.Entry),
		}
	case core.EventPrivate:
		return proto.Outbound{
			Type: proto.OutboundTypePrivate,
			Data: proto.PrivateEvent{
				From: event.Private.From,
				To:   event.Private.To,
				Text: event.Private.Text,
				TS:   event.Private.TS,
			},
		}
	case core.EventUserList:
		users := make([]proto.UserInfo, 0, len(event.Users))
		for _, u := range event.Users {
			users = append(users, proto.UserInfo{Nick: u.Name, IsAdmin: u.Admin})
		}
		return proto.Outbound{
			Type: proto.OutboundTypeUserList,
			Data: proto.UserListData{Users: users},
		}
	case core.EventAdminStatus:
		return proto.Outbound{
			Type: proto.OutboundTypeAdminStatus,
			Data: proto.AdminStatusData{Value: event.Admin},
		}
	case core.EventIdentity:
		return proto.Outbound{
			Type: proto.OutboundTypeIdentity,
			Data: proto.IdentityData{Nick: event.Name, IdentityToken: event.Token},
		}
	case core.EventClear:
		return proto.Outbound{Type: proto.OutboundTypeClear}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeSystem}
	}
}

func toProtoEntries(entries []history.Entry) []proto.HistoryEntry {
	out := make([]proto.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, toProtoEntry(e))
	}
	return out
}

func toProtoEntry(e history.Entry) proto.HistoryEntry {
	return proto.HistoryEntry{Kind: e.Kind, Nick: e.Nick, Text: e.Text, TS: e.TS}
}
