package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	stdhttp "net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/idk-code404/TerminusChat/internal/config"
	"github.com/idk-code404/TerminusChat/internal/core"
	"github.com/idk-code404/TerminusChat/internal/proto"
)

// WSHandler upgrades HTTP connections and bridges them to core sessions.
// Each connection runs three goroutines: read, write, and liveness ping.
type WSHandler struct {
	registry   *core.Registry
	dispatcher *core.Dispatcher
	log        *zerolog.Logger

	pingInterval time.Duration
	pingTimeout  time.Duration
	msgRateLimit int
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(registry *core.Registry, dispatcher *core.Dispatcher, cfg *config.Config, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{
		registry:     registry,
		dispatcher:   dispatcher,
		log:          logger,
		pingInterval: cfg.PingInterval,
		pingTimeout:  cfg.PingTimeout,
		msgRateLimit: cfg.MessageRateLimit,
	}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	session := h.registry.Register()
	h.dispatcher.Connect(session)
	defer h.dispatcher.Disconnect(session)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 3)
	go func() {
		errCh <- h.readLoop(ctx, conn, session)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, session)
	}()
	go func() {
		errCh <- h.pingLoop(ctx, conn)
	}()

	err = <-errCh
	cancel() // stop the other goroutines
	<-errCh
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Str("session_id", session.ID).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, session *core.Session) error {
	limiter := newRateLimiter(h.msgRateLimit)
	limiter.startReset(ctx.Done())

	for {
		// Decode by hand: a frame that is not JSON must produce a
		// recoverable notice, not a protocol-level close.
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		var inbound proto.Inbound
		if err := json.Unmarshal(data, &inbound); err != nil {
			if writeErr := wsjson.Write(ctx, conn, proto.Outbound{
				Type:  proto.OutboundTypeError,
				Error: &proto.Error{Code: core.ErrCodeInvalidFormat, Msg: "invalid format"},
			}); writeErr != nil {
				return writeErr
			}
			continue
		}

		cmd, protoErr := inboundToCommand(inbound)
		if protoErr != nil {
			// Malformed frames never kill the session.
			if writeErr := wsjson.Write(ctx, conn, proto.Outbound{
				Type:  proto.OutboundTypeError,
				Error: protoErr,
			}); writeErr != nil {
				return writeErr
			}
			continue
		}

		if isChatCommand(cmd) && !limiter.allow() {
			if writeErr := wsjson.Write(ctx, conn, proto.Outbound{
				Type:  proto.OutboundTypeError,
				Error: &proto.Error{Code: core.ErrCodeRateLimited, Msg: "too many messages, slow down"},
			}); writeErr != nil {
				return writeErr
			}
			continue
		}

		// Dispatch synchronously so per-session commands keep arrival order.
		h.dispatcher.Dispatch(session, cmd)
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, session *core.Session) error {
	for {
		select {
		case event, ok := <-session.Events:
			if !ok {
				return nil
			}
			if err := wsjson.Write(ctx, conn, outboundFromEvent(event)); err != nil {
				h.log.Error().Err(err).Str("session_id", session.ID).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// pingLoop probes the peer periodically; a session that stops answering
// within the timeout is torn down as if it had disconnected.
func (h *WSHandler) pingLoop(ctx context.Context, conn *websocket.Conn) error {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, h.pingTimeout)
			err := conn.Ping(pctx)
			cancel()
			if err != nil {
				return fmt.Errorf("liveness probe failed: %w", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func isChatCommand(cmd *core.Command) bool {
	return cmd.Kind == core.CommandPublicMessage || cmd.Kind == core.CommandPrivateMessage
}
