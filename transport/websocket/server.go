package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-history/internal/config"
	"github.com/rocketscienceinc/tictactoe-history/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-history/internal/validator"
)

type gameUseCase interface {
	NewGame(ctx context.Context, size int) (presenter.View, error)
	GetGame(ctx context.Context, id string) (presenter.View, error)
	ClickCell(ctx context.Context, id string, cell int) (presenter.View, error)
	JumpTo(ctx context.Context, id string, step int) (presenter.View, error)
	ToggleOrder(ctx context.Context, id string) (presenter.View, error)
	DeleteGame(ctx context.Context, id string) error
}

type handlerFunc func(ctx context.Context, msg *Message) (ResponsePayload, error)

// Server - upgrades HTTP requests and serves game intents over the connection, one message at a time.
type Server struct {
	logger   *slog.Logger
	games    gameUseCase
	upgrader websocket.Upgrader
	conf     config.WebSocket

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, conf config.WebSocket, games gameUseCase) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		games:  games,
		conf:   conf,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  conf.ReadBufferSize,
			WriteBufferSize: conf.WriteBufferSize,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
	}

	server.handlers = map[string]handlerFunc{
		actionNewGame: server.handleNewGame,
		actionGetGame: server.handleGetGame,
		actionClick:   server.handleClick,
		actionJump:    server.handleJump,
		actionOrder:   server.handleOrder,
		actionLeave:   server.handleLeave,
	}

	return server
}

func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	if that.conf.MaxMessageSize > 0 {
		conn.SetReadLimit(that.conf.MaxMessageSize)
	}

	log.Debug("client connected", "remote_addr", conn.RemoteAddr().String())

	// the request context is detached once the connection is hijacked
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer cancel()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("failed to read message", "error", err)
			}
			log.Debug("client disconnected")
			return
		}

		if err = that.processMessage(ctx, conn, data); err != nil {
			log.Error("failed to write response", "error", err)
			return
		}
	}
}

func (that *Server) processMessage(ctx context.Context, conn *websocket.Conn, data []byte) error {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return that.send(conn, actionUnknown, ResponsePayload{Error: "invalid message format"})
	}

	if err := validator.Get().Struct(&msg); err != nil {
		return that.send(conn, actionUnknown, ResponsePayload{Error: "action is required"})
	}

	handler, ok := that.handlers[msg.Action]
	if !ok {
		return that.send(conn, msg.Action, ResponsePayload{Error: "unknown action " + msg.Action})
	}

	resp, err := handler(ctx, &msg)
	if err != nil {
		that.logger.Debug("action failed", "action", msg.Action, "error", err)
		return that.send(conn, msg.Action, ResponsePayload{Error: err.Error()})
	}

	return that.send(conn, msg.Action, resp)
}

func (that *Server) send(conn *websocket.Conn, action string, payload ResponsePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if that.conf.WriteWait > 0 {
		if err = conn.SetWriteDeadline(time.Now().Add(that.conf.WriteWait)); err != nil {
			return fmt.Errorf("failed to set write deadline: %w", err)
		}
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

var errInvalidPayload = errors.New("invalid payload")

// decodePayload - unmarshals and validates msg.Payload into dst. An absent payload is decoded as {}.
func decodePayload(msg *Message, dst any) error {
	raw := msg.Payload
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %w", errInvalidPayload, err)
	}

	if err := validator.Get().Struct(dst); err != nil {
		return fmt.Errorf("%w: %w", errInvalidPayload, err)
	}

	return nil
}
