package ws

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"chkobba-service/internal/service/game"
	appErr "chkobba-service/pkg/errors"
	"chkobba-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Handler struct {
	gameSvc     *game.Service
	usernameMax int
}

func NewHandler(gameSvc *game.Service, usernameMax int) *Handler {
	if usernameMax <= 0 {
		usernameMax = 20
	}
	return &Handler{gameSvc: gameSvc, usernameMax: usernameMax}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

func (h *Handler) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Error("Failed to upgrade websocket", zap.Error(err))
		return
	}

	client := newClient(conn, h.gameSvc, h.usernameMax)
	logger.Log.Info("New WebSocket connection", zap.String("sessionID", client.sessionID))
	client.run()
}

// client is one websocket session. It holds an ephemeral uuid identity, at
// most one room membership, and a single outbound channel the room pushes
// snapshots into. The read pump dispatches one action at a time, so actions
// from one connection apply in arrival order.
type client struct {
	conn        *websocket.Conn
	svc         *game.Service
	sessionID   string
	usernameMax int
	room        *game.Room
	outbox      chan game.OutgoingMessage
	done        chan struct{}
	pingEvery   time.Duration
}

func newClient(conn *websocket.Conn, svc *game.Service, usernameMax int) *client {
	conn.SetReadLimit(1 << 20)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	return &client{
		conn:        conn,
		svc:         svc,
		sessionID:   uuid.NewString(),
		usernameMax: usernameMax,
		outbox:      make(chan game.OutgoingMessage, 32),
		done:        make(chan struct{}),
		pingEvery:   25 * time.Second,
	}
}

func (c *client) run() {
	go c.writePump()
	c.readPump()
}

func (c *client) readPump() {
	defer func() {
		c.leaveRoom()
		close(c.done)
		c.conn.Close()
	}()

	for {
		mt, message, err := c.conn.ReadMessage()
		if err != nil {
			logger.Log.Info("WS read error", zap.Error(err), zap.String("sessionID", c.sessionID))
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}

		var incoming struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(message, &incoming); err != nil {
			c.sendError("invalid payload")
			continue
		}
		if incoming.Type == "" {
			continue
		}

		if err := c.handleAction(incoming.Type, incoming.Data); err != nil {
			c.sendError(err.Error())
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(c.pingEvery)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.outbox:
			if err := c.conn.WriteJSON(msg); err != nil {
				logger.Log.Info("WS write error", zap.Error(err), zap.String("sessionID", c.sessionID))
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

type actionPayload struct {
	Username    string `json:"username"`
	RoomCode    string `json:"roomCode"`
	Mode        string `json:"mode"`
	TargetScore *int   `json:"targetScore"`
	CardID      string `json:"cardId"`
	PlayerID    string `json:"playerId"`
}

func (c *client) handleAction(action string, data json.RawMessage) error {
	var payload actionPayload
	if len(data) > 0 {
		if err := json.Unmarshal(data, &payload); err != nil {
			c.sendError("invalid payload")
			return nil
		}
	}

	switch action {
	case "create_room":
		return c.handleCreateRoom(payload)
	case "join_room":
		return c.handleJoinRoom(payload)
	case "start_game":
		return c.hostAction(func(room *game.Room) error {
			return room.StartGame()
		})
	case "play_card":
		room, err := c.currentRoom()
		if err != nil {
			return err
		}
		return room.PlayCard(c.sessionID, payload.CardID)
	case "ready_next_round":
		room, err := c.currentRoom()
		if err != nil {
			return err
		}
		return room.PlayerReady(c.sessionID)
	case "update_settings":
		return c.hostAction(func(room *game.Room) error {
			if payload.TargetScore != nil {
				if err := room.SetTargetScore(*payload.TargetScore); err != nil {
					return err
				}
			}
			if payload.Mode != "" {
				return room.SetMode(game.Mode(payload.Mode))
			}
			return nil
		})
	case "transfer_host":
		return c.hostAction(func(room *game.Room) error {
			if payload.PlayerID == c.sessionID {
				return appErr.ErrAlreadyHost
			}
			return room.PromoteToHost(payload.PlayerID)
		})
	case "kick_player":
		return c.hostAction(func(room *game.Room) error {
			if payload.PlayerID == c.sessionID {
				return appErr.ErrSelfKick
			}
			return room.Kick(payload.PlayerID)
		})
	case "stop_game":
		return c.hostAction(func(room *game.Room) error {
			room.StopGame()
			return nil
		})
	case "leave_room":
		c.leaveRoom()
		return nil
	case "ping":
		c.send(game.OutgoingMessage{Type: "pong", Data: gin.H{"message": "pong"}})
		return nil
	default:
		c.sendError("unsupported action")
		return nil
	}
}

func (c *client) handleCreateRoom(payload actionPayload) error {
	name := c.sanitizeUsername(payload.Username)
	if name == "" {
		return appErr.ErrUsernameRequired
	}
	c.leaveRoom()

	opts := game.RoomOptions{Mode: normalizeMode(payload.Mode)}
	if payload.TargetScore != nil {
		opts.TargetScore = *payload.TargetScore
	}
	room, err := c.svc.CreateRoom(c.sessionID, name, opts)
	if err != nil {
		return err
	}
	c.room = room
	c.send(game.OutgoingMessage{Type: "room_created", Data: gin.H{"roomCode": room.Code()}})
	room.Subscribe(c.sessionID, c.outbox)
	return nil
}

func (c *client) handleJoinRoom(payload actionPayload) error {
	name := c.sanitizeUsername(payload.Username)
	if name == "" {
		return appErr.ErrUsernameRequired
	}
	code := NormalizeRoomCode(payload.RoomCode)
	room, err := c.svc.GetRoom(code)
	if err != nil {
		return err
	}
	if room.Status() != game.StatusWaiting {
		return appErr.ErrGameInProgress
	}
	c.leaveRoom()
	if err := room.AddPlayer(c.sessionID, name); err != nil {
		return err
	}
	c.room = room
	c.send(game.OutgoingMessage{Type: "joined_room", Data: gin.H{"roomCode": code}})
	room.Subscribe(c.sessionID, c.outbox)
	return nil
}

// hostAction runs a mutation that only the room host may trigger.
func (c *client) hostAction(fn func(*game.Room) error) error {
	room, err := c.currentRoom()
	if err != nil {
		return err
	}
	if !room.IsHost(c.sessionID) {
		return appErr.ErrNotHost
	}
	return fn(room)
}

func (c *client) currentRoom() (*game.Room, error) {
	if c.room != nil && !c.room.HasPlayer(c.sessionID) {
		// Kicked while the session pointer still held the old room.
		c.room = nil
	}
	if c.room == nil {
		return nil, appErr.ErrRoomNotFound
	}
	return c.room, nil
}

func (c *client) leaveRoom() {
	room := c.room
	if room == nil {
		return
	}
	c.room = nil
	room.RemovePlayer(c.sessionID)
	if room.PlayerCount() == 0 {
		c.svc.RemoveRoom(room.Code())
	}
}

func (c *client) send(msg game.OutgoingMessage) {
	select {
	case c.outbox <- msg:
	default:
		logger.Log.Warn("ws outbox full", zap.String("sessionID", c.sessionID))
	}
}

func (c *client) sendError(message string) {
	c.send(game.OutgoingMessage{Type: "error", Data: gin.H{"message": message}})
}

func (c *client) sanitizeUsername(value string) string {
	name := []rune(strings.TrimSpace(value))
	if len(name) > c.usernameMax {
		name = name[:c.usernameMax]
	}
	return string(name)
}

// NormalizeRoomCode applies the boundary contract: codes are
// whitespace-trimmed and case-insensitive.
func NormalizeRoomCode(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

func normalizeMode(value string) game.Mode {
	if value == string(game.Mode2v2) {
		return game.Mode2v2
	}
	return game.Mode1v1
}
