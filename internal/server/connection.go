package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/kevsman/pokerplayer/advisor"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 65536
)

// Connection wraps a WebSocket client. Each connection gets its own decision
// engine so per-hand state never bleeds between clients; opponent profiles
// are shared through the server's tracker.
type Connection struct {
	conn      *websocket.Conn
	engine    *advisor.Engine
	send      chan *Message
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection creates a connection wrapper around an upgraded socket.
func NewConnection(conn *websocket.Conn, engine *advisor.Engine, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		conn:   conn,
		engine: engine,
		send:   make(chan *Message, 64),
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins handling the connection.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

func (c *Connection) sendMessage(msg *Message) {
	defer func() {
		if r := recover(); r != nil {
			// Channel closed during shutdown.
			c.logger.Debug("send on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
	case <-c.ctx.Done():
	default:
		c.logger.Warn("send buffer full, closing connection")
		_ = c.Close()
	}
}

func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}
		c.handleMessage(&msg)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("received message", "type", msg.Type, "requestId", msg.RequestID)

	switch msg.Type {
	case MessageTypeAdvise:
		var data AdviseData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg.RequestID, "invalid_message", "failed to parse advise data")
			return
		}
		c.handleAdvise(msg.RequestID, data)

	case MessageTypeStats:
		var data StatsData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg.RequestID, "invalid_message", "failed to parse stats data")
			return
		}
		c.handleStats(msg.RequestID, data)

	default:
		c.sendError(msg.RequestID, "unknown_message_type", "unknown message type: "+string(msg.Type))
	}
}

func (c *Connection) handleAdvise(requestID string, data AdviseData) {
	if data.Table == nil {
		c.sendError(requestID, "invalid_request", "advise requires a table snapshot")
		return
	}

	index := -1
	if data.PlayerIndex != nil {
		index = *data.PlayerIndex
	} else {
		for i, p := range data.Table.Players {
			if p.HasTurn {
				index = i
				break
			}
		}
	}
	if index < 0 || index >= len(data.Table.Players) {
		c.sendError(requestID, "invalid_request", "no player to advise for")
		return
	}

	decision, err := c.engine.MakeDecision(c.ctx, data.Table, index)
	if err != nil {
		c.sendError(requestID, "decision_failed", err.Error())
		return
	}

	c.reply(requestID, MessageTypeDecision, DecisionData{
		Action: decision.Action.String(),
		Amount: decision.Amount,
		HandID: data.Table.HandID,
	})
}

func (c *Connection) handleStats(requestID string, data StatsData) {
	if data.Player == "" {
		c.sendError(requestID, "invalid_request", "stats requires a player name")
		return
	}

	tracker := c.engine.Tracker()
	resp := StatsResponseData{Player: data.Player}
	if p := tracker.Profile(data.Player); p != nil {
		resp.HandsSeen = p.HandsSeen
		resp.VPIP = p.VPIP()
		resp.PFR = p.PFR()
		resp.Aggression = p.AggressionFactor()
		resp.Style = string(p.Style())
	}
	resp.Recommendation = tracker.Recommendation(data.Player)

	c.reply(requestID, MessageTypeStatsResponse, resp)
}

func (c *Connection) reply(requestID string, msgType MessageType, data interface{}) {
	msg, err := NewMessage(msgType, data)
	if err != nil {
		c.logger.Error("failed to create message", "type", msgType, "error", err)
		return
	}
	msg.RequestID = requestID
	c.sendMessage(msg)
}

func (c *Connection) sendError(requestID, code, message string) {
	c.reply(requestID, MessageTypeError, ErrorData{Code: code, Message: message})
}
