package server

import (
	"encoding/json"
	"time"

	"github.com/kevsman/pokerplayer/advisor"
)

// MessageType identifies a WebSocket message.
type MessageType string

const (
	// Client -> server
	MessageTypeAdvise MessageType = "advise"
	MessageTypeStats  MessageType = "stats"

	// Server -> client
	MessageTypeDecision      MessageType = "decision"
	MessageTypeStatsResponse MessageType = "stats_response"
	MessageTypeError         MessageType = "error"
)

// Message is the base WebSocket envelope. RequestID, when set by the client,
// is echoed back on the response so callers can match replies.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a message with the current timestamp.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// AdviseData asks for a decision for the player at PlayerIndex in the
// snapshot. If PlayerIndex is nil the player with has_turn set is used.
type AdviseData struct {
	Table       *advisor.TableSnapshot `json:"table"`
	PlayerIndex *int                   `json:"playerIndex,omitempty"`
}

// DecisionData is the advisory reply.
type DecisionData struct {
	Action string  `json:"action"`
	Amount float64 `json:"amount"`
	HandID string  `json:"handId,omitempty"`
}

// StatsData asks for the tracked profile of a single opponent.
type StatsData struct {
	Player string `json:"player"`
}

// StatsResponseData summarises a tracked opponent.
type StatsResponseData struct {
	Player         string  `json:"player"`
	HandsSeen      int     `json:"handsSeen"`
	VPIP           float64 `json:"vpip"`
	PFR            float64 `json:"pfr"`
	Aggression     float64 `json:"aggression"`
	Style          string  `json:"style"`
	Recommendation string  `json:"recommendation"`
}

// ErrorData reports a request failure.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
