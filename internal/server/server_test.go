package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevsman/pokerplayer/advisor"
	"github.com/kevsman/pokerplayer/internal/config"
)

func testServerConfig() *config.Config {
	cfg := config.Default()
	cfg.Strategy.EquitySimulations = 400
	cfg.Strategy.EquitySeed = 42
	cfg.Server.ProfilesFile = "" // no persistence in tests
	return cfg
}

// newTestClient spins up the server behind httptest and dials a WebSocket
// connection to it.
func newTestClient(t *testing.T) (*Server, *websocket.Conn) {
	t.Helper()

	srv, err := NewServer(testServerConfig(), log.New(io.Discard))
	require.NoError(t, err)
	go srv.run()

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	return srv, conn
}

func sendAndReceive(t *testing.T, conn *websocket.Conn, msgType MessageType, data interface{}) *Message {
	t.Helper()
	msg, err := NewMessage(msgType, data)
	require.NoError(t, err)
	msg.RequestID = "req-1"
	require.NoError(t, conn.WriteJSON(msg))

	var resp Message
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "req-1", resp.RequestID)
	return &resp
}

func adviseTable(heroHand []string, pot, heroBet, villainBet float64) *advisor.TableSnapshot {
	return &advisor.TableSnapshot{
		HandID:  "h1",
		PotSize: advisor.Amount(pot),
		Players: []advisor.PlayerSnapshot{
			{
				Name: "hero", Seat: 1, Hand: heroHand,
				Stack: advisor.Amount(2), CurrentBet: advisor.Amount(heroBet),
				Position: "BB", IsActive: true, HasTurn: true,
			},
			{
				Name: "villain", Seat: 2,
				Stack: advisor.Amount(10), CurrentBet: advisor.Amount(villainBet),
				Position: "BTN", IsActive: true,
			},
		},
	}
}

func TestAdviseRoundTrip(t *testing.T) {
	_, conn := newTestClient(t)

	// Weak hand with nothing to call: the only sensible advice is check.
	table := adviseTable([]string{"7♠", "3♥"}, 0.04, 0.02, 0.02)
	resp := sendAndReceive(t, conn, MessageTypeAdvise, AdviseData{Table: table})

	require.Equal(t, MessageTypeDecision, resp.Type)
	var d DecisionData
	require.NoError(t, json.Unmarshal(resp.Data, &d))
	assert.Equal(t, "check", d.Action)
	assert.Zero(t, d.Amount)
	assert.Equal(t, "h1", d.HandID)
}

func TestAdviseFindsPlayerWithTurn(t *testing.T) {
	_, conn := newTestClient(t)

	table := adviseTable([]string{"A♠", "A♥"}, 0.03, 0.02, 0.02)
	resp := sendAndReceive(t, conn, MessageTypeAdvise, AdviseData{Table: table})

	require.Equal(t, MessageTypeDecision, resp.Type)
	var d DecisionData
	require.NoError(t, json.Unmarshal(resp.Data, &d))
	assert.NotEqual(t, "fold", d.Action)
}

func TestAdviseRejectsMissingTable(t *testing.T) {
	_, conn := newTestClient(t)

	resp := sendAndReceive(t, conn, MessageTypeAdvise, AdviseData{})
	require.Equal(t, MessageTypeError, resp.Type)
	var e ErrorData
	require.NoError(t, json.Unmarshal(resp.Data, &e))
	assert.Equal(t, "invalid_request", e.Code)
}

func TestAdviseRejectsBadPlayerIndex(t *testing.T) {
	_, conn := newTestClient(t)

	idx := 9
	table := adviseTable([]string{"A♠", "A♥"}, 0.03, 0.02, 0.02)
	resp := sendAndReceive(t, conn, MessageTypeAdvise, AdviseData{Table: table, PlayerIndex: &idx})
	assert.Equal(t, MessageTypeError, resp.Type)
}

func TestUnknownMessageType(t *testing.T) {
	_, conn := newTestClient(t)

	resp := sendAndReceive(t, conn, MessageType("bogus"), struct{}{})
	require.Equal(t, MessageTypeError, resp.Type)
	var e ErrorData
	require.NoError(t, json.Unmarshal(resp.Data, &e))
	assert.Equal(t, "unknown_message_type", e.Code)
}

func TestStatsAfterObservation(t *testing.T) {
	_, conn := newTestClient(t)

	table := adviseTable([]string{"7♠", "3♥"}, 0.08, 0.02, 0.06)
	table.Players[0].BetToCall = func() *advisor.Amount { a := advisor.Amount(0.04); return &a }()
	table.Players[1].LastAction = "raise"
	table.Players[1].LastActionAmount = advisor.Amount(0.06)
	sendAndReceive(t, conn, MessageTypeAdvise, AdviseData{Table: table})

	resp := sendAndReceive(t, conn, MessageTypeStats, StatsData{Player: "villain"})
	require.Equal(t, MessageTypeStatsResponse, resp.Type)
	var s StatsResponseData
	require.NoError(t, json.Unmarshal(resp.Data, &s))
	assert.Equal(t, "villain", s.Player)
	assert.Equal(t, 1, s.HandsSeen)
	assert.NotEmpty(t, s.Recommendation)
}

func TestStatsUnknownPlayer(t *testing.T) {
	_, conn := newTestClient(t)

	resp := sendAndReceive(t, conn, MessageTypeStats, StatsData{Player: "nobody"})
	require.Equal(t, MessageTypeStatsResponse, resp.Type)
	var s StatsResponseData
	require.NoError(t, json.Unmarshal(resp.Data, &s))
	assert.Zero(t, s.HandsSeen)
}

func TestHealthEndpoint(t *testing.T) {
	srv, err := NewServer(testServerConfig(), log.New(io.Discard))
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewServerRejectsBadBlinds(t *testing.T) {
	cfg := testServerConfig()
	cfg.Game.BigBlind = 0
	_, err := NewServer(cfg, log.New(io.Discard))
	assert.Error(t, err)
}
