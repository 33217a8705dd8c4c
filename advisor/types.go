package advisor

import (
	"encoding/json"

	"github.com/kevsman/pokerplayer/poker"
)

// PlayerSnapshot is one seat's view at decision time, as delivered by the
// external table reader. Hole cards are only present for the advised player
// unless an opponent's hand was revealed.
type PlayerSnapshot struct {
	Name       string   `json:"name"`
	Seat       int      `json:"seat"`
	Hand       []string `json:"hand,omitempty"`
	Stack      Amount   `json:"stack"`
	CurrentBet Amount   `json:"current_bet"`

	// BetToCall, when present and non-negative, is authoritative over the
	// value computed from table bets. An explicit 0 means "can check".
	BetToCall *Amount `json:"bet_to_call,omitempty"`

	Position string `json:"position"`
	IsEmpty  bool   `json:"is_empty"`
	IsActive bool   `json:"is_active"`
	HasTurn  bool   `json:"has_turn"`

	// WinProbability, when supplied, skips the equity simulation.
	WinProbability *float64 `json:"win_probability,omitempty"`

	// LastAction is the player's most recent action this street, used to
	// feed the opponent tracker.
	LastAction       string `json:"last_action,omitempty"`
	LastActionAmount Amount `json:"last_action_amount,omitempty"`
}

// TableSnapshot is the full table state for one decision.
type TableSnapshot struct {
	HandID         string           `json:"hand_id,omitempty"`
	PotSize        Amount           `json:"pot_size"`
	CommunityCards []string         `json:"community_cards"`
	CurrentRound   string           `json:"current_round"`
	BigBlind       Amount           `json:"big_blind"`
	SmallBlind     Amount           `json:"small_blind"`
	MinRaise       Amount           `json:"min_raise"`
	Players        []PlayerSnapshot `json:"players"`
	ActionHistory  []string         `json:"action_history,omitempty"`
}

// Street resolves the betting round, preferring the explicit round label and
// falling back to the board size.
func (t *TableSnapshot) Street() poker.Street {
	if t.CurrentRound != "" {
		return poker.StreetFromString(t.CurrentRound)
	}
	return poker.StreetForBoard(len(t.CommunityCards))
}

// Decision is the advisor's output. Amount is non-zero only for call/raise;
// a raise amount is the player's total bet for the street.
type Decision struct {
	Action poker.Action `json:"action"`
	Amount float64      `json:"amount"`
}

// NoDecision is returned when it is not the advised player's turn.
func NoDecision() Decision {
	return Decision{Action: poker.ActionNone}
}

// MarshalJSON emits the action as its lowercase name.
func (d Decision) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Action string  `json:"action"`
		Amount float64 `json:"amount"`
	}{d.Action.String(), d.Amount})
}
