package poker

// Action represents the type of action a player can take
type Action int

const (
	// ActionNone is returned when no action is required (not our turn)
	ActionNone Action = iota
	// ActionFold discards the hand and forfeits interest in the pot
	ActionFold
	// ActionCheck passes the action with no bet (when there is no bet to call)
	ActionCheck
	// ActionCall matches the current bet
	ActionCall
	// ActionRaise increases the current bet
	ActionRaise
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case ActionFold:
		return "fold"
	case ActionCheck:
		return "check"
	case ActionCall:
		return "call"
	case ActionRaise:
		return "raise"
	case ActionNone:
		return "none"
	default:
		return "unknown"
	}
}

// ActionFromString converts a string to an Action. Bets are treated as
// raises; unknown actions map to ActionNone.
func ActionFromString(s string) Action {
	switch s {
	case "fold", "FOLD":
		return ActionFold
	case "check", "CHECK":
		return ActionCheck
	case "call", "CALL":
		return ActionCall
	case "raise", "RAISE", "bet", "BET":
		return ActionRaise
	default:
		return ActionNone
	}
}

// Street represents the current betting round
type Street int

const (
	// Preflop before any community cards
	Preflop Street = iota
	// Flop after the first 3 community cards
	Flop
	// Turn after the 4th community card
	Turn
	// River after the 5th community card
	River
)

// String returns the string representation of a street
func (s Street) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	default:
		return "unknown"
	}
}

// StreetFromString converts a string to a Street, defaulting to Preflop
func StreetFromString(s string) Street {
	switch s {
	case "preflop", "pre-flop", "Preflop", "Pre-Flop":
		return Preflop
	case "flop", "Flop":
		return Flop
	case "turn", "Turn":
		return Turn
	case "river", "River":
		return River
	default:
		return Preflop
	}
}

// StreetForBoard derives the street from the number of community cards
func StreetForBoard(communityCards int) Street {
	switch {
	case communityCards >= 5:
		return River
	case communityCards == 4:
		return Turn
	case communityCards >= 3:
		return Flop
	default:
		return Preflop
	}
}

// Position represents a player's position at the table
type Position int

const (
	// UnknownPosition when position is not determined
	UnknownPosition Position = iota
	// SmallBlind position
	SmallBlind
	// BigBlind position
	BigBlind
	// UnderTheGun (first to act preflop after the blinds)
	UnderTheGun
	// MiddlePosition
	MiddlePosition
	// Cutoff (one before the button)
	Cutoff
	// Button (dealer position, acts last postflop)
	Button
)

// String returns the short label for a position
func (p Position) String() string {
	switch p {
	case SmallBlind:
		return "SB"
	case BigBlind:
		return "BB"
	case UnderTheGun:
		return "UTG"
	case MiddlePosition:
		return "MP"
	case Cutoff:
		return "CO"
	case Button:
		return "BTN"
	default:
		return "?"
	}
}

// PositionFromString converts a position label to a Position. Extended
// N-max labels (UTG+1, MP+1, HJ, LJ) collapse into the nearest of the six
// canonical positions.
func PositionFromString(s string) Position {
	switch s {
	case "SB", "sb", "Small Blind":
		return SmallBlind
	case "BB", "bb", "Big Blind":
		return BigBlind
	case "UTG", "utg", "UTG+1", "UTG+2", "Under the Gun":
		return UnderTheGun
	case "MP", "mp", "MP+1", "MP+2", "LJ", "Middle Position":
		return MiddlePosition
	case "CO", "co", "HJ", "Cutoff":
		return Cutoff
	case "BTN", "btn", "BU", "Button", "Dealer":
		return Button
	default:
		return UnknownPosition
	}
}

// IsLate returns true for positions that act last postflop
func (p Position) IsLate() bool {
	return p == Button || p == Cutoff
}

// IsBlind returns true for the small and big blind
func (p Position) IsBlind() bool {
	return p == SmallBlind || p == BigBlind
}
