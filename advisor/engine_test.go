package advisor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevsman/pokerplayer/poker"
)

func testConfig() Config {
	return Config{
		BigBlind:       0.02,
		SmallBlind:     0.01,
		BluffFrequency: 0.1,
		Simulations:    400,
		Seed:           42,
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(testConfig(), nil)
	require.NoError(t, err)
	return e
}

func floatPtr(v float64) *float64 { return &v }
func amountPtr(v float64) *Amount { a := Amount(v); return &a }

// twoSeatTable builds a heads-up snapshot with the hero in seat 0.
func twoSeatTable(heroHand []string, board []string, pot, heroStack, heroBet, villainBet float64) *TableSnapshot {
	return &TableSnapshot{
		PotSize:        Amount(pot),
		CommunityCards: board,
		Players: []PlayerSnapshot{
			{
				Name: "hero", Seat: 1, Hand: heroHand,
				Stack: Amount(heroStack), CurrentBet: Amount(heroBet),
				Position: "BB", IsActive: true, HasTurn: true,
			},
			{
				Name: "villain", Seat: 2,
				Stack: Amount(10), CurrentBet: Amount(villainBet),
				Position: "BTN", IsActive: true,
			},
		},
	}
}

func TestEngineRejectsInvalidConfig(t *testing.T) {
	_, err := NewEngine(Config{BigBlind: 0, SmallBlind: 0}, nil)
	assert.Error(t, err)

	_, err = NewEngine(Config{BigBlind: 0.02, SmallBlind: 0.05}, nil)
	assert.Error(t, err)
}

func TestEngineNotMyTurn(t *testing.T) {
	e := newTestEngine(t)
	table := twoSeatTable([]string{"A♠", "A♥"}, nil, 0.03, 2, 0, 0)
	table.Players[0].HasTurn = false

	d, err := e.MakeDecision(context.Background(), table, 0)
	require.NoError(t, err)
	assert.Equal(t, poker.ActionNone, d.Action)
	assert.Zero(t, d.Amount)
}

func TestEngineInvalidPlayerIndex(t *testing.T) {
	e := newTestEngine(t)
	table := twoSeatTable([]string{"A♠", "A♥"}, nil, 0.03, 2, 0, 0)

	_, err := e.MakeDecision(context.Background(), table, 5)
	assert.Error(t, err)
	_, err = e.MakeDecision(context.Background(), nil, 0)
	assert.Error(t, err)
}

func TestAcesInBigBlindNeverFold(t *testing.T) {
	e := newTestEngine(t)
	table := twoSeatTable([]string{"A♠", "A♥"}, nil, 0.03, 2, 0.02, 0.02)
	table.Players[0].BetToCall = amountPtr(0)

	d, err := e.MakeDecision(context.Background(), table, 0)
	require.NoError(t, err)
	assert.Contains(t, []poker.Action{poker.ActionCheck, poker.ActionRaise}, d.Action)
	assert.NotEqual(t, poker.ActionFold, d.Action)
}

func TestWeakHandFreeCheck(t *testing.T) {
	e := newTestEngine(t)
	table := twoSeatTable([]string{"7♠", "3♥"}, nil, 0.04, 2, 0.02, 0.02)

	d, err := e.MakeDecision(context.Background(), table, 0)
	require.NoError(t, err)
	assert.Equal(t, poker.ActionCheck, d.Action)
	assert.Zero(t, d.Amount)
}

func TestFullHouseRaisesRiverBet(t *testing.T) {
	e := newTestEngine(t)
	table := twoSeatTable(
		[]string{"A♦", "Q♦"},
		[]string{"A♠", "A♣", "K♠", "K♦", "2♣"},
		1.0, 10, 0, 0.3)
	table.Players[0].WinProbability = floatPtr(0.9)

	d, err := e.MakeDecision(context.Background(), table, 0)
	require.NoError(t, err)
	assert.Equal(t, poker.ActionRaise, d.Action)
	assert.Greater(t, d.Amount, 0.3)
}

func TestWorstHandFoldsToLargeBet(t *testing.T) {
	e := newTestEngine(t)
	table := twoSeatTable(
		[]string{"2♠", "7♣"},
		[]string{"K♠", "Q♦", "J♥"},
		1.0, 10, 0, 1.0)
	table.Players[0].WinProbability = floatPtr(0.05)

	d, err := e.MakeDecision(context.Background(), table, 0)
	require.NoError(t, err)
	assert.Equal(t, poker.ActionFold, d.Action)
	assert.Zero(t, d.Amount)
}

func TestPremiumPairCallsAllIn(t *testing.T) {
	e := newTestEngine(t)
	// Villain shoves 2.0 into a 2.06 pot; hero has exactly 2.0 behind.
	table := twoSeatTable([]string{"K♠", "K♥"}, nil, 2.06, 2.0, 0.02, 2.0)

	d, err := e.MakeDecision(context.Background(), table, 0)
	require.NoError(t, err)
	assert.NotEqual(t, poker.ActionFold, d.Action)
}

func TestBetToCallClampsToZero(t *testing.T) {
	e := newTestEngine(t)
	// Hero's street bet already exceeds the table max (stale data); the
	// computed bet-to-call must clamp to 0 so a weak hand checks for free.
	table := twoSeatTable([]string{"7♠", "3♥"}, nil, 0.10, 2, 0.06, 0.04)

	d, err := e.MakeDecision(context.Background(), table, 0)
	require.NoError(t, err)
	assert.Equal(t, poker.ActionCheck, d.Action)
}

func TestExplicitBetToCallWins(t *testing.T) {
	e := newTestEngine(t)
	// Computed bet-to-call would be 0.04, but the snapshot says 0 (check is
	// free). The explicit value is authoritative.
	table := twoSeatTable([]string{"7♠", "3♥"}, nil, 0.10, 2, 0.02, 0.06)
	table.Players[0].BetToCall = amountPtr(0)

	d, err := e.MakeDecision(context.Background(), table, 0)
	require.NoError(t, err)
	assert.Equal(t, poker.ActionCheck, d.Action)
}

func TestDecisionAmountNeverExceedsStack(t *testing.T) {
	e := newTestEngine(t)
	table := twoSeatTable(
		[]string{"A♦", "Q♦"},
		[]string{"A♠", "A♣", "K♠", "K♦", "2♣"},
		50, 0.5, 0, 0.3)
	table.Players[0].WinProbability = floatPtr(0.95)

	d, err := e.MakeDecision(context.Background(), table, 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, d.Amount, 0.5)
}

func TestSafetyCheckDowngrades(t *testing.T) {
	e := newTestEngine(t)

	dc := &decisionContext{logger: e.logger, canCheck: true}
	d := e.safetyCheck(Decision{Action: poker.ActionRaise, Amount: 0}, dc)
	assert.Equal(t, poker.ActionCheck, d.Action)

	dc.canCheck = false
	d = e.safetyCheck(Decision{Action: poker.ActionRaise, Amount: -1}, dc)
	assert.Equal(t, poker.ActionFold, d.Action)

	// A zero-amount call when check is free is just a check.
	dc.canCheck = true
	d = e.safetyCheck(Decision{Action: poker.ActionCall, Amount: 0}, dc)
	assert.Equal(t, poker.ActionCheck, d.Action)

	// Valid decisions pass through untouched.
	d = e.safetyCheck(Decision{Action: poker.ActionRaise, Amount: 0.5}, dc)
	assert.Equal(t, Decision{Action: poker.ActionRaise, Amount: 0.5}, d)

	// Fold and check always carry amount 0.
	d = e.safetyCheck(Decision{Action: poker.ActionFold, Amount: 3}, dc)
	assert.Zero(t, d.Amount)
}

func TestUpdateOpponentsFromSnapshot(t *testing.T) {
	e := newTestEngine(t)
	table := twoSeatTable([]string{"A♠", "A♥"}, nil, 0.05, 2, 0, 0.06)
	table.HandID = "h1"
	table.Players[1].LastAction = "raise"
	table.Players[1].LastActionAmount = Amount(0.06)

	e.UpdateOpponentsFromSnapshot(table, 0)

	p := e.Tracker().Profile("villain")
	require.NotNil(t, p)
	assert.Equal(t, 1, p.HandsSeen)
	assert.Equal(t, 1, p.PreflopRaises)

	// Same hand id: re-observing does not double count the hand.
	e.UpdateOpponentsFromSnapshot(table, 0)
	assert.Equal(t, 1, p.HandsSeen)

	// New hand id starts a fresh hand.
	table.HandID = "h2"
	e.UpdateOpponentsFromSnapshot(table, 0)
	assert.Equal(t, 2, p.HandsSeen)
}

func TestHandBoundaryFromStreetRegression(t *testing.T) {
	e := newTestEngine(t)
	flop := twoSeatTable([]string{"A♠", "A♥"}, []string{"K♠", "Q♦", "2♣"}, 0.1, 2, 0, 0.06)
	flop.Players[1].LastAction = "bet"
	e.UpdateOpponentsFromSnapshot(flop, 0)

	// Board resets to preflop without hand ids: that is a new hand.
	pre := twoSeatTable([]string{"A♠", "A♥"}, nil, 0.03, 2, 0, 0.02)
	pre.Players[1].LastAction = "call"
	e.UpdateOpponentsFromSnapshot(pre, 0)

	p := e.Tracker().Profile("villain")
	require.NotNil(t, p)
	assert.Equal(t, 1, p.HandsSeen)
	assert.Equal(t, 1, p.PostflopBets)
	assert.Equal(t, 1, p.PreflopCalls)
}

func TestTournamentNeverUpgradesFold(t *testing.T) {
	dc := &decisionContext{
		logger:   newTestEngine(t).logger,
		cfg:      &Config{BigBlind: 0.02, SmallBlind: 0.01},
		street:   poker.Preflop,
		category: poker.PreflopSuitedAce,
		stack:    0.2, // 10bb: the loosest push/fold stage
	}
	d := adjustForTournament(Decision{Action: poker.ActionFold}, dc, 3)
	assert.Equal(t, poker.ActionFold, d.Action)
}

func TestTournamentTightensMarginalCalls(t *testing.T) {
	dc := &decisionContext{
		logger:    newTestEngine(t).logger,
		cfg:       &Config{BigBlind: 0.02, SmallBlind: 0.01},
		street:    poker.Preflop,
		category:  poker.PreflopMediumPair,
		stack:     2,
		betToCall: 0.06,
	}
	// Early stage (level 1) plays tighter: marginal calls become folds,
	// marginal raises flatten to calls.
	d := adjustForTournament(Decision{Action: poker.ActionCall, Amount: 0.06}, dc, 1)
	assert.Equal(t, poker.ActionFold, d.Action)

	d = adjustForTournament(Decision{Action: poker.ActionRaise, Amount: 0.18}, dc, 1)
	assert.Equal(t, poker.ActionCall, d.Action)
	assert.Equal(t, 0.06, d.Amount)

	// Premium hands are never downgraded.
	dc.category = poker.PreflopPremium
	d = adjustForTournament(Decision{Action: poker.ActionRaise, Amount: 0.18}, dc, 1)
	assert.Equal(t, poker.ActionRaise, d.Action)
}

func TestTournamentRescalesPostflopRaise(t *testing.T) {
	dc := &decisionContext{
		logger: newTestEngine(t).logger,
		cfg:    &Config{BigBlind: 0.02, SmallBlind: 0.01},
		street: poker.River,
		stack:  0.3, // 15bb at level 2: short-stack aggression 1.3
	}
	d := adjustForTournament(Decision{Action: poker.ActionRaise, Amount: 0.10}, dc, 2)
	assert.InDelta(t, 0.12, d.Amount, 1e-9) // (1.0+1.3)/2 = 1.15 -> 0.115 -> rounded
}
