package ev

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kevsman/pokerplayer/poker"
)

func TestFoldEquitySteps(t *testing.T) {
	tests := []struct {
		bet, pot, want float64
	}{
		{3, 10, 0.1},  // ratio 0.3
		{5, 10, 0.2},  // ratio 0.5
		{7, 10, 0.3},  // ratio 0.7
		{10, 10, 0.4}, // ratio 1.0
		{15, 10, 0.5}, // ratio 1.5
		{20, 10, 0.6}, // overbet
		{5, 0, 0.1},   // empty pot
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FoldEquity(tt.bet, tt.pot), "bet=%v pot=%v", tt.bet, tt.pot)
	}

	// Monotonic in the ratio.
	prev := 0.0
	for ratio := 0.1; ratio <= 2.0; ratio += 0.1 {
		fe := FoldEquity(ratio*10, 10)
		assert.GreaterOrEqual(t, fe, prev)
		prev = fe
	}
}

func TestExpectedValue(t *testing.T) {
	// Fold is always exactly zero.
	assert.Zero(t, ExpectedValue(poker.ActionFold, 50, 100, 0.9, 10))

	// Check: winProb * pot.
	assert.InDelta(t, 60.0, ExpectedValue(poker.ActionCheck, 0, 100, 0.6, 0), 1e-9)

	// Call: winProb*(pot+call) - call.
	assert.InDelta(t, 0.6*110-10, ExpectedValue(poker.ActionCall, 0, 100, 0.6, 10), 1e-9)

	// Raise: fe*pot + (1-fe)*(wp*(pot+2*amount) - amount).
	// amount 50 into pot 100 -> ratio 0.5 -> fold equity 0.2.
	want := 0.2*100 + 0.8*(0.6*(100+2*50)-50)
	assert.InDelta(t, want, ExpectedValue(poker.ActionRaise, 50, 100, 0.6, 10), 1e-9)

	// Unknown action scores zero.
	assert.Zero(t, ExpectedValue(poker.ActionNone, 50, 100, 0.6, 10))
}

func TestShouldBluff(t *testing.T) {
	// Half-pot bluff needs a third of folds to break even.
	assert.True(t, ShouldBluff(0.4, 100, 50))
	assert.False(t, ShouldBluff(0.3, 100, 50))
	assert.False(t, ShouldBluff(0.9, 0, 0))

	// Monotonic in fold equity.
	for fe := 0.0; fe <= 1.0; fe += 0.05 {
		if ShouldBluff(fe, 100, 50) {
			assert.True(t, ShouldBluff(fe+0.05, 100, 50))
		}
	}
}

func TestOptimalBetSizeValue(t *testing.T) {
	// Full house on the river bets big.
	bet := OptimalBetSize(poker.CategoryFullHouse, 100, 1000, poker.River, 2, false, 1)
	assert.InDelta(t, 85.0, bet, 1e-9)

	// Trips on the flop.
	bet = OptimalBetSize(poker.CategoryThreeOfAKind, 100, 1000, poker.Flop, 2, false, 1)
	assert.InDelta(t, 65.0, bet, 1e-9)

	// Pair sizes smaller.
	bet = OptimalBetSize(poker.CategoryOnePair, 100, 1000, poker.Flop, 2, false, 1)
	assert.InDelta(t, 50.0, bet, 1e-9)

	// High card stabs a third pot.
	bet = OptimalBetSize(poker.CategoryHighCard, 100, 1000, poker.Flop, 2, false, 1)
	assert.InDelta(t, 33.0, bet, 1e-9)
}

func TestOptimalBetSizeSPR(t *testing.T) {
	// Short stack (spr<=2) bets 1.3x.
	bet := OptimalBetSize(poker.CategoryOnePair, 100, 150, poker.Flop, 2, false, 1)
	assert.InDelta(t, 65.0, bet, 1e-9)

	// Very deep with a medium hand slows down (0.8x).
	bet = OptimalBetSize(poker.CategoryOnePair, 100, 2000, poker.Flop, 2, false, 1)
	assert.InDelta(t, 40.0, bet, 1e-9)

	// Deep with a monster does not slow down.
	bet = OptimalBetSize(poker.CategoryFullHouse, 100, 2000, poker.Flop, 2, false, 1)
	assert.InDelta(t, 75.0, bet, 1e-9)
}

func TestOptimalBetSizeFloorsAndCaps(t *testing.T) {
	// Never exceeds the stack.
	bet := OptimalBetSize(poker.CategoryFullHouse, 100, 30, poker.River, 2, false, 1)
	assert.InDelta(t, 30.0, bet, 1e-9)

	// Preflop floor is two big blinds.
	bet = OptimalBetSize(poker.CategoryHighCard, 1, 1000, poker.Preflop, 2, false, 1)
	assert.GreaterOrEqual(t, bet, 4.0)

	// Empty pot opens 2.5bb.
	assert.InDelta(t, 5.0, OptimalBetSize(poker.CategoryNone, 0, 1000, poker.Preflop, 2, false, 1), 1e-9)
}

func TestOptimalBetSizeBluff(t *testing.T) {
	// River bluffs are the largest, flop the smallest.
	river := OptimalBetSize(poker.CategoryHighCard, 100, 1000, poker.River, 2, true, 1)
	turn := OptimalBetSize(poker.CategoryHighCard, 100, 1000, poker.Turn, 2, true, 1)
	flop := OptimalBetSize(poker.CategoryHighCard, 100, 1000, poker.Flop, 2, true, 1)
	assert.Greater(t, river, turn)
	assert.Greater(t, turn, flop)

	// Aggression scales the size, within bounds.
	tame := OptimalBetSize(poker.CategoryHighCard, 100, 1000, poker.Flop, 2, true, 0.7)
	wild := OptimalBetSize(poker.CategoryHighCard, 100, 1000, poker.Flop, 2, true, 2.5)
	assert.Less(t, tame, wild)
	assert.InDelta(t, 65.0, wild, 1e-9) // clamped at 1.3x

	// Bluffs are floored at 2bb and capped at the stack.
	assert.InDelta(t, 4.0, OptimalBetSize(poker.CategoryHighCard, 1, 1000, poker.Flop, 2, true, 1), 1e-9)
	assert.InDelta(t, 20.0, OptimalBetSize(poker.CategoryHighCard, 100, 20, poker.River, 2, true, 1), 1e-9)
}

func TestPotOdds(t *testing.T) {
	assert.InDelta(t, 0.25, PotOdds(10, 30), 1e-9)
	assert.Zero(t, PotOdds(0, 100))
	assert.Zero(t, PotOdds(-5, 100))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.2345))
	assert.Equal(t, 1.24, Round2(1.236))
	assert.Equal(t, 0.0, Round2(0.004))
}
