// Package ev holds the pure expected-value and bet-sizing math. Everything
// here is deterministic and side-effect free.
package ev

import (
	"math"

	"github.com/kevsman/pokerplayer/poker"
)

// FoldEquity estimates how often opponents fold to a bet, from the
// bet-to-pot ratio alone. Monotonic step function; an empty pot gets the
// conservative floor.
func FoldEquity(betSize, potSize float64) float64 {
	if potSize <= 0 {
		return 0.1
	}
	ratio := betSize / potSize
	switch {
	case ratio <= 0.3:
		return 0.1
	case ratio <= 0.5:
		return 0.2
	case ratio <= 0.75:
		return 0.3
	case ratio <= 1.0:
		return 0.4
	case ratio <= 1.5:
		return 0.5
	default:
		return 0.6
	}
}

// ExpectedValue scores an action in chips. Folding is always exactly 0.
// For a raise, amount is the total bet for the street and the opponent is
// assumed to match it when not folding.
func ExpectedValue(action poker.Action, amount, potSize, winProbability, betToCall float64) float64 {
	switch action {
	case poker.ActionFold:
		return 0.0
	case poker.ActionCheck:
		return winProbability * potSize
	case poker.ActionCall:
		return winProbability*(potSize+betToCall) - betToCall
	case poker.ActionRaise:
		foldEquity := FoldEquity(amount, potSize)
		evFold := foldEquity * potSize
		evCalled := winProbability*(potSize+2*amount) - amount
		return evFold + (1-foldEquity)*evCalled
	default:
		return 0.0
	}
}

// ShouldBluff reports whether a bet is profitable on fold equity alone:
// foldEquity must exceed the bet's share of the final pot.
func ShouldBluff(foldEquity, potSize, betSize float64) bool {
	if potSize+betSize <= 0 {
		return false
	}
	return foldEquity > betSize/(potSize+betSize)
}

// OptimalBetSize recommends a bet for the given strength and situation.
// The result is floored at a street-dependent minimum, capped at the stack,
// and rounded to cents.
func OptimalBetSize(handRank poker.HandCategory, potSize, stackSize float64, street poker.Street, bigBlind float64, isBluff bool, aggressionFactor float64) float64 {
	if potSize <= 0 {
		return Round2(math.Min(bigBlind*2.5, stackSize))
	}

	if isBluff {
		var bet float64
		switch street {
		case poker.River:
			bet = potSize * 0.75
		case poker.Turn:
			bet = potSize * 0.65
		default:
			bet = potSize * 0.5
		}
		if aggressionFactor > 0 {
			bet *= clamp(aggressionFactor, 0.7, 1.3)
		}
		bet = math.Max(bet, bigBlind*2)
		return Round2(math.Min(bet, stackSize))
	}

	var bet float64
	switch {
	case handRank >= poker.CategoryFullHouse:
		if street == poker.River {
			bet = potSize * 0.85
		} else {
			bet = potSize * 0.75
		}
	case handRank >= poker.CategoryThreeOfAKind:
		if street == poker.River {
			bet = potSize * 0.70
		} else {
			bet = potSize * 0.65
		}
	case handRank >= poker.CategoryOnePair:
		if street == poker.River {
			bet = potSize * 0.55
		} else {
			bet = potSize * 0.50
		}
	default:
		bet = potSize * 0.33
	}

	// Stack-to-pot ratio: push harder when short, slow down with medium
	// strength when very deep.
	spr := stackSize / potSize
	switch {
	case spr <= 2:
		bet *= 1.3
	case spr <= 4:
		bet *= 1.1
	case spr >= 15 && handRank < poker.CategoryThreeOfAKind:
		bet *= 0.8
	}

	minBet := bigBlind
	if street == poker.Preflop {
		minBet = bigBlind * 2
	}
	bet = math.Max(bet, minBet)
	return Round2(math.Min(bet, stackSize))
}

// PotOdds is the share of the final pot the caller must put in.
func PotOdds(betToCall, potSize float64) float64 {
	if betToCall <= 0 || potSize+betToCall <= 0 {
		return 0
	}
	return betToCall / (potSize + betToCall)
}

// Round2 rounds to 2 decimal places, the precision of every amount the
// advisor emits.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
