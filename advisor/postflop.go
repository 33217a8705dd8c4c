package advisor

import (
	"math"

	"github.com/kevsman/pokerplayer/internal/equity"
	"github.com/kevsman/pokerplayer/internal/ev"
	"github.com/kevsman/pokerplayer/poker"
)

// postflopPolicy decides flop, turn and river spots from hand rank, equity,
// pot odds and stack depth, with a fold-equity-gated bluff line.
type postflopPolicy struct{}

func (p *postflopPolicy) Decide(dc *decisionContext) Decision {
	rank := dc.eval.Category
	isVeryStrong := rank >= poker.CategoryFullHouse
	isStrong := rank >= poker.CategoryThreeOfAKind
	isMedium := rank >= poker.CategoryOnePair

	// A strong draw (flush draw or open-ender) is worth about 8+ outs.
	isDraw := false
	if !isMedium && dc.street != poker.River {
		isDraw = equity.EstimateOuts(dc.holeCards, dc.communityCards) >= 8
	}

	// Short stacks push their edges harder; deep stacks pot-control medium
	// hands.
	aggression := dc.cfg.PostflopAggression
	switch {
	case dc.spr <= 3:
		aggression *= 1.3
	case dc.spr >= 8:
		aggression *= 0.9
	}

	dc.logger.Debug("postflop policy",
		"rank", rank,
		"win_prob", dc.winProbability,
		"spr", dc.spr,
		"bet_to_call", dc.betToCall)

	if dc.canCheck {
		return p.decideUnraised(dc, aggression, isVeryStrong, isStrong, isMedium)
	}
	return p.decideFacingBet(dc, isVeryStrong, isStrong, isMedium, isDraw)
}

// decideUnraised covers spots with no bet to call: value bet, thin value
// bet, bluff, or check behind.
func (p *postflopPolicy) decideUnraised(dc *decisionContext, aggression float64, isVeryStrong, isStrong, isMedium bool) Decision {
	bb := dc.cfg.BigBlind
	bet := func(amount float64) Decision {
		amount = math.Min(amount*aggression, dc.stack)
		amount = math.Max(amount, bb)
		return Decision{Action: poker.ActionRaise, Amount: ev.Round2(amount)}
	}

	switch {
	case isVeryStrong || (isStrong && dc.winProbability > 0.7):
		return bet(ev.OptimalBetSize(dc.eval.Category, dc.potSize, dc.stack,
			dc.street, bb, false, 0))

	case isMedium && dc.winProbability > 0.45:
		return bet(dc.potSize * 0.5)

	case isMedium && dc.street == poker.River && dc.winProbability > 0.30:
		// Thin river value: small bet that worse pairs still call.
		return bet(dc.potSize * 0.4)

	case !isMedium && dc.winProbability < 0.3:
		if d, ok := p.bluff(dc); ok {
			return d
		}
	}
	return Decision{Action: poker.ActionCheck}
}

// bluff takes a stab at the pot when the hand has no showdown value. Gated
// on the configured bluff frequency, the pot being worth attacking, and the
// estimated fold equity (shifted by how tight the table is) making the bet
// profitable on folds alone.
func (p *postflopPolicy) bluff(dc *decisionContext) (Decision, bool) {
	if dc.cfg.BluffFrequency <= 0 {
		return Decision{}, false
	}
	if dc.street != poker.River || dc.potSize <= dc.cfg.BigBlind*3 {
		return Decision{}, false
	}

	amount := math.Min(dc.potSize*0.7, dc.stack*0.4)
	if amount < dc.cfg.BigBlind {
		return Decision{}, false
	}

	foldEquity := ev.FoldEquity(amount, dc.potSize)
	switch dc.dynamics.TableType {
	case "tight":
		foldEquity += 0.1
	case "loose":
		foldEquity -= 0.1
	}
	if !ev.ShouldBluff(foldEquity, dc.potSize, amount) {
		return Decision{}, false
	}

	dc.logger.Debug("postflop: river bluff",
		"amount", amount, "fold_equity", foldEquity, "table", dc.dynamics.TableType)
	return Decision{Action: poker.ActionRaise, Amount: ev.Round2(amount)}, true
}

// decideFacingBet weighs calling, raising and folding against a live bet.
func (p *postflopPolicy) decideFacingBet(dc *decisionContext, isVeryStrong, isStrong, isMedium, isDraw bool) Decision {
	bb := dc.cfg.BigBlind
	evCall := ev.ExpectedValue(poker.ActionCall, dc.betToCall, dc.potSize, dc.winProbability, dc.betToCall)

	switch {
	case isVeryStrong:
		raise := ev.OptimalBetSize(dc.eval.Category, dc.potSize, dc.stack, dc.street, bb, false, 0)
		raise = math.Min(math.Max(raise, dc.betToCall*2.5), dc.stack)
		evRaise := ev.ExpectedValue(poker.ActionRaise, raise, dc.potSize, dc.winProbability, dc.betToCall)
		if evRaise > evCall && raise < dc.stack*0.8 {
			return Decision{Action: poker.ActionRaise, Amount: ev.Round2(raise)}
		}
		if evCall > 0 {
			return Decision{Action: poker.ActionCall, Amount: dc.betToCall}
		}
		return Decision{Action: poker.ActionFold}

	case isStrong && dc.winProbability > 0.6:
		if dc.winProbability > 0.75 && dc.betToCall < dc.potSize {
			raise := math.Min(dc.betToCall*2.8, math.Min(dc.stack, dc.potSize*1.2))
			return Decision{Action: poker.ActionRaise, Amount: ev.Round2(raise)}
		}
		if dc.winProbability > dc.potOdds || evCall > 0 {
			return Decision{Action: poker.ActionCall, Amount: dc.betToCall}
		}
		return Decision{Action: poker.ActionFold}

	case isMedium:
		// Pairs call at a small discount to raw pot odds, but not into
		// near-pot-sized bets.
		requiredEquity := dc.potOdds * 0.9
		if dc.winProbability > requiredEquity && dc.betToCall < dc.potSize*0.8 {
			return Decision{Action: poker.ActionCall, Amount: dc.betToCall}
		}
		return Decision{Action: poker.ActionFold}

	default:
		if dc.winProbability > dc.potOdds*1.1 ||
			(isDraw && dc.winProbability > 0.25 && dc.betToCall < dc.potSize*0.6) {
			return Decision{Action: poker.ActionCall, Amount: dc.betToCall}
		}
		return Decision{Action: poker.ActionFold}
	}
}
