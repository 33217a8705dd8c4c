package advisor

import (
	"math"

	"github.com/kevsman/pokerplayer/internal/ev"
	"github.com/kevsman/pokerplayer/poker"
)

// preflopPolicy maps a preflop situation to an action by hand category.
// Category tiers choose the line; win probability and pot odds gate the
// marginal spots.
type preflopPolicy struct{}

func (p *preflopPolicy) Decide(dc *decisionContext) Decision {
	if d, ok := p.setMiningCall(dc); ok {
		return d
	}

	raiseAmount := p.raiseSize(dc)

	dc.logger.Debug("preflop policy",
		"category", dc.category,
		"win_prob", dc.winProbability,
		"bet_to_call", dc.betToCall,
		"raise_size", raiseAmount)

	switch dc.category {
	case poker.PreflopPremium:
		return p.decidePremium(dc, raiseAmount)
	case poker.PreflopStrong, poker.PreflopSuitedAce, poker.PreflopOffsuitBroadway:
		return p.decideStrong(dc, raiseAmount)
	case poker.PreflopPlayableBroadway, poker.PreflopMediumPair, poker.PreflopSuitedConnector:
		return p.decidePlayable(dc, raiseAmount)
	}

	if dc.canCheck {
		return Decision{Action: poker.ActionCheck}
	}
	return Decision{Action: poker.ActionFold}
}

// setMiningCall flat-calls cheap multiway bets with small pocket pairs,
// playing for set value: at least two opponents, the call at most 10% of
// stack, and enough raw equity.
func (p *preflopPolicy) setMiningCall(dc *decisionContext) (Decision, bool) {
	pairRank, isPair := pocketPairRank(dc.eval)
	if !isPair || pairRank > poker.Seven {
		return Decision{}, false
	}
	if dc.betToCall <= 0 {
		return Decision{}, false
	}
	if dc.activeOpponents >= 2 &&
		dc.betToCall <= dc.stack*0.10 &&
		dc.winProbability > 0.15 {
		dc.logger.Debug("preflop: set-mining call",
			"pair", pairRank, "bet_to_call", dc.betToCall)
		return Decision{Action: poker.ActionCall, Amount: dc.betToCall}, true
	}
	return Decision{}, false
}

func pocketPairRank(eval poker.Evaluation) (poker.Rank, bool) {
	if eval.Category != poker.CategoryNone || len(eval.TieBreakers) != 2 {
		return 0, false
	}
	if eval.TieBreakers[0] != eval.TieBreakers[1] {
		return 0, false
	}
	return eval.TieBreakers[0], true
}

// raiseSize computes the standard raise-to amount: 3bb plus one bb per
// limper when opening, three times the largest bet when re-raising, scaled
// by the configured aggression and bounded by legal minimums and the stack.
func (p *preflopPolicy) raiseSize(dc *decisionContext) float64 {
	bb := dc.cfg.BigBlind
	sb := dc.cfg.SmallBlind

	myInvestment := dc.myCurrentBet
	if dc.position == poker.SmallBlind && myInvestment < sb {
		myInvestment = sb
	}
	if dc.position == poker.BigBlind && myInvestment < bb {
		myInvestment = bb
	}

	limpers := 0
	if dc.betToCall == 0 && dc.maxBet <= bb {
		excess := dc.potSize - (sb + bb)
		if !dc.position.IsBlind() {
			excess -= myInvestment
		}
		if excess > 0 {
			limpers = int(math.Round(excess / bb))
		}
	}

	var base float64
	switch {
	case dc.betToCall == 0:
		base = math.Max(bb*3+float64(limpers)*bb, bb*2.5)
	case dc.maxBet > 0:
		minReraiseTotal := myInvestment + 2*dc.betToCall
		base = math.Max(3*dc.maxBet, minReraiseTotal)
	default:
		base = bb * 3
	}

	amount := math.Min(base*dc.cfg.PreflopAggression, dc.stack)
	amount = math.Max(amount, bb*2)

	if dc.betToCall > 0 {
		minTotal := dc.maxBet * 2
		if myInvestment > 0 {
			minTotal = dc.maxBet + (dc.maxBet - myInvestment)
		}
		minTotal = math.Max(minTotal, dc.maxBet+bb)
		amount = math.Max(amount, minTotal)
	}
	return ev.Round2(math.Min(amount, dc.stack))
}

// decidePremium plays AA/KK/QQ/AKs. These hands raise for value whenever the
// price allows and never fold to an all-in.
func (p *preflopPolicy) decidePremium(dc *decisionContext, raiseAmount float64) Decision {
	if dc.betToCall == 0 {
		return Decision{Action: poker.ActionRaise, Amount: ev.Round2(math.Min(raiseAmount*1.25, dc.stack))}
	}

	if dc.betToCall <= dc.stack*0.6 {
		reraise := math.Min(math.Max(raiseAmount, dc.betToCall*3), dc.stack)
		if reraise > dc.betToCall && reraise < dc.stack*0.85 {
			return Decision{Action: poker.ActionRaise, Amount: ev.Round2(reraise)}
		}
		return Decision{Action: poker.ActionCall, Amount: dc.betToCall}
	}

	// Facing a huge bet or all-in: premium hands call, never fold.
	return Decision{Action: poker.ActionCall, Amount: math.Min(dc.stack, dc.betToCall)}
}

// decideStrong plays JJ/TT/AQs/AKo plus suited aces and offsuit broadways.
func (p *preflopPolicy) decideStrong(dc *decisionContext, raiseAmount float64) Decision {
	openThreshold, callThreshold := 0.22, 0.20
	if dc.category == poker.PreflopOffsuitBroadway {
		// AJo/KQo-type hands open a touch wider.
		openThreshold, callThreshold = 0.18, 0.16
	}

	switch {
	case dc.betToCall == 0 && dc.winProbability > openThreshold:
		return Decision{Action: poker.ActionRaise, Amount: raiseAmount}

	case dc.betToCall > 0 && (dc.winProbability > dc.potOdds || dc.winProbability > callThreshold):
		if dc.winProbability > openThreshold+0.03 && raiseAmount < dc.stack*0.6 {
			return Decision{Action: poker.ActionRaise, Amount: raiseAmount}
		}
		return Decision{Action: poker.ActionCall, Amount: dc.betToCall}

	case dc.betToCall > 0 && dc.facingAllIn() && dc.category == poker.PreflopStrong:
		// Strong-tier hands do not fold for their whole stack.
		return Decision{Action: poker.ActionCall, Amount: math.Min(dc.stack, dc.betToCall)}

	case dc.canCheck:
		return Decision{Action: poker.ActionCheck}
	}
	return Decision{Action: poker.ActionFold}
}

// decidePlayable handles medium pairs, suited connectors and weaker
// broadways: open when unraised, call small bets with equity, and fold to
// three-bets unless the odds are exceptional.
func (p *preflopPolicy) decidePlayable(dc *decisionContext, raiseAmount float64) Decision {
	bb := dc.cfg.BigBlind

	facing3Bet := (dc.maxBet > bb*4 && dc.betToCall > dc.maxBet) || dc.betToCall > bb*8
	if facing3Bet {
		if dc.category == poker.PreflopSuitedConnector &&
			dc.winProbability > 0.28 && dc.winProbability > dc.potOdds &&
			dc.betToCall < dc.stack*0.20 {
			return Decision{Action: poker.ActionCall, Amount: dc.betToCall}
		}
		if dc.winProbability > 0.30 && dc.winProbability > dc.potOdds &&
			dc.betToCall < dc.stack*0.15 {
			return Decision{Action: poker.ActionCall, Amount: dc.betToCall}
		}
		if dc.canCheck {
			return Decision{Action: poker.ActionCheck}
		}
		return Decision{Action: poker.ActionFold}
	}

	switch {
	case dc.betToCall == 0 && dc.winProbability > 0.18:
		return Decision{Action: poker.ActionRaise, Amount: raiseAmount}
	case dc.betToCall > 0 && dc.betToCall <= dc.potSize*0.5 &&
		(dc.winProbability > dc.potOdds || dc.winProbability > 0.15):
		return Decision{Action: poker.ActionCall, Amount: dc.betToCall}
	case dc.canCheck:
		return Decision{Action: poker.ActionCheck}
	}
	return Decision{Action: poker.ActionFold}
}
