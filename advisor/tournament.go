package advisor

import (
	"math"

	"github.com/kevsman/pokerplayer/internal/ev"
	"github.com/kevsman/pokerplayer/poker"
)

// tournamentFactors scale the base strategy for tournament play. 1.0 is
// neutral everywhere.
type tournamentFactors struct {
	preflopTightness   float64
	postflopAggression float64
	bluffFrequency     float64
	valueBetSizing     float64
	callTightness      float64
}

// tournamentFactorsFor derives adjustment factors from the tournament stage
// (1 early, 2 middle, 3 late) and the stack depth in big blinds.
func tournamentFactorsFor(stack, bigBlind float64, level int) tournamentFactors {
	stackBB := 50.0
	if bigBlind > 0 {
		stackBB = stack / bigBlind
	}

	f := tournamentFactors{1.0, 1.0, 1.0, 1.0, 1.0}
	switch level {
	case 1:
		// Early: tight, build slowly.
		f.preflopTightness = 1.2
		f.bluffFrequency = 0.8
		f.callTightness = 1.1
	case 2:
		switch {
		case stackBB < 20:
			// Short: loosen up to accumulate.
			f.preflopTightness = 0.8
			f.postflopAggression = 1.3
			f.bluffFrequency = 1.2
		case stackBB > 50:
			f.postflopAggression = 1.2
			f.bluffFrequency = 1.1
		}
	default:
		// Late stage, ICM pressure.
		switch {
		case stackBB < 15:
			// Push/fold territory.
			f.preflopTightness = 0.6
			f.postflopAggression = 1.5
			f.callTightness = 1.4
		case stackBB > 40:
			f.bluffFrequency = 1.3
			f.valueBetSizing = 1.1
		default:
			// Medium stack survival mode.
			f.preflopTightness = 1.3
			f.callTightness = 1.3
			f.bluffFrequency = 0.7
		}
	}
	return f
}

// adjustForTournament applies the stage adjustments to a decided action.
// It only ever downgrades (raise to call, call to fold) or rescales a raise
// amount; a fold is never upgraded back into an action.
func adjustForTournament(d Decision, dc *decisionContext, level int) Decision {
	if d.Action == poker.ActionFold || d.Action == poker.ActionNone {
		return d
	}
	f := tournamentFactorsFor(dc.stack, dc.cfg.BigBlind, level)

	if dc.street == poker.Preflop {
		return adjustPreflopForTournament(d, dc, f)
	}

	if d.Action == poker.ActionRaise {
		combined := (f.valueBetSizing + f.postflopAggression) / 2
		d.Amount = ev.Round2(math.Min(d.Amount*combined, dc.stack))
	}
	return d
}

// adjustPreflopForTournament tightens marginal preflop continues when the
// stage calls for it. Premium and strong tiers are never downgraded.
func adjustPreflopForTournament(d Decision, dc *decisionContext, f tournamentFactors) Decision {
	if f.preflopTightness <= 1.1 {
		return d
	}
	switch dc.category {
	case poker.PreflopMediumPair, poker.PreflopPlayableBroadway, poker.PreflopOffsuitBroadway:
		switch d.Action {
		case poker.ActionCall:
			dc.logger.Debug("tournament: folding marginal hand",
				"category", dc.category, "tightness", f.preflopTightness)
			return Decision{Action: poker.ActionFold}
		case poker.ActionRaise:
			if dc.betToCall > 0 {
				dc.logger.Debug("tournament: flattening marginal raise",
					"category", dc.category, "tightness", f.preflopTightness)
				return Decision{Action: poker.ActionCall, Amount: dc.betToCall}
			}
		}
	}
	return d
}
