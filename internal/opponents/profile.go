// Package opponents tracks per-player statistics (VPIP, PFR, aggression)
// and derives style classifications and fold-equity estimates from them.
package opponents

import (
	"fmt"

	"github.com/kevsman/pokerplayer/poker"
)

// Defaults assumed for players without a meaningful sample.
const (
	DefaultVPIP       = 0.25
	DefaultPFR        = 0.15
	DefaultAggression = 1.5

	// MinSampleHands is how many observed hands a profile needs before its
	// own statistics override the defaults.
	MinSampleHands = 10
)

// Style buckets a player by VPIP/PFR.
type Style string

const (
	StyleUnknown             Style = "unknown"
	StyleTightPassive        Style = "tight_passive"
	StyleTightAggressive     Style = "tight_aggressive"
	StyleLoosePassive        Style = "loose_passive"
	StyleLooseAggressive     Style = "loose_aggressive"
	StyleVeryLoosePassive    Style = "very_loose_passive"
	StyleVeryLooseAggressive Style = "very_loose_aggressive"
)

// PositionStats tallies a player's actions from one position.
type PositionStats struct {
	Hands  int `json:"hands"`
	Raises int `json:"raises"`
	Calls  int `json:"calls"`
	Folds  int `json:"folds"`
}

// PositionTendencies are the rates derived from PositionStats, as fractions.
type PositionTendencies struct {
	VPIP     float64
	PFR      float64
	FoldRate float64
}

// Profile accumulates one player's observed behavior. Counters are exported
// for JSON persistence; use the accessor methods for derived statistics.
type Profile struct {
	Name string `json:"name"`

	HandsSeen   int `json:"hands_seen"`
	HandsPlayed int `json:"hands_played"`

	PreflopRaises int `json:"preflop_raises"`
	PreflopCalls  int `json:"preflop_calls"`
	PreflopFolds  int `json:"preflop_folds"`

	PostflopBets   int `json:"postflop_bets"`
	PostflopRaises int `json:"postflop_raises"`
	PostflopCalls  int `json:"postflop_calls"`
	PostflopChecks int `json:"postflop_checks"`
	PostflopFolds  int `json:"postflop_folds"`

	PositionStats map[string]*PositionStats `json:"position_stats,omitempty"`

	// BetSizeRatios records bet/pot ratios keyed by context
	// ("preflop_open", "flop_bet", "turn_bet", "river_bet").
	BetSizeRatios map[string][]float64 `json:"bet_size_ratios,omitempty"`

	// Hand-boundary markers, keyed off the tracker's hand sequence so each
	// hand contributes at most once to the per-hand statistics.
	lastHandSeen   uint64
	lastHandPlayed uint64
	lastHandRaised uint64
}

// NewProfile creates an empty profile for the named player.
func NewProfile(name string) *Profile {
	return &Profile{
		Name:          name,
		PositionStats: make(map[string]*PositionStats),
		BetSizeRatios: make(map[string][]float64),
	}
}

// VPIP is the fraction of observed hands where the player voluntarily put
// money in preflop.
func (p *Profile) VPIP() float64 {
	if p.HandsSeen == 0 {
		return 0
	}
	return float64(p.HandsPlayed) / float64(p.HandsSeen)
}

// PFR is the fraction of observed hands with a preflop raise.
func (p *Profile) PFR() float64 {
	if p.HandsSeen == 0 {
		return 0
	}
	return float64(p.PreflopRaises) / float64(p.HandsSeen)
}

// AggressionFactor is postflop (bets+raises)/calls. With no calls observed
// the raw aggressive count stands in, floored at the default so a single
// uncalled bet does not read as hyper-aggression.
func (p *Profile) AggressionFactor() float64 {
	aggressive := p.PostflopBets + p.PostflopRaises
	passive := p.PostflopCalls
	if passive == 0 {
		if aggressive == 0 {
			return DefaultAggression
		}
		return max(float64(aggressive), DefaultAggression)
	}
	return float64(aggressive) / float64(passive)
}

// Style classifies the player from VPIP/PFR. Profiles below the minimum
// sample are unknown.
func (p *Profile) Style() Style {
	if p.HandsSeen < MinSampleHands {
		return StyleUnknown
	}
	vpip, pfr := p.VPIP(), p.PFR()
	switch {
	case vpip < 0.15:
		if pfr < 0.10 {
			return StyleTightPassive
		}
		return StyleTightAggressive
	case vpip < 0.25:
		if pfr < 0.15 {
			return StyleLoosePassive
		}
		return StyleLooseAggressive
	default:
		if pfr < 0.20 {
			return StyleVeryLoosePassive
		}
		return StyleVeryLooseAggressive
	}
}

// PositionTendencies reports per-position rates; zeroes when unobserved.
func (p *Profile) PositionTendencies(pos poker.Position) PositionTendencies {
	stats, ok := p.PositionStats[pos.String()]
	if !ok || stats.Hands == 0 {
		return PositionTendencies{}
	}
	total := float64(stats.Hands)
	return PositionTendencies{
		VPIP:     float64(stats.Raises+stats.Calls) / total,
		PFR:      float64(stats.Raises) / total,
		FoldRate: float64(stats.Folds) / total,
	}
}

// AverageBetSize is the mean bet/pot ratio observed for the given context,
// zero when unobserved.
func (p *Profile) AverageBetSize(context string) float64 {
	sizes := p.BetSizeRatios[context]
	if len(sizes) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range sizes {
		sum += s
	}
	return sum / float64(len(sizes))
}

// FoldEquityEstimate guesses how often this player folds to a bet of the
// given pot ratio from the given position. Clamped to [0.1, 0.9].
func (p *Profile) FoldEquityEstimate(pos poker.Position, betSizeRatio float64) float64 {
	base := map[Style]float64{
		StyleTightPassive:        0.7,
		StyleTightAggressive:     0.6,
		StyleLoosePassive:        0.4,
		StyleLooseAggressive:     0.5,
		StyleVeryLoosePassive:    0.3,
		StyleVeryLooseAggressive: 0.4,
	}[p.Style()]
	if base == 0 {
		base = 0.5
	}

	switch {
	case betSizeRatio > 1.0:
		base += 0.15
	case betSizeRatio > 0.75:
		base += 0.1
	case betSizeRatio < 0.5:
		base -= 0.1
	}

	if t := p.PositionTendencies(pos); t.FoldRate > 0 {
		base += (t.FoldRate - 0.5) * 0.2
	}

	return clamp(base, 0.1, 0.9)
}

// ShouldValueBetThin reports whether thin value bets are profitable against
// this player. Loose-passive types call too wide; tight types do not pay off.
func (p *Profile) ShouldValueBetThin(pos poker.Position) bool {
	switch p.Style() {
	case StyleLoosePassive, StyleVeryLoosePassive:
		return true
	case StyleTightPassive, StyleTightAggressive:
		return false
	default:
		return pos.IsLate()
	}
}

// String summarises the profile for logs and the CLI.
func (p *Profile) String() string {
	return fmt.Sprintf("%s: VPIP=%.0f%% PFR=%.0f%% AF=%.1f style=%s hands=%d",
		p.Name, p.VPIP()*100, p.PFR()*100, p.AggressionFactor(), p.Style(), p.HandsSeen)
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
