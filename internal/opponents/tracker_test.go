package opponents

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevsman/pokerplayer/poker"
)

func observeHands(t *Tracker, name string, hands int, action poker.Action) {
	for i := 0; i < hands; i++ {
		t.StartHand()
		t.Observe(name, action, poker.Preflop, poker.Button, 0, 0)
	}
}

func TestTendenciesDefaultsUntilSampled(t *testing.T) {
	tr := NewTracker(nil)

	// Unseen player.
	got := tr.Tendencies("ghost")
	assert.Equal(t, DefaultTendencies(), got)

	// Seen but under-sampled.
	observeHands(tr, "newbie", MinSampleHands-1, poker.ActionCall)
	assert.Equal(t, DefaultTendencies(), tr.Tendencies("newbie"))

	// At the sample threshold the real numbers take over.
	tr.StartHand()
	tr.Observe("newbie", poker.ActionFold, poker.Preflop, poker.Button, 0, 0)
	got = tr.Tendencies("newbie")
	assert.Equal(t, MinSampleHands, got.HandsSeen)
	assert.InDelta(t, 0.9, got.VPIP, 1e-9)
}

func TestHandsSeenCountsOncePerHand(t *testing.T) {
	tr := NewTracker(nil)
	tr.StartHand()

	// Multiple preflop actions in one hand (call, then face a raise, call again).
	tr.Observe("villain", poker.ActionCall, poker.Preflop, poker.BigBlind, 0, 0)
	tr.Observe("villain", poker.ActionCall, poker.Preflop, poker.BigBlind, 0, 0)
	tr.Observe("villain", poker.ActionRaise, poker.Preflop, poker.BigBlind, 6, 9)

	p := tr.Profile("villain")
	require.NotNil(t, p)
	assert.Equal(t, 1, p.HandsSeen)
	assert.Equal(t, 1, p.HandsPlayed)
	assert.Equal(t, 1, p.PreflopRaises)
}

func TestVPIPAndPFR(t *testing.T) {
	tr := NewTracker(nil)
	observeHands(tr, "v", 5, poker.ActionRaise)
	observeHands(tr, "v", 5, poker.ActionCall)
	observeHands(tr, "v", 10, poker.ActionFold)

	p := tr.Profile("v")
	assert.Equal(t, 20, p.HandsSeen)
	assert.InDelta(t, 0.5, p.VPIP(), 1e-9)
	assert.InDelta(t, 0.25, p.PFR(), 1e-9)
}

func TestAggressionFactor(t *testing.T) {
	p := NewProfile("x")
	// No postflop sample yet.
	assert.Equal(t, DefaultAggression, p.AggressionFactor())

	// Uncalled aggression is floored at the default.
	p.PostflopBets = 1
	assert.Equal(t, DefaultAggression, p.AggressionFactor())
	p.PostflopBets = 4
	assert.Equal(t, 4.0, p.AggressionFactor())

	// Normal ratio once calls exist.
	p.PostflopCalls = 2
	assert.Equal(t, 2.0, p.AggressionFactor())
}

func TestStyleClassification(t *testing.T) {
	tests := []struct {
		name       string
		seen       int
		played     int
		raised     int
		want       Style
	}{
		{"under sample", 5, 5, 5, StyleUnknown},
		{"tight passive", 100, 10, 5, StyleTightPassive},
		{"tight aggressive", 100, 14, 12, StyleTightAggressive},
		{"loose passive", 100, 20, 10, StyleLoosePassive},
		{"loose aggressive", 100, 24, 18, StyleLooseAggressive},
		{"very loose passive", 100, 50, 10, StyleVeryLoosePassive},
		{"very loose aggressive", 100, 50, 30, StyleVeryLooseAggressive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProfile("x")
			p.HandsSeen = tt.seen
			p.HandsPlayed = tt.played
			p.PreflopRaises = tt.raised
			assert.Equal(t, tt.want, p.Style())
		})
	}
}

func TestFoldEquityEstimate(t *testing.T) {
	p := NewProfile("x")
	p.HandsSeen = 100
	p.HandsPlayed = 10
	p.PreflopRaises = 5 // tight passive: base 0.7

	// Overbets push fold equity up; clamped at 0.9.
	assert.InDelta(t, 0.85, p.FoldEquityEstimate(poker.Button, 1.2), 1e-9)
	// Small bets pull it down.
	assert.InDelta(t, 0.6, p.FoldEquityEstimate(poker.Button, 0.3), 1e-9)

	// Unknown profile sits near the middle.
	fresh := NewProfile("y")
	assert.InDelta(t, 0.5, fresh.FoldEquityEstimate(poker.Button, 0.6), 1e-9)
}

func TestPositionTendencies(t *testing.T) {
	tr := NewTracker(nil)
	for i := 0; i < 4; i++ {
		tr.StartHand()
		tr.Observe("v", poker.ActionFold, poker.Preflop, poker.Cutoff, 0, 0)
	}
	tr.StartHand()
	tr.Observe("v", poker.ActionRaise, poker.Preflop, poker.Cutoff, 3, 1.5)

	got := tr.Profile("v").PositionTendencies(poker.Cutoff)
	assert.InDelta(t, 0.8, got.FoldRate, 1e-9)
	assert.InDelta(t, 0.2, got.PFR, 1e-9)

	// Unobserved position reports zeroes.
	assert.Equal(t, PositionTendencies{}, tr.Profile("v").PositionTendencies(poker.SmallBlind))
}

func TestTableDynamics(t *testing.T) {
	tr := NewTracker(nil)
	assert.Equal(t, "unknown", tr.TableDynamics().TableType)

	observeHands(tr, "nit", 10, poker.ActionFold)
	dyn := tr.TableDynamics()
	assert.Equal(t, "tight", dyn.TableType)
	assert.Equal(t, 1, dyn.SampleSize)

	observeHands(tr, "whale", 10, poker.ActionCall)
	dyn = tr.TableDynamics()
	assert.Equal(t, "loose", dyn.TableType)
	assert.Equal(t, 2, dyn.SampleSize)
}

func TestAverageBetSize(t *testing.T) {
	tr := NewTracker(nil)
	tr.StartHand()
	tr.Observe("v", poker.ActionRaise, poker.Flop, poker.Button, 5, 10)
	tr.Observe("v", poker.ActionRaise, poker.Flop, poker.Button, 10, 10)

	assert.InDelta(t, 0.75, tr.Profile("v").AverageBetSize("flop_bet"), 1e-9)
	assert.Zero(t, tr.Profile("v").AverageBetSize("river_bet"))
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")

	tr := NewTracker(nil)
	observeHands(tr, "villain", 12, poker.ActionRaise)
	require.NoError(t, tr.Save(path))

	restored := NewTracker(nil)
	require.NoError(t, restored.Load(path))

	p := restored.Profile("villain")
	require.NotNil(t, p)
	assert.Equal(t, 12, p.HandsSeen)
	assert.Equal(t, 12, p.PreflopRaises)
	assert.NotEqual(t, DefaultTendencies(), restored.Tendencies("villain"))

	// Missing file loads cleanly.
	assert.NoError(t, NewTracker(nil).Load(filepath.Join(t.TempDir(), "absent.json")))
}

func TestRecommendation(t *testing.T) {
	tr := NewTracker(nil)
	assert.Equal(t, "play_standard", tr.Recommendation("nobody"))

	observeHands(tr, "nit", 20, poker.ActionFold)
	assert.Equal(t, "value_bet_thin", tr.Recommendation("nit"))
}
