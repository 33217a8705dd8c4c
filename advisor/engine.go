// Package advisor turns a normalized table snapshot into a single poker
// action. The Engine owns the long-lived pieces (equity calculator,
// opponent tracker) and dispatches each decision to a per-street policy.
package advisor

import (
	"context"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/kevsman/pokerplayer/internal/equity"
	"github.com/kevsman/pokerplayer/internal/ev"
	"github.com/kevsman/pokerplayer/internal/opponents"
	"github.com/kevsman/pokerplayer/poker"
)

// Config is the engine's construction-time tuning surface. Blinds are
// required; everything else has a sensible default.
type Config struct {
	BigBlind   float64
	SmallBlind float64

	PreflopAggression  float64
	PostflopAggression float64

	BluffFrequency           float64
	SemiBluffFrequency       float64
	ContinuationBetFrequency float64

	// TournamentLevel 0 means cash game; 1-3 enable stage adjustments.
	TournamentLevel int

	// Simulations per equity estimate; Seed pins the simulation RNG.
	Simulations int
	Seed        int64
}

// Validate reports fatal configuration errors. Invalid blinds make every
// subsequent decision meaningless, so they fail construction.
func (c *Config) Validate() error {
	if c.BigBlind <= 0 {
		return fmt.Errorf("big blind must be positive, got %v", c.BigBlind)
	}
	if c.SmallBlind <= 0 || c.SmallBlind > c.BigBlind {
		return fmt.Errorf("small blind must be in (0, big blind], got %v", c.SmallBlind)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.PreflopAggression <= 0 {
		c.PreflopAggression = 1.0
	}
	if c.PostflopAggression <= 0 {
		c.PostflopAggression = 1.0
	}
	if c.BluffFrequency < 0 {
		c.BluffFrequency = 0
	}
	if c.Simulations <= 0 {
		c.Simulations = equity.DefaultSimulations
	}
}

// streetPolicy is one betting round's decision function. Implementations are
// pure: everything they need arrives in the decision context.
type streetPolicy interface {
	Decide(dc *decisionContext) Decision
}

// decisionContext carries the normalized inputs for one decision.
type decisionContext struct {
	logger *log.Logger
	cfg    *Config

	street   poker.Street
	position poker.Position

	holeCards      []string
	communityCards []string
	eval           poker.Evaluation
	category       poker.PreflopCategory

	winProbability float64
	potOdds        float64
	spr            float64

	potSize      float64
	stack        float64
	betToCall    float64
	maxBet       float64
	myCurrentBet float64
	canCheck     bool

	activeOpponents int
	dynamics        opponents.TableDynamics
}

func (dc *decisionContext) facingAllIn() bool {
	return dc.betToCall >= dc.stack
}

// Engine is the decision orchestrator. Create one per advised player; it is
// long-lived and reused across hands.
type Engine struct {
	cfg     Config
	logger  *log.Logger
	clock   quartz.Clock
	equity  *equity.Calculator
	tracker *opponents.Tracker

	preflop  streetPolicy
	postflop streetPolicy

	lastHandID string
	lastStreet poker.Street
}

// Option customizes engine construction.
type Option func(*Engine)

// WithClock injects a clock for decision-latency measurement.
func WithClock(c quartz.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithTracker shares a pre-existing opponent tracker (e.g. one restored
// from disk).
func WithTracker(t *opponents.Tracker) Option {
	return func(e *Engine) { e.tracker = t }
}

// NewEngine validates the config and builds the engine with its long-lived
// collaborators.
func NewEngine(cfg Config, logger *log.Logger, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("advisor config: %w", err)
	}
	cfg.applyDefaults()
	if logger == nil {
		logger = log.Default()
	}

	e := &Engine{
		cfg:      cfg,
		logger:   logger.WithPrefix("advisor"),
		clock:    quartz.NewReal(),
		preflop:  &preflopPolicy{},
		postflop: &postflopPolicy{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.equity == nil {
		e.equity = equity.NewCalculator(logger, cfg.Seed)
	}
	if e.tracker == nil {
		e.tracker = opponents.NewTracker(logger)
	}
	return e, nil
}

// Tracker exposes the engine's opponent tracker for persistence and display.
func (e *Engine) Tracker() *opponents.Tracker { return e.tracker }

// MakeDecision advises the player at playerIndex. When it is not that
// player's turn the result is a no-op decision with no state mutated. A
// decision never fails hard: every recoverable fault degrades toward a
// conservative action.
func (e *Engine) MakeDecision(ctx context.Context, table *TableSnapshot, playerIndex int) (Decision, error) {
	if table == nil || playerIndex < 0 || playerIndex >= len(table.Players) {
		return NoDecision(), fmt.Errorf("player index %d out of range", playerIndex)
	}
	me := &table.Players[playerIndex]
	if !me.HasTurn {
		return NoDecision(), nil
	}

	started := e.clock.Now()
	street := table.Street()

	// Feed the tracker before deciding so this decision sees the latest
	// opponent actions.
	e.UpdateOpponentsFromSnapshot(table, playerIndex)

	potSize := table.PotSize.Float64()
	stack := me.Stack.Float64()
	myBet := me.CurrentBet.Float64()

	maxBet := 0.0
	activeOpponents := 0
	for i := range table.Players {
		p := &table.Players[i]
		if p.IsEmpty {
			continue
		}
		if bet := p.CurrentBet.Float64(); bet > maxBet {
			maxBet = bet
		}
		if i != playerIndex && p.IsActive && p.Name != "" {
			activeOpponents++
		}
	}

	betToCall := ev.Round2(math.Max(0, maxBet-myBet))
	if me.BetToCall != nil && me.BetToCall.Float64() >= 0 {
		betToCall = ev.Round2(me.BetToCall.Float64())
	}

	eval := poker.EvaluateBestHand(me.Hand, table.CommunityCards)

	winProb := 0.0
	if wp := me.WinProbability; wp != nil && *wp >= 0 && *wp <= 1 {
		winProb = *wp
	} else {
		opponentsInHand := activeOpponents
		if opponentsInHand < 1 {
			opponentsInHand = 1
		}
		winProb = e.equity.WinProbability(ctx, me.Hand, table.CommunityCards, opponentsInHand, e.cfg.Simulations)
	}

	spr := 99.0
	if potSize > 0 {
		spr = stack / potSize
	}

	dc := &decisionContext{
		logger:          e.logger,
		cfg:             &e.cfg,
		street:          street,
		position:        poker.PositionFromString(me.Position),
		holeCards:       me.Hand,
		communityCards:  table.CommunityCards,
		eval:            eval,
		category:        poker.CategorizeStrings(me.Hand),
		winProbability:  winProb,
		potOdds:         ev.PotOdds(betToCall, potSize),
		spr:             spr,
		potSize:         potSize,
		stack:           stack,
		betToCall:       betToCall,
		maxBet:          maxBet,
		myCurrentBet:    myBet,
		canCheck:        betToCall == 0,
		activeOpponents: activeOpponents,
		dynamics:        e.tracker.TableDynamics(),
	}

	var decision Decision
	if street == poker.Preflop {
		decision = e.preflop.Decide(dc)
	} else {
		decision = e.postflop.Decide(dc)
	}

	if e.cfg.TournamentLevel > 0 {
		decision = adjustForTournament(decision, dc, e.cfg.TournamentLevel)
	}

	decision = e.safetyCheck(decision, dc)
	decision.Amount = ev.Round2(math.Min(decision.Amount, stack))

	e.logger.Info("decision",
		"street", street,
		"hand", eval.Description,
		"win_prob", fmt.Sprintf("%.3f", winProb),
		"bet_to_call", betToCall,
		"action", decision.Action,
		"amount", decision.Amount,
		"elapsed", e.clock.Since(started))
	return decision, nil
}

// safetyCheck downgrades structurally invalid decisions: a call or raise
// with a non-positive amount (other than a legitimate free call) becomes a
// check when check is legal, else a fold. Fold and check always carry 0.
func (e *Engine) safetyCheck(d Decision, dc *decisionContext) Decision {
	switch d.Action {
	case poker.ActionFold, poker.ActionCheck, poker.ActionNone:
		d.Amount = 0
		return d
	case poker.ActionCall:
		if d.Amount <= 0 {
			if dc.canCheck {
				return Decision{Action: poker.ActionCheck}
			}
			e.logger.Warn("safety check: call with non-positive amount downgraded to fold",
				"amount", d.Amount)
			return Decision{Action: poker.ActionFold}
		}
	case poker.ActionRaise:
		if d.Amount <= 0 {
			e.logger.Warn("safety check: raise with non-positive amount downgraded",
				"amount", d.Amount, "can_check", dc.canCheck)
			if dc.canCheck {
				return Decision{Action: poker.ActionCheck}
			}
			return Decision{Action: poker.ActionFold}
		}
	}
	return d
}

// UpdateOpponentsFromSnapshot records every other active player's most
// recent action this street. The surrounding application calls it once per
// observed game-state update; MakeDecision also calls it before deciding.
func (e *Engine) UpdateOpponentsFromSnapshot(table *TableSnapshot, selfIndex int) {
	if table == nil {
		return
	}
	street := table.Street()
	e.markHandBoundary(table.HandID, street)

	for i := range table.Players {
		p := &table.Players[i]
		if i == selfIndex || p.IsEmpty || !p.IsActive || p.Name == "" || p.LastAction == "" {
			continue
		}
		action := poker.ActionFromString(p.LastAction)
		if action == poker.ActionNone {
			continue
		}
		e.tracker.Observe(p.Name, action, street,
			poker.PositionFromString(p.Position),
			p.LastActionAmount.Float64(), table.PotSize.Float64())
	}
	e.lastStreet = street
}

// markHandBoundary advances the tracker's hand counter when a new hand id
// appears, or when the street regresses to preflop after a later street.
func (e *Engine) markHandBoundary(handID string, street poker.Street) {
	switch {
	case handID != "" && handID != e.lastHandID:
		e.lastHandID = handID
		e.tracker.StartHand()
	case handID == "" && street == poker.Preflop && e.lastStreet != poker.Preflop:
		e.tracker.StartHand()
	}
}
