package opponents

import (
	"errors"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/kevsman/pokerplayer/internal/fileutil"
	"github.com/kevsman/pokerplayer/poker"
)

// Tendencies is the read-model the decision engine consumes. Profiles with
// too small a sample report population defaults instead of their own noise.
type Tendencies struct {
	VPIP             float64
	PFR              float64
	AggressionFactor float64
	HandsSeen        int
	Style            Style
}

// DefaultTendencies are assumed for unseen or under-sampled players.
func DefaultTendencies() Tendencies {
	return Tendencies{
		VPIP:             DefaultVPIP,
		PFR:              DefaultPFR,
		AggressionFactor: DefaultAggression,
		Style:            StyleUnknown,
	}
}

// TableDynamics summarises the profiled players at the table.
type TableDynamics struct {
	AvgVPIP    float64
	AvgPFR     float64
	TableType  string // "tight", "normal", "loose", "unknown"
	SampleSize int
}

// Tracker owns all opponent profiles for a session. Safe for concurrent use.
type Tracker struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	handSeq  uint64
	logger   *log.Logger
}

// NewTracker builds an empty tracker. A nil logger falls back to the default.
func NewTracker(logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.Default()
	}
	return &Tracker{
		profiles: make(map[string]*Profile),
		handSeq:  1, // profiles mark hands with 0 meaning "never counted"
		logger:   logger.WithPrefix("opponents"),
	}
}

// StartHand marks a hand boundary. Per-hand statistics (hands seen, VPIP,
// PFR) count each profile at most once between boundaries.
func (t *Tracker) StartHand() {
	t.mu.Lock()
	t.handSeq++
	t.mu.Unlock()
}

// Observe records one action by the named player.
func (t *Tracker) Observe(name string, action poker.Action, street poker.Street, position poker.Position, betSize, potSize float64) {
	if name == "" || action == poker.ActionNone {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	p := t.getOrCreateLocked(name)
	t.logger.Debug("observed action",
		"player", name, "action", action, "street", street, "position", position)

	if street == poker.Preflop {
		t.observePreflopLocked(p, action, position, betSize, potSize)
		return
	}
	t.observePostflopLocked(p, action, street, betSize, potSize)
}

func (t *Tracker) observePreflopLocked(p *Profile, action poker.Action, position poker.Position, betSize, potSize float64) {
	if p.lastHandSeen != t.handSeq {
		p.lastHandSeen = t.handSeq
		p.HandsSeen++
	}

	switch action {
	case poker.ActionRaise, poker.ActionCall:
		if p.lastHandPlayed != t.handSeq {
			p.lastHandPlayed = t.handSeq
			p.HandsPlayed++
		}
	}

	pos := position.String()
	stats, ok := p.PositionStats[pos]
	if !ok {
		stats = &PositionStats{}
		p.PositionStats[pos] = stats
	}
	stats.Hands++

	switch action {
	case poker.ActionRaise:
		if p.lastHandRaised != t.handSeq {
			p.lastHandRaised = t.handSeq
			p.PreflopRaises++
		}
		stats.Raises++
		if betSize > 0 && potSize > 0 {
			p.BetSizeRatios["preflop_open"] = append(p.BetSizeRatios["preflop_open"], betSize/potSize)
		}
	case poker.ActionCall:
		p.PreflopCalls++
		stats.Calls++
	case poker.ActionFold:
		p.PreflopFolds++
		stats.Folds++
	}
}

func (t *Tracker) observePostflopLocked(p *Profile, action poker.Action, street poker.Street, betSize, potSize float64) {
	switch action {
	case poker.ActionRaise:
		// Bets and raises both arrive as raises; an opening bet is one with
		// no pot-matching amount to call, but the scraper cannot always tell
		// them apart, so both feed the aggressive side of AF.
		p.PostflopBets++
		if betSize > 0 && potSize > 0 {
			key := street.String() + "_bet"
			p.BetSizeRatios[key] = append(p.BetSizeRatios[key], betSize/potSize)
		}
	case poker.ActionCall:
		p.PostflopCalls++
	case poker.ActionCheck:
		p.PostflopChecks++
	case poker.ActionFold:
		p.PostflopFolds++
	}
}

func (t *Tracker) getOrCreateLocked(name string) *Profile {
	p, ok := t.profiles[name]
	if !ok {
		p = NewProfile(name)
		t.profiles[name] = p
	}
	return p
}

// Profile returns the tracked profile for name, or nil when unseen.
func (t *Tracker) Profile(name string) *Profile {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.profiles[name]
}

// Tendencies returns the decision-ready view of a player. Unknown or
// under-sampled players get the population defaults.
func (t *Tracker) Tendencies(name string) Tendencies {
	t.mu.RLock()
	defer t.mu.RUnlock()

	p, ok := t.profiles[name]
	if !ok || p.HandsSeen < MinSampleHands {
		return DefaultTendencies()
	}
	return Tendencies{
		VPIP:             p.VPIP(),
		PFR:              p.PFR(),
		AggressionFactor: p.AggressionFactor(),
		HandsSeen:        p.HandsSeen,
		Style:            p.Style(),
	}
}

// TableDynamics averages VPIP/PFR over profiles with a usable sample.
func (t *Tracker) TableDynamics() TableDynamics {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var sumVPIP, sumPFR float64
	var n int
	for _, p := range t.profiles {
		if p.HandsSeen > 5 {
			sumVPIP += p.VPIP()
			sumPFR += p.PFR()
			n++
		}
	}
	if n == 0 {
		return TableDynamics{AvgVPIP: DefaultVPIP, AvgPFR: DefaultPFR, TableType: "unknown"}
	}

	avgVPIP := sumVPIP / float64(n)
	tableType := "normal"
	switch {
	case avgVPIP < 0.20:
		tableType = "tight"
	case avgVPIP > 0.30:
		tableType = "loose"
	}
	return TableDynamics{
		AvgVPIP:    avgVPIP,
		AvgPFR:     sumPFR / float64(n),
		TableType:  tableType,
		SampleSize: n,
	}
}

// Recommendation maps a player's style to a coarse exploit hint for display.
func (t *Tracker) Recommendation(name string) string {
	t.mu.RLock()
	p, ok := t.profiles[name]
	t.mu.RUnlock()
	if !ok {
		return "play_standard"
	}
	switch p.Style() {
	case StyleTightPassive:
		return "value_bet_thin"
	case StyleTightAggressive:
		return "play_straightforward"
	case StyleLoosePassive:
		return "value_bet_wide"
	case StyleLooseAggressive:
		return "play_tighter"
	case StyleVeryLoosePassive:
		return "value_bet_very_wide"
	case StyleVeryLooseAggressive:
		return "play_much_tighter"
	default:
		return "play_standard"
	}
}

// Save persists all profiles to path atomically.
func (t *Tracker) Save(path string) error {
	t.mu.RLock()
	snapshot := make(map[string]*Profile, len(t.profiles))
	for name, p := range t.profiles {
		snapshot[name] = p
	}
	t.mu.RUnlock()

	if err := fileutil.WriteJSONAtomic(path, snapshot, 0o644); err != nil {
		return err
	}
	t.logger.Info("saved opponent profiles", "path", path, "profiles", len(snapshot))
	return nil
}

// Load restores profiles from path. A missing file is a clean slate, not an
// error. Loaded profiles replace any in-memory ones with the same name.
func (t *Tracker) Load(path string) error {
	var loaded map[string]*Profile
	if err := fileutil.ReadJSON(path, &loaded); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for name, p := range loaded {
		if p == nil {
			continue
		}
		p.Name = name
		if p.PositionStats == nil {
			p.PositionStats = make(map[string]*PositionStats)
		}
		if p.BetSizeRatios == nil {
			p.BetSizeRatios = make(map[string][]float64)
		}
		t.profiles[name] = p
	}
	t.logger.Info("loaded opponent profiles", "path", path, "profiles", len(loaded))
	return nil
}
