// Package equity estimates hand equity with Monte Carlo simulation. Trials
// are split across workers; a pinned seed makes the whole run reproducible.
package equity

import (
	"context"
	"math"
	rand "math/rand/v2"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/kevsman/pokerplayer/internal/randutil"
	"github.com/kevsman/pokerplayer/poker"
)

// NeutralEquity is returned when a simulation cannot be run (malformed hole
// cards, or too few unseen cards to deal the trial). Callers treat it as "no
// information" rather than strength or weakness.
const NeutralEquity = 0.5

// DefaultSimulations is used when a caller passes a non-positive trial count.
const DefaultSimulations = 1000

// Result aggregates a Monte Carlo run. Equity counts ties as half a win.
type Result struct {
	WinProbability float64
	TieProbability float64
	Equity         float64
	Simulations    int
}

// Calculator runs equity simulations. Zero seed means time-seeded runs;
// any other seed reproduces the same trial sequence.
type Calculator struct {
	logger  *log.Logger
	seed    int64
	workers int
}

// NewCalculator builds a Calculator. A nil logger falls back to the default.
func NewCalculator(logger *log.Logger, seed int64) *Calculator {
	if logger == nil {
		logger = log.Default()
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > 8 {
		workers = 8
	}
	return &Calculator{logger: logger, seed: seed, workers: workers}
}

// WinProbability is the single-number view of Calculate, used by the
// decision engine. Ties count as half a win.
func (c *Calculator) WinProbability(ctx context.Context, holeCards, communityCards []string, numOpponents, simulations int) float64 {
	return c.Calculate(ctx, holeCards, communityCards, numOpponents, simulations).Equity
}

// Calculate runs the full simulation. Unplayable inputs produce a neutral
// result instead of an error so the decision path can keep going.
func (c *Calculator) Calculate(ctx context.Context, holeCards, communityCards []string, numOpponents, simulations int) Result {
	if simulations <= 0 {
		simulations = DefaultSimulations
	}
	if numOpponents < 1 {
		numOpponents = 1
	}

	hole, err := poker.ParseCards(holeCards)
	if err != nil || len(hole) != 2 {
		c.logger.Warn("equity: unparseable hole cards, using neutral equity", "cards", holeCards)
		return neutralResult()
	}
	board, err := poker.ParseCards(communityCards)
	if err != nil || len(board) > 5 {
		c.logger.Warn("equity: unparseable community cards, using neutral equity", "cards", communityCards)
		return neutralResult()
	}

	deck := poker.NewDeck()
	deck.Exclude(hole...)
	deck.Exclude(board...)
	unseen := deck.Cards()

	cardsNeeded := 5 - len(board)
	if len(unseen) < cardsNeeded+2*numOpponents {
		c.logger.Warn("equity: not enough unseen cards to simulate",
			"unseen", len(unseen), "opponents", numOpponents)
		return neutralResult()
	}

	baseSeed := c.seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	type tally struct{ wins, ties, total int }
	tallies := make([]tally, c.workers)

	g, ctx := errgroup.WithContext(ctx)
	perWorker := simulations / c.workers
	remainder := simulations % c.workers
	for w := 0; w < c.workers; w++ {
		trials := perWorker
		if w < remainder {
			trials++
		}
		if trials == 0 {
			continue
		}
		w := w
		g.Go(func() error {
			rng := randutil.New(baseSeed + int64(w)*0x9e3779b9)
			cards := make([]poker.Card, len(unseen))
			copy(cards, unseen)
			t := &tallies[w]
			for i := 0; i < trials; i++ {
				if i%256 == 0 && ctx.Err() != nil {
					return ctx.Err()
				}
				win, tie := runTrial(rng, hole, board, cards, cardsNeeded, numOpponents)
				if win {
					if tie {
						t.ties++
					} else {
						t.wins++
					}
				}
				t.total++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.logger.Warn("equity: simulation cancelled, using neutral equity", "err", err)
		return neutralResult()
	}

	var wins, ties, total int
	for _, t := range tallies {
		wins += t.wins
		ties += t.ties
		total += t.total
	}
	if total == 0 {
		return neutralResult()
	}

	winProb := float64(wins) / float64(total)
	tieProb := float64(ties) / float64(total)
	return Result{
		WinProbability: winProb,
		TieProbability: tieProb,
		Equity:         winProb + tieProb*0.5,
		Simulations:    total,
	}
}

// runTrial deals one random runout plus opponent holdings and reports
// whether the hero wins outright or chops.
func runTrial(rng *rand.Rand, hole, board, unseen []poker.Card, cardsNeeded, numOpponents int) (win, tie bool) {
	rng.Shuffle(len(unseen), func(i, j int) {
		unseen[i], unseen[j] = unseen[j], unseen[i]
	})

	simBoard := make([]poker.Card, 0, 5)
	simBoard = append(simBoard, board...)
	simBoard = append(simBoard, unseen[:cardsNeeded]...)

	heroEval := poker.EvaluateCards(hole, simBoard)

	win, tie = true, false
	next := cardsNeeded
	for opp := 0; opp < numOpponents; opp++ {
		oppEval := poker.EvaluateCards(unseen[next:next+2], simBoard)
		next += 2
		switch heroEval.Compare(oppEval) {
		case -1:
			return false, false
		case 0:
			tie = true
		}
	}
	return win, tie
}

func neutralResult() Result {
	return Result{
		WinProbability: NeutralEquity,
		Equity:         NeutralEquity,
	}
}

// EstimateOuts counts unseen cards that would lift the current best hand to
// a higher category if dealt next (kicker-only improvements do not count).
// It needs a flop; preflop and river return 0.
func EstimateOuts(holeCards, communityCards []string) int {
	hole, err := poker.ParseCards(holeCards)
	if err != nil || len(hole) != 2 {
		return 0
	}
	board, err := poker.ParseCards(communityCards)
	if err != nil || len(board) < 3 || len(board) >= 5 {
		return 0
	}

	current := poker.EvaluateCards(hole, board)

	deck := poker.NewDeck()
	deck.Exclude(hole...)
	deck.Exclude(board...)

	outs := 0
	test := make([]poker.Card, len(board)+1)
	copy(test, board)
	for _, card := range deck.Cards() {
		test[len(board)] = card
		if poker.EvaluateCards(hole, test).Category > current.Category {
			outs++
		}
	}
	return outs
}

// ImpliedOdds returns the ratio of total potential winnings (current pot plus
// expected future winnings) to the price of the call. Free continues are
// infinitely good.
func ImpliedOdds(potSize, betToCall, estimatedFutureWinnings float64) float64 {
	if betToCall <= 0 {
		return math.Inf(1)
	}
	return (potSize + estimatedFutureWinnings) / betToCall
}
