package poker

import (
	"fmt"
	"sort"
)

// HandCategory ranks the category of a 5-card hand. Higher is stronger.
// CategoryNone (0) marks preflop or unevaluable card sets.
type HandCategory int

const (
	CategoryNone HandCategory = iota
	CategoryHighCard
	CategoryOnePair
	CategoryTwoPair
	CategoryThreeOfAKind
	CategoryStraight
	CategoryFlush
	CategoryFullHouse
	CategoryFourOfAKind
	CategoryStraightFlush
)

// String returns a human-readable category name
func (c HandCategory) String() string {
	switch c {
	case CategoryHighCard:
		return "High Card"
	case CategoryOnePair:
		return "One Pair"
	case CategoryTwoPair:
		return "Two Pair"
	case CategoryThreeOfAKind:
		return "Three of a Kind"
	case CategoryStraight:
		return "Straight"
	case CategoryFlush:
		return "Flush"
	case CategoryFullHouse:
		return "Full House"
	case CategoryFourOfAKind:
		return "Four of a Kind"
	case CategoryStraightFlush:
		return "Straight Flush"
	default:
		return "N/A"
	}
}

// Evaluation is the result of ranking a card set. Within the same category,
// hands compare by their tie-breaker ranks in order (descending strength).
type Evaluation struct {
	Category    HandCategory
	Description string
	TieBreakers []Rank
}

// Compare returns 1 if e beats other, -1 if other wins, 0 for an exact tie.
// Comparison never fails for equal-length tie-breaker sequences; a longer
// sequence that matches on the shared prefix counts as a tie.
func (e Evaluation) Compare(other Evaluation) int {
	if e.Category != other.Category {
		if e.Category > other.Category {
			return 1
		}
		return -1
	}
	n := min(len(e.TieBreakers), len(other.TieBreakers))
	for i := 0; i < n; i++ {
		if e.TieBreakers[i] != other.TieBreakers[i] {
			if e.TieBreakers[i] > other.TieBreakers[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// EvaluateBestHand ranks the best 5-card hand available from the hole cards
// plus community cards. With no community cards it returns a CategoryNone
// evaluation describing the hole cards (pair / suited / offsuit) with the two
// ranks, higher first, as tie-breakers. Malformed card strings are skipped;
// when too few cards survive it returns an N/A evaluation rather than failing.
func EvaluateBestHand(holeCards, communityCards []string) Evaluation {
	hole := make([]Card, 0, len(holeCards))
	for _, s := range holeCards {
		if card, err := ParseCard(s); err == nil {
			hole = append(hole, card)
		}
	}
	board := make([]Card, 0, len(communityCards))
	for _, s := range communityCards {
		if card, err := ParseCard(s); err == nil {
			board = append(board, card)
		}
	}
	return EvaluateCards(hole, board)
}

// EvaluateCards is the typed core of EvaluateBestHand, used directly by the
// equity simulator to avoid card re-parsing in the hot loop.
func EvaluateCards(holeCards, communityCards []Card) Evaluation {
	if len(communityCards) == 0 {
		if len(holeCards) != 2 {
			return Evaluation{Category: CategoryNone, Description: "N/A (preflop)"}
		}
		return evaluatePreflop(holeCards[0], holeCards[1])
	}

	cards := make([]Card, 0, len(holeCards)+len(communityCards))
	cards = append(cards, holeCards...)
	cards = append(cards, communityCards...)
	if len(cards) < 5 {
		return Evaluation{Category: CategoryNone, Description: "N/A (not enough cards)"}
	}

	best := Evaluation{Category: CategoryNone, Description: "N/A"}
	combo := make([]Card, 5)
	forEachFiveCardCombo(cards, combo, func() {
		current := evaluateFiveCards(combo)
		if current.Compare(best) > 0 {
			best = current
		}
	})
	return best
}

func evaluatePreflop(c1, c2 Card) Evaluation {
	high, low := c1, c2
	if low.Rank > high.Rank {
		high, low = low, high
	}

	if high.Rank == low.Rank {
		return Evaluation{
			Category:    CategoryNone,
			Description: fmt.Sprintf("Pair of %ss", high.Rank),
			TieBreakers: []Rank{high.Rank, low.Rank},
		}
	}
	suffix := " offsuit"
	if high.Suit == low.Suit {
		suffix = " suited"
	}
	return Evaluation{
		Category:    CategoryNone,
		Description: fmt.Sprintf("%s%s%s", high.Rank, low.Rank, suffix),
		TieBreakers: []Rank{high.Rank, low.Rank},
	}
}

// forEachFiveCardCombo enumerates every 5-card subset of cards into combo.
func forEachFiveCardCombo(cards []Card, combo []Card, fn func()) {
	n := len(cards)
	for a := 0; a < n-4; a++ {
		combo[0] = cards[a]
		for b := a + 1; b < n-3; b++ {
			combo[1] = cards[b]
			for c := b + 1; c < n-2; c++ {
				combo[2] = cards[c]
				for d := c + 1; d < n-1; d++ {
					combo[3] = cards[d]
					for e := d + 1; e < n; e++ {
						combo[4] = cards[e]
						fn()
					}
				}
			}
		}
	}
}

// evaluateFiveCards scores exactly five cards. Detection order runs from
// straight flush down to high card; the first match wins.
func evaluateFiveCards(cards []Card) Evaluation {
	ranks := make([]Rank, len(cards))
	flush := true
	for i, c := range cards {
		ranks[i] = c.Rank
		if c.Suit != cards[0].Suit {
			flush = false
		}
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })

	straight, straightHigh := detectStraight(ranks)

	if flush && straight {
		if straightHigh == Ace {
			return Evaluation{CategoryStraightFlush, "Royal Flush", []Rank{straightHigh}}
		}
		return Evaluation{
			CategoryStraightFlush,
			fmt.Sprintf("Straight Flush, %s-high", straightHigh),
			[]Rank{straightHigh},
		}
	}

	counts := make(map[Rank]int, 5)
	for _, r := range ranks {
		counts[r]++
	}

	var quad, trips, pairHigh, pairLow Rank
	for r, n := range counts {
		switch n {
		case 4:
			quad = r
		case 3:
			trips = r
		case 2:
			if r > pairHigh {
				pairLow = pairHigh
				pairHigh = r
			} else {
				pairLow = r
			}
		}
	}

	if quad != 0 {
		kicker := firstRankExcluding(ranks, quad)
		return Evaluation{
			CategoryFourOfAKind,
			fmt.Sprintf("Four of a Kind, %ss", quad),
			[]Rank{quad, kicker},
		}
	}

	if trips != 0 && pairHigh != 0 {
		return Evaluation{
			CategoryFullHouse,
			fmt.Sprintf("Full House, %ss full of %ss", trips, pairHigh),
			[]Rank{trips, pairHigh},
		}
	}

	if flush {
		return Evaluation{
			CategoryFlush,
			fmt.Sprintf("Flush, %s-high", ranks[0]),
			append([]Rank{}, ranks...),
		}
	}

	if straight {
		return Evaluation{
			CategoryStraight,
			fmt.Sprintf("Straight, %s-high", straightHigh),
			[]Rank{straightHigh},
		}
	}

	if trips != 0 {
		kickers := ranksExcluding(ranks, trips)
		return Evaluation{
			CategoryThreeOfAKind,
			fmt.Sprintf("Three of a Kind, %ss", trips),
			append([]Rank{trips}, kickers[:2]...),
		}
	}

	if pairHigh != 0 && pairLow != 0 {
		kicker := firstRankExcluding(ranks, pairHigh, pairLow)
		return Evaluation{
			CategoryTwoPair,
			fmt.Sprintf("Two Pair, %ss and %ss", pairHigh, pairLow),
			[]Rank{pairHigh, pairLow, kicker},
		}
	}

	if pairHigh != 0 {
		kickers := ranksExcluding(ranks, pairHigh)
		return Evaluation{
			CategoryOnePair,
			fmt.Sprintf("One Pair, %ss", pairHigh),
			append([]Rank{pairHigh}, kickers[:3]...),
		}
	}

	return Evaluation{
		CategoryHighCard,
		fmt.Sprintf("High Card, %s", ranks[0]),
		append([]Rank{}, ranks...),
	}
}

// detectStraight expects ranks sorted descending. The wheel (A-2-3-4-5)
// counts as a 5-high straight, not ace-high.
func detectStraight(ranks []Rank) (bool, Rank) {
	for i := 1; i < len(ranks); i++ {
		if ranks[i] == ranks[i-1] {
			return false, 0
		}
	}
	if ranks[0] == Ace && ranks[1] == Five && ranks[2] == Four && ranks[3] == Three && ranks[4] == Two {
		return true, Five
	}
	for i := 1; i < len(ranks); i++ {
		if ranks[i-1] != ranks[i]+1 {
			return false, 0
		}
	}
	return true, ranks[0]
}

func firstRankExcluding(ranks []Rank, exclude ...Rank) Rank {
	for _, r := range ranks {
		if !containsRank(exclude, r) {
			return r
		}
	}
	return 0
}

func ranksExcluding(ranks []Rank, exclude ...Rank) []Rank {
	out := make([]Rank, 0, len(ranks))
	for _, r := range ranks {
		if !containsRank(exclude, r) {
			out = append(out, r)
		}
	}
	return out
}

func containsRank(ranks []Rank, r Rank) bool {
	for _, x := range ranks {
		if x == r {
			return true
		}
	}
	return false
}
