package poker

// PreflopCategory buckets a starting hand for preflop policy decisions.
type PreflopCategory string

const (
	// PreflopPremium is AA/KK/QQ/AKs.
	PreflopPremium PreflopCategory = "premium"
	// PreflopStrong is JJ/TT/AQs/AKo.
	PreflopStrong PreflopCategory = "strong"
	// PreflopMediumPair is 77-99.
	PreflopMediumPair PreflopCategory = "medium_pair"
	// PreflopSmallPair is 22-66, played mostly for set value.
	PreflopSmallPair PreflopCategory = "small_pair"
	// PreflopSuitedAce is A9s and better (excluding the premium/strong aces).
	PreflopSuitedAce PreflopCategory = "suited_ace"
	// PreflopSuitedConnector is two touching suited cards, 8-high or better.
	PreflopSuitedConnector PreflopCategory = "suited_connector"
	// PreflopOffsuitBroadway is two offsuit cards both ten or higher.
	PreflopOffsuitBroadway PreflopCategory = "offsuit_broadway"
	// PreflopPlayableBroadway has one broadway card and some playability.
	PreflopPlayableBroadway PreflopCategory = "playable_broadway"
	// PreflopWeak is everything else.
	PreflopWeak PreflopCategory = "weak"
)

// Strength orders categories for quick comparisons; higher is better.
func (c PreflopCategory) Strength() int {
	switch c {
	case PreflopPremium:
		return 8
	case PreflopStrong:
		return 7
	case PreflopMediumPair:
		return 6
	case PreflopSuitedAce:
		return 5
	case PreflopSuitedConnector:
		return 4
	case PreflopOffsuitBroadway:
		return 3
	case PreflopSmallPair:
		return 2
	case PreflopPlayableBroadway:
		return 1
	default:
		return 0
	}
}

// Categorize buckets two hole cards. Order matters: the premium and strong
// buckets claim their hands before the broader suited/broadway buckets run.
func Categorize(c1, c2 Card) PreflopCategory {
	high, low := c1, c2
	if low.Rank > high.Rank {
		high, low = low, high
	}
	suited := high.Suit == low.Suit

	if high.Rank == low.Rank {
		switch {
		case high.Rank >= Queen:
			return PreflopPremium
		case high.Rank >= Ten:
			return PreflopStrong
		case high.Rank >= Seven:
			return PreflopMediumPair
		default:
			return PreflopSmallPair
		}
	}

	if high.Rank == Ace && low.Rank == King {
		if suited {
			return PreflopPremium
		}
		return PreflopStrong
	}
	if suited && high.Rank == Ace && low.Rank == Queen {
		return PreflopStrong
	}
	if suited && high.Rank == Ace && low.Rank >= Nine {
		return PreflopSuitedAce
	}
	if suited && high.Rank-low.Rank == 1 && high.Rank >= Eight {
		return PreflopSuitedConnector
	}
	if high.Rank >= Ten && low.Rank >= Ten {
		return PreflopOffsuitBroadway
	}
	if high.Rank >= Ten && (suited || low.Rank >= Eight) {
		return PreflopPlayableBroadway
	}
	return PreflopWeak
}

// CategorizeStrings buckets hole cards given as strings. Anything that does
// not parse as exactly two cards is weak.
func CategorizeStrings(holeCards []string) PreflopCategory {
	if len(holeCards) != 2 {
		return PreflopWeak
	}
	c1, err1 := ParseCard(holeCards[0])
	c2, err2 := ParseCard(holeCards[1])
	if err1 != nil || err2 != nil {
		return PreflopWeak
	}
	return Categorize(c1, c2)
}
