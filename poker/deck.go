package poker

import (
	"math/rand/v2"
)

// Deck is a mutable collection of cards. A fresh deck holds all 52 cards in
// suit-then-rank order; callers shuffle with their own rand source so
// simulations stay reproducible.
type Deck struct {
	cards []Card
}

// NewDeck creates a full 52-card deck.
func NewDeck() *Deck {
	cards := make([]Card, 0, 52)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	return &Deck{cards: cards}
}

// Exclude removes the given cards from the deck. Cards not present are
// ignored, so excluding the same card twice is harmless.
func (d *Deck) Exclude(cards ...Card) {
	for _, c := range cards {
		for i, dc := range d.cards {
			if dc == c {
				d.cards = append(d.cards[:i], d.cards[i+1:]...)
				break
			}
		}
	}
}

// Shuffle randomizes the deck order using the provided source.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top n cards. It returns fewer cards when the
// deck runs short.
func (d *Deck) Draw(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	drawn := d.cards[:n]
	d.cards = d.cards[n:]
	return drawn
}

// Remaining reports how many cards are left.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Cards returns the deck's current contents without consuming them.
func (d *Deck) Cards() []Card {
	return d.cards
}
