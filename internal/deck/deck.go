package deck

import (
	"fmt"
	rand "math/rand/v2"
)

// Deck represents the cards that have not yet been dealt
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a new shuffled 52-card deck. The RNG drives every shuffle,
// so a seeded RNG gives a reproducible deal.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: FullDeck(),
		rng:   rng,
	}
	d.Shuffle()
	return d
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns n cards from the top of the deck
func (d *Deck) Draw(n int) ([]Card, error) {
	if n < 0 || n > len(d.cards) {
		return nil, fmt.Errorf("draw %d: %w (%d left)", n, ErrNotEnoughCards, len(d.cards))
	}
	drawn := make([]Card, n)
	copy(drawn, d.cards[len(d.cards)-n:])
	d.cards = d.cards[:len(d.cards)-n]
	return drawn, nil
}

// Remove takes specific cards out of the deck. Either all cards are removed
// or, if any is missing, none are.
func (d *Deck) Remove(cards ...Card) error {
	if err := ValidateDistinct(cards); err != nil {
		return err
	}
	remove := NewCardSet(cards...)
	present := NewCardSet(d.cards...)
	for _, card := range cards {
		if !present.Contains(card) {
			return fmt.Errorf("remove %s: %w", card, ErrCardNotInDeck)
		}
	}

	kept := d.cards[:0]
	for _, card := range d.cards {
		if !remove.Contains(card) {
			kept = append(kept, card)
		}
	}
	d.cards = kept
	return nil
}

// Contains reports whether the card is still in the deck
func (d *Deck) Contains(card Card) bool {
	for _, c := range d.cards {
		if c == card {
			return true
		}
	}
	return false
}

// Cards returns a copy of the remaining cards in deck order
func (d *Deck) Cards() []Card {
	cards := make([]Card, len(d.cards))
	copy(cards, d.cards)
	return cards
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}
