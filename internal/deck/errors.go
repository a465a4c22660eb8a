package deck

import (
	"errors"
	"fmt"
)

// ErrCardNotInDeck is returned when removing a card the deck does not hold.
var ErrCardNotInDeck = errors.New("card not in deck")

// ErrNotEnoughCards is returned when drawing more cards than remain.
var ErrNotEnoughCards = errors.New("not enough cards in deck")

// DuplicateCardError reports a card that appears more than once across
// hole cards, community cards and the remaining deck.
type DuplicateCardError struct {
	Card Card
}

func (e *DuplicateCardError) Error() string {
	return fmt.Sprintf("duplicate card %s", e.Card)
}

// ValidateDistinct checks that no card repeats across all groups and that
// every card is a member of the standard deck.
func ValidateDistinct(groups ...[]Card) error {
	var seen CardSet
	for _, group := range groups {
		for _, card := range group {
			if !card.Valid() {
				return fmt.Errorf("invalid card %d/%d", card.Rank, card.Suit)
			}
			if seen.Contains(card) {
				return &DuplicateCardError{Card: card}
			}
			seen.Add(card)
		}
	}
	return nil
}
