package game

import (
	"math/rand"
	"testing"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != 40 {
		t.Fatalf("expected 40 cards, got %d", len(deck))
	}

	seen := make(map[string]bool, len(deck))
	for _, c := range deck {
		if seen[c.ID] {
			t.Fatalf("duplicate card id %s", c.ID)
		}
		seen[c.ID] = true
		if c.Value != c.Rank {
			t.Fatalf("card %s: value %d != rank %d", c.ID, c.Value, c.Rank)
		}
		if c.Rank < 1 || c.Rank > 10 {
			t.Fatalf("card %s: rank %d out of range", c.ID, c.Rank)
		}
	}
	if !seen[SevenOfDiamondsID] {
		t.Fatalf("deck is missing %s", SevenOfDiamondsID)
	}
}

func TestNewDeckStableOrder(t *testing.T) {
	a, b := NewDeck(), NewDeck()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("deck order not deterministic at index %d: %s vs %s", i, a[i].ID, b[i].ID)
		}
	}
}

func TestShuffleDeckDoesNotMutateInput(t *testing.T) {
	original := NewDeck()
	reference := NewDeck()
	rng := rand.New(rand.NewSource(7))

	shuffled := ShuffleDeck(original, rng)

	for i := range original {
		if original[i] != reference[i] {
			t.Fatalf("input deck mutated at index %d", i)
		}
	}
	if len(shuffled) != len(original) {
		t.Fatalf("shuffle changed deck size: %d", len(shuffled))
	}

	seen := make(map[string]bool, len(shuffled))
	for _, c := range shuffled {
		seen[c.ID] = true
	}
	for _, c := range original {
		if !seen[c.ID] {
			t.Fatalf("shuffle lost card %s", c.ID)
		}
	}
}
