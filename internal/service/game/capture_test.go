package game

import "testing"

func card(t *testing.T, id string) Card {
	t.Helper()
	for _, c := range NewDeck() {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("unknown card id %s", id)
	return Card{}
}

func cardIDs(cards []Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

func TestResolveCaptureSingleMatchWins(t *testing.T) {
	table := []Card{card(t, "hearts-7"), card(t, "clubs-3"), card(t, "diamonds-4")}

	captured := ResolveCapture(card(t, "spades-7"), table)

	if len(captured) != 1 || captured[0].ID != "hearts-7" {
		t.Fatalf("expected single capture of hearts-7, got %v", cardIDs(captured))
	}
}

func TestResolveCaptureCombinationSum(t *testing.T) {
	table := []Card{card(t, "clubs-3"), card(t, "diamonds-4")}

	captured := ResolveCapture(card(t, "spades-7"), table)

	if len(captured) != 2 {
		t.Fatalf("expected two cards, got %v", cardIDs(captured))
	}
}

func TestResolveCapturePrefersLongestCombination(t *testing.T) {
	// {4,1,2} sums to 7 and beats the two-card {3,4}.
	table := []Card{
		card(t, "spades-3"),
		card(t, "hearts-4"),
		card(t, "clubs-1"),
		card(t, "diamonds-2"),
	}

	captured := ResolveCapture(card(t, "spades-7"), table)

	if len(captured) != 3 {
		t.Fatalf("expected the three-card combination, got %v", cardIDs(captured))
	}
	want := map[string]bool{"hearts-4": true, "clubs-1": true, "diamonds-2": true}
	for _, c := range captured {
		if !want[c.ID] {
			t.Fatalf("unexpected card %s in capture %v", c.ID, cardIDs(captured))
		}
	}
}

func TestResolveCaptureEqualLengthTieGoesToFirstFound(t *testing.T) {
	// Both {1,4} and {2,3} sum to 5; the depth-first search over ascending
	// table indices finds {1,4} first.
	table := []Card{
		card(t, "clubs-1"),
		card(t, "hearts-4"),
		card(t, "spades-2"),
		card(t, "diamonds-3"),
	}

	captured := ResolveCapture(card(t, "spades-5"), table)

	got := cardIDs(captured)
	if len(got) != 2 || got[0] != "clubs-1" || got[1] != "hearts-4" {
		t.Fatalf("expected {clubs-1, hearts-4}, got %v", got)
	}
}

func TestResolveCaptureNoMatch(t *testing.T) {
	table := []Card{card(t, "clubs-10"), card(t, "hearts-9")}

	captured := ResolveCapture(card(t, "spades-2"), table)

	if len(captured) != 0 {
		t.Fatalf("expected no capture, got %v", cardIDs(captured))
	}
}

func TestResolveCaptureIsPureAndDeterministic(t *testing.T) {
	table := []Card{
		card(t, "spades-3"),
		card(t, "hearts-4"),
		card(t, "clubs-1"),
		card(t, "diamonds-2"),
	}
	before := append([]Card(nil), table...)

	first := ResolveCapture(card(t, "spades-7"), table)
	for i := 0; i < 10; i++ {
		again := ResolveCapture(card(t, "spades-7"), table)
		if len(again) != len(first) {
			t.Fatalf("run %d returned %v, first run %v", i, cardIDs(again), cardIDs(first))
		}
		for j := range again {
			if again[j].ID != first[j].ID {
				t.Fatalf("run %d returned %v, first run %v", i, cardIDs(again), cardIDs(first))
			}
		}
	}

	for i := range table {
		if table[i] != before[i] {
			t.Fatalf("resolver mutated the table at index %d", i)
		}
	}
}
