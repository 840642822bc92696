package game

import (
	"fmt"
	"testing"
)

func newLobbyRoom(t *testing.T, mode Mode, names ...string) *Room {
	t.Helper()
	r := NewRoom("TESTAA", RoomOptions{Mode: mode})
	for i, name := range names {
		if err := r.AddPlayer(fmt.Sprintf("p%d", i+1), name); err != nil {
			t.Fatalf("add player %s: %v", name, err)
		}
	}
	return r
}

func suitCards(t *testing.T, suit string) []Card {
	t.Helper()
	var cards []Card
	for _, c := range NewDeck() {
		if c.Suit == suit {
			cards = append(cards, c)
		}
	}
	return cards
}

func TestScoringUniqueMaxAndTies(t *testing.T) {
	r := newLobbyRoom(t, Mode1v1, "alice", "bob")
	r.roundNumber = 1

	// 20 cards each: a forced tie on card count and on sevens, while alice
	// alone holds all the diamonds and the seven of diamonds.
	r.players[0].Captured = append(suitCards(t, "diamonds"), suitCards(t, "spades")...)
	r.players[1].Captured = append(suitCards(t, "hearts"), suitCards(t, "clubs")...)

	summary := r.calculateScoresLocked()

	if len(summary.Breakdown) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(summary.Breakdown))
	}
	alice, bob := summary.Breakdown[0], summary.Breakdown[1]
	if alice.Cards != 20 || bob.Cards != 20 {
		t.Fatalf("expected 20/20 cards, got %d/%d", alice.Cards, bob.Cards)
	}
	// Tied categories award nobody; diamonds and the 7 of diamonds go to alice.
	if alice.PointsEarned != 2 {
		t.Fatalf("expected alice to earn 2 points, got %d", alice.PointsEarned)
	}
	if bob.PointsEarned != 0 {
		t.Fatalf("expected bob to earn 0 points, got %d", bob.PointsEarned)
	}
	if !alice.SevenOfDiamonds || bob.SevenOfDiamonds {
		t.Fatalf("seven of diamonds flags wrong: %v/%v", alice.SevenOfDiamonds, bob.SevenOfDiamonds)
	}
	if r.players[0].Score != 2 || r.players[1].Score != 0 {
		t.Fatalf("cumulative scores wrong: %d/%d", r.players[0].Score, r.players[1].Score)
	}
}

func TestScoringEmptyPilesAwardNothing(t *testing.T) {
	r := newLobbyRoom(t, Mode1v1, "alice", "bob")
	r.roundNumber = 1

	summary := r.calculateScoresLocked()

	for _, row := range summary.Breakdown {
		if row.PointsEarned != 0 || row.TotalScore != 0 {
			t.Fatalf("expected zero points for %s, got %+v", row.Username, row)
		}
	}
}

func TestScoringChkobbaBonusUncapped(t *testing.T) {
	r := newLobbyRoom(t, Mode1v1, "alice", "bob")
	r.roundNumber = 1
	r.players[0].ChkobbaCount = 3

	summary := r.calculateScoresLocked()

	if summary.Breakdown[0].PointsEarned != 3 {
		t.Fatalf("expected 3 chkobba points, got %d", summary.Breakdown[0].PointsEarned)
	}
}

func TestScoringCumulativeAcrossRounds(t *testing.T) {
	r := newLobbyRoom(t, Mode1v1, "alice", "bob")

	for round := 1; round <= 3; round++ {
		r.roundNumber = round
		r.players[0].Captured = suitCards(t, "diamonds")
		r.players[1].Captured = nil
		r.players[0].ChkobbaCount = 0
		before := []int{r.players[0].Score, r.players[1].Score}

		summary := r.calculateScoresLocked()

		for i, p := range r.players {
			if p.Score < before[i] {
				t.Fatalf("round %d: score decreased for %s", round, p.Username)
			}
		}
		if summary.Breakdown[0].TotalScore != r.players[0].Score {
			t.Fatalf("round %d: breakdown total %d != score %d",
				round, summary.Breakdown[0].TotalScore, r.players[0].Score)
		}
	}
	// diamonds + cards + sevens + seven of diamonds = 4 points per round.
	if r.players[0].Score != 12 {
		t.Fatalf("expected 12 cumulative points, got %d", r.players[0].Score)
	}
}

func TestTeamScoringSumsAndMirrors(t *testing.T) {
	r := newLobbyRoom(t, Mode2v2, "a1", "b1", "a2", "b2")
	r.roundNumber = 1

	// Team A (players 0 and 2) takes diamonds and spades, split between the
	// two members; team B takes the rest.
	r.players[0].Captured = suitCards(t, "diamonds")
	r.players[2].Captured = suitCards(t, "spades")
	r.players[2].ChkobbaCount = 1
	r.players[1].Captured = suitCards(t, "hearts")
	r.players[3].Captured = suitCards(t, "clubs")

	summary := r.calculateScoresLocked()

	if len(summary.Breakdown) != 2 {
		t.Fatalf("expected one row per team, got %d", len(summary.Breakdown))
	}
	teamA := summary.Breakdown[0]
	if teamA.TeamKey != TeamA {
		t.Fatalf("expected team A first, got %s", teamA.TeamKey)
	}
	if teamA.Cards != 20 || teamA.Diamonds != 10 || teamA.Sevens != 2 {
		t.Fatalf("team A stats wrong: %+v", teamA)
	}
	// Cards and sevens tie 20/20 and 2/2; diamonds + seven of diamonds +
	// one chkobba = 3 points.
	if teamA.PointsEarned != 3 {
		t.Fatalf("expected team A to earn 3, got %d", teamA.PointsEarned)
	}
	for _, p := range []*Player{r.players[0], r.players[2]} {
		if p.Score != 3 {
			t.Fatalf("team score not mirrored onto %s: %d", p.Username, p.Score)
		}
	}
	for _, p := range []*Player{r.players[1], r.players[3]} {
		if p.Score != 0 {
			t.Fatalf("team B member %s should have 0, got %d", p.Username, p.Score)
		}
	}
}

func TestScoringDeterministicForIdenticalPiles(t *testing.T) {
	build := func() *Room {
		r := newLobbyRoom(t, Mode1v1, "alice", "bob")
		r.roundNumber = 2
		r.players[0].Captured = suitCards(t, "diamonds")
		r.players[1].Captured = suitCards(t, "clubs")
		r.players[1].ChkobbaCount = 1
		return r
	}

	first := build().calculateScoresLocked()
	second := build().calculateScoresLocked()

	if len(first.Breakdown) != len(second.Breakdown) {
		t.Fatalf("breakdown size differs")
	}
	for i := range first.Breakdown {
		a, b := first.Breakdown[i], second.Breakdown[i]
		if a.PointsEarned != b.PointsEarned || a.Cards != b.Cards ||
			a.Diamonds != b.Diamonds || a.Sevens != b.Sevens ||
			a.SevenOfDiamonds != b.SevenOfDiamonds {
			t.Fatalf("row %d differs: %+v vs %+v", i, a, b)
		}
	}
}
