package game

// ResolveCapture determines which table cards the played card captures.
// It is a pure query: the caller removes the returned cards from the table.
//
// A single card of equal value always wins over any combination. Failing
// that, a depth-first search over ascending table indices looks for a set of
// two or more cards summing exactly to the played value; the longest such
// combination wins, with ties going to the first one found. An empty result
// means the card is laid down on the table.
func ResolveCapture(played Card, table []Card) []Card {
	for _, c := range table {
		if c.Value == played.Value {
			return []Card{c}
		}
	}
	return findCombination(table, played.Value)
}

func findCombination(cards []Card, target int) []Card {
	var best []int

	var search func(start, sum int, picks []int)
	search = func(start, sum int, picks []int) {
		if sum == target && len(picks) > 1 {
			if len(picks) > len(best) {
				best = append([]int(nil), picks...)
			}
			return
		}
		if sum >= target {
			return
		}
		for i := start; i < len(cards); i++ {
			search(i+1, sum+cards[i].Value, append(picks, i))
		}
	}
	search(0, 0, nil)

	combo := make([]Card, 0, len(best))
	for _, idx := range best {
		combo = append(combo, cards[idx])
	}
	return combo
}
