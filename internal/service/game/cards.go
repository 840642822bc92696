package game

import (
	"fmt"
	"math/rand"
	"strings"
)

// Card is an immutable value in the fixed 40-card Chkobba deck
// (4 suits x ranks 1-10). Identity is suit+rank, encoded in ID.
type Card struct {
	ID          string `json:"id"`
	Suit        string `json:"suit"`
	SuitLabel   string `json:"suitLabel"`
	Color       string `json:"color"`
	Rank        int    `json:"rank"`
	DisplayRank string `json:"displayRank"`
	Name        string `json:"name"`
	Value       int    `json:"value"`
	Label       string `json:"label"`
}

type suitInfo struct {
	id    string
	label string
	color string
}

type rankInfo struct {
	value int
	label string
	name  string
}

var suits = []suitInfo{
	{id: "spades", label: "♠", color: "black"},
	{id: "clubs", label: "♣", color: "black"},
	{id: "hearts", label: "♥", color: "red"},
	{id: "diamonds", label: "♦", color: "red"},
}

// Court cards carry the French labels (Valet, Dame, Roi).
var ranks = []rankInfo{
	{value: 1, label: "1", name: "One"},
	{value: 2, label: "2", name: "Two"},
	{value: 3, label: "3", name: "Three"},
	{value: 4, label: "4", name: "Four"},
	{value: 5, label: "5", name: "Five"},
	{value: 6, label: "6", name: "Six"},
	{value: 7, label: "7", name: "Seven"},
	{value: 8, label: "V", name: "Valet"},
	{value: 9, label: "D", name: "Dame"},
	{value: 10, label: "R", name: "Roi"},
}

// SevenOfDiamondsID identifies the single bonus-point card.
const SevenOfDiamondsID = "diamonds-7"

// NewDeck builds the 40-card deck in a fixed order with stable ids.
func NewDeck() []Card {
	cards := make([]Card, 0, len(suits)*len(ranks))
	for _, suit := range suits {
		for _, rank := range ranks {
			cards = append(cards, Card{
				ID:          fmt.Sprintf("%s-%d", suit.id, rank.value),
				Suit:        suit.id,
				SuitLabel:   suit.label,
				Color:       suit.color,
				Rank:        rank.value,
				DisplayRank: rank.label,
				Name:        fmt.Sprintf("%s of %s", rank.name, capitalize(suit.id)),
				Value:       rank.value,
				Label:       rank.label + suit.label,
			})
		}
	}
	return cards
}

// ShuffleDeck returns a uniformly shuffled copy; the input is not mutated.
func ShuffleDeck(cards []Card, rng *rand.Rand) []Card {
	deck := append([]Card(nil), cards...)
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck
}

func capitalize(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
