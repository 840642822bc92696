package game

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	appErr "chkobba-service/pkg/errors"
	"chkobba-service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Status string

const (
	StatusWaiting       Status = "waiting"
	StatusRunning       Status = "running"
	StatusBetweenRounds Status = "between_rounds"
	StatusFinished      Status = "finished"
)

type Mode string

const (
	Mode1v1 Mode = "1v1"
	Mode2v2 Mode = "2v2"
)

const (
	TeamA = "A"
	TeamB = "B"
)

const (
	handSize           = 3
	tableDealSize      = 4
	defaultTargetScore = 11
	minTargetScore     = 5
	maxTargetScore     = 51
)

type modeConfig struct {
	maxPlayers int
	label      string
	teamPlay   bool
}

var modeConfigs = map[Mode]modeConfig{
	Mode1v1: {maxPlayers: 2, label: "1v1 Duel", teamPlay: false},
	Mode2v2: {maxPlayers: 4, label: "2v2 Teams", teamPlay: true},
}

var teamNames = map[string]string{TeamA: "Team A", TeamB: "Team B"}

// Player is a room member. Hand, captured pile and chkobba counter reset
// every round; Score persists across rounds within a match.
type Player struct {
	ID           string
	Username     string
	Hand         []Card
	Captured     []Card
	Score        int
	ChkobbaCount int
	Team         string // "", TeamA or TeamB
}

// ChkobbaEvent marks a clean sweep for a transient client-side celebration.
type ChkobbaEvent struct {
	EventID   string `json:"eventId"`
	PlayerID  string `json:"playerId"`
	CardLabel string `json:"cardLabel"`
	Round     int    `json:"round"`
}

type OutgoingMessage struct {
	Type string      `json:"type"`
	Seq  int64       `json:"seq"`
	Data interface{} `json:"data"`
}

// RoomOptions configure a room at creation time. Invalid values fall back
// to 1v1 and the default target score.
type RoomOptions struct {
	Mode        Mode
	TargetScore int
}

// Room is the aggregate root: roster, deck, table, turn rotation and match
// score all live behind one mutex, so every operation is a serialized
// validate-then-mutate transition. Subscribers receive a lobby snapshot and
// an individualized player snapshot after every successful mutation.
type Room struct {
	mu sync.Mutex

	code        string
	mode        Mode
	targetScore int
	status      Status

	players []*Player
	hostID  string

	deck       []Card
	tableCards []Card

	roundNumber int
	dealerIndex int
	tireurIndex int
	turnIndex   int

	lastActionLog      string
	lastCapturePlayer  string
	lastRoundSummary   *RoundSummary
	lastChkobbaEvent   *ChkobbaEvent
	teamScores         map[string]int
	readyPlayers       map[string]struct{}
	handAnimationToken int64
	winnerID           string

	rng *rand.Rand
	seq int64

	subscribers map[string]chan<- OutgoingMessage
}

func NewRoom(code string, opts RoomOptions) *Room {
	mode := Mode1v1
	if opts.Mode == Mode2v2 {
		mode = Mode2v2
	}
	return &Room{
		code:          code,
		mode:          mode,
		targetScore:   normalizeTargetScore(opts.TargetScore),
		status:        StatusWaiting,
		lastActionLog: "Waiting for players",
		teamScores:    map[string]int{TeamA: 0, TeamB: 0},
		readyPlayers:  make(map[string]struct{}),
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		subscribers:   make(map[string]chan<- OutgoingMessage),
	}
}

func (r *Room) Code() string { return r.code }

func (r *Room) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

func (r *Room) IsHost(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hostID == playerID
}

func (r *Room) HasPlayer(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findPlayerLocked(playerID) != nil
}

func (r *Room) maxPlayersLocked() int {
	if cfg, ok := modeConfigs[r.mode]; ok {
		return cfg.maxPlayers
	}
	return 2
}

func (r *Room) isTeamMode() bool {
	if cfg, ok := modeConfigs[r.mode]; ok {
		return cfg.teamPlay
	}
	return false
}

func (r *Room) findPlayerLocked(playerID string) *Player {
	for _, p := range r.players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// AddPlayer joins a player to the roster. The first player becomes host and
// anchors the dealer rotation.
func (r *Room) AddPlayer(playerID, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.players) >= r.maxPlayersLocked() {
		return appErr.ErrRoomFull
	}
	for _, p := range r.players {
		if strings.EqualFold(p.Username, username) {
			return appErr.ErrNameTaken
		}
	}

	player := &Player{ID: playerID, Username: username}
	r.players = append(r.players, player)
	if r.hostID == "" {
		r.hostID = playerID
		r.dealerIndex = 0
	}
	r.assignTeamsLocked()
	r.lastActionLog = fmt.Sprintf("%s joined the room.", username)
	r.broadcastStateLocked()
	return nil
}

// RemovePlayer handles leave, disconnect and kick departures. Held index
// references are re-anchored by player id; if the roster drops below the
// mode's capacity mid-match the whole match resets in place.
func (r *Room) RemovePlayer(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := -1
	for i, p := range r.players {
		if p.ID == playerID {
			index = i
			break
		}
	}
	if index == -1 {
		return
	}

	departed := r.players[index].Username
	dealerID := r.playerIDAtLocked(r.dealerIndex)
	tireurID := r.playerIDAtLocked(r.tireurIndex)
	turnID := r.playerIDAtLocked(r.turnIndex)

	r.players = append(r.players[:index], r.players[index+1:]...)
	if r.hostID == playerID {
		r.hostID = ""
		if len(r.players) > 0 {
			r.hostID = r.players[0].ID
		}
	}
	delete(r.readyPlayers, playerID)
	// The outbound channel belongs to the session, which may join another
	// room on the same connection; deregister without closing.
	delete(r.subscribers, playerID)
	if len(r.players) == 0 {
		return
	}

	r.dealerIndex = r.resolveIndexLocked(dealerID, 0)
	r.tireurIndex = r.resolveIndexLocked(tireurID, r.dealerIndex)
	r.turnIndex = r.resolveIndexLocked(turnID, r.tireurIndex)
	r.assignTeamsLocked()

	if len(r.players) < r.maxPlayersLocked() {
		r.resetMatchLocked()
		r.lastActionLog = "Need the full roster to play."
	} else {
		r.lastActionLog = fmt.Sprintf("%s left the room.", departed)
	}
	r.broadcastStateLocked()
}

// Kick removes the target after notifying them. Host and self-kick checks
// belong to the transport layer.
func (r *Room) Kick(targetID string) error {
	r.mu.Lock()
	target := r.findPlayerLocked(targetID)
	if target == nil {
		r.mu.Unlock()
		return appErr.ErrPlayerNotFound
	}
	r.pushToLocked(targetID, OutgoingMessage{
		Type: "kicked",
		Seq:  r.nextSeqLocked(),
		Data: map[string]string{"roomCode": r.code},
	})
	r.mu.Unlock()

	r.RemovePlayer(targetID)
	return nil
}

func (r *Room) SetTargetScore(value int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status == StatusRunning {
		return appErr.ErrSettingsLocked
	}
	r.targetScore = normalizeTargetScore(value)
	r.lastActionLog = fmt.Sprintf("Target score set to %d.", r.targetScore)
	r.broadcastStateLocked()
	return nil
}

func (r *Room) SetMode(newMode Mode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status == StatusRunning {
		return appErr.ErrSettingsLocked
	}
	cfg, ok := modeConfigs[newMode]
	if !ok {
		return appErr.ErrInvalidMode
	}
	if len(r.players) > cfg.maxPlayers {
		return appErr.ErrRosterTooLarge
	}
	r.mode = newMode
	r.teamScores = map[string]int{TeamA: 0, TeamB: 0}
	r.assignTeamsLocked()
	r.lastActionLog = fmt.Sprintf("Mode set to %s.", cfg.label)
	r.broadcastStateLocked()
	return nil
}

func (r *Room) PromoteToHost(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	target := r.findPlayerLocked(playerID)
	if target == nil {
		return appErr.ErrPlayerNotFound
	}
	r.hostID = target.ID
	r.lastActionLog = fmt.Sprintf("%s is now the host.", target.Username)
	r.broadcastStateLocked()
	return nil
}

// StartGame begins a fresh match: scores and round counter reset, round one
// is dealt. Requires a full roster from the lobby or a finished match.
func (r *Room) StartGame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.players) != r.maxPlayersLocked() ||
		(r.status != StatusWaiting && r.status != StatusFinished) {
		return appErr.ErrRosterIncomplete
	}

	r.roundNumber = 0
	r.lastRoundSummary = nil
	r.teamScores = map[string]int{TeamA: 0, TeamB: 0}
	r.winnerID = ""
	r.lastChkobbaEvent = nil
	r.assignTeamsLocked()
	for _, p := range r.players {
		p.Score = 0
	}
	r.initRoundLocked()
	r.broadcastStateLocked()
	return nil
}

// initRoundLocked shuffles a fresh deck, deals 4 cards to the table and 3 to
// each hand, and hands the lead to the player after the dealer.
func (r *Room) initRoundLocked() {
	r.status = StatusRunning
	r.readyPlayers = make(map[string]struct{})
	r.roundNumber++
	r.deck = ShuffleDeck(NewDeck(), r.rng)
	r.tableCards = r.drawLocked(tableDealSize)
	for _, p := range r.players {
		p.Hand = r.drawLocked(handSize)
		p.Captured = nil
		p.ChkobbaCount = 0
	}
	r.handAnimationToken++
	r.tireurIndex = (r.dealerIndex + 1) % len(r.players)
	r.turnIndex = r.tireurIndex
	r.lastCapturePlayer = ""
	r.lastChkobbaEvent = nil
	r.lastRoundSummary = nil
	r.winnerID = ""
	r.lastActionLog = fmt.Sprintf("Round %d started. %s leads.",
		r.roundNumber, r.players[r.turnIndex].Username)
}

func (r *Room) drawLocked(n int) []Card {
	if n > len(r.deck) {
		n = len(r.deck)
	}
	drawn := append([]Card(nil), r.deck[:n]...)
	r.deck = r.deck[n:]
	return drawn
}

// PlayCard plays one card from the current player's hand. Captured cards
// move to the player's pile; an empty capture lays the card on the table.
// Emptying the table by capture is a chkobba. When every hand is empty the
// round either redeals or finalizes.
func (r *Room) PlayCard(playerID, cardID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusRunning {
		return appErr.ErrGameNotRunning
	}
	playerIndex := -1
	for i, p := range r.players {
		if p.ID == playerID {
			playerIndex = i
			break
		}
	}
	if playerIndex == -1 {
		return appErr.ErrPlayerNotFound
	}
	if playerIndex != r.turnIndex {
		return appErr.ErrNotYourTurn
	}
	player := r.players[playerIndex]
	cardIndex := -1
	for i, c := range player.Hand {
		if c.ID == cardID {
			cardIndex = i
			break
		}
	}
	if cardIndex == -1 {
		return appErr.ErrCardNotInHand
	}

	card := player.Hand[cardIndex]
	player.Hand = append(player.Hand[:cardIndex], player.Hand[cardIndex+1:]...)
	r.lastChkobbaEvent = nil

	captured := ResolveCapture(card, r.tableCards)
	if len(captured) > 0 {
		r.removeFromTableLocked(captured)
		player.Captured = append(player.Captured, captured...)
		player.Captured = append(player.Captured, card)
		r.lastCapturePlayer = player.ID
		if len(r.tableCards) == 0 {
			player.ChkobbaCount++
			r.lastChkobbaEvent = &ChkobbaEvent{
				EventID:   uuid.NewString(),
				PlayerID:  player.ID,
				CardLabel: card.Label,
				Round:     r.roundNumber,
			}
			r.lastActionLog = fmt.Sprintf("%s made a Chkobba with %s!", player.Username, card.Label)
		} else {
			r.lastActionLog = fmt.Sprintf("%s captured %d cards.", player.Username, len(captured))
		}
	} else {
		r.tableCards = append(r.tableCards, card)
		r.lastActionLog = fmt.Sprintf("%s played %s.", player.Username, card.Label)
	}

	r.advanceTurnLocked()
	r.maybeDealLocked()
	r.broadcastStateLocked()
	return nil
}

func (r *Room) removeFromTableLocked(captured []Card) {
	ids := make(map[string]struct{}, len(captured))
	for _, c := range captured {
		ids[c.ID] = struct{}{}
	}
	remaining := r.tableCards[:0]
	for _, c := range r.tableCards {
		if _, ok := ids[c.ID]; !ok {
			remaining = append(remaining, c)
		}
	}
	r.tableCards = remaining
}

func (r *Room) advanceTurnLocked() {
	if len(r.players) == 0 {
		return
	}
	r.turnIndex = (r.turnIndex + 1) % len(r.players)
}

// maybeDealLocked runs after every play. Once all hands are empty it deals
// the next 3-card hands, or finalizes the round when the deck is spent. The
// tireur keeps the lead on every fresh deal.
func (r *Room) maybeDealLocked() {
	for _, p := range r.players {
		if len(p.Hand) > 0 {
			return
		}
	}
	if len(r.deck) == 0 {
		r.finalizeRoundLocked()
		return
	}
	for _, p := range r.players {
		p.Hand = r.drawLocked(handSize)
	}
	r.turnIndex = r.tireurIndex
	r.handAnimationToken++
	r.lastChkobbaEvent = nil
	r.lastActionLog = "New hand dealt."
}

// finalizeRoundLocked awards the leftover table cards to the last capturer,
// runs the scoring engine and either finishes the match or parks the room
// between rounds with the dealer advanced.
func (r *Room) finalizeRoundLocked() {
	if r.lastCapturePlayer != "" {
		if sweeper := r.findPlayerLocked(r.lastCapturePlayer); sweeper != nil {
			sweeper.Captured = append(sweeper.Captured, r.tableCards...)
		}
	}
	r.tableCards = nil

	r.lastRoundSummary = r.calculateScoresLocked()

	for _, p := range r.players {
		if p.Score >= r.targetScore {
			r.status = StatusFinished
			r.winnerID = p.ID
			r.lastActionLog = fmt.Sprintf("%s reached %d points!", p.Username, r.targetScore)
			return
		}
	}
	r.winnerID = ""
	r.dealerIndex = (r.dealerIndex + 1) % len(r.players)
	r.status = StatusBetweenRounds
	r.readyPlayers = make(map[string]struct{})
	r.lastActionLog = "Round complete. Waiting for players to continue."
}

// PlayerReady confirms readiness for the next round. Once the whole roster
// has confirmed, the next round starts immediately.
func (r *Room) PlayerReady(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusBetweenRounds {
		return nil
	}
	if r.findPlayerLocked(playerID) == nil {
		return appErr.ErrPlayerNotFound
	}
	r.readyPlayers[playerID] = struct{}{}
	if len(r.readyPlayers) == len(r.players) {
		r.initRoundLocked()
	}
	r.broadcastStateLocked()
	return nil
}

// StopGame returns the room to the lobby, keeping the roster but wiping all
// round state and scores. Host enforcement belongs to the caller.
func (r *Room) StopGame() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.resetMatchLocked()
	r.lastActionLog = "Returned to lobby by host."
	r.broadcastStateLocked()
}

func (r *Room) resetMatchLocked() {
	r.status = StatusWaiting
	r.deck = nil
	r.tableCards = nil
	r.roundNumber = 0
	r.handAnimationToken++
	r.lastChkobbaEvent = nil
	r.lastRoundSummary = nil
	r.lastCapturePlayer = ""
	r.readyPlayers = make(map[string]struct{})
	r.winnerID = ""
	r.teamScores = map[string]int{TeamA: 0, TeamB: 0}
	for _, p := range r.players {
		p.Hand = nil
		p.Captured = nil
		p.ChkobbaCount = 0
		p.Score = 0
	}
}

// assignTeamsLocked alternates A/B by join order in 2v2; 1v1 players carry
// no team.
func (r *Room) assignTeamsLocked() {
	if !r.isTeamMode() {
		for _, p := range r.players {
			p.Team = ""
		}
		return
	}
	for i, p := range r.players {
		if i%2 == 0 {
			p.Team = TeamA
		} else {
			p.Team = TeamB
		}
	}
}

func (r *Room) playerIDAtLocked(index int) string {
	if index < 0 || index >= len(r.players) {
		return ""
	}
	return r.players[index].ID
}

func (r *Room) resolveIndexLocked(playerID string, fallback int) int {
	if len(r.players) == 0 {
		return 0
	}
	if playerID != "" {
		for i, p := range r.players {
			if p.ID == playerID {
				return i
			}
		}
	}
	return fallback % len(r.players)
}

// Subscribe registers an outbound channel for a session and immediately
// pushes the current snapshots to it.
func (r *Room) Subscribe(playerID string, ch chan<- OutgoingMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subscribers[playerID] = ch
	r.pushStateLocked(playerID)
}

func (r *Room) pushStateLocked(playerID string) {
	lobby := r.buildLobbyStateLocked()
	r.pushToLocked(playerID, OutgoingMessage{Type: "room_update", Seq: r.nextSeqLocked(), Data: lobby})
	if state := r.buildPlayerStateLocked(playerID); state != nil {
		r.pushToLocked(playerID, OutgoingMessage{Type: "game_update", Seq: r.nextSeqLocked(), Data: state})
	}
}

// broadcastStateLocked sends the shared lobby snapshot to every subscriber
// and an individualized snapshot to each member, so hidden-hand rules hold
// per recipient.
func (r *Room) broadcastStateLocked() {
	lobby := r.buildLobbyStateLocked()
	seq := r.nextSeqLocked()
	for id := range r.subscribers {
		r.pushToLocked(id, OutgoingMessage{Type: "room_update", Seq: seq, Data: lobby})
		if state := r.buildPlayerStateLocked(id); state != nil {
			r.pushToLocked(id, OutgoingMessage{Type: "game_update", Seq: seq, Data: state})
		}
	}
}

func (r *Room) pushToLocked(playerID string, msg OutgoingMessage) {
	ch, ok := r.subscribers[playerID]
	if !ok {
		return
	}
	select {
	case ch <- msg:
	default:
		logger.Log.Warn("ws subscriber channel full",
			zap.String("playerID", playerID),
			zap.String("roomCode", r.code),
		)
	}
}

func (r *Room) nextSeqLocked() int64 {
	r.seq++
	return r.seq
}

func normalizeTargetScore(value int) int {
	if value <= 0 {
		return defaultTargetScore
	}
	if value < minTargetScore {
		return minTargetScore
	}
	if value > maxTargetScore {
		return maxTargetScore
	}
	return value
}

func teamDisplayName(key string, members []string) string {
	return fmt.Sprintf("%s (%s)", teamNames[key], strings.Join(members, " & "))
}
