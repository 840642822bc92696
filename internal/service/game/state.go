package game

// PlayerPublic is the open information about a room member. Hands and
// captured piles appear only as counts.
type PlayerPublic struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	HandCount     int    `json:"handCount"`
	CapturedCount int    `json:"capturedCount"`
	Score         int    `json:"score"`
	IsHost        bool   `json:"isHost"`
	IsDealer      bool   `json:"isDealer"`
	IsTireur      bool   `json:"isTireur"`
	IsTurn        bool   `json:"isTurn"`
	Team          string `json:"team,omitempty"`
}

type TeamMember struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsHost   bool   `json:"isHost"`
}

type TeamLayout struct {
	Key     string       `json:"key"`
	Name    string       `json:"name"`
	Members []TeamMember `json:"members"`
}

// LobbyState is the shared, hidden-information-free room snapshot.
type LobbyState struct {
	RoomCode       string         `json:"roomCode"`
	Status         Status         `json:"status"`
	Round          int            `json:"round"`
	TargetScore    int            `json:"targetScore"`
	Mode           Mode           `json:"mode"`
	MaxPlayers     int            `json:"maxPlayers"`
	AvailableSlots int            `json:"availableSlots"`
	TeamScores     map[string]int `json:"teamScores,omitempty"`
	Teams          []TeamLayout   `json:"teams,omitempty"`
	Players        []PlayerPublic `json:"players"`
	LastActionLog  string         `json:"lastActionLog"`
}

// PlayerState is the per-viewer snapshot. It carries the viewer's own hand
// and captured pile in full detail; every other player is reduced to counts.
type PlayerState struct {
	RoomCode           string         `json:"roomCode"`
	Status             Status         `json:"status"`
	Round              int            `json:"round"`
	TargetScore        int            `json:"targetScore"`
	Mode               Mode           `json:"mode"`
	Teams              []TeamLayout   `json:"teams"`
	TeamScores         map[string]int `json:"teamScores,omitempty"`
	AvailableSlots     int            `json:"availableSlots"`
	SelfID             string         `json:"selfId"`
	TableCards         []Card         `json:"tableCards"`
	YourHand           []Card         `json:"yourHand"`
	YourCaptured       int            `json:"yourCaptured"`
	YourCapturedCards  []Card         `json:"yourCapturedCards"`
	Chkobba            int            `json:"chkobba"`
	TurnPlayerID       string         `json:"turnPlayerId"`
	DealerID           string         `json:"dealerId"`
	TireurID           string         `json:"tireurId"`
	LastActionLog      string         `json:"lastActionLog"`
	LastRoundSummary   *RoundSummary  `json:"lastRoundSummary"`
	LastChkobbaEvent   *ChkobbaEvent  `json:"lastChkobbaEvent"`
	WinnerID           string         `json:"winnerId"`
	AwaitingReady      bool           `json:"awaitingReady"`
	ReadyPlayerIDs     []string       `json:"readyPlayerIds"`
	HandAnimationToken int64          `json:"handAnimationToken"`
	Players            []PlayerPublic `json:"players"`
}

// LobbyState builds the public snapshot for REST lookups and broadcasts.
func (r *Room) LobbyState() LobbyState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buildLobbyStateLocked()
}

// PlayerState builds the snapshot for one viewer, or nil for non-members.
func (r *Room) PlayerState(playerID string) *PlayerState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buildPlayerStateLocked(playerID)
}

func (r *Room) buildLobbyStateLocked() LobbyState {
	state := LobbyState{
		RoomCode:       r.code,
		Status:         r.status,
		Round:          r.roundNumber,
		TargetScore:    r.targetScore,
		Mode:           r.mode,
		MaxPlayers:     r.maxPlayersLocked(),
		AvailableSlots: r.availableSlotsLocked(),
		Players:        r.buildPublicPlayersLocked(),
		LastActionLog:  r.lastActionLog,
	}
	if r.isTeamMode() {
		state.TeamScores = r.copyTeamScoresLocked()
		state.Teams = r.buildTeamLayoutLocked()
	}
	return state
}

func (r *Room) buildPlayerStateLocked(playerID string) *PlayerState {
	player := r.findPlayerLocked(playerID)
	if player == nil {
		return nil
	}
	state := &PlayerState{
		RoomCode:           r.code,
		Status:             r.status,
		Round:              r.roundNumber,
		TargetScore:        r.targetScore,
		Mode:               r.mode,
		Teams:              []TeamLayout{},
		AvailableSlots:     r.availableSlotsLocked(),
		SelfID:             playerID,
		TableCards:         append([]Card{}, r.tableCards...),
		YourHand:           append([]Card{}, player.Hand...),
		YourCaptured:       len(player.Captured),
		YourCapturedCards:  append([]Card{}, player.Captured...),
		Chkobba:            player.ChkobbaCount,
		TurnPlayerID:       r.playerIDAtLocked(r.turnIndex),
		DealerID:           r.playerIDAtLocked(r.dealerIndex),
		TireurID:           r.playerIDAtLocked(r.tireurIndex),
		LastActionLog:      r.lastActionLog,
		LastRoundSummary:   r.lastRoundSummary,
		LastChkobbaEvent:   r.lastChkobbaEvent,
		WinnerID:           r.winnerID,
		AwaitingReady:      r.status == StatusBetweenRounds,
		ReadyPlayerIDs:     r.readyPlayerIDsLocked(),
		HandAnimationToken: r.handAnimationToken,
		Players:            r.buildPublicPlayersLocked(),
	}
	if r.isTeamMode() {
		state.Teams = r.buildTeamLayoutLocked()
		state.TeamScores = r.copyTeamScoresLocked()
	}
	return state
}

func (r *Room) buildPublicPlayersLocked() []PlayerPublic {
	players := make([]PlayerPublic, len(r.players))
	for i, p := range r.players {
		players[i] = PlayerPublic{
			ID:            p.ID,
			Username:      p.Username,
			HandCount:     len(p.Hand),
			CapturedCount: len(p.Captured),
			Score:         p.Score,
			IsHost:        p.ID == r.hostID,
			IsDealer:      i == r.dealerIndex,
			IsTireur:      i == r.tireurIndex,
			IsTurn:        i == r.turnIndex,
			Team:          p.Team,
		}
	}
	return players
}

func (r *Room) buildTeamLayoutLocked() []TeamLayout {
	layout := []TeamLayout{
		{Key: TeamA, Name: teamNames[TeamA], Members: []TeamMember{}},
		{Key: TeamB, Name: teamNames[TeamB], Members: []TeamMember{}},
	}
	for _, p := range r.players {
		for i := range layout {
			if layout[i].Key == p.Team {
				layout[i].Members = append(layout[i].Members, TeamMember{
					ID:       p.ID,
					Username: p.Username,
					IsHost:   p.ID == r.hostID,
				})
			}
		}
	}
	return layout
}

func (r *Room) copyTeamScoresLocked() map[string]int {
	scores := make(map[string]int, len(r.teamScores))
	for k, v := range r.teamScores {
		scores[k] = v
	}
	return scores
}

func (r *Room) availableSlotsLocked() int {
	slots := r.maxPlayersLocked() - len(r.players)
	if slots < 0 {
		return 0
	}
	return slots
}

func (r *Room) readyPlayerIDsLocked() []string {
	ids := make([]string, 0, len(r.readyPlayers))
	for _, p := range r.players {
		if _, ok := r.readyPlayers[p.ID]; ok {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
