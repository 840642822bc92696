package game

// RoundSummary is the score breakdown recorded at the end of every round.
// In 1v1 there is one row per player; in 2v2 one row per team.
type RoundSummary struct {
	Round     int        `json:"round"`
	Mode      Mode       `json:"mode"`
	Breakdown []ScoreRow `json:"breakdown"`
}

type ScoreRow struct {
	Username        string   `json:"username"`
	PlayerID        string   `json:"playerId,omitempty"`
	TeamKey         string   `json:"teamKey,omitempty"`
	Members         []string `json:"members,omitempty"`
	MemberIDs       []string `json:"memberIds,omitempty"`
	Cards           int      `json:"cards"`
	Diamonds        int      `json:"diamonds"`
	Sevens          int      `json:"sevens"`
	Chkobba         int      `json:"chkobba"`
	SevenOfDiamonds bool     `json:"sevenOfDiamonds"`
	PointsEarned    int      `json:"pointsEarned"`
	TotalScore      int      `json:"totalScore"`
}

// scoreStats accumulates the captured-card statistics for one scoring unit
// (a player, or a whole team in 2v2) before points are awarded.
type scoreStats struct {
	cards           int
	diamonds        int
	sevens          int
	sevenOfDiamonds bool
	chkobba         int
	points          int
}

func (s *scoreStats) addPile(captured []Card) {
	s.cards += len(captured)
	for _, card := range captured {
		if card.Suit == "diamonds" {
			s.diamonds++
		}
		if card.Rank == 7 {
			s.sevens++
		}
		if card.ID == SevenOfDiamondsID {
			s.sevenOfDiamonds = true
		}
	}
}

// awardCategory gives one point to the strict-unique positive maximum of the
// chosen statistic. Ties, and an all-zero field, award nobody.
func awardCategory(stats []*scoreStats, value func(*scoreStats) int) {
	maxValue := 0
	for _, s := range stats {
		if value(s) > maxValue {
			maxValue = value(s)
		}
	}
	if maxValue == 0 {
		return
	}
	var winner *scoreStats
	for _, s := range stats {
		if value(s) == maxValue {
			if winner != nil {
				return
			}
			winner = s
		}
	}
	winner.points++
}

func awardPoints(stats []*scoreStats) {
	awardCategory(stats, func(s *scoreStats) int { return s.cards })
	awardCategory(stats, func(s *scoreStats) int { return s.diamonds })
	awardCategory(stats, func(s *scoreStats) int { return s.sevens })
	for _, s := range stats {
		if s.sevenOfDiamonds {
			s.points++
		}
		s.points += s.chkobba
	}
}

// calculateScoresLocked runs the scoring engine over the captured piles,
// adds round points to cumulative scores and returns the breakdown.
func (r *Room) calculateScoresLocked() *RoundSummary {
	if r.isTeamMode() {
		return r.calculateTeamScoresLocked()
	}

	stats := make([]*scoreStats, len(r.players))
	for i, p := range r.players {
		s := &scoreStats{chkobba: p.ChkobbaCount}
		s.addPile(p.Captured)
		stats[i] = s
	}
	awardPoints(stats)

	rows := make([]ScoreRow, len(r.players))
	for i, p := range r.players {
		s := stats[i]
		p.Score += s.points
		rows[i] = ScoreRow{
			Username:        p.Username,
			PlayerID:        p.ID,
			Cards:           s.cards,
			Diamonds:        s.diamonds,
			Sevens:          s.sevens,
			Chkobba:         s.chkobba,
			SevenOfDiamonds: s.sevenOfDiamonds,
			PointsEarned:    s.points,
			TotalScore:      p.Score,
		}
	}
	return &RoundSummary{Round: r.roundNumber, Mode: r.mode, Breakdown: rows}
}

func (r *Room) calculateTeamScoresLocked() *RoundSummary {
	keys := []string{TeamA, TeamB}
	stats := map[string]*scoreStats{
		TeamA: {},
		TeamB: {},
	}
	members := map[string][]string{}
	memberIDs := map[string][]string{}

	for _, p := range r.players {
		key := p.Team
		if key != TeamB {
			key = TeamA
		}
		s := stats[key]
		s.addPile(p.Captured)
		s.chkobba += p.ChkobbaCount
		members[key] = append(members[key], p.Username)
		memberIDs[key] = append(memberIDs[key], p.ID)
	}

	ordered := []*scoreStats{stats[TeamA], stats[TeamB]}
	awardPoints(ordered)

	rows := make([]ScoreRow, 0, len(keys))
	for _, key := range keys {
		s := stats[key]
		r.teamScores[key] += s.points
		rows = append(rows, ScoreRow{
			Username:        teamDisplayName(key, members[key]),
			TeamKey:         key,
			Members:         members[key],
			MemberIDs:       memberIDs[key],
			Cards:           s.cards,
			Diamonds:        s.diamonds,
			Sevens:          s.sevens,
			Chkobba:         s.chkobba,
			SevenOfDiamonds: s.sevenOfDiamonds,
			PointsEarned:    s.points,
			TotalScore:      r.teamScores[key],
		})
	}

	// Every member carries their team's cumulative score.
	for _, p := range r.players {
		key := p.Team
		if key != TeamB {
			key = TeamA
		}
		p.Score = r.teamScores[key]
	}

	return &RoundSummary{Round: r.roundNumber, Mode: r.mode, Breakdown: rows}
}
