package statsdomain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// GameResult is one player's closing line in a finished game.
type GameResult struct {
	PlayerID   uuid.UUID  `json:"player_id"`
	ProfileID  *uuid.UUID `json:"profile_id,omitempty"`
	Name       string     `json:"name"`
	TotalScore int        `json:"total_score"`
}

// FinishedGame is the aggregation input: one archived game with its results.
type FinishedGame struct {
	ID      uuid.UUID    `json:"id"`
	Date    time.Time    `json:"date"`
	Players []GameResult `json:"players"`
}

// RankedFinish is one (rank, game date) pair in a player's history.
type RankedFinish struct {
	Rank int       `json:"rank"`
	Date time.Time `json:"date"`
}

// PlayerStats accumulates one identity's cross-session record.
type PlayerStats struct {
	Name        string         `json:"name"`
	ProfileID   *uuid.UUID     `json:"profile_id,omitempty"`
	Wins        int            `json:"wins"`
	Second      int            `json:"second"`
	Third       int            `json:"third"`
	TotalGames  int            `json:"total_games"`
	RecentRanks []RankedFinish `json:"recent_ranks"`
}

// statsKey identifies a player across games: the profile ID when the row
// carries one, the exact name otherwise.
func statsKey(r GameResult) string {
	if r.ProfileID != nil {
		return "profile:" + r.ProfileID.String()
	}
	return "name:" + r.Name
}

// Aggregate computes per-identity statistics over a set of finished games.
// Each game is ranked independently with competition ranking; ties all
// count toward their shared bucket. Rank histories come out most recent
// first regardless of input order, and the leaderboard is ordered by wins,
// then seconds, then thirds, stable beyond that (first appearance wins).
func Aggregate(games []FinishedGame) []PlayerStats {
	statsByKey := make(map[string]*PlayerStats)
	latestSeen := make(map[string]time.Time)
	var order []string

	for _, game := range games {
		totals := make(map[uuid.UUID]int, len(game.Players))
		for _, p := range game.Players {
			totals[p.PlayerID] = p.TotalScore
		}
		ranks := Rank(totals)

		for _, p := range game.Players {
			key := statsKey(p)
			stat, ok := statsByKey[key]
			if !ok {
				stat = &PlayerStats{Name: p.Name, ProfileID: p.ProfileID}
				statsByKey[key] = stat
				order = append(order, key)
			}

			// The most recent game decides the display name.
			if !game.Date.Before(latestSeen[key]) {
				latestSeen[key] = game.Date
				stat.Name = p.Name
			}

			rank := ranks[p.PlayerID]
			stat.TotalGames++
			switch rank {
			case 1:
				stat.Wins++
			case 2:
				stat.Second++
			case 3:
				stat.Third++
			}
			stat.RecentRanks = append(stat.RecentRanks, RankedFinish{Rank: rank, Date: game.Date})
		}
	}

	leaderboard := make([]PlayerStats, 0, len(order))
	for _, key := range order {
		stat := statsByKey[key]
		sort.SliceStable(stat.RecentRanks, func(i, j int) bool {
			return stat.RecentRanks[i].Date.After(stat.RecentRanks[j].Date)
		})
		leaderboard = append(leaderboard, *stat)
	}

	sort.SliceStable(leaderboard, func(i, j int) bool {
		a, b := leaderboard[i], leaderboard[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.Second != b.Second {
			return a.Second > b.Second
		}
		return a.Third > b.Third
	})

	return leaderboard
}
