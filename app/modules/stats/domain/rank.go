// Package statsdomain holds the pure ranking and statistics functions.
package statsdomain

import (
	"sort"

	"github.com/google/uuid"
)

// Rank assigns standard competition ranks to the given totals: a player's
// rank is 1 plus the number of players with a strictly greater total, so
// tied players share a rank and the sequence skips after a tie (1, 2, 2, 4).
// The result depends only on the score multiset, never on iteration order.
func Rank(totals map[uuid.UUID]int) map[uuid.UUID]int {
	if len(totals) == 0 {
		return map[uuid.UUID]int{}
	}

	scores := make([]int, 0, len(totals))
	for _, score := range totals {
		scores = append(scores, score)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(scores)))

	// First index of a score in the descending order is its rank - 1.
	rankByScore := make(map[int]int, len(scores))
	for i, score := range scores {
		if _, seen := rankByScore[score]; !seen {
			rankByScore[score] = i + 1
		}
	}

	ranks := make(map[uuid.UUID]int, len(totals))
	for id, score := range totals {
		ranks[id] = rankByScore[score]
	}
	return ranks
}
