package ledgerdomain

// RunningTotals computes, for each prefix of the chronologically ordered
// entry sequence (oldest first), the cumulative sum of points up to and
// including that entry. Pure: the same input always yields the same output.
func RunningTotals(entries []ScoreEntry) []int {
	if len(entries) == 0 {
		return nil
	}
	totals := make([]int, len(entries))
	sum := 0
	for i, e := range entries {
		sum += e.Points
		totals[i] = sum
	}
	return totals
}

// SumPoints is the final running total: the authoritative value for a
// player's cached TotalScore.
func SumPoints(entries []ScoreEntry) int {
	sum := 0
	for _, e := range entries {
		sum += e.Points
	}
	return sum
}

// AnnotateHistory pairs each entry with its running total, oldest first.
func AnnotateHistory(entries []ScoreEntry) []HistoryEntry {
	totals := RunningTotals(entries)
	history := make([]HistoryEntry, len(entries))
	for i, e := range entries {
		history[i] = HistoryEntry{Entry: e, RunningTotal: totals[i]}
	}
	return history
}

// CountPlayed reports how many entries were active-participation rounds.
func CountPlayed(entries []ScoreEntry) int {
	n := 0
	for _, e := range entries {
		if e.Played {
			n++
		}
	}
	return n
}

// UnusedTokens filters a player's tokens down to the ones still unused.
func UnusedTokens(tokens []TallyToken) []TallyToken {
	var unused []TallyToken
	for _, t := range tokens {
		if !t.IsUsed {
			unused = append(unused, t)
		}
	}
	return unused
}
