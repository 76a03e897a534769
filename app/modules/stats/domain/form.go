package statsdomain

// FormLabel is the qualitative summary of a player's recent rank history.
type FormLabel string

const (
	FormNoData    FormLabel = "No Data"
	FormHot       FormLabel = "Hot"
	FormExcellent FormLabel = "Excellent"
	FormAverage   FormLabel = "Average"
	FormCold      FormLabel = "Cold"
)

// DefaultFormWindow is how many recent finishes the form label considers.
const DefaultFormWindow = 5

// formScore weighs a finish: podium places score, everything else is zero.
func formScore(rank int) int {
	switch rank {
	case 1:
		return 10
	case 2:
		return 5
	case 3:
		return 2
	default:
		return 0
	}
}

// FormTrend classifies the most recent window of a rank history (most recent
// first). Three or more wins in the window trump everything; otherwise the
// average finish score decides. Pure function of its input.
func FormTrend(history []RankedFinish, window int) FormLabel {
	if len(history) == 0 {
		return FormNoData
	}
	if window <= 0 {
		window = DefaultFormWindow
	}
	if len(history) < window {
		window = len(history)
	}
	recent := history[:window]

	wins := 0
	total := 0
	for _, finish := range recent {
		if finish.Rank == 1 {
			wins++
		}
		total += formScore(finish.Rank)
	}

	if wins >= 3 {
		return FormHot
	}

	avg := float64(total) / float64(len(recent))
	switch {
	case avg >= 3.5:
		return FormExcellent
	case avg >= 1.5:
		return FormAverage
	default:
		return FormCold
	}
}
