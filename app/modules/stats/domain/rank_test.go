package statsdomain

import (
	"testing"

	"github.com/google/uuid"
)

func TestRankCompetitionTies(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name   string
		totals map[uuid.UUID]int
		want   map[uuid.UUID]int
	}{
		{
			name:   "two way tie at the top",
			totals: map[uuid.UUID]int{a: 50, b: 50, c: 30},
			want:   map[uuid.UUID]int{a: 1, b: 1, c: 3},
		},
		{
			name:   "three way tie skips to fourth",
			totals: map[uuid.UUID]int{a: 10, b: 10, c: 10, d: 5},
			want:   map[uuid.UUID]int{a: 1, b: 1, c: 1, d: 4},
		},
		{
			name:   "no ties",
			totals: map[uuid.UUID]int{a: 30, b: 20, c: 10},
			want:   map[uuid.UUID]int{a: 1, b: 2, c: 3},
		},
		{
			name:   "negative totals rank below zero",
			totals: map[uuid.UUID]int{a: 0, b: -50},
			want:   map[uuid.UUID]int{a: 1, b: 2},
		},
		{
			name:   "single player",
			totals: map[uuid.UUID]int{a: -35},
			want:   map[uuid.UUID]int{a: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(tt.totals)
			if len(got) != len(tt.want) {
				t.Fatalf("Rank() returned %d ranks, want %d", len(got), len(tt.want))
			}
			for id, wantRank := range tt.want {
				if got[id] != wantRank {
					t.Errorf("rank for %s = %d, want %d", id, got[id], wantRank)
				}
			}
		})
	}
}

func TestRankEmpty(t *testing.T) {
	got := Rank(map[uuid.UUID]int{})
	if got == nil {
		t.Fatal("Rank() on empty input returned nil, want empty map")
	}
	if len(got) != 0 {
		t.Errorf("Rank() on empty input returned %d ranks", len(got))
	}
}

func TestRankInvariants(t *testing.T) {
	totals := map[uuid.UUID]int{
		uuid.New(): 42,
		uuid.New(): 42,
		uuid.New(): 7,
		uuid.New(): -100,
		uuid.New(): 0,
	}
	ranks := Rank(totals)

	// Exactly one rank 1 group, and a higher total never ranks worse.
	bestSeen := false
	for id, r := range ranks {
		if r < 1 || r > len(totals) {
			t.Errorf("rank %d out of range for %s", r, id)
		}
		if r == 1 {
			bestSeen = true
		}
		for other, otherRank := range ranks {
			if totals[id] > totals[other] && r >= otherRank {
				t.Errorf("player with %d ranked %d, but player with %d ranked %d",
					totals[id], r, totals[other], otherRank)
			}
		}
	}
	if !bestSeen {
		t.Error("no player received rank 1")
	}
}
