package statsservice

import (
	"testing"
	"time"
)

func TestParseSince(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "rfc3339",
			input: "2026-03-01T18:30:00Z",
			want:  time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC),
		},
		{
			name:  "plain date",
			input: "2026-03-01",
			want:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "surrounding whitespace",
			input: "  2026-03-01  ",
			want:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSince(tc.input, now)
			if err != nil {
				t.Fatalf("ParseSince(%q): %v", tc.input, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("ParseSince(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseSinceNaturalLanguage(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	got, err := ParseSince("3 days ago", now)
	if err != nil {
		t.Fatalf("ParseSince: %v", err)
	}
	want := now.AddDate(0, 0, -3)
	if got.Sub(want).Abs() > time.Hour {
		t.Errorf("ParseSince(\"3 days ago\") = %v, want around %v", got, want)
	}
}

func TestParseSinceRejectsGarbage(t *testing.T) {
	now := time.Now()

	if _, err := ParseSince("", now); err == nil {
		t.Errorf("expected error for empty input")
	}
	if _, err := ParseSince("   ", now); err == nil {
		t.Errorf("expected error for blank input")
	}
	if _, err := ParseSince("qwertyuiop", now); err == nil {
		t.Errorf("expected error for unparseable input")
	}
}
