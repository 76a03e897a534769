package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	ledgerdomain "github.com/tarok-klub/tarok-backend/app/modules/ledger/domain"
)

// TestDataGenerator produces randomized domain data for integration tests.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a generator with an optional seed so failures
// reproduce.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed reports the seed in use, for reproducing a failed run.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// GameName produces a plausible session name.
func (g *TestDataGenerator) GameName() string {
	return g.faker.City() + " Tarok " + g.faker.DigitN(2)
}

// PlayerNames produces count distinct first names.
func (g *TestDataGenerator) PlayerNames(count int) []string {
	seen := make(map[string]bool, count)
	names := make([]string, 0, count)
	for len(names) < count {
		name := g.faker.FirstName()
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// RoundPoints produces a nonzero Tarok round score in the usual range,
// negative roughly half the time.
func (g *TestDataGenerator) RoundPoints() int {
	points := g.faker.Number(1, 70)
	if g.faker.Bool() {
		points = -points
	}
	return points
}

// SeatsFor builds a full table of players for one game, seated in order.
func (g *TestDataGenerator) SeatsFor(gameID uuid.UUID, count int) []ledgerdomain.Player {
	names := g.PlayerNames(count)
	players := make([]ledgerdomain.Player, count)
	for i, name := range names {
		players[i] = ledgerdomain.Player{GameID: gameID, Name: name, Position: i}
	}
	return players
}
