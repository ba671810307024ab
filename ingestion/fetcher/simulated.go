package fetcher

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/ingestion/domain"
)

// Simulated produces dummy statistics in place of the real API scraper:
// 30 matches played, randomized wins/draws/losses, fixed goal totals.
type Simulated struct {
	now func() time.Time

	// rnd is not goroutine-safe; mu guards it because teams are
	// fetched concurrently within a run.
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSimulated() *Simulated {
	return &Simulated{
		now: time.Now,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Simulated) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rnd.Intn(n)
}

func (s *Simulated) TeamStatistics(_ context.Context, team domain.Team) (*domain.TeamStatistics, error) {
	return &domain.TeamStatistics{
		ID:     team.ID,
		Name:   team.Name,
		League: team.League,
		Season: team.Season,
		Month:  int(s.now().UTC().Month()),
		Statistics: domain.Statistics{
			MatchesPlayed: 30,
			Wins:          1 + s.intn(20),
			Draws:         1 + s.intn(5),
			Losses:        2 + s.intn(5),
			GoalsFor:      60,
			GoalsAgainst:  30,
		},
	}, nil
}
