package fetcher

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/ingestion/domain"
)

func TestSimulatedTeamStatistics(t *testing.T) {
	s := NewSimulated()
	team := domain.DefaultTeams[0]

	for i := 0; i < 100; i++ {
		stats, err := s.TeamStatistics(context.Background(), team)
		assert.NoError(t, err)

		assert.Equal(t, team.ID, stats.ID)
		assert.Equal(t, "Dinamo", stats.Name)
		assert.Equal(t, "Liga 1", stats.League)
		assert.Equal(t, 2023, stats.Season)
		assert.Equal(t, 30, stats.Statistics.MatchesPlayed)
		assert.Equal(t, 60, stats.Statistics.GoalsFor)
		assert.Equal(t, 30, stats.Statistics.GoalsAgainst)

		assert.GreaterOrEqual(t, stats.Statistics.Wins, 1)
		assert.LessOrEqual(t, stats.Statistics.Wins, 20)
		assert.GreaterOrEqual(t, stats.Statistics.Draws, 1)
		assert.LessOrEqual(t, stats.Statistics.Draws, 5)
		assert.GreaterOrEqual(t, stats.Statistics.Losses, 2)
		assert.LessOrEqual(t, stats.Statistics.Losses, 6)
		assert.GreaterOrEqual(t, stats.Month, 1)
		assert.LessOrEqual(t, stats.Month, 12)
	}
}

// Teams are fetched concurrently within a run, so one provider serves
// several goroutines at once.
func TestSimulatedTeamStatisticsConcurrent(t *testing.T) {
	s := NewSimulated()
	team := domain.DefaultTeams[0]

	var wg sync.WaitGroup

	for g := 0; g < 4; g++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := 0; i < 100; i++ {
				stats, err := s.TeamStatistics(context.Background(), team)
				assert.NoError(t, err)

				assert.GreaterOrEqual(t, stats.Statistics.Wins, 1)
				assert.LessOrEqual(t, stats.Statistics.Wins, 20)
				assert.GreaterOrEqual(t, stats.Statistics.Draws, 1)
				assert.LessOrEqual(t, stats.Statistics.Draws, 5)
				assert.GreaterOrEqual(t, stats.Statistics.Losses, 2)
				assert.LessOrEqual(t, stats.Statistics.Losses, 6)
			}
		}()
	}

	wg.Wait()
}
