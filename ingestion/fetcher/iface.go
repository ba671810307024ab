package fetcher

import (
	"context"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/ingestion/domain"
)

// Provider fetches season statistics for a single team.
//
//go:generate mockery --name Provider --output ./mocks
type Provider interface {
	TeamStatistics(ctx context.Context, team domain.Team) (*domain.TeamStatistics, error)
}
