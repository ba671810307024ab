package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/ingestion/domain"
)

type Provider struct {
	mock.Mock
}

func (m *Provider) TeamStatistics(ctx context.Context, team domain.Team) (*domain.TeamStatistics, error) {
	args := m.Called(ctx, team)

	var r0 *domain.TeamStatistics
	if args.Get(0) != nil {
		r0 = args.Get(0).(*domain.TeamStatistics)
	}

	return r0, args.Error(1)
}
