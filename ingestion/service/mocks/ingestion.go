package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/ingestion/domain"
)

type Ingestion struct {
	mock.Mock
}

func (m *Ingestion) RunPipeline(ctx context.Context) (*domain.RunResult, error) {
	args := m.Called(ctx)

	var r0 *domain.RunResult
	if args.Get(0) != nil {
		r0 = args.Get(0).(*domain.RunResult)
	}

	return r0, args.Error(1)
}

func (m *Ingestion) RunTransformation(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Ingestion) PublishTrigger(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
