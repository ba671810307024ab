package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/ingestion/domain"
)

type Backups struct {
	mock.Mock
}

func (m *Backups) UploadRunObject(ctx context.Context, objectName string, batch []domain.TeamStatistics) (string, error) {
	args := m.Called(ctx, objectName, batch)
	return args.String(0), args.Error(1)
}
