package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	dalMocks "github.com/iulian-sandu/football-data-analytics-frf-datacamp/ingestion/dal/mocks"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/ingestion/domain"
	fetcherMocks "github.com/iulian-sandu/football-data-analytics-frf-datacamp/ingestion/fetcher/mocks"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/logger"
)

var fixedNow = time.Date(2023, 7, 14, 9, 30, 5, 0, time.UTC)

func newTestService(provider *fetcherMocks.Provider, backups *dalMocks.Backups, warehouse *dalMocks.Warehouse, teams []domain.Team) *IngestionService {
	return &IngestionService{
		loggerProvider: logger.FromContext,
		provider:       provider,
		backups:        backups,
		warehouse:      warehouse,
		teams:          teams,
		now:            func() time.Time { return fixedNow },
	}
}

func dinamoStats() *domain.TeamStatistics {
	return &domain.TeamStatistics{
		ID:     635,
		Name:   "Dinamo",
		League: "Liga 1",
		Season: 2023,
		Month:  7,
		Statistics: domain.Statistics{
			MatchesPlayed: 30,
			Wins:          20,
			Draws:         5,
			Losses:        5,
			GoalsFor:      60,
			GoalsAgainst:  30,
		},
	}
}

func TestRunPipeline(t *testing.T) {
	provider := &fetcherMocks.Provider{}
	backups := &dalMocks.Backups{}
	warehouse := &dalMocks.Warehouse{}

	team := domain.DefaultTeams[0]
	stats := dinamoStats()

	wantObject := "dinamo_statistics_2023_20230714_093005_processed.jsonl"
	wantURI := "gs://frf-datacamp/auto-scraped-files/" + wantObject

	provider.On("TeamStatistics", mock.Anything, team).Return(stats, nil).Once()
	backups.On("UploadRunObject", mock.Anything, wantObject, []domain.TeamStatistics{*stats}).Return(wantURI, nil).Once()
	warehouse.On("LoadRunObject", mock.Anything, wantURI).Return(nil).Once()
	warehouse.On("RunTransformation", mock.Anything).Return(nil).Once()

	s := newTestService(provider, backups, warehouse, []domain.Team{team})

	result, err := s.RunPipeline(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, wantObject, result.ObjectName)
	assert.Equal(t, 1, result.Teams)
	assert.Equal(t, 0, result.FailedTeams)
	assert.NotEmpty(t, result.RunID)

	provider.AssertExpectations(t)
	backups.AssertExpectations(t)
	warehouse.AssertExpectations(t)
}

func TestRunPipelineAllTeamsFail(t *testing.T) {
	provider := &fetcherMocks.Provider{}
	backups := &dalMocks.Backups{}
	warehouse := &dalMocks.Warehouse{}

	team := domain.DefaultTeams[0]
	provider.On("TeamStatistics", mock.Anything, team).Return(nil, errors.New("api down")).Once()

	s := newTestService(provider, backups, warehouse, []domain.Team{team})

	_, err := s.RunPipeline(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "api down")

	backups.AssertNotCalled(t, "UploadRunObject", mock.Anything, mock.Anything, mock.Anything)
	warehouse.AssertNotCalled(t, "LoadRunObject", mock.Anything, mock.Anything)
}

func TestRunPipelineContinuesOnPartialFetchFailure(t *testing.T) {
	provider := &fetcherMocks.Provider{}
	backups := &dalMocks.Backups{}
	warehouse := &dalMocks.Warehouse{}

	okTeam := domain.DefaultTeams[0]
	badTeam := domain.Team{ID: 1, LeagueID: 283, Season: 2023, Name: "FCSB", League: "Liga 1"}

	stats := dinamoStats()

	provider.On("TeamStatistics", mock.Anything, okTeam).Return(stats, nil).Once()
	provider.On("TeamStatistics", mock.Anything, badTeam).Return(nil, errors.New("timeout")).Once()

	backups.On("UploadRunObject", mock.Anything, mock.Anything, []domain.TeamStatistics{*stats}).Return("gs://bucket/object", nil).Once()
	warehouse.On("LoadRunObject", mock.Anything, "gs://bucket/object").Return(nil).Once()
	warehouse.On("RunTransformation", mock.Anything).Return(nil).Once()

	s := newTestService(provider, backups, warehouse, []domain.Team{okTeam, badTeam})

	result, err := s.RunPipeline(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Teams)
	assert.Equal(t, 1, result.FailedTeams)

	warehouse.AssertExpectations(t)
}

func TestRunPipelineUploadErrorAbortsRun(t *testing.T) {
	provider := &fetcherMocks.Provider{}
	backups := &dalMocks.Backups{}
	warehouse := &dalMocks.Warehouse{}

	team := domain.DefaultTeams[0]
	provider.On("TeamStatistics", mock.Anything, team).Return(dinamoStats(), nil).Once()
	backups.On("UploadRunObject", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("precondition failed")).Once()

	s := newTestService(provider, backups, warehouse, []domain.Team{team})

	_, err := s.RunPipeline(context.Background())
	assert.Error(t, err)

	warehouse.AssertNotCalled(t, "LoadRunObject", mock.Anything, mock.Anything)
	warehouse.AssertNotCalled(t, "RunTransformation", mock.Anything)
}

func TestRunPipelineLoadErrorSkipsTransformation(t *testing.T) {
	provider := &fetcherMocks.Provider{}
	backups := &dalMocks.Backups{}
	warehouse := &dalMocks.Warehouse{}

	team := domain.DefaultTeams[0]
	provider.On("TeamStatistics", mock.Anything, team).Return(dinamoStats(), nil).Once()
	backups.On("UploadRunObject", mock.Anything, mock.Anything, mock.Anything).Return("gs://bucket/object", nil).Once()
	warehouse.On("LoadRunObject", mock.Anything, "gs://bucket/object").Return(errors.New("load job failed")).Once()

	s := newTestService(provider, backups, warehouse, []domain.Team{team})

	_, err := s.RunPipeline(context.Background())
	assert.Error(t, err)

	warehouse.AssertNotCalled(t, "RunTransformation", mock.Anything)
}

func TestRunTransformation(t *testing.T) {
	warehouse := &dalMocks.Warehouse{}
	warehouse.On("RunTransformation", mock.Anything).Return(nil).Once()

	s := newTestService(nil, nil, warehouse, nil)

	assert.NoError(t, s.RunTransformation(context.Background()))
	warehouse.AssertExpectations(t)
}
