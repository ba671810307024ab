package service

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/common"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/framework/connection"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/ingestion/dal"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/ingestion/domain"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/ingestion/fetcher"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/logger"
)

// fetchConcurrency bounds the parallel team statistics fetches per run.
const fetchConcurrency = 4

type IngestionService struct {
	loggerProvider logger.Provider
	conn           *connection.Connection
	provider       fetcher.Provider
	backups        dal.Backups
	warehouse      dal.Warehouse
	teams          []domain.Team
	now            func() time.Time
}

func NewIngestionService(log logger.Provider, conn *connection.Connection) (*IngestionService, error) {
	provider, err := newProvider()
	if err != nil {
		return nil, err
	}

	return &IngestionService{
		loggerProvider: log,
		conn:           conn,
		provider:       provider,
		backups:        dal.NewBackupsDAL(conn.CloudStorage(context.Background())),
		warehouse:      dal.NewWarehouseDAL(conn.Bigquery(context.Background())),
		teams:          domain.DefaultTeams,
		now:            time.Now,
	}, nil
}

func newProvider() (fetcher.Provider, error) {
	if common.GetEnv("STATS_PROVIDER", "simulated") == "apisports" {
		return fetcher.NewAPISports()
	}

	return fetcher.NewSimulated(), nil
}

// RunPipeline executes one ingestion run: fetch statistics for every
// configured team, back the batch up as a JSONL object, load it into the raw
// table and rebuild the transformed table. Stages run strictly in order; a
// stage error aborts the run.
func (s *IngestionService) RunPipeline(ctx context.Context) (*domain.RunResult, error) {
	log := s.loggerProvider(ctx)

	runID := uuid.NewString()
	log.SetLabel("run_id", runID)

	batch, fetchErrs := s.fetchAll(ctx)
	if len(batch) == 0 {
		if fetchErrs != nil {
			return nil, fetchErrs
		}

		return nil, domain.ErrNoStatistics
	}

	if fetchErrs != nil {
		log.Warningf("run %s: continuing with %d/%d teams: %s", runID, len(batch), len(s.teams), fetchErrs)
	}

	slug := domain.TeamSlug(batch[0].Name)
	if len(batch) > 1 {
		slug = "batch"
	}

	objectName := domain.RunObjectName(slug, batch[0].Season, s.now())

	uri, err := s.backups.UploadRunObject(ctx, objectName, batch)
	if err != nil {
		return nil, err
	}

	log.Infof("run %s: statistics uploaded to %s", runID, uri)

	if err := s.load(ctx, runID, uri, batch); err != nil {
		return nil, err
	}

	log.Infof("run %s: data uploaded to BigQuery successfully", runID)

	if err := s.warehouse.RunTransformation(ctx); err != nil {
		return nil, err
	}

	log.Infof("run %s: data transformation completed successfully", runID)

	return &domain.RunResult{
		RunID:       runID,
		ObjectName:  objectName,
		Teams:       len(batch),
		FailedTeams: len(s.teams) - len(batch),
	}, nil
}

// fetchAll fetches all configured teams concurrently. Individual failures are
// collected instead of aborting the run: a partial batch still gets backed up
// and loaded.
func (s *IngestionService) fetchAll(ctx context.Context) ([]domain.TeamStatistics, error) {
	var (
		mu    sync.Mutex
		batch []domain.TeamStatistics
		errs  *multierror.Error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)

	for _, team := range s.teams {
		team := team

		g.Go(func() error {
			stats, err := s.provider.TeamStatistics(gctx, team)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				errs = multierror.Append(errs, err)
				return nil
			}

			batch = append(batch, *stats)

			return nil
		})
	}

	// Goroutines never return an error, Wait only joins them.
	_ = g.Wait()

	return batch, errs.ErrorOrNil()
}

// RunTransformation rebuilds the transformed table without ingesting.
func (s *IngestionService) RunTransformation(ctx context.Context) error {
	return s.warehouse.RunTransformation(ctx)
}

// PublishTrigger publishes the job trigger to the ingestion topic.
func (s *IngestionService) PublishTrigger(ctx context.Context) (string, error) {
	topic := s.conn.Pubsub(ctx).Topic(common.IngestionTopic())
	defer topic.Stop()

	result := topic.Publish(ctx, &pubsub.Message{
		Data: []byte(domain.JobStartedMessage),
	})

	return result.Get(ctx)
}
