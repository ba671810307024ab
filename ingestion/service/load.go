package service

import (
	"context"
	"io"

	"cloud.google.com/go/bigquery"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/bqutils"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/common"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/ingestion/domain"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/schema"
)

const loadJobsObjectDir = "statistics"

// load moves the run's records into the raw table. The default path loads the
// backup object with schema autodetection; when BQ_SCHEMA_OBJECT points to an
// inferred schema document, the rows go through the explicit schema loader
// instead.
func (s *IngestionService) load(ctx context.Context, runID, uri string, batch []domain.TeamStatistics) error {
	schemaObject := common.GetEnv("BQ_SCHEMA_OBJECT", "")
	if schemaObject == "" {
		return s.warehouse.LoadRunObject(ctx, uri)
	}

	return s.loadWithSchema(ctx, runID, schemaObject, batch)
}

func (s *IngestionService) loadWithSchema(ctx context.Context, runID, schemaObject string, batch []domain.TeamStatistics) error {
	log := s.loggerProvider(ctx)

	gcs := s.conn.CloudStorage(ctx)

	rc, err := gcs.Bucket(common.BackupBucket()).Object(schemaObject).NewReader(ctx)
	if err != nil {
		return err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return err
	}

	fields, err := schema.Parse(data)
	if err != nil {
		return err
	}

	bqSchema, err := schema.ToBigQuery(fields)
	if err != nil {
		return err
	}

	log.Infof("run %s: loading with explicit schema from %s (%d fields)", runID, schemaObject, len(fields))

	rows := make([]interface{}, len(batch))
	for i := range batch {
		rows[i] = batch[i]
	}

	return bqutils.BigQueryTableLoader(ctx, bqutils.BigQueryTableLoaderParams{
		Client: s.conn.Bigquery(ctx),
		GCS:    gcs,
		Schema: &bqSchema,
		Rows:   rows,
		Data: &bqutils.BigQueryTableLoaderRequest{
			DestinationProjectID: common.ProjectID,
			DestinationDatasetID: common.Dataset(),
			DestinationTableName: common.RawTable(),
			ObjectDir:            loadJobsObjectDir,
			ConfigJobID:          "football_stats_load",
			WriteDisposition:     bigquery.WriteAppend,
		},
	})
}
