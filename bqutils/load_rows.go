package bqutils

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/storage"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/common"
)

type BigQueryTableLoaderRequest struct {
	DestinationProjectID string
	DestinationDatasetID string
	DestinationTableName string
	ObjectDir            string
	ConfigJobID          string
	WriteDisposition     bigquery.TableWriteDisposition
}

type BigQueryTableLoaderParams struct {
	Client *bigquery.Client
	GCS    *storage.Client
	Schema *bigquery.Schema
	Rows   []interface{}
	Data   *BigQueryTableLoaderRequest
}

// BigQueryTableLoader stages the rows as a gzipped JSONL object in the load
// jobs bucket and runs a load job with an explicit schema. Used instead of
// the autodetect path when a schema override is configured for the run.
func BigQueryTableLoader(ctx context.Context, loadAttributes BigQueryTableLoaderParams) error {
	data := loadAttributes.Data
	bq := loadAttributes.Client

	nl := []byte("\n")
	now := time.Now().UTC()
	bucketID := common.GetLoadJobsBucket()
	objectName := fmt.Sprintf("%s/%s.gzip", data.ObjectDir, now.Format(time.RFC3339Nano))
	obj := loadAttributes.GCS.Bucket(bucketID).Object(objectName)
	objWriter := obj.NewWriter(ctx)
	gzipWriter := gzip.NewWriter(objWriter)

	for _, row := range loadAttributes.Rows {
		jsonData, err := json.Marshal(row)
		if err != nil {
			return err
		}

		jsonData = append(jsonData, nl...)
		if _, err := gzipWriter.Write(jsonData); err != nil {
			return err
		}
	}

	if err := gzipWriter.Close(); err != nil {
		return err
	}

	if err := objWriter.Close(); err != nil {
		return err
	}

	if _, err := obj.Update(ctx, storage.ObjectAttrsToUpdate{
		ContentType:     "application/json",
		ContentEncoding: "gzip",
	}); err != nil {
		return err
	}

	gcsRef := bigquery.NewGCSReference(fmt.Sprintf("gs://%s/%s", bucketID, objectName))
	gcsRef.SkipLeadingRows = 0
	gcsRef.MaxBadRecords = 0
	gcsRef.Schema = *loadAttributes.Schema
	gcsRef.SourceFormat = bigquery.JSON
	gcsRef.AutoDetect = false
	gcsRef.IgnoreUnknownValues = true

	loader := bq.DatasetInProject(data.DestinationProjectID, data.DestinationDatasetID).Table(data.DestinationTableName).LoaderFrom(gcsRef)
	loader.WriteDisposition = data.WriteDisposition
	loader.CreateDisposition = bigquery.CreateIfNeeded

	loader.JobIDConfig = bigquery.JobIDConfig{
		JobID:          data.ConfigJobID,
		AddJobIDSuffix: true,
	}

	job, err := loader.Run(ctx)
	if err != nil {
		return err
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return err
	}

	return status.Err()
}
