package dal

import (
	"context"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/ingestion/domain"
)

// Backups persists the immutable per-run JSONL snapshot in object storage.
//
//go:generate mockery --name Backups --output ./mocks
type Backups interface {
	// UploadRunObject writes one JSON line per record under the backup
	// prefix and returns the gs:// URI of the created object. The write
	// fails if the object already exists.
	UploadRunObject(ctx context.Context, objectName string, batch []domain.TeamStatistics) (string, error)
}

// Warehouse owns the raw and transformed BigQuery tables.
//
//go:generate mockery --name Warehouse --output ./mocks
type Warehouse interface {
	// LoadRunObject appends the JSONL object at uri into the raw table,
	// autodetecting the schema.
	LoadRunObject(ctx context.Context, uri string) error

	// RunTransformation replaces the transformed table with the per-team
	// averages derived from the raw table.
	RunTransformation(ctx context.Context) error
}
