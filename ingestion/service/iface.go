package service

import (
	"context"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/ingestion/domain"
)

// Ingestion runs the trigger-to-warehouse pipeline.
//
//go:generate mockery --name Ingestion --output ./mocks
type Ingestion interface {
	// RunPipeline executes fetch -> backup -> load -> transform for the
	// configured teams.
	RunPipeline(ctx context.Context) (*domain.RunResult, error)

	// RunTransformation rebuilds the transformed table from the raw table.
	RunTransformation(ctx context.Context) error

	// PublishTrigger publishes the job trigger to the ingestion topic and
	// returns the message ID.
	PublishTrigger(ctx context.Context) (string, error)
}
