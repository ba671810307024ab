package connection

import (
	"context"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/pubsub"
	scheduler "cloud.google.com/go/scheduler/apiv1"
	"cloud.google.com/go/storage"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/logger"
)

const (
	// CtxBigqueryKey is how bigquery connections are stored/retrieved.
	CtxBigqueryKey = "app-bigquery"

	// CtxCloudStorageKey is how cloud storage connections are stored/retrieved.
	CtxCloudStorageKey = "app-cloud-storage"

	// CtxPubSubKey is how cloud pubsub connections are stored/retrieved.
	CtxPubSubKey = "app-pubsub"
)

type Connection struct {
	*BigQueryClient
	*CloudStorageClient
	*PubsubClient
	*CloudSchedulerClient
}

// NewConnection initializes the client connections necessary for the pipeline.
func NewConnection(ctx context.Context, log *logger.Logging) (*Connection, error) {
	bq, err := NewBigQuery(ctx, log)
	if err != nil {
		return nil, err
	}

	gcs, err := NewCloudStorage(ctx, log)
	if err != nil {
		return nil, err
	}

	ps, err := NewPubsubClient(ctx, log)
	if err != nil {
		return nil, err
	}

	cs, err := NewCloudScheduler(ctx, log)
	if err != nil {
		return nil, err
	}

	return &Connection{
		bq,
		gcs,
		ps,
		cs,
	}, nil
}

// Bigquery returns a bigquery connection that was stored in context.
// It returns by default a bigquery connection, if there was not one in the context.
func (c *Connection) Bigquery(ctx context.Context) *bigquery.Client {
	if bq, ok := ctx.Value(CtxBigqueryKey).(*bigquery.Client); ok {
		return bq
	}

	return c.bq
}

// CloudStorage returns a cloud storage connection that was stored in context.
// it returns by default a cloud storage connection, if there was not on context.
func (c *Connection) CloudStorage(ctx context.Context) *storage.Client {
	if gcs, ok := ctx.Value(CtxCloudStorageKey).(*storage.Client); ok {
		return gcs
	}

	return c.gcs
}

// Pubsub returns a pubsub connection that was stored in context.
// it returns by default a pubsub connection, if there was not on context.
func (c *Connection) Pubsub(ctx context.Context) *pubsub.Client {
	if ps, ok := ctx.Value(CtxPubSubKey).(*pubsub.Client); ok {
		return ps
	}

	return c.pubsub
}

// CloudScheduler returns the cloud scheduler client.
func (c *Connection) CloudScheduler() *scheduler.CloudSchedulerClient {
	return c.cloudScheduler
}
