package connection

import (
	"context"
	"errors"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/option"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/common"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/logger"
)

var (
	ErrBigqueryInitialization = errors.New("bigquery initialization error")
)

type BigQueryClient struct {
	bq *bigquery.Client
}

func NewBigQuery(ctx context.Context, log *logger.Logging) (*BigQueryClient, error) {
	logger := log.Logger(ctx)

	scopes := option.WithScopes(bigquery.Scope)

	bq, err := bigquery.NewClient(ctx, common.ProjectID, scopes)
	if err != nil {
		logger.Errorf("%s: %s", ErrBigqueryInitialization, err)
		return nil, ErrBigqueryInitialization
	}

	return &BigQueryClient{
		bq: bq,
	}, nil
}
