package connection

import (
	"context"
	"errors"

	scheduler "cloud.google.com/go/scheduler/apiv1"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/logger"
)

var (
	ErrCloudSchedulerInitialization = errors.New("cloud scheduler initialization error")
)

type CloudSchedulerClient struct {
	cloudScheduler *scheduler.CloudSchedulerClient
}

func NewCloudScheduler(ctx context.Context, log *logger.Logging) (*CloudSchedulerClient, error) {
	logger := log.Logger(ctx)

	cs, err := scheduler.NewCloudSchedulerClient(ctx)
	if err != nil {
		logger.Errorf("%s: %s", ErrCloudSchedulerInitialization, err)
		return nil, ErrCloudSchedulerInitialization
	}

	return &CloudSchedulerClient{
		cloudScheduler: cs,
	}, nil
}
