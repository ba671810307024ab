// Package schedule manages the Cloud Scheduler job that triggers the
// ingestion pipeline through the Pub/Sub topic.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"cloud.google.com/go/scheduler/apiv1/schedulerpb"
	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	durationpb "google.golang.org/protobuf/types/known/durationpb"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/common"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/framework/connection"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/ingestion/domain"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/logger"
)

// Request is the schedule create/update payload.
type Request struct {
	// Frequency is a unix-cron expression, e.g. "0 6 * * *".
	Frequency string `json:"frequency" validate:"required"`
	TimeZone  string `json:"timeZone"`
}

var (
	ErrInvalidFrequency = errors.New("invalid frequency")
)

// frequencyPattern matches five-field unix-cron expressions with lists,
// ranges and steps per field.
const frequencyPattern = `^(\*|[0-5]?[0-9])(\/[1-9][0-9]*)?(,(\*|[0-5]?[0-9])(\/[1-9][0-9]*)?)*` +
	` (\*|1?[0-9]|2[0-3])(-(1?[0-9]|2[0-3]))?(\/[1-9][0-9]*)?(,(\*|1?[0-9]|2[0-3])(-(1?[0-9]|2[0-3]))?(\/[1-9][0-9]*)?)*` +
	` (\*|[1-9]|[1-2][0-9]|3[0-1])(-([1-9]|[1-2][0-9]|3[0-1]))?(\/[1-9][0-9]*)?(,(\*|[1-9]|[1-2][0-9]|3[0-1])(-([1-9]|[1-2][0-9]|3[0-1]))?(\/[1-9][0-9]*)?)*` +
	` (\*|[1-9]|1[0-2])(-([1-9]|1[0-2]))?(\/[1-9][0-9]*)?(,(\*|[1-9]|1[0-2])(-([1-9]|1[0-2]))?(\/[1-9][0-9]*)?)*` +
	` (\*|[0-6])(-[0-6])?(\/[1-9][0-9]*)?(,(\*|[0-6])(-[0-6])?(\/[1-9][0-9]*)?)*$`

var frequencyRegexp = regexp.MustCompile(frequencyPattern)

const jobID = "football-ingestion-trigger"

type ScheduleService struct {
	loggerProvider logger.Provider
	conn           *connection.Connection
	validate       *validator.Validate
}

func NewScheduleService(log logger.Provider, conn *connection.Connection) *ScheduleService {
	return &ScheduleService{
		loggerProvider: log,
		conn:           conn,
		validate:       validator.New(),
	}
}

func jobsParentRoot() string {
	return fmt.Sprintf("projects/%s/locations/%s", common.ProjectID, common.Location)
}

func getJobName() string {
	if common.Production {
		return jobsParentRoot() + "/jobs/" + jobID
	}

	return jobsParentRoot() + "/jobs/dev_" + jobID
}

// CreateSchedule creates the recurring trigger job.
func (s *ScheduleService) CreateSchedule(ctx context.Context, req *Request) error {
	l := s.loggerProvider(ctx)

	job, err := s.buildSchedulerJob(req)
	if err != nil {
		return err
	}

	if _, err := s.conn.CloudScheduler().CreateJob(ctx, &schedulerpb.CreateJobRequest{
		Parent: jobsParentRoot(),
		Job:    job,
	}); err != nil {
		return err
	}

	l.Infof("schedule %s created with frequency %q", job.Name, req.Frequency)

	return nil
}

// UpdateSchedule updates the recurring trigger job in place.
func (s *ScheduleService) UpdateSchedule(ctx context.Context, req *Request) error {
	l := s.loggerProvider(ctx)

	job, err := s.buildSchedulerJob(req)
	if err != nil {
		return err
	}

	if _, err := s.conn.CloudScheduler().UpdateJob(ctx, &schedulerpb.UpdateJobRequest{
		Job: job,
	}); err != nil {
		return err
	}

	l.Infof("schedule %s updated with frequency %q", job.Name, req.Frequency)

	return nil
}

// DeleteSchedule removes the trigger job. A job that is already gone is not
// an error.
func (s *ScheduleService) DeleteSchedule(ctx context.Context) error {
	l := s.loggerProvider(ctx)

	if err := s.conn.CloudScheduler().DeleteJob(ctx, &schedulerpb.DeleteJobRequest{
		Name: getJobName(),
	}); err != nil {
		if status.Code(err) != codes.NotFound {
			return err
		}
	}

	l.Infof("schedule %s deleted", getJobName())

	return nil
}

func (s *ScheduleService) buildSchedulerJob(req *Request) (*schedulerpb.Job, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	if err := ValidateFrequency(req.Frequency); err != nil {
		return nil, err
	}

	timeZone := req.TimeZone
	if timeZone == "" {
		timeZone = "Etc/UTC"
	}

	jobTarget := &schedulerpb.Job_PubsubTarget{
		PubsubTarget: &schedulerpb.PubsubTarget{
			TopicName: fmt.Sprintf("projects/%s/topics/%s", common.ProjectID, common.IngestionTopic()),
			Data:      []byte(domain.JobStartedMessage),
		},
	}

	job := &schedulerpb.Job{
		Name:        getJobName(),
		Description: "Recurring trigger of the football statistics ingestion pipeline",
		Target:      jobTarget,
		Schedule:    req.Frequency,
		TimeZone:    timeZone,

		// Stops at 3 total retries, requests will retry at 30s, 60s, 120s.
		RetryConfig: &schedulerpb.RetryConfig{
			RetryCount:         3,
			MinBackoffDuration: durationpb.New(time.Second * 30),
			MaxBackoffDuration: durationpb.New(time.Minute * 2),
			MaxDoublings:       3,
		},
		AttemptDeadline: durationpb.New(time.Minute * 30),
	}

	return job, nil
}

// ValidateFrequency checks that the expression is a five-field unix-cron.
func ValidateFrequency(frequency string) error {
	if !frequencyRegexp.MatchString(frequency) {
		return ErrInvalidFrequency
	}

	return nil
}
