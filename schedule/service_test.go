package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFrequency(t *testing.T) {
	valid := []string{
		"0 6 * * *",
		"*/15 * * * *",
		"0 */2 * * *",
		"30 8 1 * *",
		"0 18 * * 1-5",
		"0 0,12 * * *",
		"5 4 * 1,6,12 0",
	}

	for _, f := range valid {
		assert.NoError(t, ValidateFrequency(f), "frequency: %q", f)
	}

	invalid := []string{
		"",
		"* * * *",
		"61 * * * *",
		"0 24 * * *",
		"0 6 32 * *",
		"0 6 * 13 *",
		"0 6 * * 7",
		"every day",
		"0 6 * * * *",
	}

	for _, f := range invalid {
		assert.ErrorIs(t, ValidateFrequency(f), ErrInvalidFrequency, "frequency: %q", f)
	}
}

func TestBuildSchedulerJob(t *testing.T) {
	s := NewScheduleService(nil, nil)

	job, err := s.buildSchedulerJob(&Request{Frequency: "0 6 * * *"})
	assert.NoError(t, err)

	assert.Contains(t, job.Name, "football-ingestion-trigger")
	assert.Equal(t, "0 6 * * *", job.Schedule)
	assert.Equal(t, "Etc/UTC", job.TimeZone)

	target := job.GetPubsubTarget()
	assert.NotNil(t, target)
	assert.Contains(t, target.TopicName, "topics/football-ingestion")
	assert.Equal(t, []byte("job_started"), target.Data)
}

func TestBuildSchedulerJobRejectsMissingFrequency(t *testing.T) {
	s := NewScheduleService(nil, nil)

	_, err := s.buildSchedulerJob(&Request{})
	assert.Error(t, err)
}

func TestBuildSchedulerJobRejectsInvalidFrequency(t *testing.T) {
	s := NewScheduleService(nil, nil)

	_, err := s.buildSchedulerJob(&Request{Frequency: "whenever"})
	assert.ErrorIs(t, err, ErrInvalidFrequency)
}
