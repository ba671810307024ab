package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunObjectName(t *testing.T) {
	ts := time.Date(2023, 7, 14, 9, 30, 5, 0, time.UTC)

	name := RunObjectName("dinamo", 2023, ts)
	assert.Equal(t, "dinamo_statistics_2023_20230714_093005_processed.jsonl", name)
}

func TestRunObjectNameConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("EET", 2*60*60)
	ts := time.Date(2023, 7, 14, 11, 30, 5, 0, loc)

	name := RunObjectName("batch", 2023, ts)
	assert.Equal(t, "batch_statistics_2023_20230714_093005_processed.jsonl", name)
}

func TestTeamSlug(t *testing.T) {
	assert.Equal(t, "dinamo", TeamSlug("Dinamo"))
	assert.Equal(t, "fcsb_bucuresti", TeamSlug(" FCSB Bucuresti "))
}
