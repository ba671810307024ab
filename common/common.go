package common

import (
	"os"
	"strings"
)

var (
	// ProjectID is the GCP project this service runs in.
	ProjectID string

	// Service and Revision are populated by Cloud Run.
	Service string

	Revision string

	// Production flag indicating if app is running the production backend.
	Production bool

	// IsLocalhost flag indicating if app is running on localhost.
	IsLocalhost bool
)

const (
	productionProject = "spatial-tempo-425409-i2"

	// Location of the scheduler jobs and the BigQuery dataset.
	Location = "us-central1"
)

func init() {
	ProjectID = GetEnv("GOOGLE_CLOUD_PROJECT", productionProject)
	Service = os.Getenv("K_SERVICE")
	Revision = os.Getenv("K_REVISION")

	Production = ProjectID == productionProject && Revision != ""
	IsLocalhost = Revision == ""
}

// GetEnv returns the value of the environment variable named by key,
// or fallback if the variable is unset or empty.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

// BackupBucket returns the bucket holding the per-run JSONL backups.
func BackupBucket() string {
	return GetEnv("BACKUP_BUCKET", "frf-datacamp")
}

// BackupPrefix returns the object prefix for backup files.
func BackupPrefix() string {
	return strings.Trim(GetEnv("BACKUP_PREFIX", "auto-scraped-files"), "/")
}

// Dataset returns the BigQuery dataset holding the raw and transformed tables.
func Dataset() string {
	return GetEnv("BQ_DATASET", "main_dataset")
}

// RawTable returns the append-only table the JSONL backups are loaded into.
func RawTable() string {
	return GetEnv("BQ_RAW_TABLE", "auto_upload_table")
}

// TransformedTable returns the table replaced by the transformation run.
func TransformedTable() string {
	return GetEnv("BQ_TRANSFORMED_TABLE", "auto_filtered_latest")
}

// IngestionTopic returns the Pub/Sub topic carrying the job trigger.
func IngestionTopic() string {
	return GetEnv("INGESTION_TOPIC", "football-ingestion")
}
