package common

import "fmt"

// GetLoadJobsBucket returns the staging bucket for BigQuery load jobs
// that go through the gzip staging path.
func GetLoadJobsBucket() string {
	if Production {
		return fmt.Sprintf("%s-bq-load-jobs", productionProject)
	}

	return fmt.Sprintf("%s-bq-load-jobs", ProjectID)
}
