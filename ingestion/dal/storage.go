package dal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"cloud.google.com/go/storage"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/common"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/ingestion/domain"
)

// BackupsDAL writes run snapshots to the backup bucket.
type BackupsDAL struct {
	gcs    *storage.Client
	bucket string
	prefix string
}

func NewBackupsDAL(gcs *storage.Client) *BackupsDAL {
	return &BackupsDAL{
		gcs:    gcs,
		bucket: common.BackupBucket(),
		prefix: common.BackupPrefix(),
	}
}

// backupConditions makes backup objects immutable: a name collision must
// fail instead of overwriting a previous run.
func backupConditions() storage.Conditions {
	return storage.Conditions{DoesNotExist: true}
}

// writeBatch serializes the batch as newline delimited JSON, one record
// per line.
func writeBatch(w io.Writer, batch []domain.TeamStatistics) error {
	nl := []byte("\n")

	for _, record := range batch {
		line, err := json.Marshal(record)
		if err != nil {
			return err
		}

		line = append(line, nl...)
		if _, err := w.Write(line); err != nil {
			return err
		}
	}

	return nil
}

func (d *BackupsDAL) UploadRunObject(ctx context.Context, objectName string, batch []domain.TeamStatistics) (string, error) {
	objectPath := fmt.Sprintf("%s/%s", d.prefix, objectName)

	obj := d.gcs.Bucket(d.bucket).Object(objectPath)

	// Canceling the writer's context aborts the upload, so a failed run
	// never commits a partial object under the run's immutable name.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := obj.If(backupConditions()).NewWriter(ctx)
	w.ContentType = "application/json"

	if err := writeBatch(w, batch); err != nil {
		cancel()
		return "", err
	}

	if err := w.Close(); err != nil {
		return "", err
	}

	return fmt.Sprintf("gs://%s/%s", d.bucket, objectPath), nil
}
