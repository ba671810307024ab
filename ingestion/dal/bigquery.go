package dal

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/common"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/framework/web"
)

// WarehouseDAL owns the raw and transformed tables of the pipeline dataset.
type WarehouseDAL struct {
	bq               *bigquery.Client
	projectID        string
	datasetID        string
	rawTable         string
	transformedTable string
}

func NewWarehouseDAL(bq *bigquery.Client) *WarehouseDAL {
	return &WarehouseDAL{
		bq:               bq,
		projectID:        common.ProjectID,
		datasetID:        common.Dataset(),
		rawTable:         common.RawTable(),
		transformedTable: common.TransformedTable(),
	}
}

// LoadRunObject appends the newline delimited JSON object at uri into the raw
// table. The schema is autodetected, the table created on first load.
func (d *WarehouseDAL) LoadRunObject(ctx context.Context, uri string) error {
	gcsRef := bigquery.NewGCSReference(uri)
	gcsRef.SourceFormat = bigquery.JSON
	gcsRef.AutoDetect = true

	loader := d.bq.DatasetInProject(d.projectID, d.datasetID).Table(d.rawTable).LoaderFrom(gcsRef)
	loader.WriteDisposition = bigquery.WriteAppend
	loader.CreateDisposition = bigquery.CreateIfNeeded

	job, err := loader.Run(ctx)
	if err != nil {
		return err
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return err
	}

	return status.Err()
}

// RunTransformation derives the average statistics per team from the raw
// table and replaces the transformed table with the result.
func (d *WarehouseDAL) RunTransformation(ctx context.Context) error {
	exists, _, err := common.BigQueryTableExists(ctx, d.bq, d.projectID, d.datasetID, d.rawTable)
	if err != nil {
		return err
	}

	if !exists {
		// Nothing to transform before the first load has run.
		return web.ErrNotFound
	}

	sql := fmt.Sprintf(`
		SELECT
			t.name AS team_name,
			AVG(t.statistics.wins) AS avg_wins,
			AVG(t.statistics.draws) AS avg_draws,
			AVG(t.statistics.losses) AS avg_losses
		FROM
			%s AS t
		GROUP BY
			t.name`,
		common.BigQueryTableRef(d.projectID, d.datasetID, d.rawTable),
	)

	query := d.bq.Query(sql)
	query.Dst = d.bq.DatasetInProject(d.projectID, d.datasetID).Table(d.transformedTable)
	query.WriteDisposition = bigquery.WriteTruncate
	query.CreateDisposition = bigquery.CreateIfNeeded

	job, err := query.Run(ctx)
	if err != nil {
		return err
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return err
	}

	return status.Err()
}
