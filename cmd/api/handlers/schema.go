package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/framework/connection"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/framework/web"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/logger"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/schema"
)

type Schema struct {
	loggerProvider logger.Provider
	conn           *connection.Connection
}

func NewSchema(log logger.Provider, conn *connection.Connection) *Schema {
	return &Schema{
		log,
		conn,
	}
}

// gcsObjectRequest points the inference at a CSV sample in cloud storage.
type gcsObjectRequest struct {
	Bucket string `json:"bucket" binding:"required"`
	Object string `json:"object" binding:"required"`
}

// InferHandler infers a BigQuery schema from a CSV sample. The sample is
// either the request body (text/csv) or an object reference
// (application/json with bucket and object).
func (h *Schema) InferHandler(ctx *gin.Context) error {
	log := h.loggerProvider(ctx)

	if strings.HasPrefix(ctx.ContentType(), "application/json") {
		var req gcsObjectRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			return web.NewRequestError(err, http.StatusBadRequest)
		}

		rc, err := h.conn.CloudStorage(ctx).Bucket(req.Bucket).Object(req.Object).NewReader(ctx)
		if err != nil {
			return web.NewRequestError(err, http.StatusInternalServerError)
		}
		defer rc.Close()

		fields, err := schema.InferFromCSV(rc)
		if err != nil {
			return web.NewRequestError(err, http.StatusBadRequest)
		}

		log.Infof("inferred %d fields from gs://%s/%s", len(fields), req.Bucket, req.Object)

		return web.Respond(ctx, fields, http.StatusOK)
	}

	fields, err := schema.InferFromCSV(ctx.Request.Body)
	if err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	log.Infof("inferred %d fields from request body", len(fields))

	return web.Respond(ctx, fields, http.StatusOK)
}
