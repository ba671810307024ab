package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/framework/connection"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/framework/web"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/ingestion/domain"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/ingestion/service"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/logger"
)

type Ingestion struct {
	loggerProvider logger.Provider
	service        service.Ingestion
}

func NewIngestion(log logger.Provider, conn *connection.Connection) *Ingestion {
	svc, err := service.NewIngestionService(log, conn)
	if err != nil {
		panic(err)
	}

	return &Ingestion{
		log,
		svc,
	}
}

// SubscribeHandler is the Pub/Sub push endpoint of the trigger subscription.
// A job_started payload runs the pipeline; anything else is rejected with 400
// so the subscription does not redeliver it.
func (h *Ingestion) SubscribeHandler(ctx *gin.Context) error {
	log := h.loggerProvider(ctx)

	var m domain.PubSubMessage

	if err := ctx.ShouldBindJSON(&m); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	if string(m.Message.Data) != domain.JobStartedMessage {
		log.Errorf("invalid pub/sub body: %s", m.Message.Data)
		return web.NewRequestError(domain.ErrInvalidPubSubBody, http.StatusBadRequest)
	}

	result, err := h.service.RunPipeline(ctx)
	if err != nil {
		// Non-2xx makes Pub/Sub redeliver the trigger.
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, result, http.StatusOK)
}

// RunHandler runs the pipeline directly, outside the Pub/Sub flow.
func (h *Ingestion) RunHandler(ctx *gin.Context) error {
	result, err := h.service.RunPipeline(ctx)
	if err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, result, http.StatusOK)
}

// TransformHandler rebuilds the transformed table from the raw table.
func (h *Ingestion) TransformHandler(ctx *gin.Context) error {
	if err := h.service.RunTransformation(ctx); err != nil {
		if err := web.TranslateError(err); err != nil {
			return err
		}

		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, nil, http.StatusOK)
}

// TriggerHandler publishes the job trigger to the ingestion topic.
func (h *Ingestion) TriggerHandler(ctx *gin.Context) error {
	log := h.loggerProvider(ctx)

	id, err := h.service.PublishTrigger(ctx)
	if err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	log.Infof("trigger published, message id %s", id)

	return web.Respond(ctx, map[string]string{"messageId": id}, http.StatusOK)
}
