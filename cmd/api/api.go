package api

import (
	"net/http"
	"os"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/cmd/api/handlers"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/framework/connection"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/framework/mid"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/framework/web"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/logger"
)

type API struct {
	shutdown chan os.Signal
	log      *logger.Logging
	conn     *connection.Connection
}

func NewAPI(shutdown chan os.Signal, logging *logger.Logging, conn *connection.Connection) *API {
	return &API{
		shutdown,
		logging,
		conn,
	}
}

// Build builds the api endpoints with the needed middlewares, and returns http.Handler interface.
func (a *API) Build() http.Handler {
	loggerProvider := logger.FromContext

	// Construct the web.App which holds all routes as well as common Middleware.
	app := web.NewApp(a.shutdown, a.conn, mid.Logger(), mid.Errors(), mid.Panics(), mid.Sentry())

	ingestion := handlers.NewIngestion(loggerProvider, a.conn)
	schedule := handlers.NewSchedule(loggerProvider, a.conn)
	schema := handlers.NewSchema(loggerProvider, a.conn)

	app.Get("/health", handlers.Ping)

	// Pub/Sub push subscription endpoint.
	eventsGroup := web.NewGroup(app, "/events")
	{
		eventsGroup.Post("/ingestion", ingestion.SubscribeHandler)
	}

	// Direct task endpoints, for manual runs and the scheduler management.
	tasksGroup := web.NewGroup(app, "/tasks")
	{
		tasksGroup.Post("/ingestion", ingestion.RunHandler)
		tasksGroup.Post("/transform", ingestion.TransformHandler)
		tasksGroup.Post("/trigger", ingestion.TriggerHandler)

		scheduleGroup := tasksGroup.NewSubgroup("/schedule")
		{
			scheduleGroup.Post("", schedule.CreateHandler)
			scheduleGroup.Put("", schedule.UpdateHandler)
			scheduleGroup.Delete("", schedule.DeleteHandler)
		}
	}

	schemaGroup := web.NewGroup(app, "/schema")
	{
		schemaGroup.Post("/infer", schema.InferHandler)
	}

	return app
}
