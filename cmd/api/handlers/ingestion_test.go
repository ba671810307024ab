package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/framework/mid"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/framework/web"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/ingestion/domain"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/ingestion/service/mocks"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/logger"
)

func pushEnvelope(data string) map[string]interface{} {
	return map[string]interface{}{
		"message": map[string]interface{}{
			"data":      base64.StdEncoding.EncodeToString([]byte(data)),
			"messageId": "1234567890",
		},
		"subscription": "projects/spatial-tempo-425409-i2/subscriptions/football-ingestion-push",
	}
}

func TestIngestion_SubscribeHandler(t *testing.T) {
	type fields struct {
		service mocks.Ingestion
	}

	tests := []struct {
		name         string
		body         map[string]interface{}
		on           func(*fields)
		wantedStatus int
	}{
		{
			name: "job_started runs the pipeline",
			body: pushEnvelope(domain.JobStartedMessage),
			on: func(f *fields) {
				f.service.On("RunPipeline", mock.AnythingOfType("*gin.Context")).
					Return(&domain.RunResult{RunID: "run-1"}, nil).
					Once()
			},
			wantedStatus: http.StatusOK,
		},
		{
			name:         "unknown payload is rejected without redelivery",
			body:         pushEnvelope("job_finished"),
			wantedStatus: http.StatusBadRequest,
		},
		{
			name:         "malformed envelope",
			body:         map[string]interface{}{"message": "not-an-object"},
			wantedStatus: http.StatusBadRequest,
		},
		{
			name: "pipeline failure reports 500 for redelivery",
			body: pushEnvelope(domain.JobStartedMessage),
			on: func(f *fields) {
				f.service.On("RunPipeline", mock.AnythingOfType("*gin.Context")).
					Return(nil, errors.New("load job failed")).
					Once()
			},
			wantedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := fields{service: mocks.Ingestion{}}
			h := &Ingestion{
				loggerProvider: logger.FromContext,
				service:        &fields.service,
			}

			if tt.on != nil {
				tt.on(&fields)
			}

			w := httptest.NewRecorder()
			errMx := mid.Errors()
			app := web.NewTestApp(w, errMx)
			app.Post("/events/ingestion", h.SubscribeHandler)

			rawBody, _ := json.Marshal(tt.body)
			body := bytes.NewBuffer(rawBody)

			req, _ := http.NewRequest(http.MethodPost, "/events/ingestion", body)
			app.ServeHTTP(w, req)

			assert.Equal(t, tt.wantedStatus, w.Code)
			fields.service.AssertExpectations(t)
		})
	}
}

func TestIngestion_TransformHandler(t *testing.T) {
	type fields struct {
		service mocks.Ingestion
	}

	tests := []struct {
		name         string
		on           func(*fields)
		wantedStatus int
	}{
		{
			name: "transformation succeeds",
			on: func(f *fields) {
				f.service.On("RunTransformation", mock.AnythingOfType("*gin.Context")).
					Return(nil).
					Once()
			},
			wantedStatus: http.StatusOK,
		},
		{
			name: "transformation fails",
			on: func(f *fields) {
				f.service.On("RunTransformation", mock.AnythingOfType("*gin.Context")).
					Return(errors.New("query job failed")).
					Once()
			},
			wantedStatus: http.StatusInternalServerError,
		},
		{
			name: "nothing to transform before the first load",
			on: func(f *fields) {
				f.service.On("RunTransformation", mock.AnythingOfType("*gin.Context")).
					Return(web.ErrNotFound).
					Once()
			},
			wantedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := fields{service: mocks.Ingestion{}}
			h := &Ingestion{
				loggerProvider: logger.FromContext,
				service:        &fields.service,
			}

			tt.on(&fields)

			w := httptest.NewRecorder()
			errMx := mid.Errors()
			app := web.NewTestApp(w, errMx)
			app.Post("/tasks/transform", h.TransformHandler)

			req, _ := http.NewRequest(http.MethodPost, "/tasks/transform", nil)
			app.ServeHTTP(w, req)

			assert.Equal(t, tt.wantedStatus, w.Code)
			fields.service.AssertExpectations(t)
		})
	}
}

func TestIngestion_TriggerHandler(t *testing.T) {
	service := mocks.Ingestion{}
	service.On("PublishTrigger", mock.AnythingOfType("*gin.Context")).
		Return("42", nil).
		Once()

	h := &Ingestion{
		loggerProvider: logger.FromContext,
		service:        &service,
	}

	w := httptest.NewRecorder()
	app := web.NewTestApp(w, mid.Errors())
	app.Post("/tasks/trigger", h.TriggerHandler)

	req, _ := http.NewRequest(http.MethodPost, "/tasks/trigger", nil)
	app.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"messageId":"42"}`, w.Body.String())
	service.AssertExpectations(t)
}
