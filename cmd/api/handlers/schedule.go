package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/framework/connection"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/framework/web"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/logger"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/schedule"
)

type Schedule struct {
	loggerProvider logger.Provider
	service        *schedule.ScheduleService
}

func NewSchedule(log logger.Provider, conn *connection.Connection) *Schedule {
	return &Schedule{
		log,
		schedule.NewScheduleService(log, conn),
	}
}

func (h *Schedule) CreateHandler(ctx *gin.Context) error {
	var req schedule.Request

	if err := ctx.ShouldBindJSON(&req); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	if err := h.service.CreateSchedule(ctx, &req); err != nil {
		if err == schedule.ErrInvalidFrequency {
			return web.NewRequestError(err, http.StatusBadRequest)
		}

		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, nil, http.StatusCreated)
}

func (h *Schedule) UpdateHandler(ctx *gin.Context) error {
	var req schedule.Request

	if err := ctx.ShouldBindJSON(&req); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	if err := h.service.UpdateSchedule(ctx, &req); err != nil {
		if err == schedule.ErrInvalidFrequency {
			return web.NewRequestError(err, http.StatusBadRequest)
		}

		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, nil, http.StatusOK)
}

func (h *Schedule) DeleteHandler(ctx *gin.Context) error {
	if err := h.service.DeleteSchedule(ctx); err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, nil, http.StatusOK)
}
