package http

import (
	"net/http"

	"stock-scoring/internal/dto"
	"stock-scoring/internal/model"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupJobs(base *echo.Group) {
	v1 := base.Group("/v1/jobs")
	{
		v1.GET("", h.ListJobs)
		v1.POST("/run", h.RunJobs)
	}
}

// RunJobs starts every due schedule, or the given job when job_id is set.
func (h *HttpAPIHandler) RunJobs(c echo.Context) error {
	req := new(dto.RunJobRequest)
	if c.Request().ContentLength > 0 {
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
		}
	}

	ctx := c.Request().Context()
	var err error
	if req.JobID > 0 {
		err = h.service.SchedulerService.RunJobTask(ctx, req.JobID)
	} else {
		err = h.service.SchedulerService.Execute(ctx)
	}
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Start running jobs", nil))
}

func (h *HttpAPIHandler) ListJobs(c echo.Context) error {
	jobs, err := h.service.SchedulerService.GetJobSchedule(c.Request().Context(), model.GetJobParam{})
	if err != nil {
		return h.errorResponse(c, err)
	}

	out := make([]dto.JobResponse, 0, len(jobs))
	for _, job := range jobs {
		resp := dto.JobResponse{
			ID:          job.ID,
			Name:        job.Name,
			Description: job.Description,
			Type:        job.Type,
			Schedules:   []dto.JobScheduleResponse{},
		}
		for _, s := range job.Schedules {
			sr := dto.JobScheduleResponse{ID: s.ID, CronExpression: s.CronExpression, IsActive: s.IsActive}
			if s.LastExecution.Valid {
				sr.LastExecution = &s.LastExecution.Time
			}
			if s.NextExecution.Valid {
				sr.NextExecution = &s.NextExecution.Time
			}
			resp.Schedules = append(resp.Schedules, sr)
		}
		out = append(out, resp)
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", out))
}
