package controller

import (
	"context"
	"errors"
	"net/http"

	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type jobRoutesHandler struct {
	jobService service.Job
	validate   *validator.Validate
}

func newJobRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *jobRoutesHandler {
	h := &jobRoutesHandler{jobService: services.Job, validate: v}

	outer.POST("/jobs/new", h.PostJob)
	outer.GET("/jobs", h.GetJobs)
	outer.GET("/jobs/:jobId", h.GetJob)
	outer.DELETE("/jobs/:jobId", h.DeleteJob)
	outer.PUT("/jobs/:jobId/complete", h.CompleteJob)
	outer.PUT("/jobs/:jobId/dispute", h.DisputeJob)
	outer.PUT("/jobs/:jobId/fund", h.FundJob)

	return h
}

type postJobInput struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=1000"`
	Budget      uint64 `json:"budget" validate:"required,gt=0"`
	Deadline    string `json:"deadline" validate:"required"`
	Client      string `json:"client" validate:"required"`
}

// /jobs/new
func (h *jobRoutesHandler) PostJob(c echo.Context) error {
	var input postJobInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	model := &entity.CreateJobInput{
		Title: input.Title, Description: input.Description, Budget: input.Budget,
		Deadline: input.Deadline, Client: input.Client,
	}

	id, err := h.jobService.CreateJob(c.Request().Context(), model)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.JSON(http.StatusBadRequest, errorResponse{err.Error()})
		}

		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}

	return c.JSON(http.StatusOK, map[string]uint64{"id": id})
}

type getJobsInput struct {
	Status     string `query:"status" validate:"omitempty,oneof=Open InProgress Completed Cancelled Disputed"`
	Client     string `query:"client" validate:""`
	Freelancer string `query:"freelancer" validate:""`
}

// /jobs
func (h *jobRoutesHandler) GetJobs(c echo.Context) error {
	var input getJobsInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	filter := &entity.JobFilter{Status: input.Status, Client: input.Client, Freelancer: input.Freelancer}
	jobs, err := h.jobService.GetJobs(c.Request().Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.JSON(http.StatusBadRequest, errorResponse{err.Error()})
		}

		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}

	return c.JSON(http.StatusOK, jobs)
}

// /jobs/:jobId
func (h *jobRoutesHandler) GetJob(c echo.Context) error {
	jobId, err := parseJobId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Job id must be a positive integer"})
	}

	job, err := h.jobService.GetJobById(c.Request().Context(), jobId)
	if err == nil {
		return c.JSON(http.StatusOK, job)
	}

	switch err {
	case service.ErrJobNotFound:
		return c.JSON(http.StatusNotFound, errorResponse{"There is no job with given id"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}
}

// /jobs/:jobId
func (h *jobRoutesHandler) DeleteJob(c echo.Context) error {
	jobId, err := parseJobId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Job id must be a positive integer"})
	}

	requester := c.QueryParam("requester")
	if requester == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{"'requester': this field is required"})
	}

	err = h.jobService.DeleteJob(c.Request().Context(), jobId, requester)
	if err == nil {
		return c.NoContent(http.StatusOK)
	}

	switch err {
	case service.ErrJobNotFound:
		return c.JSON(http.StatusNotFound, errorResponse{"There is no job with given id"})
	case service.ErrRequesterNotClient:
		return c.JSON(http.StatusForbidden, errorResponse{"Only the client can delete the job"})
	case service.ErrFreelancerAlreadyAssigned:
		return c.JSON(http.StatusConflict, errorResponse{"Job with an assigned freelancer cannot be deleted"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}
}

// /jobs/:jobId/complete
func (h *jobRoutesHandler) CompleteJob(c echo.Context) error {
	return h.finishJob(c, h.jobService.CompleteJob)
}

// /jobs/:jobId/dispute
func (h *jobRoutesHandler) DisputeJob(c echo.Context) error {
	return h.finishJob(c, h.jobService.DisputeJob)
}

func (h *jobRoutesHandler) finishJob(c echo.Context, finish func(ctx context.Context, id uint64, requester string) (*entity.JobOutputModel, error)) error {
	jobId, err := parseJobId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Job id must be a positive integer"})
	}

	requester := c.QueryParam("requester")
	if requester == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{"'requester': this field is required"})
	}

	job, err := finish(c.Request().Context(), jobId, requester)
	if err == nil {
		return c.JSON(http.StatusOK, job)
	}

	switch err {
	case service.ErrJobNotFound:
		return c.JSON(http.StatusNotFound, errorResponse{"There is no job with given id"})
	case service.ErrRequesterNotParticipant:
		return c.JSON(http.StatusForbidden, errorResponse{"Only the client or freelancer can finish this job"})
	case service.ErrJobNotInProgress:
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{"Job must be in progress"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}
}

// /jobs/:jobId/fund
func (h *jobRoutesHandler) FundJob(c echo.Context) error {
	jobId, err := parseJobId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Job id must be a positive integer"})
	}

	client := c.QueryParam("client")
	if client == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{"'client': this field is required"})
	}

	job, err := h.jobService.FundJob(c.Request().Context(), jobId, client)
	if err == nil {
		return c.JSON(http.StatusOK, job)
	}

	switch err {
	case service.ErrJobNotFound:
		return c.JSON(http.StatusNotFound, errorResponse{"There is no job with given id"})
	case service.ErrRequesterNotClient:
		return c.JSON(http.StatusForbidden, errorResponse{"Only the client can fund the job"})
	case service.ErrAlreadyFunded:
		return c.JSON(http.StatusConflict, errorResponse{"Job is already funded"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}
}
