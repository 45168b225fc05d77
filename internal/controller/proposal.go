package controller

import (
	"errors"
	"net/http"

	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type proposalRoutesHandler struct {
	proposalService service.Proposal
	validate        *validator.Validate
}

func newProposalRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *proposalRoutesHandler {
	h := &proposalRoutesHandler{proposalService: services.Proposal, validate: v}

	outer.POST("/jobs/:jobId/proposals/new", h.PostProposal)
	outer.PUT("/jobs/:jobId/proposals/accept", h.AcceptProposal)
	outer.DELETE("/jobs/:jobId/proposals", h.RejectProposal)

	return h
}

type postProposalInput struct {
	Freelancer     string `json:"freelancer" validate:"required"`
	CoverLetter    string `json:"coverLetter" validate:"required,max=500"`
	ExpectedBudget uint64 `json:"expectedBudget" validate:"required,gt=0"`
}

// /jobs/:jobId/proposals/new
func (h *proposalRoutesHandler) PostProposal(c echo.Context) error {
	jobId, err := parseJobId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Job id must be a positive integer"})
	}

	var input postProposalInput
	if err = c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
	}

	if err = h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	model := &entity.CreateProposalInput{
		JobId: jobId, Freelancer: input.Freelancer,
		CoverLetter: input.CoverLetter, ExpectedBudget: input.ExpectedBudget,
	}

	err = h.proposalService.SubmitProposal(c.Request().Context(), model)
	if err == nil {
		return c.NoContent(http.StatusOK)
	}

	if errors.Is(err, service.ErrValidation) {
		return c.JSON(http.StatusBadRequest, errorResponse{err.Error()})
	}

	switch err {
	case service.ErrJobNotFound:
		return c.JSON(http.StatusNotFound, errorResponse{"There is no job with given id"})
	case service.ErrJobNotOpen:
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{"Cannot submit proposal to a closed job"})
	case service.ErrDuplicateProposal:
		return c.JSON(http.StatusConflict, errorResponse{"You have already submitted a proposal for this job"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}
}

// /jobs/:jobId/proposals/accept
func (h *proposalRoutesHandler) AcceptProposal(c echo.Context) error {
	jobId, err := parseJobId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Job id must be a positive integer"})
	}

	freelancer := c.QueryParam("freelancer")
	if freelancer == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{"'freelancer': this field is required"})
	}

	job, err := h.proposalService.AcceptProposal(c.Request().Context(), jobId, freelancer)
	if err == nil {
		return c.JSON(http.StatusOK, job)
	}

	switch err {
	case service.ErrJobNotFound:
		return c.JSON(http.StatusNotFound, errorResponse{"There is no job with given id"})
	case service.ErrProposalNotFound:
		return c.JSON(http.StatusNotFound, errorResponse{"There is no proposal from given freelancer"})
	case service.ErrFreelancerAlreadyAssigned:
		return c.JSON(http.StatusConflict, errorResponse{"Job already has a freelancer"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}
}

// /jobs/:jobId/proposals
func (h *proposalRoutesHandler) RejectProposal(c echo.Context) error {
	jobId, err := parseJobId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Job id must be a positive integer"})
	}

	freelancer := c.QueryParam("freelancer")
	if freelancer == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{"'freelancer': this field is required"})
	}

	err = h.proposalService.RejectProposal(c.Request().Context(), jobId, freelancer)
	if err == nil {
		return c.NoContent(http.StatusOK)
	}

	switch err {
	case service.ErrJobNotFound:
		return c.JSON(http.StatusNotFound, errorResponse{"There is no job with given id"})
	case service.ErrProposalNotFound:
		return c.JSON(http.StatusNotFound, errorResponse{"There is no proposal from given freelancer"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}
}
