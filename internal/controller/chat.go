package controller

import (
	"errors"
	"net/http"

	"freelance-market-api/internal/entity"
	"freelance-market-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type chatRoutesHandler struct {
	chatService service.Chat
	validate    *validator.Validate
}

func newChatRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *chatRoutesHandler {
	h := &chatRoutesHandler{chatService: services.Chat, validate: v}

	outer.POST("/jobs/:jobId/messages/new", h.PostMessage)
	outer.GET("/jobs/:jobId/messages", h.GetChat)

	return h
}

type postMessageInput struct {
	Sender    string `json:"sender" validate:"required"`
	Content   string `json:"content" validate:"required,max=1000"`
	Timestamp uint64 `json:"timestamp" validate:""`
}

// /jobs/:jobId/messages/new
func (h *chatRoutesHandler) PostMessage(c echo.Context) error {
	jobId, err := parseJobId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Job id must be a positive integer"})
	}

	var input postMessageInput
	if err = c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
	}

	if err = h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	model := &entity.CreateMessageInput{
		JobId: jobId, Sender: input.Sender,
		Content: input.Content, Timestamp: input.Timestamp,
	}

	message, err := h.chatService.SendMessage(c.Request().Context(), model)
	if err == nil {
		return c.JSON(http.StatusOK, message)
	}

	if errors.Is(err, service.ErrValidation) {
		return c.JSON(http.StatusBadRequest, errorResponse{err.Error()})
	}

	switch err {
	case service.ErrJobNotFound:
		return c.JSON(http.StatusNotFound, errorResponse{"There is no job with given id"})
	case service.ErrChatNotInitialized:
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{"Chat history not initialized"})
	case service.ErrRequesterNotParticipant:
		return c.JSON(http.StatusForbidden, errorResponse{"Only chat participants can send messages"})
	case service.ErrJobNotActive:
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{"Job is not active"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}
}

// /jobs/:jobId/messages
func (h *chatRoutesHandler) GetChat(c echo.Context) error {
	jobId, err := parseJobId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Job id must be a positive integer"})
	}

	messages, err := h.chatService.GetChat(c.Request().Context(), jobId)
	if err == nil {
		return c.JSON(http.StatusOK, messages)
	}

	switch err {
	case service.ErrChatNotFound:
		return c.JSON(http.StatusNotFound, errorResponse{"No chat history found for this job"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{"Error"})
	}
}
