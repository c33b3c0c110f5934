package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/igrejaviva/media-backend/internal/http/response"
	"github.com/igrejaviva/media-backend/internal/platform/apierr"
	"github.com/igrejaviva/media-backend/internal/services"
)

type EventHandler struct {
	eventService services.EventService
}

func NewEventHandler(eventService services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (eh *EventHandler) Create(c *gin.Context) {
	var req services.CreateEventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validation("invalid request body"))
		return
	}
	created, err := eh.eventService.Create(requestDBC(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

func (eh *EventHandler) List(c *gin.Context) {
	rows, err := eh.eventService.List(requestDBC(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

func (eh *EventHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateEventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validation("invalid request body"))
		return
	}
	updated, err := eh.eventService.Update(requestDBC(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, updated)
}

func (eh *EventHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := eh.eventService.Delete(requestDBC(c), id); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

func (eh *EventHandler) AttachFlyer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	raw, err := readFormFile(c, "flyer")
	if err != nil {
		response.Error(c, err)
		return
	}
	updated, attachErr := eh.eventService.AttachFlyer(requestDBC(c), id, raw)
	if attachErr != nil {
		response.Error(c, attachErr)
		return
	}
	response.OK(c, updated)
}

func (eh *EventHandler) DetachFlyer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	updated, err := eh.eventService.DetachFlyer(requestDBC(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, updated)
}
