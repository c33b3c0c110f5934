package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/igrejaviva/media-backend/internal/http/response"
	"github.com/igrejaviva/media-backend/internal/platform/apierr"
	"github.com/igrejaviva/media-backend/internal/services"
)

type TeachingTextHandler struct {
	textService services.TeachingTextService
}

func NewTeachingTextHandler(textService services.TeachingTextService) *TeachingTextHandler {
	return &TeachingTextHandler{textService: textService}
}

func (th *TeachingTextHandler) Create(c *gin.Context) {
	var req services.CreateTeachingTextInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validation("invalid request body"))
		return
	}
	created, err := th.textService.Create(requestDBC(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

func (th *TeachingTextHandler) List(c *gin.Context) {
	rows, err := th.textService.List(requestDBC(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

func (th *TeachingTextHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	row, err := th.textService.Get(requestDBC(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, row)
}

func (th *TeachingTextHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateTeachingTextInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validation("invalid request body"))
		return
	}
	updated, err := th.textService.Update(requestDBC(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, updated)
}

func (th *TeachingTextHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := th.textService.Delete(requestDBC(c), id); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "teaching deleted"})
}
