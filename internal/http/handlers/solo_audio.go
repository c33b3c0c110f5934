package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/igrejaviva/media-backend/internal/http/response"
	"github.com/igrejaviva/media-backend/internal/platform/apierr"
	"github.com/igrejaviva/media-backend/internal/services"
)

type SoloAudioHandler struct {
	soloService services.SoloAudioService
}

func NewSoloAudioHandler(soloService services.SoloAudioService) *SoloAudioHandler {
	return &SoloAudioHandler{soloService: soloService}
}

func (sh *SoloAudioHandler) Upload(c *gin.Context) {
	raw, err := readFormFile(c, "audio")
	if err != nil {
		response.Error(c, err)
		return
	}
	created, createErr := sh.soloService.Create(requestDBC(c), services.CreateSoloAudioInput{
		Title:    c.PostForm("title"),
		Preacher: c.PostForm("preacher"),
		Audio:    raw,
	})
	if createErr != nil {
		response.Error(c, createErr)
		return
	}
	response.Created(c, created)
}

func (sh *SoloAudioHandler) List(c *gin.Context) {
	rows, err := sh.soloService.List(requestDBC(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

// Update patches fields from JSON, or from a multipart form when the
// request also carries a replacement audio file.
func (sh *SoloAudioHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateSoloAudioInput
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if _, err := c.FormFile("audio"); err == nil {
			raw, ferr := readFormFile(c, "audio")
			if ferr != nil {
				response.Error(c, ferr)
				return
			}
			req.NewAudio = raw
		}
		if v := c.PostForm("title"); v != "" {
			req.Title = &v
		}
		if v := c.PostForm("preacher"); v != "" {
			req.Preacher = &v
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validation("invalid request body"))
		return
	}
	updated, err := sh.soloService.Update(requestDBC(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, updated)
}

func (sh *SoloAudioHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := sh.soloService.Delete(requestDBC(c), id); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "audio deleted"})
}
