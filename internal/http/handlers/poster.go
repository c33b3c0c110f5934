package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/igrejaviva/media-backend/internal/http/response"
	"github.com/igrejaviva/media-backend/internal/services"
)

type PosterHandler struct {
	posterService services.PosterService
}

func NewPosterHandler(posterService services.PosterService) *PosterHandler {
	return &PosterHandler{posterService: posterService}
}

// Create replaces the active poster with the uploaded image.
func (ph *PosterHandler) Create(c *gin.Context) {
	raw, err := readFormFile(c, "image")
	if err != nil {
		response.Error(c, err)
		return
	}
	created, createErr := ph.posterService.Create(requestDBC(c), services.CreatePosterInput{
		Title: c.PostForm("title"),
		Image: raw,
	})
	if createErr != nil {
		response.Error(c, createErr)
		return
	}
	response.Created(c, created)
}

func (ph *PosterHandler) GetActive(c *gin.Context) {
	row, err := ph.posterService.GetActive(requestDBC(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, row)
}

func (ph *PosterHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	row, err := ph.posterService.Get(requestDBC(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, row)
}

func (ph *PosterHandler) List(c *gin.Context) {
	rows, err := ph.posterService.List(requestDBC(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

func (ph *PosterHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ph.posterService.Delete(requestDBC(c), id); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "poster deleted"})
}

func (ph *PosterHandler) Cleanup(c *gin.Context) {
	removed, err := ph.posterService.Cleanup(requestDBC(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "posters removed", "deleted": removed})
}
