package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/igrejaviva/media-backend/internal/http/response"
	"github.com/igrejaviva/media-backend/internal/platform/apierr"
	"github.com/igrejaviva/media-backend/internal/services"
)

type TrackHandler struct {
	trackService services.TrackService
}

func NewTrackHandler(trackService services.TrackService) *TrackHandler {
	return &TrackHandler{trackService: trackService}
}

// Upload takes a multipart audio file plus a teachingId form value and
// appends the track to that teaching.
func (th *TrackHandler) Upload(c *gin.Context) {
	raw, err := readFormFile(c, "audio")
	if err != nil {
		response.Error(c, err)
		return
	}
	teachingID, err := uuid.Parse(c.PostForm("teachingId"))
	if err != nil || teachingID == uuid.Nil {
		response.Error(c, apierr.Validation("invalid teachingId %q", c.PostForm("teachingId")))
		return
	}
	created, createErr := th.trackService.Create(requestDBC(c), services.CreateTrackInput{
		TeachingID: teachingID,
		Title:      c.PostForm("title"),
		Preacher:   c.PostForm("preacher"),
		Audio:      raw,
	})
	if createErr != nil {
		response.Error(c, createErr)
		return
	}
	response.Created(c, created)
}

// Update patches fields from JSON, or from a multipart form when the
// request also carries a replacement audio file.
func (th *TrackHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateTrackInput
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
	updated, err := th.trackService.Update(requestDBC(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, updated)
}

func (th *TrackHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := th.trackService.Delete(requestDBC(c), id); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "track deleted"})
}
