package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/igrejaviva/media-backend/internal/http/response"
	"github.com/igrejaviva/media-backend/internal/platform/apierr"
	"github.com/igrejaviva/media-backend/internal/services"
)

type TeachingHandler struct {
	teachingService services.TeachingService
}

func NewTeachingHandler(teachingService services.TeachingService) *TeachingHandler {
	return &TeachingHandler{teachingService: teachingService}
}

// UploadCover is step one of the two-step teaching create: the client
// uploads the image, gets back {url, key}, and sends both in the create.
func (th *TeachingHandler) UploadCover(c *gin.Context) {
	raw, err := readFormFile(c, "cover")
	if err != nil {
		response.Error(c, err)
		return
	}
	ref, err := th.teachingService.UploadCover(c.Request.Context(), raw)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"url": ref.URL, "key": ref.Key})
}

// Create accepts JSON with a pre-uploaded coverUrl/coverKey pair, or a
// multipart form carrying the cover image itself.
func (th *TeachingHandler) Create(c *gin.Context) {
	var req services.CreateTeachingInput
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if _, err := c.FormFile("cover"); err == nil {
			raw, ferr := readFormFile(c, "cover")
			if ferr != nil {
				response.Error(c, ferr)
				return
			}
			req.Cover = raw
		}
		req.Title = c.PostForm("title")
		req.Preacher = c.PostForm("preacher")
		req.Category = c.PostForm("category")
		req.CoverURL = c.PostForm("coverUrl")
		req.CoverKey = c.PostForm("coverKey")
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validation("invalid request body"))
		return
	}
	created, err := th.teachingService.Create(requestDBC(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

func (th *TeachingHandler) List(c *gin.Context) {
	rows, err := th.teachingService.List(requestDBC(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

func (th *TeachingHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	detail, err := th.teachingService.GetWithTracks(requestDBC(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, detail)
}

// Update patches fields from JSON, or from a multipart form when the
// request also carries a replacement cover image.
func (th *TeachingHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateTeachingInput
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if _, err := c.FormFile("cover"); err == nil {
			raw, ferr := readFormFile(c, "cover")
			if ferr != nil {
				response.Error(c, ferr)
				return
			}
			req.NewCover = raw
		}
		if v := c.PostForm("title"); v != "" {
			req.Title = &v
		}
		if v := c.PostForm("preacher"); v != "" {
			req.Preacher = &v
		}
		if v := c.PostForm("category"); v != "" {
			req.Category = &v
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validation("invalid request body"))
		return
	}
	updated, err := th.teachingService.Update(requestDBC(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, updated)
}

func (th *TeachingHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := th.teachingService.Delete(requestDBC(c), id); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "teaching and its tracks deleted"})
}
