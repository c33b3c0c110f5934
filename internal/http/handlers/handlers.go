package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/igrejaviva/media-backend/internal/http/response"
	"github.com/igrejaviva/media-backend/internal/pkg/dbctx"
	"github.com/igrejaviva/media-backend/internal/platform/apierr"
	"github.com/igrejaviva/media-backend/internal/services"
)

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func requestDBC(c *gin.Context) dbctx.Context {
	return dbctx.Context{Ctx: c.Request.Context()}
}

// parseID rejects malformed ids before any lookup happens. A bad id is a
// 400, never a 404.
func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil || id == uuid.Nil {
		response.Error(c, apierr.Validation("invalid id %q", c.Param(param)))
		return uuid.Nil, false
	}
	return id, true
}

// readFormFile pulls one multipart file into memory, bounded by the upload
// cap so an oversized body is refused before it is read in full.
func readFormFile(c *gin.Context, field string) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, apierr.Validation("file field %q is required", field)
	}
	if fh.Size > services.MaxUploadBytes {
		return nil, apierr.Validation("file exceeds the 5MB limit")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, apierr.Internal(err)
	}
	defer func(f multipart.File) { _ = f.Close() }(f)

	raw, err := io.ReadAll(io.LimitReader(f, services.MaxUploadBytes+1))
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if len(raw) > services.MaxUploadBytes {
		return nil, apierr.Validation("file exceeds the 5MB limit")
	}
	return raw, nil
}
