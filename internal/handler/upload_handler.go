package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"showcase/internal/asset"
	apperrors "showcase/internal/errors"
)

// AssetReader opens stored uploads by file name.
type AssetReader interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// UploadHandler serves stored project images.
type UploadHandler struct {
	assets AssetReader
}

// NewUploadHandler creates an upload handler.
func NewUploadHandler(assets AssetReader) *UploadHandler {
	return &UploadHandler{assets: assets}
}

// Serve streams /uploads/:filename from the active storage backend.
func (h *UploadHandler) Serve(c echo.Context) error {
	name := c.Param("filename")
	if !asset.ValidName(name) {
		return apperrors.ErrNotFound
	}

	rc, err := h.assets.Open(c.Request().Context(), name)
	if err != nil {
		return err
	}
	defer rc.Close()

	contentType := asset.ContentType(name)
	c.Response().Header().Set("X-Content-Type-Options", "nosniff")
	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Stream(http.StatusOK, contentType, rc)
}
