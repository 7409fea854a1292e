package handler

import (
	"log/slog"
	"net/http"

	"taskdeck/internal/delivery/http/response"
	"taskdeck/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// allowedPictureTypes lists the content types accepted for profile pictures.
var allowedPictureTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadHandler handles profile-picture uploads into the object store.
type UploadHandler struct {
	store  service.ProfilePictureStore
	logger *slog.Logger
}

// NewUploadHandler is the constructor for UploadHandler, injected by Fx.
func NewUploadHandler(store service.ProfilePictureStore, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		store:  store,
		logger: logger,
	}
}

// Upload accepts a multipart file under the "file" field and stores it,
// returning the public URL the client writes onto its profile.
func (h *UploadHandler) Upload(c echo.Context) error {
	if h.store == nil {
		return response.BadGateway(c, "STORAGE_FAILED", "Picture storage is not configured")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Multipart field 'file' is required")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedPictureTypes[contentType] {
		return response.BadRequest(c, "INVALID_INPUT", "Unsupported picture type: "+contentType)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Cannot read uploaded file")
	}
	defer src.Close()

	stored, err := h.store.Upload(c.Request().Context(), fileHeader.Filename, contentType, src)
	if err != nil {
		h.logger.Error("Picture upload failed", slog.Any("error", err))

		return response.BadGateway(c, "STORAGE_FAILED", "Failed to store picture")
	}

	return response.Success(c, http.StatusOK, stored, "Picture uploaded successfully")
}

// Delete removes a previously uploaded picture by its storage key.
func (h *UploadHandler) Delete(c echo.Context) error {
	if h.store == nil {
		return response.BadGateway(c, "STORAGE_FAILED", "Picture storage is not configured")
	}

	// Wildcard param: storage keys contain slashes ("pictures/<id>.png").
	key := c.Param("*")
	if key == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Storage key is required")
	}

	if err := h.store.Delete(c.Request().Context(), key); err != nil {
		h.logger.Error("Picture deletion failed", slog.String("key", key), slog.Any("error", err))

		return response.BadGateway(c, "STORAGE_FAILED", "Failed to delete picture")
	}

	return response.Success(c, http.StatusOK, map[string]string{"key": key}, "Picture deleted successfully")
}
