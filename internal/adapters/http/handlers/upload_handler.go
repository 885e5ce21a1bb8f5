package handlers

import (
	"loye-backend/internal/core/services"
	"loye-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// maxUploadSize caps document uploads at 10MB
const maxUploadSize = 10 << 20

// UploadHandler handles document upload endpoints
type UploadHandler struct {
	uploadService *services.UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload stores a document and returns its URL
// @Summary Upload file
// @Description Upload a document (ID card, ownership proof, profile picture)
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Param folder query string false "Target folder (default loye)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /upload [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	if h.uploadService == nil {
		return response.InternalServerError(c, "Upload service not configured")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "No file provided")
	}
	if fileHeader.Size > maxUploadSize {
		return response.BadRequest(c, "File exceeds 10MB limit")
	}

	url, err := h.uploadService.Upload(c.Context(), fileHeader, c.Query("folder"))
	if err != nil {
		return response.InternalServerError(c, "Failed to upload file")
	}

	return response.Success(c, "File uploaded successfully", fiber.Map{
		"url": url,
	})
}
