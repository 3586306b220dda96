package handler

import (
	"io"
	"path/filepath"
	"strings"

	"logistics-insight/internal/features/ingest/domain"
	"logistics-insight/internal/features/ingest/service"

	"github.com/gofiber/fiber/v2"
)

// UploadHandler handles HTTP requests for dataset uploads.
type UploadHandler struct {
	importService *service.ImportService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(importService *service.ImportService) *UploadHandler {
	return &UploadHandler{
		importService: importService,
	}
}

// Upload accepts a multipart CSV file under the "file" form field and
// replaces the current dataset with its contents. The import outcome is
// returned as a structured result either way.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(domain.ImportResult{
			Success: false,
			Message: "no file selected",
		})
	}

	if strings.ToLower(filepath.Ext(fileHeader.Filename)) != ".csv" {
		return c.Status(fiber.StatusBadRequest).JSON(domain.ImportResult{
			Success: false,
			Message: "only CSV files are supported",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(domain.ImportResult{
			Success: false,
			Message: "failed to open uploaded file",
		})
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(domain.ImportResult{
			Success: false,
			Message: "failed to read uploaded file",
		})
	}

	result := h.importService.Import(c.Context(), raw)
	if !result.Success {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(result)
	}

	return c.JSON(result)
}
