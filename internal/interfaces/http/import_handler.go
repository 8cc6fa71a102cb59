package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-feeds/internal/application/dto"
	"github.com/jhoicas/warehouse-feeds/internal/application/importer"
	"github.com/jhoicas/warehouse-feeds/internal/domain"
	"github.com/jhoicas/warehouse-feeds/internal/infrastructure/fetcher"
)

// Importer lo implementa importer.Service.
type Importer interface {
	Import(ctx context.Context, urls importer.FeedURLs) (*importer.Summary, error)
	Running() bool
}

// FileLister lo implementa fetcher.Fetcher.
type FileLister interface {
	ListFiles() ([]fetcher.File, error)
}

// ImportHandler maneja la importación de feeds y el listado de descargas.
type ImportHandler struct {
	svc   Importer
	files FileLister
	now   func() time.Time
}

// NewImportHandler construye el handler.
func NewImportHandler(svc Importer, files FileLister) *ImportHandler {
	return &ImportHandler{svc: svc, files: files, now: time.Now}
}

// Import godoc
// @Summary      Importar feeds de productos, inventario y precios
// @Tags         dataprocessing
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportRequest  true  "URLs de los tres feeds"
// @Success      200   {object}  dto.ImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ImportResponse
// @Router       /api/v1/dataprocessing/import [post]
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	var in dto.ImportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	summary, err := h.svc.Import(c.UserContext(), in.FeedURLs())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrImportInProgress):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IMPORT_IN_PROGRESS", Message: err.Error()})
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ImportResponse{
			Success:   false,
			Message:   err.Error(),
			Timestamp: h.now().UTC(),
		})
	}

	return c.JSON(dto.ImportResponse{
		Success:   true,
		Message:   "importación completada",
		Timestamp: h.now().UTC(),
		Summary:   summary,
	})
}

// ListFiles godoc
// @Summary      Listar ficheros descargados
// @Tags         dataprocessing
// @Produce      json
// @Success      200  {object}  dto.FileListResponse
// @Router       /api/v1/dataprocessing/files [get]
func (h *ImportHandler) ListFiles(c *fiber.Ctx) error {
	files, err := h.files.ListFiles()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := dto.FileListResponse{Items: make([]dto.FileResponse, 0, len(files))}
	for _, f := range files {
		out.Items = append(out.Items, dto.FileResponse{Name: f.Name, Size: f.Size, ModifiedAt: f.ModTime})
	}
	return c.JSON(out)
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /health [get]
func (h *ImportHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:           "ok",
		ImportInProgress: h.svc.Running(),
		Time:             h.now().UTC(),
	})
}
