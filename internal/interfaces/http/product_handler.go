package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-feeds/internal/application/dto"
	"github.com/jhoicas/warehouse-feeds/internal/domain"
)

// ProductDetailsGetter lo implementa catalog.ProductDetailsUseCase.
type ProductDetailsGetter interface {
	GetBySKU(ctx context.Context, sku string) (*dto.ProductDetailsResponse, error)
}

// ProductHandler consulta de productos importados.
type ProductHandler struct {
	uc ProductDetailsGetter
}

// NewProductHandler construye el handler.
func NewProductHandler(uc ProductDetailsGetter) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// GetBySKU godoc
// @Summary      Detalle de producto con inventario y precio
// @Tags         products
// @Produce      json
// @Param        sku  path  string  true  "SKU del producto"
// @Success      200  {object}  dto.ProductDetailsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/products/{sku} [get]
func (h *ProductHandler) GetBySKU(c *fiber.Ctx) error {
	sku := c.Params("sku")
	if sku == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SKU", Message: "sku es requerido"})
	}
	out, err := h.uc.GetBySKU(c.UserContext(), sku)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
