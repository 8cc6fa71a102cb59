package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/warehouse-feeds/internal/application/dto"
	"github.com/jhoicas/warehouse-feeds/internal/domain"
	"github.com/jhoicas/warehouse-feeds/internal/domain/repository"
)

// ProductDetailsUseCase consulta de un producto con su inventario y precio.
type ProductDetailsUseCase struct {
	repo repository.ProductRepository
}

// NewProductDetailsUseCase construye el caso de uso.
func NewProductDetailsUseCase(repo repository.ProductRepository) *ProductDetailsUseCase {
	return &ProductDetailsUseCase{repo: repo}
}

// GetBySKU devuelve domain.ErrNotFound si el SKU no existe.
func (uc *ProductDetailsUseCase) GetBySKU(ctx context.Context, sku string) (*dto.ProductDetailsResponse, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, fmt.Errorf("%w: SKU vacío", domain.ErrInvalidInput)
	}
	details, err := uc.repo.GetDetailsBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToProductDetailsResponse(details), nil
}
