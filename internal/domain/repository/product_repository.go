package repository

import (
	"context"

	"github.com/jhoicas/warehouse-feeds/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Es la autoridad sobre qué SKUs existen: el pipeline la consulta antes de escribir
// inventario y precios.
type ProductRepository interface {
	// ExistingSKUs devuelve todos los SKUs presentes en el almacén.
	ExistingSKUs(ctx context.Context) (entity.SKUSet, error)
	// AddMany inserta en bloque; devuelve cuántas filas se insertaron (los SKUs ya existentes se ignoran).
	AddMany(ctx context.Context, products []*entity.Product) (int, error)
	// GetDetailsBySKU une producto, inventario y precio. Devuelve nil, nil si el SKU no existe.
	GetDetailsBySKU(ctx context.Context, sku string) (*entity.ProductDetails, error)
}
