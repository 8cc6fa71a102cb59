package repository

import (
	"context"

	"github.com/jhoicas/warehouse-feeds/internal/domain/entity"
)

// InventoryRepository puerto de persistencia para Inventory.
// AddMany deduplica por SKU (gana la primera aparición) antes de escribir.
type InventoryRepository interface {
	AddMany(ctx context.Context, items []*entity.Inventory) (int, error)
}
