package postgres

import (
	"context"

	"github.com/jhoicas/warehouse-feeds/internal/domain/entity"
	"github.com/jhoicas/warehouse-feeds/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo inventario sobre PostgreSQL.
type InventoryRepo struct {
	q Querier
}

func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const insertInventory = `
	INSERT INTO inventory (sku, unit, quantity, shipping_time, shipping_cost)
	VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), $5)
	ON CONFLICT (sku) DO NOTHING`

// AddMany deduplica por SKU (gana la primera fila) antes de escribir.
func (r *InventoryRepo) AddMany(ctx context.Context, items []*entity.Inventory) (int, error) {
	items = entity.DedupBySKU(items)
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		rows = append(rows, []any{it.SKU, it.Unit, it.Quantity, it.ShippingTime, it.ShippingCost})
	}
	n, err := execBatch(ctx, r.q, insertInventory, rows)
	if err != nil {
		return n, wrapErr("insert inventory", err)
	}
	return n, nil
}
