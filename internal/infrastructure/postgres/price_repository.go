package postgres

import (
	"context"

	"github.com/jhoicas/warehouse-feeds/internal/domain/entity"
	"github.com/jhoicas/warehouse-feeds/internal/domain/repository"
)

var _ repository.PriceRepository = (*PriceRepo)(nil)

// PriceRepo precios sobre PostgreSQL.
type PriceRepo struct {
	q Querier
}

func NewPriceRepository(q Querier) *PriceRepo {
	return &PriceRepo{q: q}
}

const insertPrice = `
	INSERT INTO prices (sku, net_price, logistic_unit_net_price)
	VALUES ($1, $2, $3)
	ON CONFLICT (sku) DO NOTHING`

func (r *PriceRepo) AddMany(ctx context.Context, prices []*entity.Price) (int, error) {
	rows := make([][]any, 0, len(prices))
	for _, p := range prices {
		rows = append(rows, []any{p.SKU, p.NetPrice, p.LogisticUnitNetPrice})
	}
	n, err := execBatch(ctx, r.q, insertPrice, rows)
	if err != nil {
		return n, wrapErr("insert prices", err)
	}
	return n, nil
}
