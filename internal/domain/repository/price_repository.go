package repository

import (
	"context"

	"github.com/jhoicas/warehouse-feeds/internal/domain/entity"
)

// PriceRepository puerto de persistencia para Price.
type PriceRepository interface {
	AddMany(ctx context.Context, prices []*entity.Price) (int, error)
}
