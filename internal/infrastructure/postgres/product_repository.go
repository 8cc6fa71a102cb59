package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/warehouse-feeds/internal/domain/entity"
	"github.com/jhoicas/warehouse-feeds/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const insertProduct = `
	INSERT INTO products (sku, name, ean, producer_name, category, is_wire, default_image)
	VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, NULLIF($7, ''))
	ON CONFLICT (sku) DO NOTHING`

// AddMany inserta por lotes; los SKUs ya existentes se ignoran. Devuelve las filas insertadas.
func (r *ProductRepo) AddMany(ctx context.Context, products []*entity.Product) (int, error) {
	rows := make([][]any, 0, len(products))
	for _, p := range products {
		rows = append(rows, []any{p.SKU, p.Name, p.EAN, p.ProducerName, p.Category, p.IsWire, p.DefaultImage})
	}
	n, err := execBatch(ctx, r.q, insertProduct, rows)
	if err != nil {
		return n, wrapErr("insert products", err)
	}
	return n, nil
}

// ExistingSKUs todos los SKUs presentes en products.
func (r *ProductRepo) ExistingSKUs(ctx context.Context) (entity.SKUSet, error) {
	rows, err := r.q.Query(ctx, `SELECT sku FROM products`)
	if err != nil {
		return nil, wrapErr("list skus", err)
	}
	skus, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, wrapErr("list skus", err)
	}
	return entity.NewSKUSet(skus...), nil
}

// GetDetailsBySKU une producto, inventario y precio. Devuelve nil, nil si el SKU no existe.
func (r *ProductRepo) GetDetailsBySKU(ctx context.Context, sku string) (*entity.ProductDetails, error) {
	query := `
		SELECT p.sku, p.name, COALESCE(p.ean, ''), COALESCE(p.producer_name, ''),
		       COALESCE(p.category, ''), COALESCE(p.default_image, ''),
		       i.quantity, i.unit, i.shipping_cost, pr.net_price
		FROM products p
		LEFT JOIN inventory i ON i.sku = p.sku
		LEFT JOIN prices pr ON pr.sku = p.sku
		WHERE p.sku = $1`
	var d entity.ProductDetails
	err := r.q.QueryRow(ctx, query, sku).Scan(
		&d.SKU, &d.Name, &d.EAN, &d.ProducerName, &d.Category, &d.DefaultImage,
		&d.StockQuantity, &d.LogisticUnit, &d.ShippingCost, &d.NetPrice,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get product details", err)
	}
	return &d, nil
}
