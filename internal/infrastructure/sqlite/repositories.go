package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-feeds/internal/domain/entity"
	"github.com/jhoicas/warehouse-feeds/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.InventoryRepository = (*InventoryRepo)(nil)
	_ repository.PriceRepository     = (*PriceRepo)(nil)
)

type ProductRepo struct{ db *sql.DB }

func NewProductRepository(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) AddMany(ctx context.Context, products []*entity.Product) (int, error) {
	rows := make([][]any, 0, len(products))
	for _, p := range products {
		rows = append(rows, []any{
			p.SKU, p.Name, nullString(p.EAN), nullString(p.ProducerName),
			nullString(p.Category), p.IsWire, nullString(p.DefaultImage),
		})
	}
	n, err := insertAll(ctx, r.db, `
		INSERT OR IGNORE INTO products (sku, name, ean, producer_name, category, is_wire, default_image)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, rows)
	if err != nil {
		return 0, wrapErr("insert products", err)
	}
	return n, nil
}

func (r *ProductRepo) ExistingSKUs(ctx context.Context) (entity.SKUSet, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT sku FROM products`)
	if err != nil {
		return nil, wrapErr("list skus", err)
	}
	defer rows.Close()

	out := entity.NewSKUSet()
	for rows.Next() {
		var sku string
		if err := rows.Scan(&sku); err != nil {
			return nil, wrapErr("list skus", err)
		}
		out.Add(sku)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list skus", err)
	}
	return out, nil
}

// GetDetailsBySKU devuelve nil, nil si el SKU no existe.
func (r *ProductRepo) GetDetailsBySKU(ctx context.Context, sku string) (*entity.ProductDetails, error) {
	var (
		d              entity.ProductDetails
		qty, cost, net decimal.NullDecimal
		unit           sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT p.sku, p.name, COALESCE(p.ean, ''), COALESCE(p.producer_name, ''),
		       COALESCE(p.category, ''), COALESCE(p.default_image, ''),
		       i.quantity, i.unit, i.shipping_cost, pr.net_price
		FROM products p
		LEFT JOIN inventory i ON i.sku = p.sku
		LEFT JOIN prices pr ON pr.sku = p.sku
		WHERE p.sku = ?`, sku).Scan(
		&d.SKU, &d.Name, &d.EAN, &d.ProducerName, &d.Category, &d.DefaultImage,
		&qty, &unit, &cost, &net,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get product details", err)
	}
	d.StockQuantity = decimalPtr(qty)
	d.ShippingCost = decimalPtr(cost)
	d.NetPrice = decimalPtr(net)
	if unit.Valid {
		d.LogisticUnit = &unit.String
	}
	return &d, nil
}

type InventoryRepo struct{ db *sql.DB }

func NewInventoryRepository(db *sql.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// AddMany deduplica por SKU (gana la primera fila) antes de escribir.
func (r *InventoryRepo) AddMany(ctx context.Context, items []*entity.Inventory) (int, error) {
	items = entity.DedupBySKU(items)
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		rows = append(rows, []any{
			it.SKU, nullString(it.Unit), nullDecimal(it.Quantity),
			nullString(it.ShippingTime), nullDecimal(it.ShippingCost),
		})
	}
	n, err := insertAll(ctx, r.db, `
		INSERT OR IGNORE INTO inventory (sku, unit, quantity, shipping_time, shipping_cost)
		VALUES (?, ?, ?, ?, ?)`, rows)
	if err != nil {
		return 0, wrapErr("insert inventory", err)
	}
	return n, nil
}

type PriceRepo struct{ db *sql.DB }

func NewPriceRepository(db *sql.DB) *PriceRepo { return &PriceRepo{db: db} }

func (r *PriceRepo) AddMany(ctx context.Context, prices []*entity.Price) (int, error) {
	rows := make([][]any, 0, len(prices))
	for _, p := range prices {
		rows = append(rows, []any{p.SKU, nullDecimal(p.NetPrice), nullDecimal(p.LogisticUnitNetPrice)})
	}
	n, err := insertAll(ctx, r.db, `
		INSERT OR IGNORE INTO prices (sku, net_price, logistic_unit_net_price)
		VALUES (?, ?, ?)`, rows)
	if err != nil {
		return 0, wrapErr("insert prices", err)
	}
	return n, nil
}
