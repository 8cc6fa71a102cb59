package postgres

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-feeds/internal/domain"
)

// skuRows filas de una sola columna de texto.
type skuRows struct {
	skus []string
	i    int
	err  error
}

func (r *skuRows) Close()                                       {}
func (r *skuRows) Err() error                                   { return r.err }
func (r *skuRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *skuRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *skuRows) RawValues() [][]byte                          { return nil }
func (r *skuRows) Conn() *pgx.Conn                              { return nil }

func (r *skuRows) Next() bool {
	r.i++
	return r.i < len(r.skus)
}

func (r *skuRows) Scan(dest ...any) error {
	p, ok := dest[0].(*string)
	if !ok {
		return fmt.Errorf("destino inesperado %T", dest[0])
	}
	*p = r.skus[r.i]
	return nil
}

func (r *skuRows) Values() ([]any, error) { return []any{r.skus[r.i]}, nil }

// fakeRow copia values en los destinos de Scan por reflexión.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("se esperaban %d destinos, hay %d", len(r.values), len(dest))
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

func TestProductRepo_ExistingSKUs(t *testing.T) {
	q := newBatchQuerier()
	q.skus = []string{"A", "B", "C"}

	set, err := NewProductRepository(q).ExistingSKUs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())
	assert.True(t, set.Has("B"))
	assert.False(t, set.Has("Z"))
}

func TestProductRepo_ExistingSKUs_Vacio(t *testing.T) {
	set, err := NewProductRepository(newBatchQuerier()).ExistingSKUs(context.Background())
	require.NoError(t, err)
	assert.Zero(t, set.Len())
}

func TestProductRepo_ExistingSKUs_Error(t *testing.T) {
	q := newBatchQuerier()
	q.queryErr = errors.New("conn refused")

	set, err := NewProductRepository(q).ExistingSKUs(context.Background())
	assert.Nil(t, set)
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestProductRepo_GetDetailsBySKU(t *testing.T) {
	qty := decimal.RequireFromString("5")
	cost := decimal.RequireFromString("12.5")
	unit := "szt"
	q := newBatchQuerier()
	q.row = fakeRow{values: []any{
		"A", "Ładowarka", "590001", "Acme", "Zasilacze", "",
		&qty, &unit, &cost, (*decimal.Decimal)(nil),
	}}

	d, err := NewProductRepository(q).GetDetailsBySKU(context.Background(), "A")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, []any{"A"}, q.rowArgs)
	assert.Equal(t, "Ładowarka", d.Name)
	assert.True(t, d.StockQuantity.Equal(qty))
	assert.Equal(t, "szt", *d.LogisticUnit)
	assert.True(t, d.ShippingCost.Equal(cost))
	assert.Nil(t, d.NetPrice, "sin fila de precio")
}

func TestProductRepo_GetDetailsBySKU_NoExiste(t *testing.T) {
	q := newBatchQuerier()
	q.row = fakeRow{err: pgx.ErrNoRows}

	d, err := NewProductRepository(q).GetDetailsBySKU(context.Background(), "Z")
	assert.NoError(t, err)
	assert.Nil(t, d)
}

func TestProductRepo_GetDetailsBySKU_Error(t *testing.T) {
	q := newBatchQuerier()
	q.row = fakeRow{err: errors.New("timeout")}

	d, err := NewProductRepository(q).GetDetailsBySKU(context.Background(), "A")
	assert.Nil(t, d)
	assert.ErrorIs(t, err, domain.ErrPersistence)
}
