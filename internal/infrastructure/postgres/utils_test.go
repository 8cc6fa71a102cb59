package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-feeds/internal/domain"
	"github.com/jhoicas/warehouse-feeds/internal/domain/entity"
)

// batchQuerier registra los lotes enviados; cada Exec devuelve "INSERT 0 1"
// salvo que el SKU ya se haya visto (emula ON CONFLICT DO NOTHING).
type batchQuerier struct {
	batches [][]*pgx.QueuedQuery
	seen    map[any]bool
	failAt  int
	execs   []string

	// lecturas
	skus     []string
	queryErr error
	row      pgx.Row
	rowArgs  []any
}

func (q *batchQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.execs = append(q.execs, sql)
	return pgconn.CommandTag{}, nil
}

func (q *batchQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	if q.queryErr != nil {
		return nil, q.queryErr
	}
	return &skuRows{skus: q.skus, i: -1}, nil
}

func (q *batchQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	q.rowArgs = args
	return q.row
}

func (q *batchQuerier) SendBatch(_ context.Context, b *pgx.Batch) pgx.BatchResults {
	q.batches = append(q.batches, b.QueuedQueries)
	return &fakeResults{q: q, queued: b.QueuedQueries}
}

type fakeResults struct {
	q      *batchQuerier
	queued []*pgx.QueuedQuery
	i      int
}

func (r *fakeResults) Exec() (pgconn.CommandTag, error) {
	qq := r.queued[r.i]
	r.i++
	if r.q.failAt > 0 && r.i == r.q.failAt {
		return pgconn.CommandTag{}, &pgconn.PgError{Code: "23514", Message: "check violation"}
	}
	sku := qq.Arguments[0]
	if r.q.seen[sku] {
		return pgconn.NewCommandTag("INSERT 0 0"), nil
	}
	r.q.seen[sku] = true
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}
func (r *fakeResults) Query() (pgx.Rows, error) { return nil, errors.New("no usado") }
func (r *fakeResults) QueryRow() pgx.Row        { return nil }
func (r *fakeResults) Close() error             { return nil }

func newBatchQuerier() *batchQuerier {
	return &batchQuerier{seen: map[any]bool{}}
}

func TestExecBatch_DivideEnLotes(t *testing.T) {
	q := newBatchQuerier()
	rows := make([][]any, 0, batchSize+10)
	for i := 0; i < batchSize+10; i++ {
		rows = append(rows, []any{i})
	}
	n, err := execBatch(context.Background(), q, insertPrice, rows)
	require.NoError(t, err)
	assert.Equal(t, batchSize+10, n)
	require.Len(t, q.batches, 2)
	assert.Len(t, q.batches[0], batchSize)
	assert.Len(t, q.batches[1], 10)
}

func TestInventoryRepo_AddManyDeduplica(t *testing.T) {
	q := newBatchQuerier()
	one := decimal.NewFromInt(1)
	nine := decimal.NewFromInt(9)
	items := []*entity.Inventory{
		{SKU: "A", Unit: "szt", Quantity: &one, ShippingTime: "24h"},
		{SKU: "B", Unit: "szt", Quantity: &one, ShippingTime: "24h"},
		{SKU: "A", Unit: "szt", Quantity: &nine, ShippingTime: "24h"},
	}

	n, err := NewInventoryRepository(q).AddMany(context.Background(), items)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Len(t, q.batches, 1)
	require.Len(t, q.batches[0], 2, "un solo registro por SKU")
	assert.Equal(t, &one, q.batches[0][0].Arguments[2], "gana la primera fila")
}

func TestProductRepo_AddManyIgnoraExistentes(t *testing.T) {
	q := newBatchQuerier()
	q.seen["A"] = true
	repo := NewProductRepository(q)

	n, err := repo.AddMany(context.Background(), []*entity.Product{
		{SKU: "A", Name: "Uno"},
		{SKU: "B", Name: "Dos", IsWire: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, true, q.batches[0][1].Arguments[5])
}

func TestPriceRepo_ErrorDePersistencia(t *testing.T) {
	q := newBatchQuerier()
	q.failAt = 2
	net := decimal.NewFromInt(10)

	n, err := NewPriceRepository(q).AddMany(context.Background(), []*entity.Price{
		{SKU: "A", NetPrice: &net},
		{SKU: "B", NetPrice: &net},
	})
	assert.Equal(t, 1, n)
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestWrapErr(t *testing.T) {
	dup := wrapErr("insert", &pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, dup, domain.ErrDuplicate)

	other := wrapErr("insert", errors.New("conn refused"))
	assert.ErrorIs(t, other, domain.ErrPersistence)
	assert.Contains(t, other.Error(), "conn refused")
}

// fakeTx solo implementa lo que usa execBatch; el resto de pgx.Tx queda nil.
type fakeTx struct {
	pgx.Tx
	q          *batchQuerier
	committed  bool
	rolledBack bool
}

func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	return t.q.SendBatch(ctx, b)
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

type txQuerier struct {
	*batchQuerier
	tx *fakeTx
}

func (q *txQuerier) Begin(context.Context) (pgx.Tx, error) { return q.tx, nil }

func newTxQuerier() *txQuerier {
	bq := newBatchQuerier()
	return &txQuerier{batchQuerier: bq, tx: &fakeTx{q: bq}}
}

func rowsOf(n int) [][]any {
	rows := make([][]any, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, []any{i})
	}
	return rows
}

func TestExecBatch_VariosLotesEnUnaTransaccion(t *testing.T) {
	q := newTxQuerier()

	n, err := execBatch(context.Background(), q, insertPrice, rowsOf(batchSize*2+1))
	require.NoError(t, err)
	assert.Equal(t, batchSize*2+1, n)
	assert.Len(t, q.batches, 3)
	assert.True(t, q.tx.committed)
	assert.False(t, q.tx.rolledBack)
}

func TestExecBatch_FalloEnUnLoteDeshaceTodo(t *testing.T) {
	q := newTxQuerier()
	q.failAt = 3

	n, err := execBatch(context.Background(), q, insertPrice, rowsOf(batchSize+5))
	require.Error(t, err)
	assert.Equal(t, 0, n)
	assert.False(t, q.tx.committed)
	assert.True(t, q.tx.rolledBack)
}

func TestExecBatch_UnSoloLoteSinTransaccion(t *testing.T) {
	q := newTxQuerier()

	_, err := execBatch(context.Background(), q, insertPrice, rowsOf(3))
	require.NoError(t, err)
	assert.False(t, q.tx.committed, "un lote ya es atómico por sí mismo")
}
