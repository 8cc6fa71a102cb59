package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/warehouse-feeds/internal/domain"
)

// batchSize filas por pgx.Batch; cada lote viaja en una sola ida y vuelta y
// termina en un único Sync (transacción implícita).
const batchSize = 500

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// wrapErr clasifica errores de pgx en los sentinels del dominio.
func wrapErr(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrDuplicate, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}

// execBatch encola stmt una vez por fila y devuelve las filas realmente insertadas.
// Con más de un lote, todos van en la misma transacción.
func execBatch(ctx context.Context, q Querier, stmt string, rows [][]any) (int, error) {
	if len(rows) <= batchSize {
		return sendChunks(ctx, q, stmt, rows)
	}
	total := 0
	err := inTx(ctx, q, func(tx Querier) error {
		var err error
		total, err = sendChunks(ctx, tx, stmt, rows)
		return err
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func sendChunks(ctx context.Context, q Querier, stmt string, rows [][]any) (int, error) {
	total := 0
	for i := 0; i < len(rows); i += batchSize {
		j := min(i+batchSize, len(rows))

		b := &pgx.Batch{}
		for _, args := range rows[i:j] {
			b.Queue(stmt, args...)
		}
		br := q.SendBatch(ctx, b)
		for k := i; k < j; k++ {
			tag, err := br.Exec()
			if err != nil {
				_ = br.Close()
				return total, err
			}
			total += int(tag.RowsAffected())
		}
		if err := br.Close(); err != nil {
			return total, err
		}
	}
	return total, nil
}
