// internal/storage/postgres/postgres.go
package postgres

import (
	"card-rewards/internal/storage"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/multierr"
)

// Storage bundles one repository per aggregate root over a shared pool.
type Storage struct {
	db *pgxpool.Pool

	Banks           *BankRepository
	Cards           *CardRepository
	Users           *UserRepository
	AuthorizedUsers *AuthorizedUserRepository
}

func NewStorage(db *pgxpool.Pool) *Storage {
	return &Storage{
		db:              db,
		Banks:           NewBankRepository(db),
		Cards:           NewCardRepository(db),
		Users:           NewUserRepository(db),
		AuthorizedUsers: NewAuthorizedUserRepository(db),
	}
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so row helpers run
// either standalone or inside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// withTx runs fn in a transaction. fn's error, or a failed commit, rolls the
// whole unit back.
func withTx(ctx context.Context, db *pgxpool.Pool, opts pgx.TxOptions, fn func(tx pgx.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = multierr.Append(err, fmt.Errorf("rollback tx: %w", rbErr))
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

var errInvalidPage = errors.New("limit and offset must not be negative")

// pageClause renders LIMIT/OFFSET for p, numbering placeholders after the
// argc arguments the query already uses.
func pageClause(p storage.Page, argc int) (string, []any, error) {
	if p.Limit < 0 || p.Offset < 0 {
		return "", nil, errInvalidPage
	}
	switch {
	case p.Limit > 0:
		return " LIMIT $" + strconv.Itoa(argc+1) + " OFFSET $" + strconv.Itoa(argc+2), []any{p.Limit, p.Offset}, nil
	case p.Offset > 0:
		return " OFFSET $" + strconv.Itoa(argc+1), []any{p.Offset}, nil
	default:
		return "", nil, nil
	}
}

func collect[T any](rows pgx.Rows, scan func(pgx.Row) (T, error)) ([]T, error) {
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) {
		return scan(row)
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func queryList[T any](ctx context.Context, q querier, op string, scan func(pgx.Row) (T, error), sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	items, err := collect(rows, scan)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

func queryPage[T any](ctx context.Context, q querier, op string, scan func(pgx.Row) (T, error), sql string, page storage.Page) ([]T, error) {
	clause, args, err := pageClause(page, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return queryList(ctx, q, op, scan, sql+clause, args...)
}

// queryOne returns nil when the query yields no row.
func queryOne[T any](ctx context.Context, q querier, op string, scan func(pgx.Row) (T, error), sql string, args ...any) (*T, error) {
	v, err := scan(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &v, nil
}

func deleteByID(ctx context.Context, q querier, op, sql string, id int64) (bool, error) {
	tag, err := q.Exec(ctx, sql, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return tag.RowsAffected() > 0, nil
}

func exists(ctx context.Context, q querier, op, sql string, args ...any) (bool, error) {
	var ok bool
	if err := q.QueryRow(ctx, sql, args...).Scan(&ok); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return ok, nil
}
