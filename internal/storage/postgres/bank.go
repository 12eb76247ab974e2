// internal/storage/postgres/bank.go
package postgres

import (
	"card-rewards/internal/domain"
	"card-rewards/internal/storage"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ storage.BankStorage = (*BankRepository)(nil)

const bankColumns = `id, name, relationship_bank, transfer_points_value_cents, reports_under_eighteen, created_at`

type BankRepository struct {
	db *pgxpool.Pool
}

func NewBankRepository(db *pgxpool.Pool) *BankRepository {
	return &BankRepository{db: db}
}

func scanBank(row pgx.Row) (domain.Bank, error) {
	var b domain.Bank
	err := row.Scan(&b.ID, &b.Name, &b.RelationshipBank, &b.TransferPointsValueCents, &b.ReportsUnderEighteen, &b.CreatedAt)
	return b, err
}

func (r *BankRepository) Create(ctx context.Context, bank domain.Bank) (domain.Bank, error) {
	if err := bank.Validate(); err != nil {
		return domain.Bank{}, err
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO banks (name, relationship_bank, transfer_points_value_cents, reports_under_eighteen)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, bank.Name, bank.RelationshipBank, bank.TransferPointsValueCents, bank.ReportsUnderEighteen).
		Scan(&bank.ID, &bank.CreatedAt)
	if err != nil {
		return domain.Bank{}, fmt.Errorf("create bank: %w", err)
	}
	return bank, nil
}

func (r *BankRepository) GetByID(ctx context.Context, id int64) (*domain.Bank, error) {
	return queryOne(ctx, r.db, "find bank", scanBank,
		`SELECT `+bankColumns+` FROM banks WHERE id = $1`, id)
}

// GetByName matches name exactly, case included.
func (r *BankRepository) GetByName(ctx context.Context, name string) (*domain.Bank, error) {
	return queryOne(ctx, r.db, "find bank by name", scanBank,
		`SELECT `+bankColumns+` FROM banks WHERE name = $1`, name)
}

// Update replaces every mutable column. created_at is left as stored and
// copied back onto the result.
func (r *BankRepository) Update(ctx context.Context, bank domain.Bank) (*domain.Bank, error) {
	if err := bank.Validate(); err != nil {
		return nil, err
	}
	return queryOne(ctx, r.db, "update bank", func(row pgx.Row) (domain.Bank, error) {
		b := bank
		err := row.Scan(&b.CreatedAt)
		return b, err
	}, `
		UPDATE banks
		SET name = $1, relationship_bank = $2, transfer_points_value_cents = $3, reports_under_eighteen = $4
		WHERE id = $5
		RETURNING created_at
	`, bank.Name, bank.RelationshipBank, bank.TransferPointsValueCents, bank.ReportsUnderEighteen, bank.ID)
}

func (r *BankRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, r.db, "delete bank", `DELETE FROM banks WHERE id = $1`, id)
}

func (r *BankRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, "bank exists", `SELECT EXISTS (SELECT 1 FROM banks WHERE id = $1)`, id)
}

func (r *BankRepository) List(ctx context.Context, page storage.Page) ([]domain.Bank, error) {
	return queryPage(ctx, r.db, "list banks", scanBank,
		`SELECT `+bankColumns+` FROM banks ORDER BY name`, page)
}

func (r *BankRepository) ListRelationshipBanks(ctx context.Context) ([]domain.Bank, error) {
	return queryList(ctx, r.db, "list relationship banks", scanBank,
		`SELECT `+bankColumns+` FROM banks WHERE relationship_bank ORDER BY name`)
}

func (r *BankRepository) ListReportingUnderEighteen(ctx context.Context) ([]domain.Bank, error) {
	return queryList(ctx, r.db, "list banks reporting under eighteen", scanBank,
		`SELECT `+bankColumns+` FROM banks WHERE reports_under_eighteen ORDER BY name`)
}

// ListWithTransferPoints skips banks without a points program, most valuable first.
func (r *BankRepository) ListWithTransferPoints(ctx context.Context) ([]domain.Bank, error) {
	return queryList(ctx, r.db, "list banks with transfer points", scanBank, `
		SELECT `+bankColumns+` FROM banks
		WHERE transfer_points_value_cents IS NOT NULL
		ORDER BY transfer_points_value_cents DESC, name
	`)
}
