// internal/storage/postgres/authorized_user.go
package postgres

import (
	"card-rewards/internal/domain"
	"card-rewards/internal/storage"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ storage.AuthorizedUserStorage = (*AuthorizedUserRepository)(nil)

const authorizedUserColumns = `id, user_id, bank_id, add_after_age_eighteen, created_at`

type AuthorizedUserRepository struct {
	db *pgxpool.Pool
}

func NewAuthorizedUserRepository(db *pgxpool.Pool) *AuthorizedUserRepository {
	return &AuthorizedUserRepository{db: db}
}

func scanAuthorizedUser(row pgx.Row) (domain.AuthorizedUserInfo, error) {
	var a domain.AuthorizedUserInfo
	err := row.Scan(&a.ID, &a.UserID, &a.BankID, &a.AddAfterAgeEighteen, &a.CreatedAt)
	return a, err
}

// insertAuthorizedUser is the single insert path for authorized-user rows, so
// every caller gets id and created_at back.
func insertAuthorizedUser(ctx context.Context, q querier, info domain.AuthorizedUserInfo) (domain.AuthorizedUserInfo, error) {
	err := q.QueryRow(ctx, `
		INSERT INTO authorized_user_info (user_id, bank_id, add_after_age_eighteen)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, info.UserID, info.BankID, info.AddAfterAgeEighteen).Scan(&info.ID, &info.CreatedAt)
	if err != nil {
		return domain.AuthorizedUserInfo{}, fmt.Errorf("add authorized user info: %w", err)
	}
	return info, nil
}

func (r *AuthorizedUserRepository) Add(ctx context.Context, info domain.AuthorizedUserInfo) (domain.AuthorizedUserInfo, error) {
	if err := info.Validate(); err != nil {
		return domain.AuthorizedUserInfo{}, err
	}
	return insertAuthorizedUser(ctx, r.db, info)
}

func (r *AuthorizedUserRepository) GetByID(ctx context.Context, id int64) (*domain.AuthorizedUserInfo, error) {
	return queryOne(ctx, r.db, "find authorized user info", scanAuthorizedUser,
		`SELECT `+authorizedUserColumns+` FROM authorized_user_info WHERE id = $1`, id)
}

func (r *AuthorizedUserRepository) Update(ctx context.Context, info domain.AuthorizedUserInfo) (*domain.AuthorizedUserInfo, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	return queryOne(ctx, r.db, "update authorized user info", func(row pgx.Row) (domain.AuthorizedUserInfo, error) {
		a := info
		err := row.Scan(&a.CreatedAt)
		return a, err
	}, `
		UPDATE authorized_user_info
		SET user_id = $1, bank_id = $2, add_after_age_eighteen = $3
		WHERE id = $4
		RETURNING created_at
	`, info.UserID, info.BankID, info.AddAfterAgeEighteen, info.ID)
}

func (r *AuthorizedUserRepository) Remove(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, r.db, "remove authorized user info", `DELETE FROM authorized_user_info WHERE id = $1`, id)
}

// RemoveAllByUser returns the number of rows deleted.
func (r *AuthorizedUserRepository) RemoveAllByUser(ctx context.Context, userID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM authorized_user_info WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("remove authorized user info by user: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *AuthorizedUserRepository) AllByUser(ctx context.Context, userID int64) ([]domain.AuthorizedUserInfo, error) {
	return authorizedUsersByUser(ctx, r.db, userID)
}

func authorizedUsersByUser(ctx context.Context, q querier, userID int64) ([]domain.AuthorizedUserInfo, error) {
	return queryList(ctx, q, "authorized user info by user", scanAuthorizedUser, `
		SELECT `+authorizedUserColumns+` FROM authorized_user_info
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
}

func (r *AuthorizedUserRepository) AllByBank(ctx context.Context, bankID int64) ([]domain.AuthorizedUserInfo, error) {
	return queryList(ctx, r.db, "authorized user info by bank", scanAuthorizedUser, `
		SELECT `+authorizedUserColumns+` FROM authorized_user_info
		WHERE bank_id = $1
		ORDER BY created_at DESC, id DESC
	`, bankID)
}

// ByUserAndBank returns the most recent record for the pair.
func (r *AuthorizedUserRepository) ByUserAndBank(ctx context.Context, userID, bankID int64) (*domain.AuthorizedUserInfo, error) {
	return queryOne(ctx, r.db, "authorized user info by user and bank", scanAuthorizedUser, `
		SELECT `+authorizedUserColumns+` FROM authorized_user_info
		WHERE user_id = $1 AND bank_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, userID, bankID)
}

func (r *AuthorizedUserRepository) List(ctx context.Context, page storage.Page) ([]domain.AuthorizedUserInfo, error) {
	return queryPage(ctx, r.db, "list authorized user info", scanAuthorizedUser,
		`SELECT `+authorizedUserColumns+` FROM authorized_user_info ORDER BY created_at DESC, id DESC`, page)
}

func (r *AuthorizedUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, "authorized user info exists",
		`SELECT EXISTS (SELECT 1 FROM authorized_user_info WHERE id = $1)`, id)
}

func (r *AuthorizedUserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM authorized_user_info`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count authorized user info: %w", err)
	}
	return n, nil
}
