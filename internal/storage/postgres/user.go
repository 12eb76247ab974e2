// internal/storage/postgres/user.go
package postgres

import (
	"card-rewards/internal/domain"
	"card-rewards/internal/storage"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var _ storage.UserStorage = (*UserRepository)(nil)

const (
	userColumns         = `id, name, email, credit_score, annual_income, created_at`
	userSpendingColumns = `id, user_id, category, user_spend, created_at`
)

// UserRepository owns users and the two collections hanging off them:
// per-category spend and authorized-user records.
type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.CreditScore, &u.AnnualIncome, &u.CreatedAt)
	return u, err
}

func scanUserSpending(row pgx.Row) (domain.SpendingCategoryUser, error) {
	var s domain.SpendingCategoryUser
	err := row.Scan(&s.ID, &s.UserID, &s.Category, &s.UserSpend, &s.CreatedAt)
	return s, err
}

func insertUser(ctx context.Context, q querier, u domain.User) (domain.User, error) {
	err := q.QueryRow(ctx, `
		INSERT INTO users (name, email, credit_score, annual_income)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, u.Name, u.Email, u.CreditScore, u.AnnualIncome).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func insertUserSpending(ctx context.Context, q querier, s domain.SpendingCategoryUser) (*domain.SpendingCategoryUser, error) {
	return queryOne(ctx, q, "add spending category", func(row pgx.Row) (domain.SpendingCategoryUser, error) {
		out := s
		err := row.Scan(&out.ID, &out.CreatedAt)
		return out, err
	}, `
		INSERT INTO user_spending_category (user_id, category, user_spend)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, s.UserID, s.Category, s.UserSpend)
}

func getUser(ctx context.Context, q querier, id int64) (*domain.User, error) {
	return queryOne(ctx, q, "find user", scanUser, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func spendingByUser(ctx context.Context, q querier, userID int64) ([]domain.SpendingCategoryUser, error) {
	return queryList(ctx, q, "spending categories by user", scanUserSpending,
		`SELECT `+userSpendingColumns+` FROM user_spending_category WHERE user_id = $1 ORDER BY id`, userID)
}

// Create inserts only the user row. Spending categories and authorized-user
// records go through their own calls once the id is known, or through
// CreateProfile.
func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if err := user.Validate(); err != nil {
		return domain.User{}, err
	}
	return insertUser(ctx, r.db, user)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return getUser(ctx, r.db, id)
}

// GetByEmail returns the oldest user registered with email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return queryOne(ctx, r.db, "find user by email", scanUser,
		`SELECT `+userColumns+` FROM users WHERE email = $1 ORDER BY id LIMIT 1`, email)
}

// Update writes the mutable columns and returns the row as stored afterwards,
// read back in the same transaction.
func (r *UserRepository) Update(ctx context.Context, user domain.User) (*domain.User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.User
	err := withTx(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE users
			SET name = $1, email = $2, credit_score = $3, annual_income = $4
			WHERE id = $5
		`, user.Name, user.Email, user.CreditScore, user.AnnualIncome, user.ID)
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		updated, err = getUser(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, r.db, "delete user", `DELETE FROM users WHERE id = $1`, id)
}

func (r *UserRepository) List(ctx context.Context, page storage.Page) ([]domain.User, error) {
	return queryPage(ctx, r.db, "list users", scanUser, `SELECT `+userColumns+` FROM users ORDER BY id`, page)
}

// AddSpendingCategory returns nil if the insert produced no row.
func (r *UserRepository) AddSpendingCategory(ctx context.Context, s domain.SpendingCategoryUser) (*domain.SpendingCategoryUser, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return insertUserSpending(ctx, r.db, s)
}

func (r *UserRepository) RemoveSpendingCategory(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, r.db, "remove spending category", `DELETE FROM user_spending_category WHERE id = $1`, id)
}

// SpendingCategoriesByUser is ordered by id and never nil.
func (r *UserRepository) SpendingCategoriesByUser(ctx context.Context, userID int64) ([]domain.SpendingCategoryUser, error) {
	return spendingByUser(ctx, r.db, userID)
}

func (r *UserRepository) AddAuthorizedUserInfo(ctx context.Context, info domain.AuthorizedUserInfo) (domain.AuthorizedUserInfo, error) {
	if err := info.Validate(); err != nil {
		return domain.AuthorizedUserInfo{}, err
	}
	return insertAuthorizedUser(ctx, r.db, info)
}

func (r *UserRepository) DeleteAuthorizedUserInfo(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, r.db, "delete authorized user info", `DELETE FROM authorized_user_info WHERE id = $1`, id)
}

// === aggregate ===

// GetProfile loads a user with both collections from one snapshot. It returns
// nil without touching the child tables when the user does not exist.
func (r *UserRepository) GetProfile(ctx context.Context, id int64) (*domain.UserProfile, error) {
	var profile *domain.UserProfile
	err := withTx(ctx, r.db, pgx.TxOptions{AccessMode: pgx.ReadOnly, IsoLevel: pgx.RepeatableRead}, func(tx pgx.Tx) error {
		user, err := getUser(ctx, tx, id)
		if err != nil || user == nil {
			return err
		}
		spending, err := spendingByUser(ctx, tx, id)
		if err != nil {
			return err
		}
		authorized, err := authorizedUsersByUser(ctx, tx, id)
		if err != nil {
			return err
		}
		profile = &domain.UserProfile{User: *user, SpendingCategories: spending, AuthorizedUsers: authorized}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get user profile: %w", err)
	}
	return profile, nil
}

// CreateProfile inserts the user and every dependent row in one transaction.
// Child UserIDs are overwritten with the new user's id. Nothing is kept if any
// insert fails.
func (r *UserRepository) CreateProfile(ctx context.Context, profile domain.UserProfile) (domain.UserProfile, error) {
	if err := profile.Validate(); err != nil {
		return domain.UserProfile{}, err
	}

	out := domain.UserProfile{
		SpendingCategories: make([]domain.SpendingCategoryUser, 0, len(profile.SpendingCategories)),
		AuthorizedUsers:    make([]domain.AuthorizedUserInfo, 0, len(profile.AuthorizedUsers)),
	}
	err := withTx(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		user, err := insertUser(ctx, tx, profile.User)
		if err != nil {
			return err
		}
		out.User = user

		for _, s := range profile.SpendingCategories {
			s.UserID = user.ID
			created, err := insertUserSpending(ctx, tx, s)
			if err != nil {
				return err
			}
			if created == nil {
				return fmt.Errorf("add spending category %s: no row inserted", s.Category)
			}
			out.SpendingCategories = append(out.SpendingCategories, *created)
		}

		for _, a := range profile.AuthorizedUsers {
			a.UserID = user.ID
			created, err := insertAuthorizedUser(ctx, tx, a)
			if err != nil {
				return err
			}
			out.AuthorizedUsers = append(out.AuthorizedUsers, created)
		}
		return nil
	})
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("create user profile: %w", err)
	}

	log.Debug().
		Int64("user_id", out.User.ID).
		Int("spending_categories", len(out.SpendingCategories)).
		Int("authorized_users", len(out.AuthorizedUsers)).
		Msg("user profile created")
	return out, nil
}
