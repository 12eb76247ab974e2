// internal/storage/postgres/card.go
package postgres

import (
	"card-rewards/internal/domain"
	"card-rewards/internal/storage"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ storage.CardStorage = (*CardRepository)(nil)

const cardColumns = `id, name, bank_id, card_type, sub_max_value, sub_description, annual_fee,
	foreign_transaction_fee, reward_structure, fee_credits, other_benefits, created_at`

type CardRepository struct {
	db *pgxpool.Pool
}

func NewCardRepository(db *pgxpool.Pool) *CardRepository {
	return &CardRepository{db: db}
}

func scanCard(row pgx.Row) (domain.Card, error) {
	var c domain.Card
	err := row.Scan(
		&c.ID, &c.Name, &c.BankID, &c.CardType, &c.SubMaxValue, &c.SubDescription, &c.AnnualFee,
		&c.ForeignTransactionFee, &c.RewardStructure, &c.FeeCredits, &c.OtherBenefits, &c.CreatedAt,
	)
	return c, err
}

// Create stores a missing foreign transaction fee as 0.
func (r *CardRepository) Create(ctx context.Context, card domain.Card) (domain.Card, error) {
	card = card.WithDefaults()
	if err := card.Validate(); err != nil {
		return domain.Card{}, err
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO credit_cards (name, bank_id, card_type, sub_max_value, sub_description, annual_fee,
			foreign_transaction_fee, reward_structure, fee_credits, other_benefits)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`, card.Name, card.BankID, card.CardType, card.SubMaxValue, card.SubDescription, card.AnnualFee,
		card.ForeignTransactionFee, card.RewardStructure, card.FeeCredits, card.OtherBenefits).
		Scan(&card.ID, &card.CreatedAt)
	if err != nil {
		return domain.Card{}, fmt.Errorf("create card: %w", err)
	}
	return card, nil
}

func (r *CardRepository) GetByID(ctx context.Context, id int64) (*domain.Card, error) {
	return queryOne(ctx, r.db, "find card", scanCard,
		`SELECT `+cardColumns+` FROM credit_cards WHERE id = $1`, id)
}

func (r *CardRepository) Update(ctx context.Context, card domain.Card) (*domain.Card, error) {
	card = card.WithDefaults()
	if err := card.Validate(); err != nil {
		return nil, err
	}
	return queryOne(ctx, r.db, "update card", func(row pgx.Row) (domain.Card, error) {
		c := card
		err := row.Scan(&c.CreatedAt)
		return c, err
	}, `
		UPDATE credit_cards
		SET name = $1, bank_id = $2, card_type = $3, sub_max_value = $4, sub_description = $5,
			annual_fee = $6, foreign_transaction_fee = $7, reward_structure = $8,
			fee_credits = $9, other_benefits = $10
		WHERE id = $11
		RETURNING created_at
	`, card.Name, card.BankID, card.CardType, card.SubMaxValue, card.SubDescription,
		card.AnnualFee, card.ForeignTransactionFee, card.RewardStructure,
		card.FeeCredits, card.OtherBenefits, card.ID)
}

func (r *CardRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, r.db, "delete card", `DELETE FROM credit_cards WHERE id = $1`, id)
}

// List returns the newest cards first.
func (r *CardRepository) List(ctx context.Context, page storage.Page) ([]domain.Card, error) {
	return queryPage(ctx, r.db, "list cards", scanCard,
		`SELECT `+cardColumns+` FROM credit_cards ORDER BY created_at DESC, id DESC`, page)
}

func (r *CardRepository) ByBank(ctx context.Context, bankID int64) ([]domain.Card, error) {
	return queryList(ctx, r.db, "cards by bank", scanCard,
		`SELECT `+cardColumns+` FROM credit_cards WHERE bank_id = $1 ORDER BY name`, bankID)
}

func (r *CardRepository) ByType(ctx context.Context, cardType domain.CardType) ([]domain.Card, error) {
	return queryList(ctx, r.db, "cards by type", scanCard,
		`SELECT `+cardColumns+` FROM credit_cards WHERE card_type = $1 ORDER BY name`, cardType.String())
}

func (r *CardRepository) ByRewardStructure(ctx context.Context, rs domain.RewardStructure) ([]domain.Card, error) {
	return queryList(ctx, r.db, "cards by reward structure", scanCard,
		`SELECT `+cardColumns+` FROM credit_cards WHERE reward_structure = $1 ORDER BY name`, rs.String())
}

func (r *CardRepository) WithNoAnnualFee(ctx context.Context) ([]domain.Card, error) {
	return queryList(ctx, r.db, "cards with no annual fee", scanCard,
		`SELECT `+cardColumns+` FROM credit_cards WHERE annual_fee = 0 ORDER BY name`)
}

// WithSignupBonus returns cards with a positive bonus, largest first.
func (r *CardRepository) WithSignupBonus(ctx context.Context) ([]domain.Card, error) {
	return queryList(ctx, r.db, "cards with signup bonus", scanCard, `
		SELECT `+cardColumns+` FROM credit_cards
		WHERE sub_max_value IS NOT NULL AND sub_max_value > 0
		ORDER BY sub_max_value DESC, name
	`)
}

func (r *CardRepository) ByFeeRange(ctx context.Context, minFee int, maxFee *int) ([]domain.Card, error) {
	if maxFee == nil {
		return queryList(ctx, r.db, "cards by fee range", scanCard, `
			SELECT `+cardColumns+` FROM credit_cards
			WHERE annual_fee >= $1
			ORDER BY annual_fee, name
		`, minFee)
	}
	return queryList(ctx, r.db, "cards by fee range", scanCard, `
		SELECT `+cardColumns+` FROM credit_cards
		WHERE annual_fee >= $1 AND annual_fee <= $2
		ORDER BY annual_fee, name
	`, minFee, *maxFee)
}

// === card category bonuses ===

func scanCardCategory(row pgx.Row) (domain.SpendingCategoryInfo, error) {
	var s domain.SpendingCategoryInfo
	err := row.Scan(&s.ID, &s.CardID, &s.Category, &s.Rate, &s.Cap, &s.QuarterlyRotating)
	return s, err
}

func (r *CardRepository) AddSpendingCategory(ctx context.Context, info domain.SpendingCategoryInfo) (domain.SpendingCategoryInfo, error) {
	if err := info.Validate(); err != nil {
		return domain.SpendingCategoryInfo{}, err
	}
	return insertCardCategory(ctx, r.db, info)
}

func insertCardCategory(ctx context.Context, q querier, info domain.SpendingCategoryInfo) (domain.SpendingCategoryInfo, error) {
	err := q.QueryRow(ctx, `
		INSERT INTO card_spending_category (card_id, category, rate, cap, quarterly_rotating)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, info.CardID, info.Category, info.Rate, info.Cap, info.QuarterlyRotating).Scan(&info.ID)
	if err != nil {
		return domain.SpendingCategoryInfo{}, fmt.Errorf("add card spending category: %w", err)
	}
	return info, nil
}

// SpendingCategories lists a card's bonuses, highest rate first.
func (r *CardRepository) SpendingCategories(ctx context.Context, cardID int64) ([]domain.SpendingCategoryInfo, error) {
	return queryList(ctx, r.db, "card spending categories", scanCardCategory, `
		SELECT id, card_id, category, rate, cap, quarterly_rotating
		FROM card_spending_category
		WHERE card_id = $1
		ORDER BY rate DESC, id
	`, cardID)
}

func (r *CardRepository) RemoveSpendingCategory(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, r.db, "remove card spending category", `DELETE FROM card_spending_category WHERE id = $1`, id)
}
