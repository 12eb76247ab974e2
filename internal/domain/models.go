// internal/domain/models.go
package domain

import (
	"errors"
	"fmt"
	"time"

	val "card-rewards/internal/validator"
)

// ErrInvalid matches every model validation failure via errors.Is.
var ErrInvalid = errors.New("invalid model")

// ValidationError wraps validator.ValidationErrors for one entity.
type ValidationError struct {
	Entity string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Entity, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

func validate(entity string, v any) error {
	if err := val.Validate.Struct(v); err != nil {
		return &ValidationError{Entity: entity, Err: err}
	}
	return nil
}

// Bank is an issuing bank. A nil TransferPointsValueCents means the bank has
// no transferable points program.
type Bank struct {
	ID                       int64     `json:"id"`
	Name                     string    `json:"name" validate:"required,notblank"`
	RelationshipBank         bool      `json:"relationship_bank"`
	TransferPointsValueCents *float64  `json:"transfer_points_value_cents"`
	ReportsUnderEighteen     bool      `json:"reports_under_eighteen"`
	CreatedAt                time.Time `json:"created_at"`
}

func NewBank(name string, relationshipBank, reportsUnderEighteen bool) (Bank, error) {
	b := Bank{Name: name, RelationshipBank: relationshipBank, ReportsUnderEighteen: reportsUnderEighteen}
	return b, b.Validate()
}

func (b Bank) Validate() error { return validate("bank", b) }

func (b Bank) Persisted() bool { return b.ID != 0 }

func (b Bank) HasTransferPoints() bool { return b.TransferPointsValueCents != nil }

func (b Bank) Equal(o Bank) bool {
	return b.ID == o.ID &&
		b.Name == o.Name &&
		b.RelationshipBank == o.RelationshipBank &&
		eqPtr(b.TransferPointsValueCents, o.TransferPointsValueCents) &&
		b.ReportsUnderEighteen == o.ReportsUnderEighteen &&
		b.CreatedAt.Equal(o.CreatedAt)
}

// Card is a credit card product. BankID references banks.id; the store enforces it.
type Card struct {
	ID                    int64           `json:"id"`
	Name                  string          `json:"name" validate:"required,notblank"`
	BankID                int64           `json:"bank_id"`
	CardType              CardType        `json:"card_type" validate:"enum"`
	SubMaxValue           *int            `json:"sub_max_value"`
	SubDescription        *string         `json:"sub_description"`
	AnnualFee             int             `json:"annual_fee"`
	ForeignTransactionFee *float64        `json:"foreign_transaction_fee"`
	RewardStructure       RewardStructure `json:"reward_structure" validate:"enum"`
	FeeCredits            *string         `json:"fee_credits"`
	OtherBenefits         *string         `json:"other_benefits"`
	CreatedAt             time.Time       `json:"created_at"`
}

// NewCard builds a card with no annual fee and a zero foreign transaction fee.
func NewCard(name string, bankID int64, cardType CardType, rewards RewardStructure) (Card, error) {
	c := Card{
		Name:            name,
		BankID:          bankID,
		CardType:        cardType,
		RewardStructure: rewards,
	}.WithDefaults()
	return c, c.Validate()
}

// WithDefaults fills a missing foreign transaction fee with 0.
func (c Card) WithDefaults() Card {
	if c.ForeignTransactionFee == nil {
		zero := 0.0
		c.ForeignTransactionFee = &zero
	}
	return c
}

func (c Card) Validate() error { return validate("card", c) }

func (c Card) Persisted() bool { return c.ID != 0 }

// HasSignupBonus reports whether the card carries a positive signup bonus.
func (c Card) HasSignupBonus() bool { return c.SubMaxValue != nil && *c.SubMaxValue > 0 }

func (c Card) Equal(o Card) bool {
	return c.ID == o.ID &&
		c.Name == o.Name &&
		c.BankID == o.BankID &&
		c.CardType == o.CardType &&
		eqPtr(c.SubMaxValue, o.SubMaxValue) &&
		eqPtr(c.SubDescription, o.SubDescription) &&
		c.AnnualFee == o.AnnualFee &&
		eqPtr(c.ForeignTransactionFee, o.ForeignTransactionFee) &&
		c.RewardStructure == o.RewardStructure &&
		eqPtr(c.FeeCredits, o.FeeCredits) &&
		eqPtr(c.OtherBenefits, o.OtherBenefits) &&
		c.CreatedAt.Equal(o.CreatedAt)
}

// SpendingCategoryInfo is a per-card bonus rate for one category. Cap is the
// spend after which the rate reverts to the base rate.
type SpendingCategoryInfo struct {
	ID                int64            `json:"id"`
	CardID            int64            `json:"card_id"`
	Category          SpendingCategory `json:"category" validate:"enum"`
	Rate              float64          `json:"rate" validate:"gte=0"`
	Cap               *float64         `json:"cap"`
	QuarterlyRotating bool             `json:"quarterly_rotating"`
}

func (s SpendingCategoryInfo) Validate() error { return validate("spending category info", s) }

func (s SpendingCategoryInfo) Equal(o SpendingCategoryInfo) bool {
	return s.ID == o.ID &&
		s.CardID == o.CardID &&
		s.Category == o.Category &&
		s.Rate == o.Rate &&
		eqPtr(s.Cap, o.Cap) &&
		s.QuarterlyRotating == o.QuarterlyRotating
}

// SameTerms compares only the economic terms of two bonuses, ignoring row identity.
func (s SpendingCategoryInfo) SameTerms(o SpendingCategoryInfo) bool {
	return s.Category == o.Category && s.Rate == o.Rate
}

type User struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name" validate:"required,notblank"`
	Email        string            `json:"email" validate:"required,email"`
	CreditScore  CreditScoreRating `json:"credit_score" validate:"enum"`
	AnnualIncome int               `json:"annual_income"`
	CreatedAt    time.Time         `json:"created_at"`
}

func NewUser(name, email string, score CreditScoreRating, annualIncome int) (User, error) {
	u := User{Name: name, Email: email, CreditScore: score, AnnualIncome: annualIncome}
	return u, u.Validate()
}

func (u User) Validate() error { return validate("user", u) }

func (u User) Persisted() bool { return u.ID != 0 }

func (u User) Equal(o User) bool {
	return u.ID == o.ID &&
		u.Name == o.Name &&
		u.Email == o.Email &&
		u.CreditScore == o.CreditScore &&
		u.AnnualIncome == o.AnnualIncome &&
		u.CreatedAt.Equal(o.CreatedAt)
}

// SpendingCategoryUser is a user's periodic spend in one category.
type SpendingCategoryUser struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Category  SpendingCategory `json:"category" validate:"enum"`
	UserSpend float64          `json:"user_spend" validate:"gte=0"`
	CreatedAt time.Time        `json:"created_at"`
}

func (s SpendingCategoryUser) Validate() error { return validate("spending category", s) }

func (s SpendingCategoryUser) Equal(o SpendingCategoryUser) bool {
	return s.ID == o.ID &&
		s.UserID == o.UserID &&
		s.Category == o.Category &&
		s.UserSpend == o.UserSpend &&
		s.CreatedAt.Equal(o.CreatedAt)
}

// AuthorizedUserInfo records that UserID is (or will be, once eighteen) an
// authorized user on a card from BankID.
type AuthorizedUserInfo struct {
	ID                  int64     `json:"id"`
	UserID              int64     `json:"user_id"`
	BankID              int64     `json:"bank_id"`
	AddAfterAgeEighteen bool      `json:"add_after_age_eighteen"`
	CreatedAt           time.Time `json:"created_at"`
}

func (a AuthorizedUserInfo) Validate() error { return validate("authorized user info", a) }

func (a AuthorizedUserInfo) Equal(o AuthorizedUserInfo) bool {
	return a.ID == o.ID &&
		a.UserID == o.UserID &&
		a.BankID == o.BankID &&
		a.AddAfterAgeEighteen == o.AddAfterAgeEighteen &&
		a.CreatedAt.Equal(o.CreatedAt)
}

// UserProfile is the user aggregate: the user row plus its dependent collections.
type UserProfile struct {
	User               User                   `json:"user"`
	SpendingCategories []SpendingCategoryUser `json:"spending_categories"`
	AuthorizedUsers    []AuthorizedUserInfo   `json:"authorized_users"`
}

func (p UserProfile) Validate() error {
	if err := p.User.Validate(); err != nil {
		return err
	}
	for _, s := range p.SpendingCategories {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	for _, a := range p.AuthorizedUsers {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TotalSpend sums the user's spend across categories.
func (p UserProfile) TotalSpend() float64 {
	var total float64
	for _, s := range p.SpendingCategories {
		total += s.UserSpend
	}
	return total
}

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
