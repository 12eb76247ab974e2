package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestBank_OptionalFieldsOmitted(t *testing.T) {
	bank, err := NewBank("Chase", true, false)
	require.NoError(t, err)

	assert.Equal(t, "Chase", bank.Name)
	assert.True(t, bank.RelationshipBank)
	assert.False(t, bank.ReportsUnderEighteen)
	assert.Nil(t, bank.TransferPointsValueCents)
	assert.False(t, bank.HasTransferPoints())
	assert.Zero(t, bank.ID)
	assert.True(t, bank.CreatedAt.IsZero())
	assert.False(t, bank.Persisted())
}

func TestBank_AllFields(t *testing.T) {
	now := time.Now()
	bank := Bank{
		ID:                       2,
		Name:                     "Chase",
		RelationshipBank:         true,
		TransferPointsValueCents: ptr(3.0),
		CreatedAt:                now,
	}
	require.NoError(t, bank.Validate())
	assert.Equal(t, 3.0, *bank.TransferPointsValueCents)
	assert.Equal(t, int64(2), bank.ID)
	assert.Equal(t, now, bank.CreatedAt)
	assert.True(t, bank.Persisted())
}

func TestBank_BlankName(t *testing.T) {
	_, err := NewBank("   ", true, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "Name", verrs[0].Field())
}

func TestCard_Defaults(t *testing.T) {
	card, err := NewCard("Freedom Unlimited", 1, CardTypeGeneral, RewardCashback)
	require.NoError(t, err)

	assert.Equal(t, 0, card.AnnualFee)
	require.NotNil(t, card.ForeignTransactionFee)
	assert.Equal(t, 0.0, *card.ForeignTransactionFee)
	assert.Nil(t, card.SubMaxValue)
	assert.False(t, card.HasSignupBonus())
	assert.True(t, card.CreatedAt.IsZero())
}

func TestCard_WithDefaults(t *testing.T) {
	filled := Card{Name: "Slate"}.WithDefaults()
	require.NotNil(t, filled.ForeignTransactionFee)
	assert.Zero(t, *filled.ForeignTransactionFee)

	kept := Card{ForeignTransactionFee: ptr(3.0)}.WithDefaults()
	assert.Equal(t, 3.0, *kept.ForeignTransactionFee)
}

func TestCard_InvalidEnums(t *testing.T) {
	_, err := NewCard("Card", 1, CardType("platinum"), RewardPoints)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = NewCard("Card", 1, CardTypeStudent, RewardStructure("miles"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCard_HasSignupBonus(t *testing.T) {
	card := Card{SubMaxValue: ptr(0)}
	assert.False(t, card.HasSignupBonus())
	card.SubMaxValue = ptr(-5)
	assert.False(t, card.HasSignupBonus())
	card.SubMaxValue = ptr(60000)
	assert.True(t, card.HasSignupBonus())
}

func TestUser_Validation(t *testing.T) {
	user, err := NewUser("John Doe", "john@example.com", CreditExcellent, 75000)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", user.Email)
	assert.Equal(t, 75000, user.AnnualIncome)
	assert.Zero(t, user.ID)

	_, err = NewUser("John", "invalid-email", CreditGood, 4000)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = NewUser("Test", "1@gmail.com", CreditScoreRating("definitely_not_valid"), 4000)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestSpendingCategoryUser_Validation(t *testing.T) {
	s := SpendingCategoryUser{UserID: 1, Category: CategoryDining, UserSpend: 250}
	assert.NoError(t, s.Validate())

	s.Category = "pets"
	assert.ErrorIs(t, s.Validate(), ErrInvalid)

	s.Category = CategoryDining
	s.UserSpend = -1
	assert.ErrorIs(t, s.Validate(), ErrInvalid)
}

func TestEquality_FullField(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	a := User{ID: 1, Name: "Ann", Email: "a@b.co", CreditScore: CreditGood, AnnualIncome: 10, CreatedAt: created}
	b := a
	b.CreatedAt = created.In(time.FixedZone("x", 3600))
	assert.True(t, a.Equal(b))
	b.AnnualIncome = 11
	assert.False(t, a.Equal(b))

	s1 := SpendingCategoryUser{ID: 1, UserID: 2, Category: CategoryGas, UserSpend: 10, CreatedAt: created}
	s2 := s1
	s2.UserSpend = 20
	assert.False(t, s1.Equal(s2))

	c1 := Card{ID: 1, Name: "X", SubDescription: ptr("spend 4k"), CardType: CardTypeGeneral, RewardStructure: RewardPoints}
	c2 := c1
	c2.SubDescription = ptr("spend 4k")
	assert.True(t, c1.Equal(c2))
	c2.SubDescription = nil
	assert.False(t, c1.Equal(c2))
}

func TestSpendingCategoryInfo_SameTerms(t *testing.T) {
	a := SpendingCategoryInfo{ID: 1, CardID: 10, Category: CategoryDining, Rate: 3}
	b := SpendingCategoryInfo{ID: 2, CardID: 11, Category: CategoryDining, Rate: 3, QuarterlyRotating: true}

	assert.True(t, a.SameTerms(b))
	assert.False(t, a.Equal(b))

	b.Rate = 4
	assert.False(t, a.SameTerms(b))
}

func TestUserProfile(t *testing.T) {
	p := UserProfile{
		User: User{Name: "Ann", Email: "ann@example.com", CreditScore: CreditFair},
		SpendingCategories: []SpendingCategoryUser{
			{Category: CategoryGas, UserSpend: 100},
			{Category: CategoryTravel, UserSpend: 50.5},
		},
	}
	require.NoError(t, p.Validate())
	assert.Equal(t, 150.5, p.TotalSpend())

	p.AuthorizedUsers = []AuthorizedUserInfo{{BankID: 1}}
	assert.NoError(t, p.Validate())

	p.SpendingCategories[1].Category = "bogus"
	assert.ErrorIs(t, p.Validate(), ErrInvalid)
}
