// Package storagemock provides testify mocks of the storage interfaces for
// handler and seed tests.
package storagemock

import (
	"card-rewards/internal/domain"
	"card-rewards/internal/storage"
	"context"

	"github.com/stretchr/testify/mock"
)

var (
	_ storage.BankStorage           = (*Banks)(nil)
	_ storage.CardStorage           = (*Cards)(nil)
	_ storage.UserStorage           = (*Users)(nil)
	_ storage.AuthorizedUserStorage = (*AuthorizedUsers)(nil)
)

// ptrResult reads a *T return value that may have been registered as untyped nil.
func ptrResult[T any](args mock.Arguments, i int) *T {
	v, _ := args.Get(i).(*T)
	return v
}

func sliceResult[T any](args mock.Arguments, i int) []T {
	v, _ := args.Get(i).([]T)
	return v
}

type Banks struct{ mock.Mock }

func (m *Banks) Create(ctx context.Context, bank domain.Bank) (domain.Bank, error) {
	args := m.Called(ctx, bank)
	return args.Get(0).(domain.Bank), args.Error(1)
}

func (m *Banks) GetByID(ctx context.Context, id int64) (*domain.Bank, error) {
	args := m.Called(ctx, id)
	return ptrResult[domain.Bank](args, 0), args.Error(1)
}

func (m *Banks) GetByName(ctx context.Context, name string) (*domain.Bank, error) {
	args := m.Called(ctx, name)
	return ptrResult[domain.Bank](args, 0), args.Error(1)
}

func (m *Banks) Update(ctx context.Context, bank domain.Bank) (*domain.Bank, error) {
	args := m.Called(ctx, bank)
	return ptrResult[domain.Bank](args, 0), args.Error(1)
}

func (m *Banks) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *Banks) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *Banks) List(ctx context.Context, page storage.Page) ([]domain.Bank, error) {
	args := m.Called(ctx, page)
	return sliceResult[domain.Bank](args, 0), args.Error(1)
}

func (m *Banks) ListRelationshipBanks(ctx context.Context) ([]domain.Bank, error) {
	args := m.Called(ctx)
	return sliceResult[domain.Bank](args, 0), args.Error(1)
}

func (m *Banks) ListReportingUnderEighteen(ctx context.Context) ([]domain.Bank, error) {
	args := m.Called(ctx)
	return sliceResult[domain.Bank](args, 0), args.Error(1)
}

func (m *Banks) ListWithTransferPoints(ctx context.Context) ([]domain.Bank, error) {
	args := m.Called(ctx)
	return sliceResult[domain.Bank](args, 0), args.Error(1)
}

type Cards struct{ mock.Mock }

func (m *Cards) Create(ctx context.Context, card domain.Card) (domain.Card, error) {
	args := m.Called(ctx, card)
	return args.Get(0).(domain.Card), args.Error(1)
}

func (m *Cards) GetByID(ctx context.Context, id int64) (*domain.Card, error) {
	args := m.Called(ctx, id)
	return ptrResult[domain.Card](args, 0), args.Error(1)
}

func (m *Cards) Update(ctx context.Context, card domain.Card) (*domain.Card, error) {
	args := m.Called(ctx, card)
	return ptrResult[domain.Card](args, 0), args.Error(1)
}

func (m *Cards) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *Cards) List(ctx context.Context, page storage.Page) ([]domain.Card, error) {
	args := m.Called(ctx, page)
	return sliceResult[domain.Card](args, 0), args.Error(1)
}

func (m *Cards) ByBank(ctx context.Context, bankID int64) ([]domain.Card, error) {
	args := m.Called(ctx, bankID)
	return sliceResult[domain.Card](args, 0), args.Error(1)
}

func (m *Cards) ByType(ctx context.Context, cardType domain.CardType) ([]domain.Card, error) {
	args := m.Called(ctx, cardType)
	return sliceResult[domain.Card](args, 0), args.Error(1)
}

func (m *Cards) ByRewardStructure(ctx context.Context, rs domain.RewardStructure) ([]domain.Card, error) {
	args := m.Called(ctx, rs)
	return sliceResult[domain.Card](args, 0), args.Error(1)
}

func (m *Cards) WithNoAnnualFee(ctx context.Context) ([]domain.Card, error) {
	args := m.Called(ctx)
	return sliceResult[domain.Card](args, 0), args.Error(1)
}

func (m *Cards) WithSignupBonus(ctx context.Context) ([]domain.Card, error) {
	args := m.Called(ctx)
	return sliceResult[domain.Card](args, 0), args.Error(1)
}

func (m *Cards) ByFeeRange(ctx context.Context, minFee int, maxFee *int) ([]domain.Card, error) {
	args := m.Called(ctx, minFee, maxFee)
	return sliceResult[domain.Card](args, 0), args.Error(1)
}

func (m *Cards) AddSpendingCategory(ctx context.Context, info domain.SpendingCategoryInfo) (domain.SpendingCategoryInfo, error) {
	args := m.Called(ctx, info)
	return args.Get(0).(domain.SpendingCategoryInfo), args.Error(1)
}

func (m *Cards) SpendingCategories(ctx context.Context, cardID int64) ([]domain.SpendingCategoryInfo, error) {
	args := m.Called(ctx, cardID)
	return sliceResult[domain.SpendingCategoryInfo](args, 0), args.Error(1)
}

func (m *Cards) RemoveSpendingCategory(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type Users struct{ mock.Mock }

func (m *Users) Create(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *Users) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	return ptrResult[domain.User](args, 0), args.Error(1)
}

func (m *Users) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	return ptrResult[domain.User](args, 0), args.Error(1)
}

func (m *Users) Update(ctx context.Context, user domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	return ptrResult[domain.User](args, 0), args.Error(1)
}

func (m *Users) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *Users) List(ctx context.Context, page storage.Page) ([]domain.User, error) {
	args := m.Called(ctx, page)
	return sliceResult[domain.User](args, 0), args.Error(1)
}

func (m *Users) AddSpendingCategory(ctx context.Context, s domain.SpendingCategoryUser) (*domain.SpendingCategoryUser, error) {
	args := m.Called(ctx, s)
	return ptrResult[domain.SpendingCategoryUser](args, 0), args.Error(1)
}

func (m *Users) RemoveSpendingCategory(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *Users) SpendingCategoriesByUser(ctx context.Context, userID int64) ([]domain.SpendingCategoryUser, error) {
	args := m.Called(ctx, userID)
	return sliceResult[domain.SpendingCategoryUser](args, 0), args.Error(1)
}

func (m *Users) AddAuthorizedUserInfo(ctx context.Context, info domain.AuthorizedUserInfo) (domain.AuthorizedUserInfo, error) {
	args := m.Called(ctx, info)
	return args.Get(0).(domain.AuthorizedUserInfo), args.Error(1)
}

func (m *Users) DeleteAuthorizedUserInfo(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *Users) GetProfile(ctx context.Context, id int64) (*domain.UserProfile, error) {
	args := m.Called(ctx, id)
	return ptrResult[domain.UserProfile](args, 0), args.Error(1)
}

func (m *Users) CreateProfile(ctx context.Context, profile domain.UserProfile) (domain.UserProfile, error) {
	args := m.Called(ctx, profile)
	return args.Get(0).(domain.UserProfile), args.Error(1)
}

type AuthorizedUsers struct{ mock.Mock }

func (m *AuthorizedUsers) Add(ctx context.Context, info domain.AuthorizedUserInfo) (domain.AuthorizedUserInfo, error) {
	args := m.Called(ctx, info)
	return args.Get(0).(domain.AuthorizedUserInfo), args.Error(1)
}

func (m *AuthorizedUsers) GetByID(ctx context.Context, id int64) (*domain.AuthorizedUserInfo, error) {
	args := m.Called(ctx, id)
	return ptrResult[domain.AuthorizedUserInfo](args, 0), args.Error(1)
}

func (m *AuthorizedUsers) Update(ctx context.Context, info domain.AuthorizedUserInfo) (*domain.AuthorizedUserInfo, error) {
	args := m.Called(ctx, info)
	return ptrResult[domain.AuthorizedUserInfo](args, 0), args.Error(1)
}

func (m *AuthorizedUsers) Remove(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *AuthorizedUsers) RemoveAllByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AuthorizedUsers) AllByUser(ctx context.Context, userID int64) ([]domain.AuthorizedUserInfo, error) {
	args := m.Called(ctx, userID)
	return sliceResult[domain.AuthorizedUserInfo](args, 0), args.Error(1)
}

func (m *AuthorizedUsers) AllByBank(ctx context.Context, bankID int64) ([]domain.AuthorizedUserInfo, error) {
	args := m.Called(ctx, bankID)
	return sliceResult[domain.AuthorizedUserInfo](args, 0), args.Error(1)
}

func (m *AuthorizedUsers) ByUserAndBank(ctx context.Context, userID, bankID int64) (*domain.AuthorizedUserInfo, error) {
	args := m.Called(ctx, userID, bankID)
	return ptrResult[domain.AuthorizedUserInfo](args, 0), args.Error(1)
}

func (m *AuthorizedUsers) List(ctx context.Context, page storage.Page) ([]domain.AuthorizedUserInfo, error) {
	args := m.Called(ctx, page)
	return sliceResult[domain.AuthorizedUserInfo](args, 0), args.Error(1)
}

func (m *AuthorizedUsers) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *AuthorizedUsers) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
