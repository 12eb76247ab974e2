// internal/storage/storage.go
package storage

import (
	"card-rewards/internal/domain"
	"context"
)

// Page bounds a listing. A zero Limit returns every row after Offset.
type Page struct {
	Limit  int `form:"limit" json:"limit" validate:"gte=0"`
	Offset int `form:"offset" json:"offset" validate:"gte=0"`
}

// Reads of a missing row return (nil, nil); deletes of a missing row return false.

type BankStorage interface {
	Create(ctx context.Context, bank domain.Bank) (domain.Bank, error)
	GetByID(ctx context.Context, id int64) (*domain.Bank, error)
	GetByName(ctx context.Context, name string) (*domain.Bank, error)
	Update(ctx context.Context, bank domain.Bank) (*domain.Bank, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, page Page) ([]domain.Bank, error)
	ListRelationshipBanks(ctx context.Context) ([]domain.Bank, error)
	ListReportingUnderEighteen(ctx context.Context) ([]domain.Bank, error)
	ListWithTransferPoints(ctx context.Context) ([]domain.Bank, error)
}

type CardStorage interface {
	Create(ctx context.Context, card domain.Card) (domain.Card, error)
	GetByID(ctx context.Context, id int64) (*domain.Card, error)
	Update(ctx context.Context, card domain.Card) (*domain.Card, error)
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, page Page) ([]domain.Card, error)
	ByBank(ctx context.Context, bankID int64) ([]domain.Card, error)
	ByType(ctx context.Context, cardType domain.CardType) ([]domain.Card, error)
	ByRewardStructure(ctx context.Context, rs domain.RewardStructure) ([]domain.Card, error)
	WithNoAnnualFee(ctx context.Context) ([]domain.Card, error)
	WithSignupBonus(ctx context.Context) ([]domain.Card, error)
	// ByFeeRange is inclusive on both ends; a nil max leaves the range open.
	ByFeeRange(ctx context.Context, minFee int, maxFee *int) ([]domain.Card, error)

	AddSpendingCategory(ctx context.Context, info domain.SpendingCategoryInfo) (domain.SpendingCategoryInfo, error)
	SpendingCategories(ctx context.Context, cardID int64) ([]domain.SpendingCategoryInfo, error)
	RemoveSpendingCategory(ctx context.Context, id int64) (bool, error)
}

type AuthorizedUserStorage interface {
	Add(ctx context.Context, info domain.AuthorizedUserInfo) (domain.AuthorizedUserInfo, error)
	GetByID(ctx context.Context, id int64) (*domain.AuthorizedUserInfo, error)
	Update(ctx context.Context, info domain.AuthorizedUserInfo) (*domain.AuthorizedUserInfo, error)
	Remove(ctx context.Context, id int64) (bool, error)
	RemoveAllByUser(ctx context.Context, userID int64) (int64, error)
	AllByUser(ctx context.Context, userID int64) ([]domain.AuthorizedUserInfo, error)
	AllByBank(ctx context.Context, bankID int64) ([]domain.AuthorizedUserInfo, error)
	ByUserAndBank(ctx context.Context, userID, bankID int64) (*domain.AuthorizedUserInfo, error)
	List(ctx context.Context, page Page) ([]domain.AuthorizedUserInfo, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type UserStorage interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, page Page) ([]domain.User, error)

	AddSpendingCategory(ctx context.Context, s domain.SpendingCategoryUser) (*domain.SpendingCategoryUser, error)
	RemoveSpendingCategory(ctx context.Context, id int64) (bool, error)
	SpendingCategoriesByUser(ctx context.Context, userID int64) ([]domain.SpendingCategoryUser, error)
	AddAuthorizedUserInfo(ctx context.Context, info domain.AuthorizedUserInfo) (domain.AuthorizedUserInfo, error)
	DeleteAuthorizedUserInfo(ctx context.Context, id int64) (bool, error)

	GetProfile(ctx context.Context, id int64) (*domain.UserProfile, error)
	CreateProfile(ctx context.Context, profile domain.UserProfile) (domain.UserProfile, error)
}
