// internal/domain/enums.go
package domain

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownEnumValue is returned when text does not name a member of a closed vocabulary.
var ErrUnknownEnumValue = errors.New("unknown enum value")

type CardType string

const (
	CardTypeStudent  CardType = "student"
	CardTypeSecured  CardType = "secured"
	CardTypeBusiness CardType = "business"
	CardTypeGeneral  CardType = "general"
)

var cardTypes = []CardType{CardTypeStudent, CardTypeSecured, CardTypeBusiness, CardTypeGeneral}

type RewardStructure string

const (
	RewardPoints   RewardStructure = "points"
	RewardCashback RewardStructure = "cashback"
)

var rewardStructures = []RewardStructure{RewardPoints, RewardCashback}

type SpendingCategory string

const (
	CategoryGas           SpendingCategory = "gas"
	CategoryGroceries     SpendingCategory = "groceries"
	CategoryDining        SpendingCategory = "dining"
	CategoryOnlineRetail  SpendingCategory = "online_retail"
	CategoryTravel        SpendingCategory = "travel"
	CategoryGeneral       SpendingCategory = "general"
	CategoryRideshare     SpendingCategory = "rideshare"
	CategoryPublicTransit SpendingCategory = "public_transit"
	CategoryEntertainment SpendingCategory = "entertainment"
)

var spendingCategories = []SpendingCategory{
	CategoryGas, CategoryGroceries, CategoryDining, CategoryOnlineRetail, CategoryTravel,
	CategoryGeneral, CategoryRideshare, CategoryPublicTransit, CategoryEntertainment,
}

type CreditScoreRating string

const (
	CreditExcellent CreditScoreRating = "excellent"
	CreditGood      CreditScoreRating = "good"
	CreditFair      CreditScoreRating = "fair"
	CreditPoor      CreditScoreRating = "poor"
	CreditNone      CreditScoreRating = "none"
)

var creditScoreRatings = []CreditScoreRating{CreditExcellent, CreditGood, CreditFair, CreditPoor, CreditNone}

func CardTypes() []CardType                   { return slices.Clone(cardTypes) }
func RewardStructures() []RewardStructure     { return slices.Clone(rewardStructures) }
func SpendingCategories() []SpendingCategory  { return slices.Clone(spendingCategories) }
func CreditScoreRatings() []CreditScoreRating { return slices.Clone(creditScoreRatings) }

func ParseCardType(s string) (CardType, error) { return parseEnum("card type", s, cardTypes) }
func ParseRewardStructure(s string) (RewardStructure, error) {
	return parseEnum("reward structure", s, rewardStructures)
}
func ParseSpendingCategory(s string) (SpendingCategory, error) {
	return parseEnum("spending category", s, spendingCategories)
}
func ParseCreditScoreRating(s string) (CreditScoreRating, error) {
	return parseEnum("credit score rating", s, creditScoreRatings)
}

func (t CardType) Valid() bool          { return slices.Contains(cardTypes, t) }
func (r RewardStructure) Valid() bool   { return slices.Contains(rewardStructures, r) }
func (c SpendingCategory) Valid() bool  { return slices.Contains(spendingCategories, c) }
func (c CreditScoreRating) Valid() bool { return slices.Contains(creditScoreRatings, c) }

func (t CardType) String() string          { return string(t) }
func (r RewardStructure) String() string   { return string(r) }
func (c SpendingCategory) String() string  { return string(c) }
func (c CreditScoreRating) String() string { return string(c) }

// Text encoding is used by JSON request bodies and seed files.

func (t CardType) MarshalText() ([]byte, error)          { return marshalEnum("card type", t) }
func (r RewardStructure) MarshalText() ([]byte, error)   { return marshalEnum("reward structure", r) }
func (c SpendingCategory) MarshalText() ([]byte, error)  { return marshalEnum("spending category", c) }
func (c CreditScoreRating) MarshalText() ([]byte, error) { return marshalEnum("credit score rating", c) }

func (t *CardType) UnmarshalText(b []byte) (err error) {
	*t, err = ParseCardType(string(b))
	return err
}

func (r *RewardStructure) UnmarshalText(b []byte) (err error) {
	*r, err = ParseRewardStructure(string(b))
	return err
}

func (c *SpendingCategory) UnmarshalText(b []byte) (err error) {
	*c, err = ParseSpendingCategory(string(b))
	return err
}

func (c *CreditScoreRating) UnmarshalText(b []byte) (err error) {
	*c, err = ParseCreditScoreRating(string(b))
	return err
}

// Database encoding. Values are stored as text; unknown text coming back from the
// store is a data-integrity error.

func (t CardType) Value() (driver.Value, error)          { return valueEnum("card type", t) }
func (r RewardStructure) Value() (driver.Value, error)   { return valueEnum("reward structure", r) }
func (c SpendingCategory) Value() (driver.Value, error)  { return valueEnum("spending category", c) }
func (c CreditScoreRating) Value() (driver.Value, error) { return valueEnum("credit score rating", c) }

func (t *CardType) Scan(src any) error          { return scanEnum(t, "card type", src, cardTypes) }
func (r *RewardStructure) Scan(src any) error   { return scanEnum(r, "reward structure", src, rewardStructures) }
func (c *SpendingCategory) Scan(src any) error  { return scanEnum(c, "spending category", src, spendingCategories) }
func (c *CreditScoreRating) Scan(src any) error { return scanEnum(c, "credit score rating", src, creditScoreRatings) }

func parseEnum[T ~string](kind, s string, members []T) (T, error) {
	v := T(s)
	if !slices.Contains(members, v) {
		return "", fmt.Errorf("%w: %s %q", ErrUnknownEnumValue, kind, s)
	}
	return v, nil
}

func marshalEnum[T interface {
	~string
	Valid() bool
}](kind string, v T) ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %s %q", ErrUnknownEnumValue, kind, string(v))
	}
	return []byte(v), nil
}

func valueEnum[T interface {
	~string
	Valid() bool
}](kind string, v T) (driver.Value, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %s %q", ErrUnknownEnumValue, kind, string(v))
	}
	return string(v), nil
}

func scanEnum[T ~string](dst *T, kind string, src any, members []T) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		return fmt.Errorf("%w: %s is NULL", ErrUnknownEnumValue, kind)
	default:
		return fmt.Errorf("scan %s: unsupported source type %T", kind, src)
	}
	v, err := parseEnum(kind, s, members)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
