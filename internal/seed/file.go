// internal/seed/file.go
package seed

import (
	"card-rewards/internal/domain"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"go.uber.org/multierr"
)

// File is the seed document: banks, each with the cards it issues and each
// card with its category bonuses.
type File struct {
	Banks []BankEntry `yaml:"banks"`
}

type BankEntry struct {
	Name                     string      `yaml:"name"`
	RelationshipBank         bool        `yaml:"relationship_bank"`
	TransferPointsValueCents *float64    `yaml:"transfer_points_value_cents"`
	ReportsUnderEighteen     bool        `yaml:"reports_under_eighteen"`
	Cards                    []CardEntry `yaml:"cards"`
}

type CardEntry struct {
	Name                  string          `yaml:"name"`
	CardType              string          `yaml:"card_type"`
	RewardStructure       string          `yaml:"reward_structure"`
	AnnualFee             int             `yaml:"annual_fee"`
	SubMaxValue           *int            `yaml:"sub_max_value"`
	SubDescription        *string         `yaml:"sub_description"`
	ForeignTransactionFee *float64        `yaml:"foreign_transaction_fee"`
	FeeCredits            *string         `yaml:"fee_credits"`
	OtherBenefits         *string         `yaml:"other_benefits"`
	Categories            []CategoryEntry `yaml:"categories"`
}

type CategoryEntry struct {
	Category          string   `yaml:"category"`
	Rate              float64  `yaml:"rate"`
	Cap               *float64 `yaml:"cap"`
	QuarterlyRotating bool     `yaml:"quarterly_rotating"`
}

func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a seed document, rejecting unknown keys.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.UnmarshalWithOptions(data, &f, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &f, nil
}

func (b BankEntry) toDomain() domain.Bank {
	return domain.Bank{
		Name:                     b.Name,
		RelationshipBank:         b.RelationshipBank,
		TransferPointsValueCents: b.TransferPointsValueCents,
		ReportsUnderEighteen:     b.ReportsUnderEighteen,
	}
}

func (c CardEntry) toDomain(bankID int64) (domain.Card, error) {
	cardType, err := domain.ParseCardType(c.CardType)
	if err != nil {
		return domain.Card{}, err
	}
	rewards, err := domain.ParseRewardStructure(c.RewardStructure)
	if err != nil {
		return domain.Card{}, err
	}
	card, err := domain.NewCard(c.Name, bankID, cardType, rewards)
	if err != nil {
		return domain.Card{}, err
	}
	card.AnnualFee = c.AnnualFee
	card.SubMaxValue = c.SubMaxValue
	card.SubDescription = c.SubDescription
	if c.ForeignTransactionFee != nil {
		card.ForeignTransactionFee = c.ForeignTransactionFee
	}
	card.FeeCredits = c.FeeCredits
	card.OtherBenefits = c.OtherBenefits
	return card, card.Validate()
}

func (c CategoryEntry) toDomain(cardID int64) (domain.SpendingCategoryInfo, error) {
	category, err := domain.ParseSpendingCategory(c.Category)
	if err != nil {
		return domain.SpendingCategoryInfo{}, err
	}
	info := domain.SpendingCategoryInfo{
		CardID:            cardID,
		Category:          category,
		Rate:              c.Rate,
		Cap:               c.Cap,
		QuarterlyRotating: c.QuarterlyRotating,
	}
	return info, info.Validate()
}

// Validate checks every entry without touching a store and reports all
// problems at once.
func (f *File) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(f.Banks))
	for i, b := range f.Banks {
		if err := b.toDomain().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("banks[%d]: %w", i, err))
		}
		if seen[b.Name] {
			errs = append(errs, fmt.Errorf("banks[%d]: duplicate bank %q", i, b.Name))
		}
		seen[b.Name] = true

		cards := make(map[string]bool, len(b.Cards))
		for j, c := range b.Cards {
			if _, err := c.toDomain(0); err != nil {
				errs = append(errs, fmt.Errorf("banks[%d].cards[%d]: %w", i, j, err))
			}
			if cards[c.Name] {
				errs = append(errs, fmt.Errorf("banks[%d].cards[%d]: duplicate card %q", i, j, c.Name))
			}
			cards[c.Name] = true

			for k, cat := range c.Categories {
				if _, err := cat.toDomain(0); err != nil {
					errs = append(errs, fmt.Errorf("banks[%d].cards[%d].categories[%d]: %w", i, j, k, err))
				}
			}
		}
	}
	return multierr.Combine(errs...)
}

// Counts totals the entries in the file.
func (f *File) Counts() (banks, cards, categories int) {
	for _, b := range f.Banks {
		banks++
		for _, c := range b.Cards {
			cards++
			categories += len(c.Categories)
		}
	}
	return banks, cards, categories
}
