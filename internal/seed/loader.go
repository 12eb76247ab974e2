// internal/seed/loader.go
package seed

import (
	"card-rewards/internal/domain"
	"card-rewards/internal/storage"
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Loader writes a seed file through the repositories. Banks are matched by
// name, cards by name within their bank and category bonuses by category
// within their card. Existing rows are left as they are, so loading the same
// file twice changes nothing.
type Loader struct {
	banks storage.BankStorage
	cards storage.CardStorage
	log   zerolog.Logger
}

func NewLoader(banks storage.BankStorage, cards storage.CardStorage, log zerolog.Logger) *Loader {
	return &Loader{banks: banks, cards: cards, log: log}
}

type Result struct {
	BanksCreated      int `json:"banks_created"`
	BanksExisting     int `json:"banks_existing"`
	CardsCreated      int `json:"cards_created"`
	CardsExisting     int `json:"cards_existing"`
	CategoriesCreated int `json:"categories_created"`
}

// Load validates the whole file first and stops at the first store error.
// Rows written before the error are kept; rerunning picks up where it stopped,
// including bonuses missing from a card that already exists.
func (l *Loader) Load(ctx context.Context, f *File) (Result, error) {
	var res Result
	if err := f.Validate(); err != nil {
		return res, err
	}

	for _, entry := range f.Banks {
		bank, created, err := l.ensureBank(ctx, entry)
		if err != nil {
			return res, err
		}
		if created {
			res.BanksCreated++
		} else {
			res.BanksExisting++
		}

		existing, err := l.cards.ByBank(ctx, bank.ID)
		if err != nil {
			return res, fmt.Errorf("seed bank %q: %w", bank.Name, err)
		}
		byName := make(map[string]domain.Card, len(existing))
		for _, c := range existing {
			byName[c.Name] = c
		}

		for _, ce := range entry.Cards {
			card, found := byName[ce.Name]
			if found {
				res.CardsExisting++
			} else {
				if card, err = l.createCard(ctx, bank, ce); err != nil {
					return res, err
				}
				res.CardsCreated++
			}

			n, err := l.addCategories(ctx, card, ce, found)
			res.CategoriesCreated += n
			if err != nil {
				return res, err
			}
		}
	}

	l.log.Info().
		Int("banks_created", res.BanksCreated).
		Int("banks_existing", res.BanksExisting).
		Int("cards_created", res.CardsCreated).
		Int("cards_existing", res.CardsExisting).
		Int("categories_created", res.CategoriesCreated).
		Msg("seed loaded")
	return res, nil
}

func (l *Loader) ensureBank(ctx context.Context, entry BankEntry) (domain.Bank, bool, error) {
	found, err := l.banks.GetByName(ctx, entry.Name)
	if err != nil {
		return domain.Bank{}, false, fmt.Errorf("seed bank %q: %w", entry.Name, err)
	}
	if found != nil {
		l.log.Debug().Int64("bank_id", found.ID).Str("bank", found.Name).Msg("bank already present")
		return *found, false, nil
	}

	bank, err := l.banks.Create(ctx, entry.toDomain())
	if err != nil {
		return domain.Bank{}, false, fmt.Errorf("seed bank %q: %w", entry.Name, err)
	}
	l.log.Debug().Int64("bank_id", bank.ID).Str("bank", bank.Name).Msg("bank created")
	return bank, true, nil
}

func (l *Loader) createCard(ctx context.Context, bank domain.Bank, entry CardEntry) (domain.Card, error) {
	card, err := entry.toDomain(bank.ID)
	if err != nil {
		return domain.Card{}, fmt.Errorf("seed card %q: %w", entry.Name, err)
	}
	card, err = l.cards.Create(ctx, card)
	if err != nil {
		return domain.Card{}, fmt.Errorf("seed card %q of %q: %w", entry.Name, bank.Name, err)
	}
	l.log.Debug().Int64("card_id", card.ID).Str("card", card.Name).Msg("card created")
	return card, nil
}

// addCategories writes the entry's bonuses whose category the card does not
// have yet and returns how many it wrote. A new card has none, so its stored
// bonuses are only read back for cards that already existed.
func (l *Loader) addCategories(ctx context.Context, card domain.Card, entry CardEntry, existed bool) (int, error) {
	have := map[domain.SpendingCategory]bool{}
	if existed {
		stored, err := l.cards.SpendingCategories(ctx, card.ID)
		if err != nil {
			return 0, fmt.Errorf("seed card %q: %w", entry.Name, err)
		}
		for _, s := range stored {
			have[s.Category] = true
		}
	}

	added := 0
	for _, ce := range entry.Categories {
		info, err := ce.toDomain(card.ID)
		if err != nil {
			return added, fmt.Errorf("seed card %q: %w", entry.Name, err)
		}
		if have[info.Category] {
			continue
		}
		if _, err := l.cards.AddSpendingCategory(ctx, info); err != nil {
			return added, fmt.Errorf("seed card %q category %s: %w", entry.Name, ce.Category, err)
		}
		have[info.Category] = true
		added++
	}
	if added > 0 {
		l.log.Debug().Int64("card_id", card.ID).Int("categories", added).Msg("category bonuses added")
	}
	return added, nil
}
