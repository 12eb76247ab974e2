//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"

	"card-rewards/internal/domain"
	"card-rewards/internal/sqlerr"
	"card-rewards/internal/storage"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createBank(t *testing.T, s *Storage, b domain.Bank) domain.Bank {
	t.Helper()
	created, err := s.Banks.Create(context.Background(), b)
	require.NoError(t, err)
	return created
}

func TestBankRepository_CreateAndGet(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	bank, err := domain.NewBank("Chase", true, false)
	require.NoError(t, err)

	created, err := s.Banks.Create(ctx, bank)
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, "Chase", created.Name)
	assert.True(t, created.RelationshipBank)
	assert.False(t, created.ReportsUnderEighteen)
	assert.Nil(t, created.TransferPointsValueCents)

	got, err := s.Banks.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, created.Equal(*got))

	missing, err := s.Banks.GetByID(ctx, 99999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBankRepository_GetByNameIsCaseSensitive(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	createBank(t, s, domain.Bank{Name: "Chase", RelationshipBank: true})

	got, err := s.Banks.GetByName(ctx, "Chase")
	require.NoError(t, err)
	require.NotNil(t, got)

	lower, err := s.Banks.GetByName(ctx, "chase")
	require.NoError(t, err)
	assert.Nil(t, lower)
}

func TestBankRepository_DuplicateName(t *testing.T) {
	s := newTestStorage(t)
	createBank(t, s, domain.Bank{Name: "Chase"})

	_, err := s.Banks.Create(context.Background(), domain.Bank{Name: "Chase"})
	require.Error(t, err)

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))
	assert.Equal(t, sqlerr.UniqueViolation, sqlerr.ErrCode(err))
}

func TestBankRepository_InvalidBankNeverReachesStore(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	_, err := s.Banks.Create(ctx, domain.Bank{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	banks, err := s.Banks.List(ctx, storage.Page{})
	require.NoError(t, err)
	assert.Empty(t, banks)
}

func TestBankRepository_Update(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	created := createBank(t, s, domain.Bank{Name: "Chase"})

	created.Name = "Chase Bank"
	created.TransferPointsValueCents = ptr(2.0)
	created.ReportsUnderEighteen = true
	stamp := created.CreatedAt

	updated, err := s.Banks.Update(ctx, created)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Chase Bank", updated.Name)
	assert.True(t, stamp.Equal(updated.CreatedAt))

	got, err := s.Banks.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, updated.Equal(*got))

	ghost := domain.Bank{ID: 99999, Name: "Ghost"}
	none, err := s.Banks.Update(ctx, ghost)
	require.NoError(t, err)
	assert.Nil(t, none)

	exists, err := s.Banks.Exists(ctx, 99999)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBankRepository_Delete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	created := createBank(t, s, domain.Bank{Name: "Chase"})

	ok, err := s.Banks.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	deleted, err := s.Banks.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := s.Banks.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err = s.Banks.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestBankRepository_ListAndFilters(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	createBank(t, s, domain.Bank{Name: "Discover", ReportsUnderEighteen: true})
	createBank(t, s, domain.Bank{Name: "Amex", RelationshipBank: false, TransferPointsValueCents: ptr(2.0), ReportsUnderEighteen: true})
	createBank(t, s, domain.Bank{Name: "Chase", RelationshipBank: true, TransferPointsValueCents: ptr(2.05)})
	createBank(t, s, domain.Bank{Name: "Capital One", TransferPointsValueCents: ptr(1.7)})
	createBank(t, s, domain.Bank{Name: "Bank of America", RelationshipBank: true})

	all, err := s.Banks.List(ctx, storage.Page{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Amex", "Bank of America", "Capital One", "Chase", "Discover"}, bankNames(all))

	first3, err := s.Banks.List(ctx, storage.Page{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, first3, 3)

	middle, err := s.Banks.List(ctx, storage.Page{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Capital One", "Chase"}, bankNames(middle))

	tail, err := s.Banks.List(ctx, storage.Page{Offset: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"Chase", "Discover"}, bankNames(tail))

	rel, err := s.Banks.ListRelationshipBanks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bank of America", "Chase"}, bankNames(rel))

	under18, err := s.Banks.ListReportingUnderEighteen(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Amex", "Discover"}, bankNames(under18))

	points, err := s.Banks.ListWithTransferPoints(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chase", "Amex", "Capital One"}, bankNames(points))
	for i := 1; i < len(points); i++ {
		assert.Greater(t, *points[i-1].TransferPointsValueCents, *points[i].TransferPointsValueCents)
	}
}

func TestBankRepository_EmptyListsAreNotNil(t *testing.T) {
	s := newTestStorage(t)
	banks, err := s.Banks.ListWithTransferPoints(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, banks)
	assert.Empty(t, banks)
}

func bankNames(banks []domain.Bank) []string {
	names := make([]string, len(banks))
	for i, b := range banks {
		names[i] = b.Name
	}
	return names
}
