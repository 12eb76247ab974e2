package postgres

import (
	"testing"

	"card-rewards/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageClause(t *testing.T) {
	tests := []struct {
		name     string
		page     storage.Page
		argc     int
		wantSQL  string
		wantArgs []any
	}{
		{name: "no page", page: storage.Page{}, wantSQL: "", wantArgs: nil},
		{name: "limit only", page: storage.Page{Limit: 3}, wantSQL: " LIMIT $1 OFFSET $2", wantArgs: []any{3, 0}},
		{name: "limit and offset", page: storage.Page{Limit: 2, Offset: 2}, wantSQL: " LIMIT $1 OFFSET $2", wantArgs: []any{2, 2}},
		{name: "offset only", page: storage.Page{Offset: 4}, wantSQL: " OFFSET $1", wantArgs: []any{4}},
		{name: "after existing args", page: storage.Page{Limit: 5, Offset: 1}, argc: 2, wantSQL: " LIMIT $3 OFFSET $4", wantArgs: []any{5, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := pageClause(tt.page, tt.argc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestPageClause_Negative(t *testing.T) {
	_, _, err := pageClause(storage.Page{Limit: -1}, 0)
	assert.ErrorIs(t, err, errInvalidPage)

	_, _, err = pageClause(storage.Page{Offset: -3}, 0)
	assert.ErrorIs(t, err, errInvalidPage)
}
