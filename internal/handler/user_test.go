package handler

import (
	"net/http"
	"testing"

	"card-rewards/internal/domain"
	"card-rewards/internal/storage"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_Create(t *testing.T) {
	api := newTestAPI(t)
	in := domain.User{Name: "Ann", Email: "ann@example.com", CreditScore: domain.CreditGood, AnnualIncome: 52000}
	out := in
	out.ID = 1
	api.users.On("Create", anyCtx, in).Return(out, nil)

	w := api.do(t, http.MethodPost, "/api/v1/users", map[string]any{
		"name": "Ann", "email": "ann@example.com", "credit_score": "good", "annual_income": 52000,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(1), decode[domain.User](t, w).ID)

	w = api.do(t, http.MethodPost, "/api/v1/users", map[string]any{
		"name": "Ann", "email": "nope", "credit_score": "good",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid input: Email must be a valid email address", errorBody(t, w))

	w = api.do(t, http.MethodPost, "/api/v1/users", map[string]any{
		"name": "Ann", "email": "ann@example.com", "credit_score": "stellar",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_StoreValidationError(t *testing.T) {
	api := newTestAPI(t)
	storeErr := domain.User{Name: "Ann", Email: "ann@example.com"}.Validate()
	require.ErrorIs(t, storeErr, domain.ErrInvalid)
	api.users.On("Update", anyCtx, mock.AnythingOfType("domain.User")).Return(nil, storeErr)

	w := api.do(t, http.MethodPut, "/api/v1/users/3", map[string]any{
		"name": "Ann", "email": "ann@example.com", "credit_score": "fair",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorBody(t, w), "CreditScore")
}

func TestUserHandler_Lookup(t *testing.T) {
	api := newTestAPI(t)
	api.users.On("GetByEmail", anyCtx, "ann@example.com").Return(&domain.User{ID: 1, Email: "ann@example.com", CreditScore: domain.CreditGood}, nil)
	api.users.On("GetByEmail", anyCtx, "bob@example.com").Return(nil, nil)
	api.users.On("GetByID", anyCtx, int64(1)).Return(&domain.User{ID: 1, CreditScore: domain.CreditNone}, nil)
	api.users.On("GetByID", anyCtx, int64(2)).Return(nil, nil)
	api.users.On("List", anyCtx, storage.Page{Offset: 10}).Return([]domain.User{}, nil)

	assert.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/v1/users/lookup?email=ann@example.com", nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodGet, "/api/v1/users/lookup?email=bob@example.com", nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(t, http.MethodGet, "/api/v1/users/lookup", nil).Code)
	assert.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/v1/users/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodGet, "/api/v1/users/2", nil).Code)

	w := api.do(t, http.MethodGet, "/api/v1/users?offset=10", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUserHandler_UpdateDelete(t *testing.T) {
	api := newTestAPI(t)
	api.users.On("Update", anyCtx, domain.User{ID: 5, Name: "Ann", Email: "ann@example.com", CreditScore: domain.CreditFair}).
		Return(nil, nil)
	api.users.On("Delete", anyCtx, int64(5)).Return(false, nil)
	api.users.On("Delete", anyCtx, int64(6)).Return(true, nil)

	w := api.do(t, http.MethodPut, "/api/v1/users/5", map[string]any{
		"name": "Ann", "email": "ann@example.com", "credit_score": "fair",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodDelete, "/api/v1/users/5", nil).Code)
	assert.Equal(t, http.StatusOK, api.do(t, http.MethodDelete, "/api/v1/users/6", nil).Code)
}

func TestUserHandler_CreateProfile(t *testing.T) {
	api := newTestAPI(t)
	in := domain.UserProfile{
		User: domain.User{Name: "Ann", Email: "ann@example.com", CreditScore: domain.CreditExcellent},
		SpendingCategories: []domain.SpendingCategoryUser{
			{Category: domain.CategoryGroceries, UserSpend: 400},
		},
		AuthorizedUsers: []domain.AuthorizedUserInfo{
			{BankID: 2, AddAfterAgeEighteen: true},
		},
	}
	out := in
	out.User.ID = 1
	api.users.On("CreateProfile", anyCtx, in).Return(out, nil)

	w := api.do(t, http.MethodPost, "/api/v1/users/profile", map[string]any{
		"user":                map[string]any{"name": "Ann", "email": "ann@example.com", "credit_score": "excellent"},
		"spending_categories": []map[string]any{{"category": "groceries", "user_spend": 400}},
		"authorized_users":    []map[string]any{{"bank_id": 2, "add_after_age_eighteen": true}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(1), decode[domain.UserProfile](t, w).User.ID)
}

func TestUserHandler_CreateProfileRejected(t *testing.T) {
	api := newTestAPI(t)
	pgErr := &pgconn.PgError{
		Code:           pgerrcode.ForeignKeyViolation,
		TableName:      "authorized_user_info",
		ConstraintName: "authorized_user_info_bank_id_fkey",
	}
	api.users.On("CreateProfile", anyCtx, mock.AnythingOfType("domain.UserProfile")).Return(domain.UserProfile{}, pgErr)

	w := api.do(t, http.MethodPost, "/api/v1/users/profile", map[string]any{
		"user":             map[string]any{"name": "Ann", "email": "ann@example.com", "credit_score": "good"},
		"authorized_users": []map[string]any{{"bank_id": 404}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "The referenced Bank does not exist", errorBody(t, w))

	w = api.do(t, http.MethodPost, "/api/v1/users/profile", map[string]any{
		"user":                map[string]any{"name": "Ann", "email": "ann@example.com", "credit_score": "good"},
		"spending_categories": []map[string]any{{"category": "gas", "user_spend": -3}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid input: UserSpend must be at least 0", errorBody(t, w))
}

func TestUserHandler_GetProfile(t *testing.T) {
	api := newTestAPI(t)
	api.users.On("GetProfile", anyCtx, int64(1)).Return(&domain.UserProfile{
		User: domain.User{ID: 1, Name: "Ann", CreditScore: domain.CreditGood},
		SpendingCategories: []domain.SpendingCategoryUser{
			{ID: 1, UserID: 1, Category: domain.CategoryDining, UserSpend: 120},
			{ID: 2, UserID: 1, Category: domain.CategoryTravel, UserSpend: 80.5},
		},
		AuthorizedUsers: []domain.AuthorizedUserInfo{},
	}, nil)
	api.users.On("GetProfile", anyCtx, int64(2)).Return(nil, nil)

	w := api.do(t, http.MethodGet, "/api/v1/users/1/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, 200.5, body["total_spend"])
	assert.Len(t, body["spending_categories"], 2)
	assert.Equal(t, []any{}, body["authorized_users"])

	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodGet, "/api/v1/users/2/profile", nil).Code)
}

func TestUserHandler_SpendingAndAuthorizedUsers(t *testing.T) {
	api := newTestAPI(t)
	spend := domain.SpendingCategoryUser{UserID: 3, Category: domain.CategoryGas, UserSpend: 60}
	created := spend
	created.ID = 9
	api.users.On("AddSpendingCategory", anyCtx, spend).Return(&created, nil)
	api.users.On("SpendingCategoriesByUser", anyCtx, int64(3)).Return([]domain.SpendingCategoryUser{created}, nil)
	api.users.On("RemoveSpendingCategory", anyCtx, int64(9)).Return(true, nil)

	info := domain.AuthorizedUserInfo{UserID: 3, BankID: 2}
	stored := info
	stored.ID = 4
	api.users.On("AddAuthorizedUserInfo", anyCtx, info).Return(stored, nil)
	api.authorizedUsers.On("GetByID", anyCtx, int64(4)).Return(&stored, nil)
	api.authorizedUsers.On("GetByID", anyCtx, int64(5)).Return(nil, nil)
	api.users.On("DeleteAuthorizedUserInfo", anyCtx, int64(4)).Return(true, nil)

	w := api.do(t, http.MethodPost, "/api/v1/users/3/spending", map[string]any{"category": "gas", "user_spend": 60})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(9), decode[domain.SpendingCategoryUser](t, w).ID)

	w = api.do(t, http.MethodGet, "/api/v1/users/3/spending", nil)
	assert.Len(t, decode[[]domain.SpendingCategoryUser](t, w), 1)

	assert.Equal(t, http.StatusOK, api.do(t, http.MethodDelete, "/api/v1/users/3/spending/9", nil).Code)

	// user_id in the body is ignored in favour of the path
	w = api.do(t, http.MethodPost, "/api/v1/users/3/authorized-users", map[string]any{"user_id": 77, "bank_id": 2})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(4), decode[domain.AuthorizedUserInfo](t, w).ID)

	assert.Equal(t, http.StatusOK, api.do(t, http.MethodDelete, "/api/v1/users/3/authorized-users/4", nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodDelete, "/api/v1/users/3/authorized-users/5", nil).Code)
}

func TestUserHandler_NestedDeletesStayWithinUser(t *testing.T) {
	api := newTestAPI(t)
	api.users.On("SpendingCategoriesByUser", anyCtx, int64(1)).Return([]domain.SpendingCategoryUser{
		{ID: 3, UserID: 1, Category: domain.CategoryDining, UserSpend: 10},
	}, nil)
	api.authorizedUsers.On("GetByID", anyCtx, int64(8)).Return(&domain.AuthorizedUserInfo{ID: 8, UserID: 2, BankID: 1}, nil)

	// spending row 77 and authorized-user row 8 belong to someone else
	w := api.do(t, http.MethodDelete, "/api/v1/users/1/spending/77", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "spending category not found", errorBody(t, w))

	w = api.do(t, http.MethodDelete, "/api/v1/users/1/authorized-users/8", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "authorized user info not found", errorBody(t, w))

	api.users.AssertNotCalled(t, "RemoveSpendingCategory", anyCtx, mock.Anything)
	api.users.AssertNotCalled(t, "DeleteAuthorizedUserInfo", anyCtx, mock.Anything)
}
