// internal/handler/user.go
package handler

import (
	"card-rewards/internal/domain"
	"card-rewards/internal/storage"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type UserHandler struct {
	store      storage.UserStorage
	authorized storage.AuthorizedUserStorage
}

func NewUserHandler(store storage.UserStorage, authorized storage.AuthorizedUserStorage) *UserHandler {
	return &UserHandler{store: store, authorized: authorized}
}

func (h *UserHandler) Register(g *gin.RouterGroup) {
	g.POST("/users", h.Create)
	g.POST("/users/profile", h.CreateProfile)
	g.GET("/users", h.List)
	g.GET("/users/lookup", h.GetByEmail)
	g.GET("/users/:id", h.Get)
	g.GET("/users/:id/profile", h.GetProfile)
	g.PUT("/users/:id", h.Update)
	g.DELETE("/users/:id", h.Delete)

	g.POST("/users/:id/spending", h.AddSpendingCategory)
	g.GET("/users/:id/spending", h.SpendingCategories)
	g.DELETE("/users/:id/spending/:spendingID", h.RemoveSpendingCategory)

	g.POST("/users/:id/authorized-users", h.AddAuthorizedUserInfo)
	g.DELETE("/users/:id/authorized-users/:infoID", h.DeleteAuthorizedUserInfo)
}

// Create godoc
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body UserRequest true "User"
// @Success 201 {object} domain.User
// @Failure 400 {object} map[string]string
// @Router /api/v1/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req UserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.store.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		respondError(c, "create user", err)
		return
	}
	render(c, http.StatusCreated, user)
}

// CreateProfile godoc
// @Summary Create a user with spending and authorized-user records
// @Description All rows are written in one transaction; nothing is kept on failure.
// @Tags users
// @Accept json
// @Produce json
// @Param request body ProfileRequest true "Profile"
// @Success 201 {object} domain.UserProfile
// @Failure 400 {object} map[string]string
// @Router /api/v1/users/profile [post]
func (h *UserHandler) CreateProfile(c *gin.Context) {
	var req ProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile := domain.UserProfile{
		User:               req.User.toDomain(),
		SpendingCategories: make([]domain.SpendingCategoryUser, 0, len(req.SpendingCategories)),
		AuthorizedUsers:    make([]domain.AuthorizedUserInfo, 0, len(req.AuthorizedUsers)),
	}
	for _, s := range req.SpendingCategories {
		profile.SpendingCategories = append(profile.SpendingCategories, s.toDomain(0))
	}
	for _, a := range req.AuthorizedUsers {
		profile.AuthorizedUsers = append(profile.AuthorizedUsers, a.toDomain(0))
	}

	created, err := h.store.CreateProfile(c.Request.Context(), profile)
	if err != nil {
		respondError(c, "create user profile", err)
		return
	}
	zerolog.Ctx(c.Request.Context()).Info().Int64("user_id", created.User.ID).Msg("user profile created")
	render(c, http.StatusCreated, created)
}

// List godoc
// @Summary List users by id
// @Param limit query int false "Page size, 0 for all"
// @Param offset query int false "Rows to skip"
// @Success 200 {array} domain.User
// @Router /api/v1/users [get]
func (h *UserHandler) List(c *gin.Context) {
	page, ok := bindPage(c)
	if !ok {
		return
	}
	users, err := h.store.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, "list users", err)
		return
	}
	render(c, http.StatusOK, users)
}

// GetByEmail godoc
// @Summary Find a user by email
// @Param email query string true "Email"
// @Success 200 {object} domain.User
// @Failure 404 {object} map[string]string
// @Router /api/v1/users/lookup [get]
func (h *UserHandler) GetByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query param required"})
		return
	}
	user, err := h.store.GetByEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, "find user by email", err)
		return
	}
	if user == nil {
		notFound(c, "user")
		return
	}
	render(c, http.StatusOK, user)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "find user", err)
		return
	}
	if user == nil {
		notFound(c, "user")
		return
	}
	render(c, http.StatusOK, user)
}

// GetProfile godoc
// @Summary Get a user with spending and authorized-user records
// @Param id path int true "User id"
// @Success 200 {object} domain.UserProfile
// @Failure 404 {object} map[string]string
// @Router /api/v1/users/{id}/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	profile, err := h.store.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, "get user profile", err)
		return
	}
	if profile == nil {
		notFound(c, "user")
		return
	}
	render(c, http.StatusOK, gin.H{
		"user":                profile.User,
		"spending_categories": profile.SpendingCategories,
		"authorized_users":    profile.AuthorizedUsers,
		"total_spend":         profile.TotalSpend(),
	})
}

// Update godoc
// @Summary Replace a user
// @Param id path int true "User id"
// @Param request body UserRequest true "User"
// @Success 200 {object} domain.User
// @Failure 404 {object} map[string]string
// @Router /api/v1/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UserRequest
	if !bindJSON(c, &req) {
		return
	}

	user := req.toDomain()
	user.ID = id
	updated, err := h.store.Update(c.Request.Context(), user)
	if err != nil {
		respondError(c, "update user", err)
		return
	}
	if updated == nil {
		notFound(c, "user")
		return
	}
	render(c, http.StatusOK, updated)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, "delete user", err)
		return
	}
	if !deleted {
		notFound(c, "user")
		return
	}
	render(c, http.StatusOK, gin.H{"status": "ok"})
}

// AddSpendingCategory godoc
// @Summary Record a user's spend in a category
// @Param id path int true "User id"
// @Param request body SpendingRequest true "Spend"
// @Success 201 {object} domain.SpendingCategoryUser
// @Failure 400 {object} map[string]string
// @Router /api/v1/users/{id}/spending [post]
func (h *UserHandler) AddSpendingCategory(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req SpendingRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.store.AddSpendingCategory(c.Request.Context(), req.toDomain(userID))
	if err != nil {
		respondError(c, "add spending category", err)
		return
	}
	if created == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "spending category was not stored"})
		return
	}
	render(c, http.StatusCreated, created)
}

func (h *UserHandler) SpendingCategories(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	spending, err := h.store.SpendingCategoriesByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "spending categories by user", err)
		return
	}
	render(c, http.StatusOK, spending)
}

func (h *UserHandler) RemoveSpendingCategory(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	id, ok := pathID(c, "spendingID")
	if !ok {
		return
	}

	spending, err := h.store.SpendingCategoriesByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "spending categories by user", err)
		return
	}
	if !slices.ContainsFunc(spending, func(s domain.SpendingCategoryUser) bool { return s.ID == id }) {
		notFound(c, "spending category")
		return
	}

	removed, err := h.store.RemoveSpendingCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, "remove spending category", err)
		return
	}
	if !removed {
		notFound(c, "spending category")
		return
	}
	render(c, http.StatusOK, gin.H{"status": "ok"})
}

// AddAuthorizedUserInfo godoc
// @Summary Record that the user is an authorized user with a bank
// @Param id path int true "User id"
// @Param request body AuthorizedUserRequest true "Record"
// @Success 201 {object} domain.AuthorizedUserInfo
// @Failure 400 {object} map[string]string
// @Router /api/v1/users/{id}/authorized-users [post]
func (h *UserHandler) AddAuthorizedUserInfo(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req AuthorizedUserRequest
	if !bindJSON(c, &req) {
		return
	}

	info, err := h.store.AddAuthorizedUserInfo(c.Request.Context(), req.toDomain(userID))
	if err != nil {
		respondError(c, "add authorized user info", err)
		return
	}
	render(c, http.StatusCreated, info)
}

func (h *UserHandler) DeleteAuthorizedUserInfo(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	id, ok := pathID(c, "infoID")
	if !ok {
		return
	}

	info, err := h.authorized.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "find authorized user info", err)
		return
	}
	if info == nil || info.UserID != userID {
		notFound(c, "authorized user info")
		return
	}

	deleted, err := h.store.DeleteAuthorizedUserInfo(c.Request.Context(), id)
	if err != nil {
		respondError(c, "delete authorized user info", err)
		return
	}
	if !deleted {
		notFound(c, "authorized user info")
		return
	}
	render(c, http.StatusOK, gin.H{"status": "ok"})
}

// === DTO ===

type UserRequest struct {
	Name         string                   `json:"name" validate:"required,notblank"`
	Email        string                   `json:"email" validate:"required,email"`
	CreditScore  domain.CreditScoreRating `json:"credit_score" validate:"enum"`
	AnnualIncome int                      `json:"annual_income" validate:"gte=0"`
}

func (r UserRequest) toDomain() domain.User {
	return domain.User{
		Name:         r.Name,
		Email:        r.Email,
		CreditScore:  r.CreditScore,
		AnnualIncome: r.AnnualIncome,
	}
}

type SpendingRequest struct {
	Category  domain.SpendingCategory `json:"category" validate:"enum"`
	UserSpend float64                 `json:"user_spend" validate:"gte=0"`
}

func (r SpendingRequest) toDomain(userID int64) domain.SpendingCategoryUser {
	return domain.SpendingCategoryUser{UserID: userID, Category: r.Category, UserSpend: r.UserSpend}
}

type ProfileRequest struct {
	User               UserRequest             `json:"user"`
	SpendingCategories []SpendingRequest       `json:"spending_categories" validate:"dive"`
	AuthorizedUsers    []AuthorizedUserRequest `json:"authorized_users" validate:"dive"`
}
