// internal/handler/authorized_user.go
package handler

import (
	"card-rewards/internal/domain"
	"card-rewards/internal/storage"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthorizedUserHandler struct {
	store storage.AuthorizedUserStorage
}

func NewAuthorizedUserHandler(store storage.AuthorizedUserStorage) *AuthorizedUserHandler {
	return &AuthorizedUserHandler{store: store}
}

func (h *AuthorizedUserHandler) Register(g *gin.RouterGroup) {
	g.POST("/authorized-users", h.Add)
	g.GET("/authorized-users", h.List)
	g.DELETE("/authorized-users", h.RemoveAllByUser)
	g.GET("/authorized-users/count", h.Count)
	g.GET("/authorized-users/latest", h.ByUserAndBank)
	g.GET("/authorized-users/:id", h.Get)
	g.HEAD("/authorized-users/:id", h.Exists)
	g.PUT("/authorized-users/:id", h.Update)
	g.DELETE("/authorized-users/:id", h.Remove)
}

// Add godoc
// @Summary Add an authorized-user record
// @Tags authorized-users
// @Accept json
// @Produce json
// @Param request body AuthorizedUserRequest true "Record"
// @Success 201 {object} domain.AuthorizedUserInfo
// @Failure 400 {object} map[string]string
// @Router /api/v1/authorized-users [post]
func (h *AuthorizedUserHandler) Add(c *gin.Context) {
	var req AuthorizedUserRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: UserID is required"})
		return
	}

	info, err := h.store.Add(c.Request.Context(), req.toDomain(0))
	if err != nil {
		respondError(c, "add authorized user info", err)
		return
	}
	render(c, http.StatusCreated, info)
}

// List godoc
// @Summary List authorized-user records, newest first
// @Description user_id or bank_id narrows the list; without either the records are paged.
// @Param user_id query int false "User"
// @Param bank_id query int false "Bank"
// @Param limit query int false "Page size, 0 for all"
// @Param offset query int false "Rows to skip"
// @Success 200 {array} domain.AuthorizedUserInfo
// @Router /api/v1/authorized-users [get]
func (h *AuthorizedUserHandler) List(c *gin.Context) {
	var q AuthorizedUserQuery
	if !bindQuery(c, &q) {
		return
	}
	ctx := c.Request.Context()

	var (
		infos []domain.AuthorizedUserInfo
		err   error
	)
	switch {
	case q.UserID > 0:
		infos, err = h.store.AllByUser(ctx, q.UserID)
	case q.BankID > 0:
		infos, err = h.store.AllByBank(ctx, q.BankID)
	default:
		infos, err = h.store.List(ctx, storage.Page{Limit: q.Limit, Offset: q.Offset})
	}
	if err != nil {
		respondError(c, "list authorized user info", err)
		return
	}
	render(c, http.StatusOK, infos)
}

// ByUserAndBank godoc
// @Summary Most recent record for a user and bank
// @Param user_id query int true "User"
// @Param bank_id query int true "Bank"
// @Success 200 {object} domain.AuthorizedUserInfo
// @Failure 404 {object} map[string]string
// @Router /api/v1/authorized-users/latest [get]
func (h *AuthorizedUserHandler) ByUserAndBank(c *gin.Context) {
	var q AuthorizedUserQuery
	if !bindQuery(c, &q) {
		return
	}
	if q.UserID == 0 || q.BankID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and bank_id query params required"})
		return
	}
	info, err := h.store.ByUserAndBank(c.Request.Context(), q.UserID, q.BankID)
	if err != nil {
		respondError(c, "authorized user info by user and bank", err)
		return
	}
	if info == nil {
		notFound(c, "authorized user info")
		return
	}
	render(c, http.StatusOK, info)
}

func (h *AuthorizedUserHandler) Count(c *gin.Context) {
	n, err := h.store.Count(c.Request.Context())
	if err != nil {
		respondError(c, "count authorized user info", err)
		return
	}
	render(c, http.StatusOK, gin.H{"count": n})
}

func (h *AuthorizedUserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	info, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "find authorized user info", err)
		return
	}
	if info == nil {
		notFound(c, "authorized user info")
		return
	}
	render(c, http.StatusOK, info)
}

func (h *AuthorizedUserHandler) Exists(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	found, err := h.store.Exists(c.Request.Context(), id)
	if err != nil {
		respondError(c, "authorized user info exists", err)
		return
	}
	if !found {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}

func (h *AuthorizedUserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req AuthorizedUserRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: UserID is required"})
		return
	}

	info := req.toDomain(0)
	info.ID = id
	updated, err := h.store.Update(c.Request.Context(), info)
	if err != nil {
		respondError(c, "update authorized user info", err)
		return
	}
	if updated == nil {
		notFound(c, "authorized user info")
		return
	}
	render(c, http.StatusOK, updated)
}

func (h *AuthorizedUserHandler) Remove(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	removed, err := h.store.Remove(c.Request.Context(), id)
	if err != nil {
		respondError(c, "remove authorized user info", err)
		return
	}
	if !removed {
		notFound(c, "authorized user info")
		return
	}
	render(c, http.StatusOK, gin.H{"status": "ok"})
}

// RemoveAllByUser godoc
// @Summary Remove every authorized-user record of a user
// @Param user_id query int true "User"
// @Success 200 {object} map[string]int64{"removed":0}
// @Router /api/v1/authorized-users [delete]
func (h *AuthorizedUserHandler) RemoveAllByUser(c *gin.Context) {
	var q AuthorizedUserQuery
	if !bindQuery(c, &q) {
		return
	}
	if q.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id query param required"})
		return
	}
	n, err := h.store.RemoveAllByUser(c.Request.Context(), q.UserID)
	if err != nil {
		respondError(c, "remove authorized user info by user", err)
		return
	}
	render(c, http.StatusOK, gin.H{"removed": n})
}

// === DTO ===

// AuthorizedUserRequest.UserID is ignored on routes that carry the user in the path.
type AuthorizedUserRequest struct {
	UserID              int64 `json:"user_id" validate:"gte=0"`
	BankID              int64 `json:"bank_id" validate:"required,gt=0"`
	AddAfterAgeEighteen bool  `json:"add_after_age_eighteen"`
}

func (r AuthorizedUserRequest) toDomain(userID int64) domain.AuthorizedUserInfo {
	if userID == 0 {
		userID = r.UserID
	}
	return domain.AuthorizedUserInfo{UserID: userID, BankID: r.BankID, AddAfterAgeEighteen: r.AddAfterAgeEighteen}
}

type AuthorizedUserQuery struct {
	UserID int64 `form:"user_id" validate:"gte=0"`
	BankID int64 `form:"bank_id" validate:"gte=0"`
	Limit  int   `form:"limit" validate:"gte=0"`
	Offset int   `form:"offset" validate:"gte=0"`
}
