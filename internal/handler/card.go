// internal/handler/card.go
package handler

import (
	"card-rewards/internal/domain"
	"card-rewards/internal/storage"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type CardHandler struct {
	store storage.CardStorage
}

func NewCardHandler(store storage.CardStorage) *CardHandler {
	return &CardHandler{store: store}
}

func (h *CardHandler) Register(g *gin.RouterGroup) {
	g.POST("/cards", h.Create)
	g.GET("/cards", h.List)
	g.GET("/cards/:id", h.Get)
	g.PUT("/cards/:id", h.Update)
	g.DELETE("/cards/:id", h.Delete)

	g.POST("/cards/:id/categories", h.AddSpendingCategory)
	g.GET("/cards/:id/categories", h.SpendingCategories)
	g.DELETE("/cards/:id/categories/:categoryID", h.RemoveSpendingCategory)
}

// Create godoc
// @Summary Create a card
// @Tags cards
// @Accept json
// @Produce json
// @Param request body CardRequest true "Card"
// @Success 201 {object} domain.Card
// @Failure 400 {object} map[string]string
// @Router /api/v1/cards [post]
func (h *CardHandler) Create(c *gin.Context) {
	var req CardRequest
	if !bindJSON(c, &req) {
		return
	}

	card, err := h.store.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		respondError(c, "create card", err)
		return
	}
	zerolog.Ctx(c.Request.Context()).Info().
		Int64("card_id", card.ID).
		Int64("bank_id", card.BankID).
		Msg("card created")
	render(c, http.StatusCreated, card)
}

// List godoc
// @Summary List or filter cards
// @Description The first filter present wins, in this order: bank_id, type, reward_structure,
// @Description no_annual_fee, signup_bonus, min_fee/max_fee. With none, cards are paged newest first.
// @Tags cards
// @Produce json
// @Param bank_id query int false "Issuing bank"
// @Param type query string false "student | secured | business | general"
// @Param reward_structure query string false "points | cashback"
// @Param no_annual_fee query bool false "Only cards without an annual fee"
// @Param signup_bonus query bool false "Only cards with a signup bonus, largest first"
// @Param min_fee query int false "Inclusive lower fee bound"
// @Param max_fee query int false "Inclusive upper fee bound"
// @Param limit query int false "Page size, 0 for all"
// @Param offset query int false "Rows to skip"
// @Success 200 {array} domain.Card
// @Failure 400 {object} map[string]string
// @Router /api/v1/cards [get]
func (h *CardHandler) List(c *gin.Context) {
	var q CardQuery
	if !bindQuery(c, &q) {
		return
	}
	ctx := c.Request.Context()

	var (
		cards []domain.Card
		err   error
	)
	switch {
	case q.BankID > 0:
		cards, err = h.store.ByBank(ctx, q.BankID)
	case q.Type != "":
		t, perr := domain.ParseCardType(q.Type)
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": perr.Error()})
			return
		}
		cards, err = h.store.ByType(ctx, t)
	case q.RewardStructure != "":
		rs, perr := domain.ParseRewardStructure(q.RewardStructure)
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": perr.Error()})
			return
		}
		cards, err = h.store.ByRewardStructure(ctx, rs)
	case q.NoAnnualFee:
		cards, err = h.store.WithNoAnnualFee(ctx)
	case q.SignupBonus:
		cards, err = h.store.WithSignupBonus(ctx)
	case q.MinFee != nil || q.MaxFee != nil:
		minFee := 0
		if q.MinFee != nil {
			minFee = *q.MinFee
		}
		if q.MaxFee != nil && *q.MaxFee < minFee {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_fee must not be below min_fee"})
			return
		}
		cards, err = h.store.ByFeeRange(ctx, minFee, q.MaxFee)
	default:
		cards, err = h.store.List(ctx, storage.Page{Limit: q.Limit, Offset: q.Offset})
	}
	if err != nil {
		respondError(c, "list cards", err)
		return
	}
	render(c, http.StatusOK, cards)
}

// Get godoc
// @Summary Get a card
// @Param id path int true "Card id"
// @Success 200 {object} domain.Card
// @Failure 404 {object} map[string]string
// @Router /api/v1/cards/{id} [get]
func (h *CardHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	card, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "find card", err)
		return
	}
	if card == nil {
		notFound(c, "card")
		return
	}
	render(c, http.StatusOK, card)
}

// Update godoc
// @Summary Replace a card
// @Param id path int true "Card id"
// @Param request body CardRequest true "Card"
// @Success 200 {object} domain.Card
// @Failure 404 {object} map[string]string
// @Router /api/v1/cards/{id} [put]
func (h *CardHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req CardRequest
	if !bindJSON(c, &req) {
		return
	}

	card := req.toDomain()
	card.ID = id
	updated, err := h.store.Update(c.Request.Context(), card)
	if err != nil {
		respondError(c, "update card", err)
		return
	}
	if updated == nil {
		notFound(c, "card")
		return
	}
	render(c, http.StatusOK, updated)
}

func (h *CardHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, "delete card", err)
		return
	}
	if !deleted {
		notFound(c, "card")
		return
	}
	render(c, http.StatusOK, gin.H{"status": "ok"})
}

// AddSpendingCategory godoc
// @Summary Add a category bonus to a card
// @Param id path int true "Card id"
// @Param request body CardCategoryRequest true "Bonus"
// @Success 201 {object} domain.SpendingCategoryInfo
// @Failure 400 {object} map[string]string
// @Router /api/v1/cards/{id}/categories [post]
func (h *CardHandler) AddSpendingCategory(c *gin.Context) {
	cardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req CardCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	info, err := h.store.AddSpendingCategory(c.Request.Context(), domain.SpendingCategoryInfo{
		CardID:            cardID,
		Category:          req.Category,
		Rate:              req.Rate,
		Cap:               req.Cap,
		QuarterlyRotating: req.QuarterlyRotating,
	})
	if err != nil {
		respondError(c, "add card spending category", err)
		return
	}
	render(c, http.StatusCreated, info)
}

// SpendingCategories lists a card's bonuses, highest rate first.
func (h *CardHandler) SpendingCategories(c *gin.Context) {
	cardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	infos, err := h.store.SpendingCategories(c.Request.Context(), cardID)
	if err != nil {
		respondError(c, "card spending categories", err)
		return
	}
	render(c, http.StatusOK, infos)
}

// RemoveSpendingCategory godoc
// @Summary Remove a category bonus from a card
// @Param id path int true "Card id"
// @Param categoryID path int true "Bonus id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/cards/{id}/categories/{categoryID} [delete]
func (h *CardHandler) RemoveSpendingCategory(c *gin.Context) {
	cardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	id, ok := pathID(c, "categoryID")
	if !ok {
		return
	}

	// the bonus must belong to the card named in the path
	infos, err := h.store.SpendingCategories(c.Request.Context(), cardID)
	if err != nil {
		respondError(c, "card spending categories", err)
		return
	}
	if !slices.ContainsFunc(infos, func(s domain.SpendingCategoryInfo) bool { return s.ID == id }) {
		notFound(c, "card spending category")
		return
	}

	removed, err := h.store.RemoveSpendingCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, "remove card spending category", err)
		return
	}
	if !removed {
		notFound(c, "card spending category")
		return
	}
	render(c, http.StatusOK, gin.H{"status": "ok"})
}

// === DTO ===

type CardRequest struct {
	Name                  string                 `json:"name" validate:"required,notblank"`
	BankID                int64                  `json:"bank_id" validate:"required,gt=0"`
	CardType              domain.CardType        `json:"card_type" validate:"enum"`
	SubMaxValue           *int                   `json:"sub_max_value" validate:"omitempty,gte=0"`
	SubDescription        *string                `json:"sub_description"`
	AnnualFee             int                    `json:"annual_fee" validate:"gte=0"`
	ForeignTransactionFee *float64               `json:"foreign_transaction_fee" validate:"omitempty,gte=0"`
	RewardStructure       domain.RewardStructure `json:"reward_structure" validate:"enum"`
	FeeCredits            *string                `json:"fee_credits"`
	OtherBenefits         *string                `json:"other_benefits"`
}

func (r CardRequest) toDomain() domain.Card {
	return domain.Card{
		Name:                  r.Name,
		BankID:                r.BankID,
		CardType:              r.CardType,
		SubMaxValue:           r.SubMaxValue,
		SubDescription:        r.SubDescription,
		AnnualFee:             r.AnnualFee,
		ForeignTransactionFee: r.ForeignTransactionFee,
		RewardStructure:       r.RewardStructure,
		FeeCredits:            r.FeeCredits,
		OtherBenefits:         r.OtherBenefits,
	}.WithDefaults()
}

type CardQuery struct {
	BankID          int64  `form:"bank_id" validate:"gte=0"`
	Type            string `form:"type"`
	RewardStructure string `form:"reward_structure"`
	NoAnnualFee     bool   `form:"no_annual_fee"`
	SignupBonus     bool   `form:"signup_bonus"`
	MinFee          *int   `form:"min_fee" validate:"omitempty,gte=0"`
	MaxFee          *int   `form:"max_fee" validate:"omitempty,gte=0"`
	Limit           int    `form:"limit" validate:"gte=0"`
	Offset          int    `form:"offset" validate:"gte=0"`
}

type CardCategoryRequest struct {
	Category          domain.SpendingCategory `json:"category" validate:"enum"`
	Rate              float64                 `json:"rate" validate:"gte=0"`
	Cap               *float64                `json:"cap" validate:"omitempty,gte=0"`
	QuarterlyRotating bool                    `json:"quarterly_rotating"`
}
