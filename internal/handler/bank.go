// internal/handler/bank.go
package handler

import (
	"card-rewards/internal/domain"
	"card-rewards/internal/storage"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type BankHandler struct {
	store storage.BankStorage
}

func NewBankHandler(store storage.BankStorage) *BankHandler {
	return &BankHandler{store: store}
}

func (h *BankHandler) Register(g *gin.RouterGroup) {
	g.POST("/banks", h.Create)
	g.GET("/banks", h.List)
	g.GET("/banks/lookup", h.GetByName)
	g.GET("/banks/:id", h.Get)
	g.HEAD("/banks/:id", h.Exists)
	g.PUT("/banks/:id", h.Update)
	g.DELETE("/banks/:id", h.Delete)
}

// Create godoc
// @Summary Create a bank
// @Tags banks
// @Accept json
// @Produce json
// @Param request body BankRequest true "Bank"
// @Success 201 {object} domain.Bank
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/banks [post]
func (h *BankHandler) Create(c *gin.Context) {
	var req BankRequest
	if !bindJSON(c, &req) {
		return
	}

	bank, err := h.store.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		respondError(c, "create bank", err)
		return
	}
	zerolog.Ctx(c.Request.Context()).Info().Int64("bank_id", bank.ID).Str("name", bank.Name).Msg("bank created")
	render(c, http.StatusCreated, bank)
}

// List godoc
// @Summary List banks
// @Description Without a filter banks are paged by name. filter=relationship, under_eighteen
// @Description or transfer_points selects a subset instead.
// @Tags banks
// @Produce json
// @Param filter query string false "relationship | under_eighteen | transfer_points"
// @Param limit query int false "Page size, 0 for all"
// @Param offset query int false "Rows to skip"
// @Success 200 {array} domain.Bank
// @Failure 400 {object} map[string]string
// @Router /api/v1/banks [get]
func (h *BankHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		banks []domain.Bank
		err   error
	)
	switch filter := c.Query("filter"); filter {
	case "":
		page, ok := bindPage(c)
		if !ok {
			return
		}
		banks, err = h.store.List(ctx, page)
	case "relationship":
		banks, err = h.store.ListRelationshipBanks(ctx)
	case "under_eighteen":
		banks, err = h.store.ListReportingUnderEighteen(ctx)
	case "transfer_points":
		banks, err = h.store.ListWithTransferPoints(ctx)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown filter " + filter})
		return
	}
	if err != nil {
		respondError(c, "list banks", err)
		return
	}
	render(c, http.StatusOK, banks)
}

// GetByName godoc
// @Summary Find a bank by exact name
// @Param name query string true "Bank name, case sensitive"
// @Success 200 {object} domain.Bank
// @Failure 404 {object} map[string]string
// @Router /api/v1/banks/lookup [get]
func (h *BankHandler) GetByName(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name query param required"})
		return
	}
	bank, err := h.store.GetByName(c.Request.Context(), name)
	if err != nil {
		respondError(c, "find bank by name", err)
		return
	}
	if bank == nil {
		notFound(c, "bank")
		return
	}
	render(c, http.StatusOK, bank)
}

// Get godoc
// @Summary Get a bank
// @Param id path int true "Bank id"
// @Success 200 {object} domain.Bank
// @Failure 404 {object} map[string]string
// @Router /api/v1/banks/{id} [get]
func (h *BankHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	bank, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "find bank", err)
		return
	}
	if bank == nil {
		notFound(c, "bank")
		return
	}
	render(c, http.StatusOK, bank)
}

// Exists answers HEAD with 200 or 404 and no body.
func (h *BankHandler) Exists(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	found, err := h.store.Exists(c.Request.Context(), id)
	if err != nil {
		respondError(c, "bank exists", err)
		return
	}
	if !found {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}

// Update godoc
// @Summary Replace a bank
// @Accept json
// @Param id path int true "Bank id"
// @Param request body BankRequest true "Bank"
// @Success 200 {object} domain.Bank
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/banks/{id} [put]
func (h *BankHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req BankRequest
	if !bindJSON(c, &req) {
		return
	}

	bank := req.toDomain()
	bank.ID = id
	updated, err := h.store.Update(c.Request.Context(), bank)
	if err != nil {
		respondError(c, "update bank", err)
		return
	}
	if updated == nil {
		notFound(c, "bank")
		return
	}
	render(c, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a bank and everything that references it
// @Param id path int true "Bank id"
// @Success 200 {object} map[string]string{"status":"ok"}
// @Failure 404 {object} map[string]string
// @Router /api/v1/banks/{id} [delete]
func (h *BankHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, "delete bank", err)
		return
	}
	if !deleted {
		notFound(c, "bank")
		return
	}
	render(c, http.StatusOK, gin.H{"status": "ok"})
}

// === DTO ===

type BankRequest struct {
	Name                     string   `json:"name" validate:"required,notblank"`
	RelationshipBank         bool     `json:"relationship_bank"`
	TransferPointsValueCents *float64 `json:"transfer_points_value_cents" validate:"omitempty,gte=0"`
	ReportsUnderEighteen     bool     `json:"reports_under_eighteen"`
}

func (r BankRequest) toDomain() domain.Bank {
	return domain.Bank{
		Name:                     r.Name,
		RelationshipBank:         r.RelationshipBank,
		TransferPointsValueCents: r.TransferPointsValueCents,
		ReportsUnderEighteen:     r.ReportsUnderEighteen,
	}
}
