// internal/handler/handler.go
package handler

import (
	"card-rewards/internal/domain"
	"card-rewards/internal/middleware"
	"card-rewards/internal/sqlerr"
	"card-rewards/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	val "card-rewards/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the stores served by the API.
type Deps struct {
	Banks           storage.BankStorage
	Cards           storage.CardStorage
	Users           storage.UserStorage
	AuthorizedUsers storage.AuthorizedUserStorage
	DB              Pinger
}

// NewRouter wires middleware, /health and every /api/v1 route.
func NewRouter(d Deps, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log), middleware.Recovery())

	r.GET("/health", NewHealthHandler(d.DB).Check)

	v1 := r.Group("/api/v1")
	NewBankHandler(d.Banks).Register(v1)
	NewCardHandler(d.Cards).Register(v1)
	NewUserHandler(d.Users, d.AuthorizedUsers).Register(v1)
	NewAuthorizedUserHandler(d.AuthorizedUsers).Register(v1)
	return r
}

// respondError maps a store or validation error onto a response. Anything
// that is not a client mistake is logged and reported as 500.
func respondError(c *gin.Context, op string, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(verr.Err)})
		return
	}

	switch sqlerr.ErrCode(err) {
	case sqlerr.UniqueViolation:
		c.JSON(http.StatusConflict, gin.H{"error": sqlerr.Message(err)})
	case sqlerr.ForeignKeyViolation, sqlerr.NotNullViolation, sqlerr.CheckViolation:
		c.JSON(http.StatusBadRequest, gin.H{"error": sqlerr.Message(err)})
	default:
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("op", op).Msg("request failed")
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// render encodes v before writing anything, so a value that cannot be
// encoded becomes a 500 instead of a truncated 200.
func render(c *gin.Context, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		respondError(c, "encode response", err)
		return
	}
	c.Data(status, "application/json; charset=utf-8", body)
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return 0, false
	}
	return id, true
}

// bindJSON decodes and validates a request body, answering 400 on failure.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		msg := "Invalid JSON"
		if errors.Is(err, domain.ErrUnknownEnumValue) {
			msg = err.Error()
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return false
	}
	if err := validateStruct(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func bindQuery(c *gin.Context, v any) bool {
	if err := c.ShouldBindQuery(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return false
	}
	if err := validateStruct(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func bindPage(c *gin.Context) (storage.Page, bool) {
	var page storage.Page
	return page, bindQuery(c, &page)
}

func validateStruct(v any) error {
	if err := val.Validate.Struct(v); err != nil {
		return fmt.Errorf("invalid input: %s", validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fieldErrorToString(e))
	}
	return strings.Join(msgs, "; ")
}

func fieldErrorToString(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", e.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.Field())
	case "enum":
		return fmt.Sprintf("%s has an unknown value %q", e.Field(), fmt.Sprint(e.Value()))
	case "gte":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "min":
		if e.Param() == "1" {
			return fmt.Sprintf("%s must not be empty", e.Field())
		}
		return fmt.Sprintf("%s is too short", e.Field())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
