// internal/sqlerr/sqlerr.go
package sqlerr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Code groups SQLSTATE values into the classes callers react to.
type Code string

const (
	Other               Code = "other"
	UniqueViolation     Code = "unique_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	NotNullViolation    Code = "not_null_violation"
	CheckViolation      Code = "check_violation"
)

func MapCode(sqlstate string) Code {
	switch sqlstate {
	case pgerrcode.UniqueViolation:
		return UniqueViolation
	case pgerrcode.ForeignKeyViolation:
		return ForeignKeyViolation
	case pgerrcode.NotNullViolation:
		return NotNullViolation
	case pgerrcode.CheckViolation:
		return CheckViolation
	default:
		return Other
	}
}

// ErrCode classifies the first *pgconn.PgError in err's chain.
func ErrCode(err error) Code {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return MapCode(pgErr.Code)
	}
	return Other
}

// Message renders a store error as text fit for an API client. Errors that are
// not constraint violations get a generic message.
func Message(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "An error occurred while processing your request"
	}

	entity := entityName(pgErr.TableName, pgErr.ColumnName)
	switch MapCode(pgErr.Code) {
	case UniqueViolation:
		if col := uniqueColumn(pgErr.ConstraintName); col != "" {
			return fmt.Sprintf("A %s with this %s already exists", entity, strings.ReplaceAll(col, "_", " "))
		}
		return fmt.Sprintf("A %s with this identifier already exists", entity)
	case ForeignKeyViolation:
		if col := fkColumn(pgErr.ConstraintName); col != "" {
			entity = entityName("", col)
		}
		return fmt.Sprintf("The referenced %s does not exist", entity)
	case NotNullViolation:
		field := humanize(pgErr.ColumnName)
		if field == "" {
			field = "field"
		}
		return fmt.Sprintf("The %s is required", field)
	case CheckViolation:
		if field := humanize(checkColumn(pgErr.ConstraintName)); field != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", field)
		}
		return "One or more values do not meet required conditions"
	default:
		return "An error occurred while processing your request"
	}
}

func entityName(table, column string) string {
	if column != "" && strings.HasSuffix(strings.ToLower(column), "_id") {
		return humanize(strings.TrimSuffix(strings.ToLower(column), "_id"))
	}
	if table != "" {
		table = strings.TrimSuffix(table, "s")
		return humanize(table)
	}
	return "record"
}

func humanize(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

var (
	uniqueKeyRe = regexp.MustCompile(`^[a-z]+(?:_[a-z]+)*?_([a-z]+)_key$`)
	fkeyRe      = regexp.MustCompile(`_([a-z]+_id)_fkey$`)
	checkRe     = regexp.MustCompile(`^(?:banks|credit_cards|card_spending_category|users|user_spending_category|authorized_user_info)_([a-z_]+)_check$`)
)

// Postgres names default constraints <table>_<column>_key / _fkey / _check.

func uniqueColumn(constraint string) string {
	if m := uniqueKeyRe.FindStringSubmatch(constraint); m != nil {
		return m[1]
	}
	return ""
}

func fkColumn(constraint string) string {
	if m := fkeyRe.FindStringSubmatch(constraint); m != nil {
		return m[1]
	}
	return ""
}

func checkColumn(constraint string) string {
	if m := checkRe.FindStringSubmatch(constraint); m != nil {
		return m[1]
	}
	return ""
}
