package store

import (
	"errors"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/constants"
	"strings"
)

const tableDocuments = "documents"

var documentColumns = []string{"collection", "id", "data", "updated_at"}

var mapping = map[error]error{pgx.ErrNoRows: constants.ErrDBNotFound}

func wrapErr(err error) error {
	for k, v := range mapping {
		if errors.Is(err, k) {
			return v
		}
	}
	return err
}

// builder returns a squirrel builder with Postgres placeholders.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// prefixPattern turns a literal prefix into a LIKE pattern.
func prefixPattern(prefix string) string {
	return likeEscaper.Replace(prefix) + "%"
}
