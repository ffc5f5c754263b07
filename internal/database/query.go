package database

import (
	"strings"
)

// QueryBuilder converts SQL queries with ? placeholders to dialect-specific format.
type QueryBuilder struct {
	dialect Dialect
}

// NewQueryBuilder creates a new QueryBuilder for the given dialect.
func NewQueryBuilder(dialect Dialect) *QueryBuilder {
	return &QueryBuilder{dialect: dialect}
}

// Build rewrites each ? to the dialect's placeholder for its position.
//
// Example:
//
//	input:    "SELECT * FROM sessions WHERE id = ? AND outcome = ?"
//	SQLite:   unchanged
//	Postgres: "SELECT * FROM sessions WHERE id = $1 AND outcome = $2"
func (qb *QueryBuilder) Build(query string) string {
	if !strings.Contains(query, "?") {
		return query
	}

	var result strings.Builder
	result.Grow(len(query) + 8)
	position := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			result.WriteString(qb.dialect.Placeholder(position))
			position++
			continue
		}
		result.WriteByte(query[i])
	}
	return result.String()
}
