package db

import (
	"strconv"
	"strings"
)

// Dialect identifies the SQL flavour of a database
type Dialect string

// Supported dialects
const (
	DialectSQLite   Dialect = "sqlite"
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
)

// Rebind rewrites '?' placeholders into the dialect's bind syntax.
// Queries passed here must not contain literal question marks.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

// SupportsReturning reports whether INSERT ... RETURNING is used for new ids.
// lib/pq does not implement LastInsertId.
func (d Dialect) SupportsReturning() bool {
	return d == DialectPostgres
}
