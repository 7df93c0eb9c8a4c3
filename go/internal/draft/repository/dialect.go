package repository

import (
	"errors"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect captures the differences between the supported SQL backends.
type Dialect struct {
	Name string
	// DriverName is the database/sql driver registered for this dialect.
	DriverName string

	numbered   bool
	lockSuffix string
	schema     []string
	isUnique   func(error) bool
}

// Postgres uses lib/pq with row locks.
var Postgres = Dialect{
	Name:       "postgres",
	DriverName: "postgres",
	numbered:   true,
	lockSuffix: " FOR UPDATE OF s",
	schema:     postgresSchema,
	isUnique: func(err error) bool {
		var pqErr *pq.Error
		return errors.As(err, &pqErr) && pqErr.Code == "23505"
	},
}

// SQLite relies on BEGIN IMMEDIATE for write serialization.
var SQLite = Dialect{
	Name:       "sqlite",
	DriverName: "sqlite",
	schema:     sqliteSchema,
	isUnique: func(err error) bool {
		var sqlErr *sqlite.Error
		return errors.As(err, &sqlErr) && sqlErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	},
}

// rebind rewrites ? placeholders to $n for numbered dialects.
func (d Dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
