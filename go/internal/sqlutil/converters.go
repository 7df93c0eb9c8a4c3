package sqlutil

import (
	"database/sql"

	"github.com/google/uuid"
)

// Null wraps an optional value for a nullable column. Use it for driver-native
// types (string, int64, float64, bool, time.Time).
func Null[T any](v *T) sql.Null[T] {
	if v == nil {
		return sql.Null[T]{}
	}
	return sql.Null[T]{V: *v, Valid: true}
}

// Ptr unwraps a scanned nullable column. The result never aliases n.
func Ptr[T any](n sql.Null[T]) *T {
	if !n.Valid {
		return nil
	}
	v := n.V
	return &v
}

// NullUUID is Null for uuids, which need their own Valuer.
func NullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func UUIDPtr(n uuid.NullUUID) *uuid.UUID {
	if !n.Valid {
		return nil
	}
	id := n.UUID
	return &id
}
