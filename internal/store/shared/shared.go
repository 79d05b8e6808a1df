package shared

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned by store lookups and updates when no row has the key.
var ErrNotFound = errors.New("not found")

// Arg turns an optional value into a driver argument (nil -> NULL).
func Arg[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func IntPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	n := int(ni.Int64)
	return &n
}
