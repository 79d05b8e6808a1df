// Package service sits between the HTTP handlers and the stores. It owns the
// partial-update merge rules; everything else passes through.
package service

import (
	"errors"

	"github.com/5w1tchy/library-api/internal/store/shared"
)

// ErrNotFound reports that the addressed author or book does not exist.
var ErrNotFound = errors.New("not found")

func translate(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
