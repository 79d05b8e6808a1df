package dbx

import (
	"context"
	"fmt"
)

// EnsureSchema creates the authors and books tables when they are missing.
// Existing tables are left untouched.
func EnsureSchema(ctx context.Context, e Execer, d Dialect) error {
	for _, stmt := range d.schema {
		if _, err := e.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema (%s): %w", d.Name, err)
		}
	}
	return nil
}
