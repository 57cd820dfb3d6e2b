// Package source defines the record-source contract and the row schema
// shared by its adapters. A source produces the finite, ordered, already
// normalized collection of transactions one batch computation runs over.
package source

import (
	"context"

	"vypiska/internal/core"
)

// Reader loads the full transaction collection from an external
// statement export.
type Reader interface {
	Load(ctx context.Context) ([]core.Transaction, error)
}
