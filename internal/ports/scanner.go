package ports

import (
	"context"

	"ntfsundeletetree/internal/domain"
)

// Scanner runs the deleted-file scan of a volume and returns the
// recovered records keyed by MFT record number
type Scanner interface {
	Scan(ctx context.Context, image string) (*domain.RecordStore, error)
}

// Recoverer writes the recovered content of one record to dest,
// truncating any existing file
type Recoverer interface {
	Recover(ctx context.Context, image string, id int64, dest string) error
}
