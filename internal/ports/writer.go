package ports

import (
	"context"

	"ntfsundeletetree/internal/domain"
)

// TreeWriter recreates a forest subtree under a destination directory.
// Per-node failures are recorded in the report, never returned.
type TreeWriter interface {
	Materialize(ctx context.Context, forest *domain.Forest, rootID int64, destDir string, opts domain.MaterializeOptions) *domain.Report
}
