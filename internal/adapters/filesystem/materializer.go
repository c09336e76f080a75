// Package filesystem recreates a reconstructed forest on the local filesystem.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ntfsundeletetree/internal/domain"
	"ntfsundeletetree/internal/logger"
	"ntfsundeletetree/internal/ports"
)

// zoneIdentifierSuffix names the alternate data stream ntfsundelete
// sometimes writes out as a separate file next to the recovered one
const zoneIdentifierSuffix = ":Zone.Identifier"

// Materializer implements ports.TreeWriter. Directories are created
// directly, file content is delegated to a ports.Recoverer.
type Materializer struct {
	recoverer ports.Recoverer
	image     string
}

// Ensure Materializer implements TreeWriter
var _ ports.TreeWriter = (*Materializer)(nil)

// NewMaterializer creates a materializer recovering files from image
func NewMaterializer(recoverer ports.Recoverer, image string) *Materializer {
	return &Materializer{recoverer: recoverer, image: image}
}

// frame is one pending step of the walk. A frame with finish set
// re-applies a directory's timestamp once its subtree is done.
type frame struct {
	id     int64
	dir    string
	finish *finishDir
}

type finishDir struct {
	path string
	ts   time.Time
}

// Materialize recreates the subtree rooted at rootID under destDir,
// depth first with children in forest order
func (m *Materializer) Materialize(ctx context.Context, forest *domain.Forest, rootID int64, destDir string, opts domain.MaterializeOptions) *domain.Report {
	report := &domain.Report{}
	stack := []frame{{id: rootID, dir: destDir}}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			logger.Warn("stopping walk: %v", err)
			break
		}

		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.finish != nil {
			setTimes(top.finish.path, top.finish.ts)
			continue
		}

		node, ok := forest.Node(top.id)
		if !ok {
			logger.Error("inode %d is not in the tree", top.id)
			report.Add(domain.NodeResult{ID: top.id, Outcome: domain.OutcomeFailed, Reason: "not in tree"})
			continue
		}

		rec := node.Record
		path := Uniquify(filepath.Join(top.dir, safeName(rec.Name)))

		switch rec.Kind {
		case domain.KindDirectory:
			res := m.makeDirectory(node, path)
			report.Add(res)
			if res.Outcome != domain.OutcomeMaterialized {
				continue
			}
			stack = append(stack, frame{finish: &finishDir{path: path, ts: rec.LastModified}})
			for i := len(node.Children) - 1; i >= 0; i-- {
				stack = append(stack, frame{id: node.Children[i], dir: path})
			}

		case domain.KindFile:
			report.Add(m.writeFile(ctx, rec, path, opts))

		default:
			logger.Warn("skipping %s (%d), unknown type", path, rec.ID)
			report.Add(skipped(rec, path, "unknown type"))
		}
	}

	return report
}

func (m *Materializer) makeDirectory(node *domain.ForestNode, path string) domain.NodeResult {
	rec := node.Record
	if len(node.Children) == 0 {
		logger.Info("skipping empty directory %s (%d)", path, rec.ID)
		return skipped(rec, path, "empty directory")
	}

	logger.Info("%d creating directory %s", rec.ID, path)
	if err := os.Mkdir(path, 0755); err != nil {
		logger.Error("creating directory %s (%d): %v", path, rec.ID, err)
		return domain.NodeResult{ID: rec.ID, Kind: rec.Kind, Path: path, Outcome: domain.OutcomeFailed, Err: err}
	}
	setTimes(path, rec.LastModified)

	return domain.NodeResult{ID: rec.ID, Kind: rec.Kind, Path: path, Outcome: domain.OutcomeMaterialized}
}

func (m *Materializer) writeFile(ctx context.Context, rec *domain.FileRecord, path string, opts domain.MaterializeOptions) domain.NodeResult {
	if !rec.FullyRecoverable() {
		logger.Info("skipping %s (%d), only %s recoverable", path, rec.ID, rec.RecoverableString())
		return skipped(rec, path, fmt.Sprintf("only %s recoverable", rec.RecoverableString()))
	}

	if opts.DateFloor != nil && rec.LastModified.Before(*opts.DateFloor) {
		logger.Info("skipping %s (%d), too old (%s)", path, rec.ID, rec.LastModified.Format(time.DateTime))
		return skipped(rec, path, "older than date floor")
	}

	logger.Info("%d writing %s", rec.ID, path)
	if err := m.recoverer.Recover(ctx, m.image, rec.ID, path); err != nil {
		logger.Error("%v", err)
		return domain.NodeResult{ID: rec.ID, Kind: rec.Kind, Path: path, Outcome: domain.OutcomeFailed, Err: err}
	}

	zone := path + zoneIdentifierSuffix
	if exists(zone) {
		if err := os.Remove(zone); err != nil {
			logger.Warn("removing %s: %v", zone, err)
		}
	}

	return domain.NodeResult{ID: rec.ID, Kind: rec.Kind, Path: path, Outcome: domain.OutcomeMaterialized}
}

func skipped(rec *domain.FileRecord, path, reason string) domain.NodeResult {
	return domain.NodeResult{ID: rec.ID, Kind: rec.Kind, Path: path, Outcome: domain.OutcomeSkipped, Reason: reason}
}

func setTimes(path string, ts time.Time) {
	logger.Debug("setting timestamp of %s to %s", path, ts.Format(time.DateTime))
	if err := os.Chtimes(path, ts, ts); err != nil {
		logger.Warn("setting timestamp of %s: %v", path, err)
	}
}

// safeName keeps a recovered name inside its parent directory
func safeName(name string) string {
	switch name {
	case "", ".", "..":
		return domain.UnknownName
	}
	return strings.ReplaceAll(name, string(os.PathSeparator), "_")
}
