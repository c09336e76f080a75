package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ntfsundeletetree/internal/application"
	"ntfsundeletetree/internal/domain"
)

var ts = time.Date(2022, 5, 1, 10, 0, 0, 0, time.UTC)

type fakeScanner struct {
	store *domain.RecordStore
	err   error
	calls int
}

func (s *fakeScanner) Scan(_ context.Context, image string) (*domain.RecordStore, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.store, nil
}

type fakeCatalog struct {
	scans   map[string]*domain.RecordStore
	latest  map[string]*domain.ScanInfo
	saved   int
	loadErr error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		scans:  make(map[string]*domain.RecordStore),
		latest: make(map[string]*domain.ScanInfo),
	}
}

func (c *fakeCatalog) Open(string) error { return nil }
func (c *fakeCatalog) Close() error { return nil }

func (c *fakeCatalog) SaveScan(image string, store *domain.RecordStore) (*domain.ScanInfo, error) {
	c.saved++
	info := &domain.ScanInfo{ID: fmt.Sprintf("scan-%d", c.saved), Image: image, CreatedAt: ts, RecordCount: store.Len()}
	c.scans[info.ID] = store
	c.latest[image] = info
	return info, nil
}

func (c *fakeCatalog) LatestScan(image string) (*domain.ScanInfo, error) {
	info, ok := c.latest[image]
	if !ok {
		return nil, fmt.Errorf("%w for %s", application.ErrNoScan, image)
	}
	return info, nil
}

func (c *fakeCatalog) LoadScan(id string) (*domain.RecordStore, error) {
	if c.loadErr != nil {
		return nil, c.loadErr
	}
	store, ok := c.scans[id]
	if !ok {
		return nil, application.ErrNoScan
	}
	return store, nil
}

func (c *fakeCatalog) ListScans() ([]domain.ScanInfo, error) {
	var out []domain.ScanInfo
	for _, info := range c.latest {
		out = append(out, *info)
	}
	return out, nil
}

// fakeWriter records every Materialize call and reports each visited
// file as materialized
type fakeWriter struct {
	roots []int64
	dests []string
	opts  []domain.MaterializeOptions
}

func (w *fakeWriter) Materialize(_ context.Context, forest *domain.Forest, rootID int64, destDir string, opts domain.MaterializeOptions) *domain.Report {
	w.roots = append(w.roots, rootID)
	w.dests = append(w.dests, destDir)
	w.opts = append(w.opts, opts)

	report := &domain.Report{}
	forest.Walk(rootID, func(n *domain.ForestNode, _ int) bool {
		if n.Record.Kind == domain.KindFile {
			report.Add(domain.NodeResult{ID: n.Record.ID, Kind: n.Record.Kind, Outcome: domain.OutcomeMaterialized})
		}
		return true
	})
	return report
}

var errBoom = errors.New("boom")

// sampleRecords has roots 2 (synthesized) and 5
func sampleRecords() *domain.RecordStore {
	s := domain.NewRecordStore()
	s.Put(&domain.FileRecord{ID: 1, Kind: domain.KindFile, Name: "a.txt", ParentID: domain.Int64(2), Recoverable: domain.Percent(100), LastModified: ts})
	s.Put(&domain.FileRecord{ID: 5, Kind: domain.KindDirectory, Name: "docs", LastModified: ts})
	s.Put(&domain.FileRecord{ID: 6, Kind: domain.KindDirectory, Name: "old", ParentID: domain.Int64(5), LastModified: ts})
	s.Put(&domain.FileRecord{ID: 7, Kind: domain.KindFile, Name: "b.txt", ParentID: domain.Int64(6), Recoverable: domain.Percent(100), LastModified: ts})
	return s
}
