// Package mcp exposes stored scans and their reconstructed forests as MCP tools.
package mcp

import (
	"fmt"
	"sync"

	"ntfsundeletetree/internal/domain"
	"ntfsundeletetree/internal/ports"
)

// Forests loads the latest stored scan of an image from a catalog and
// keeps the forest built from it, keyed by scan id
type Forests struct {
	catalog      ports.Catalog
	defaultImage string

	mu    sync.Mutex
	cache map[string]*domain.Forest
}

// NewForests creates a loader over catalog. defaultImage is used when a
// tool call names no image and may be empty.
func NewForests(catalog ports.Catalog, defaultImage string) *Forests {
	return &Forests{
		catalog:      catalog,
		defaultImage: defaultImage,
		cache:        make(map[string]*domain.Forest),
	}
}

// Image returns image, or the default when it is empty
func (f *Forests) Image(image string) (string, error) {
	if image == "" {
		image = f.defaultImage
	}
	if image == "" {
		return "", fmt.Errorf("image is required")
	}
	return image, nil
}

// Load returns the latest scan of image and its forest
func (f *Forests) Load(image string) (*domain.ScanInfo, *domain.Forest, error) {
	image, err := f.Image(image)
	if err != nil {
		return nil, nil, err
	}

	info, err := f.catalog.LatestScan(image)
	if err != nil {
		return nil, nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if forest, ok := f.cache[info.ID]; ok {
		return info, forest, nil
	}

	store, err := f.catalog.LoadScan(info.ID)
	if err != nil {
		return nil, nil, err
	}
	forest, err := domain.Build(store, nil)
	if err != nil {
		return nil, nil, err
	}
	f.cache[info.ID] = forest
	return info, forest, nil
}

// Records returns a fresh copy of the records of a stored scan
func (f *Forests) Records(scanID string) (*domain.RecordStore, error) {
	return f.catalog.LoadScan(scanID)
}
