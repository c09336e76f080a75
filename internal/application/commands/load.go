package commands

import (
	"context"
	"errors"
	"fmt"

	"ntfsundeletetree/internal/application"
	"ntfsundeletetree/internal/domain"
	"ntfsundeletetree/internal/logger"
	"ntfsundeletetree/internal/ports"
)

// LoadRecordsResult contains the records of an image and where they came from
type LoadRecordsResult struct {
	Records     *domain.RecordStore
	Scan        *domain.ScanInfo
	FromCatalog bool
}

// LoadRecordsCommand produces the record set of an image. With a catalog
// the latest stored scan is reused unless Rescan is set, and fresh scans
// are saved back.
type LoadRecordsCommand struct {
	scanner ports.Scanner
	catalog ports.Catalog
	Image   string
	Rescan  bool
}

// NewLoadRecordsCommand creates a new LoadRecordsCommand. catalog may be nil.
func NewLoadRecordsCommand(scanner ports.Scanner, catalog ports.Catalog, image string) *LoadRecordsCommand {
	return &LoadRecordsCommand{
		scanner: scanner,
		catalog: catalog,
		Image:   image,
	}
}

// Validate checks the command parameters
func (c *LoadRecordsCommand) Validate() error {
	return application.ValidateRequired("image", c.Image)
}

// Execute loads or scans the records
func (c *LoadRecordsCommand) Execute(ctx context.Context) (*LoadRecordsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.catalog != nil && !c.Rescan {
		res, err := c.fromCatalog()
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, application.ErrNoScan) {
			return nil, err
		}
		logger.Debug("no stored scan for %s", c.Image)
	}

	logger.Info("scanning %s", c.Image)
	store, err := c.scanner.Scan(ctx, c.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}
	logger.Info("found %d records", store.Len())

	res := &LoadRecordsResult{Records: store}
	if c.catalog != nil {
		info, err := c.catalog.SaveScan(c.Image, store)
		if err != nil {
			return nil, fmt.Errorf("failed to save scan: %w", err)
		}
		logger.Info("saved scan %s", info.ID)
		res.Scan = info
	}
	return res, nil
}

func (c *LoadRecordsCommand) fromCatalog() (*LoadRecordsResult, error) {
	info, err := c.catalog.LatestScan(c.Image)
	if err != nil {
		return nil, err
	}
	store, err := c.catalog.LoadScan(info.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scan %s: %w", info.ID, err)
	}
	logger.Info("using stored scan %s from %s (%d records)",
		info.ID, info.CreatedAt.Local().Format("2006-01-02 15:04"), store.Len())
	return &LoadRecordsResult{Records: store, Scan: info, FromCatalog: true}, nil
}
