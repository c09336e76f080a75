package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"ntfsundeletetree/internal/application"
	"ntfsundeletetree/internal/domain"
	"ntfsundeletetree/internal/logger"
	"ntfsundeletetree/internal/ports"
)

// UndeleteResult contains the outcome of an undelete run
type UndeleteResult struct {
	Forest      *domain.Forest
	Report      *domain.Report
	UnknownRoot bool
	Message     string
}

// UndeleteCommand recreates the forest of a record set under Destination
type UndeleteCommand struct {
	writer      ports.TreeWriter
	Records     *domain.RecordStore
	RootID      *int64
	Destination string
	DateFloor   *time.Time
}

// NewUndeleteCommand creates a new UndeleteCommand
func NewUndeleteCommand(writer ports.TreeWriter, records *domain.RecordStore, destination string) *UndeleteCommand {
	return &UndeleteCommand{
		writer:      writer,
		Records:     records,
		Destination: destination,
	}
}

// Validate checks the parameters. The destination must not exist yet.
func (c *UndeleteCommand) Validate() error {
	if err := application.ValidateRequired("destination", c.Destination); err != nil {
		return err
	}
	return CheckDestination(c.Destination)
}

// CheckDestination fails with ErrDestinationExists when something is at path
func CheckDestination(path string) error {
	_, err := os.Lstat(path)
	if err == nil {
		return fmt.Errorf("%w: %s", application.ErrDestinationExists, path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check destination: %w", err)
	}
	return nil
}

// Execute builds the forest and materializes the requested roots
func (c *UndeleteCommand) Execute(ctx context.Context) (*UndeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	forest, err := NewBuildForestCommand(c.Records).Execute(ctx)
	if err != nil {
		return nil, err
	}

	result := &UndeleteResult{Forest: forest, Report: &domain.Report{}}

	roots := forest.Roots
	if c.RootID != nil {
		if _, ok := forest.Node(*c.RootID); !ok {
			logger.Warn("%v: %d", application.ErrUnknownRoot, *c.RootID)
			result.UnknownRoot = true
			result.Message = fmt.Sprintf("Inode %d is not in the tree, nothing undeleted", *c.RootID)
			return result, nil
		}
		roots = []int64{*c.RootID}
	}

	if err := os.MkdirAll(c.Destination, 0755); err != nil {
		return nil, fmt.Errorf("failed to create destination: %w", err)
	}

	opts := domain.MaterializeOptions{DateFloor: c.DateFloor}
	for _, id := range roots {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Report.Merge(c.writer.Materialize(ctx, forest, id, c.Destination, opts))
	}

	result.Message = fmt.Sprintf("Undeleted %d, skipped %d, failed %d",
		result.Report.Count(domain.OutcomeMaterialized),
		result.Report.Count(domain.OutcomeSkipped),
		result.Report.Count(domain.OutcomeFailed))
	return result, nil
}
