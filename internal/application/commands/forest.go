package commands

import (
	"context"
	"fmt"

	"ntfsundeletetree/internal/application"
	"ntfsundeletetree/internal/domain"
	"ntfsundeletetree/internal/logger"
)

// BuildForestCommand reconstructs the forest of a record set. Missing
// parents are synthesized into Records.
type BuildForestCommand struct {
	Records *domain.RecordStore
}

// NewBuildForestCommand creates a new BuildForestCommand
func NewBuildForestCommand(records *domain.RecordStore) *BuildForestCommand {
	return &BuildForestCommand{Records: records}
}

// Validate checks the command parameters
func (c *BuildForestCommand) Validate() error {
	if c.Records == nil {
		return &application.ValidationError{
			Field:   "records",
			Message: "records are required",
		}
	}
	return nil
}

// Execute builds the forest
func (c *BuildForestCommand) Execute(ctx context.Context) (*domain.Forest, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	before := c.Records.Len()
	forest, err := domain.Build(c.Records, logger.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to build tree: %w", err)
	}
	logger.Debug("built %d nodes in %d roots, %d parents synthesized",
		forest.Len(), len(forest.Roots), c.Records.Len()-before)

	return forest, nil
}
