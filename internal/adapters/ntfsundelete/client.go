// Package ntfsundelete drives the ntfsundelete tool: a verbose scan that
// lists deleted MFT records with their parents, and per-inode recovery.
package ntfsundelete

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"ntfsundeletetree/internal/application"
	"ntfsundeletetree/internal/config"
	"ntfsundeletetree/internal/domain"
	"ntfsundeletetree/internal/logger"
	"ntfsundeletetree/internal/ports"
)

// Client implements ports.Scanner and ports.Recoverer by running ntfsundelete
type Client struct {
	binary string
}

var (
	_ ports.Scanner   = (*Client)(nil)
	_ ports.Recoverer = (*Client)(nil)
)

// Option configures the Client
type Option func(*Client)

// WithBinary sets the path of the ntfsundelete executable
func WithBinary(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.binary = path
		}
	}
}

// NewClient creates a new ntfsundelete client
func NewClient(opts ...Option) *Client {
	c := &Client{binary: config.DefaultNtfsUndelete}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Binary returns the executable the client runs
func (c *Client) Binary() string {
	return c.binary
}

// Scan lists the deleted records of image
func (c *Client) Scan(ctx context.Context, image string) (*domain.RecordStore, error) {
	args := []string{"--verbose", "--parent", image}
	logger.Info("executing %s --verbose --parent %s", c.binary, image)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &application.ScanError{
				Image:    image,
				ExitCode: exitErr.ExitCode(),
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
			}
		}
		return nil, fmt.Errorf("running %s: %w", c.binary, err)
	}

	logger.Info("analysing scan result")
	return ParseScanOutput(&stdout)
}

// Recover undeletes the content of one inode into dest
func (c *Client) Recover(ctx context.Context, image string, id int64, dest string) error {
	args := []string{
		"--truncate",
		"--undelete",
		"--inodes", strconv.FormatInt(id, 10),
		"--output", dest,
		image,
	}

	cmd := exec.CommandContext(ctx, c.binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &application.RecoveryError{
				ID:       id,
				Path:     dest,
				ExitCode: exitErr.ExitCode(),
				Output:   string(output),
			}
		}
		return fmt.Errorf("running %s: %w", c.binary, err)
	}
	return nil
}
