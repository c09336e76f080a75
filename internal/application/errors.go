package application

import (
	"errors"
	"fmt"
	"strings"

	"ntfsundeletetree/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrDestinationExists = errors.New("destination already exists")
	ErrUnknownRoot       = errors.New("unknown root inode")
	ErrScanFailed        = errors.New("scan failed")
	ErrRecoveryFailed    = errors.New("recovery failed")
	ErrNoScan            = errors.New("no stored scan")
	ErrCycle             = domain.ErrCycle
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ScanError carries the diagnostics of a scan tool run that exited non-zero
type ScanError struct {
	Image    string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *ScanError) Error() string {
	msg := fmt.Sprintf("scanning %s: exit code %d", e.Image, e.ExitCode)
	if out := strings.TrimSpace(e.Stdout + "\n" + e.Stderr); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *ScanError) Is(target error) bool {
	return target == ErrScanFailed
}

// RecoveryError reports a failed content recovery for one record
type RecoveryError struct {
	ID       int64
	Path     string
	ExitCode int
	Output   string
}

func (e *RecoveryError) Error() string {
	msg := fmt.Sprintf("undeleting inode %d to %s: exit code %d", e.ID, e.Path, e.ExitCode)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

func (e *RecoveryError) Is(target error) bool {
	return target == ErrRecoveryFailed
}
