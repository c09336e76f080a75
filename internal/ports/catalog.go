package ports

import "ntfsundeletetree/internal/domain"

// Catalog stores scan results so a volume does not have to be rescanned
// for every run
type Catalog interface {
	// Lifecycle
	Open(path string) error
	Close() error

	// SaveScan stores every record of a scan as a new session
	SaveScan(image string, store *domain.RecordStore) (*domain.ScanInfo, error)

	// LatestScan returns the newest session for image, or application.ErrNoScan
	LatestScan(image string) (*domain.ScanInfo, error)

	// LoadScan returns the records of a stored session
	LoadScan(scanID string) (*domain.RecordStore, error)

	// ListScans returns every session, newest first
	ListScans() ([]domain.ScanInfo, error)
}
