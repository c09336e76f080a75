package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"ntfsundeletetree/internal/application"
	"ntfsundeletetree/internal/domain"
	"ntfsundeletetree/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Catalog implements ports.Catalog using SQLite
type Catalog struct {
	db     *sql.DB
	dbPath string
}

// Ensure Catalog implements Catalog
var _ ports.Catalog = (*Catalog)(nil)

// NewCatalog creates a new SQLite catalog
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Open opens or creates the catalog database at path
func (c *Catalog) Open(path string) error {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	c.dbPath = path

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	c.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS scans (
			id TEXT PRIMARY KEY,
			image TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			record_count INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS records (
			scan_id TEXT NOT NULL REFERENCES scans(id) ON DELETE CASCADE,
			inode INTEGER NOT NULL,
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			parent INTEGER,
			recoverable INTEGER,
			modified INTEGER NOT NULL,
			PRIMARY KEY (scan_id, inode)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scans_image ON scans(image, created_at);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup catalog: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (c *Catalog) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// SaveScan stores the records of a scan of image as a new session.
// Synthesized placeholders are not stored; they are rebuilt on load.
func (c *Catalog) SaveScan(image string, store *domain.RecordStore) (*domain.ScanInfo, error) {
	tx, err := c.beginTx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var records []*domain.FileRecord
	for _, id := range store.IDs() {
		if rec, _ := store.Get(id); !rec.Synthesized {
			records = append(records, rec)
		}
	}

	info := &domain.ScanInfo{
		ID:          uuid.NewString(),
		Image:       image,
		CreatedAt:   time.Now().UTC(),
		RecordCount: len(records),
	}
	if err := tx.InsertScan(info); err != nil {
		return nil, fmt.Errorf("failed to store scan: %w", err)
	}
	for _, rec := range records {
		if err := tx.InsertRecord(info.ID, rec); err != nil {
			return nil, fmt.Errorf("failed to store record %d: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit scan: %w", err)
	}
	return info, nil
}

// LatestScan returns the newest session recorded for image
func (c *Catalog) LatestScan(image string) (*domain.ScanInfo, error) {
	row := c.db.QueryRow(`
		SELECT id, image, created_at, record_count FROM scans
		WHERE image = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, image)

	info, err := scanInfo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w for %s", application.ErrNoScan, image)
	}
	if err != nil {
		return nil, err
	}
	return info, nil
}

// LoadScan returns the records of a stored session
func (c *Catalog) LoadScan(scanID string) (*domain.RecordStore, error) {
	var exists int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM scans WHERE id = ?`, scanID).Scan(&exists); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w with id %s", application.ErrNoScan, scanID)
	}

	rows, err := c.db.Query(`
		SELECT inode, kind, name, parent, recoverable, modified
		FROM records WHERE scan_id = ?
	`, scanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	store := domain.NewRecordStore()
	for rows.Next() {
		var (
			inode       int64
			kind, name  string
			parent      sql.NullInt64
			recoverable sql.NullInt64
			modified    int64
		)
		if err := rows.Scan(&inode, &kind, &name, &parent, &recoverable, &modified); err != nil {
			return nil, err
		}

		rec := &domain.FileRecord{
			ID:           inode,
			Kind:         domain.ParseKind(kind),
			Name:         name,
			LastModified: time.Unix(modified, 0).UTC(),
		}
		if parent.Valid {
			rec.ParentID = domain.Int64(parent.Int64)
		}
		if recoverable.Valid {
			rec.Recoverable = domain.Percent(int(recoverable.Int64))
		}
		store.Put(rec)
	}
	return store, rows.Err()
}

// ListScans returns every stored session, newest first
func (c *Catalog) ListScans() ([]domain.ScanInfo, error) {
	rows, err := c.db.Query(`
		SELECT id, image, created_at, record_count FROM scans
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []domain.ScanInfo
	for rows.Next() {
		info, err := scanInfo(rows)
		if err != nil {
			return nil, err
		}
		scans = append(scans, *info)
	}
	return scans, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInfo(row rowScanner) (*domain.ScanInfo, error) {
	var (
		info    domain.ScanInfo
		created int64
	)
	if err := row.Scan(&info.ID, &info.Image, &created, &info.RecordCount); err != nil {
		return nil, err
	}
	info.CreatedAt = time.Unix(0, created).UTC()
	return &info, nil
}

func (c *Catalog) beginTx() (*catalogTx, error) {
	tx, err := c.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &catalogTx{tx: tx}, nil
}

// Path returns the database file of an opened catalog
func (c *Catalog) Path() string {
	return c.dbPath
}
