package sqlite

import (
	"database/sql"

	"ntfsundeletetree/internal/domain"
)

// catalogTx groups the writes of one scan session
type catalogTx struct {
	tx *sql.Tx
}

// InsertScan adds the session row
func (t *catalogTx) InsertScan(info *domain.ScanInfo) error {
	_, err := t.tx.Exec(`
		INSERT INTO scans (id, image, created_at, record_count)
		VALUES (?, ?, ?, ?)
	`, info.ID, info.Image, info.CreatedAt.UnixNano(), info.RecordCount)
	return err
}

// InsertRecord adds one record to a session
func (t *catalogTx) InsertRecord(scanID string, rec *domain.FileRecord) error {
	var parent, recoverable sql.NullInt64
	if rec.ParentID != nil {
		parent = sql.NullInt64{Int64: *rec.ParentID, Valid: true}
	}
	if rec.Recoverable != nil {
		recoverable = sql.NullInt64{Int64: int64(*rec.Recoverable), Valid: true}
	}

	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO records (scan_id, inode, kind, name, parent, recoverable, modified)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, scanID, rec.ID, rec.Kind.String(), rec.Name, parent, recoverable, rec.LastModified.Unix())
	return err
}

// Commit commits the transaction
func (t *catalogTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *catalogTx) Rollback() error {
	return t.tx.Rollback()
}
