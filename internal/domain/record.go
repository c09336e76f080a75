package domain

import (
	"fmt"
	"slices"
	"strconv"
	"time"
)

// Kind is the type of a recovered filesystem object
type Kind int

const (
	KindUnknown Kind = iota
	KindFile
	KindDirectory
)

// String returns the label used by the scan tool for this kind
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "File"
	case KindDirectory:
		return "Directory"
	default:
		return "Unknown"
	}
}

// ParseKind maps a scan tool type label to a Kind
func ParseKind(s string) Kind {
	switch s {
	case "File":
		return KindFile
	case "Directory":
		return KindDirectory
	default:
		return KindUnknown
	}
}

// UnknownName is used for records the scan could not recover a name for
const UnknownName = "<unknown>"

// FullyRecoverable is the only recoverability percentage that gets materialized
const FullyRecoverable = 100

// Epoch is the timestamp of records with no observed date field
var Epoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// FileRecord is one recovered filesystem object (an MFT record)
type FileRecord struct {
	ID           int64
	Kind         Kind
	Name         string
	ParentID     *int64 // nil: no known parent
	Recoverable  *int   // percentage, nil: unknown
	LastModified time.Time
	Synthesized  bool // placeholder invented for a parent the scan never reported
}

// HasParent reports whether the record names a parent
func (r *FileRecord) HasParent() bool {
	return r.ParentID != nil
}

// FullyRecoverable reports whether the scan estimates the content as completely intact
func (r *FileRecord) FullyRecoverable() bool {
	return r.Recoverable != nil && *r.Recoverable == FullyRecoverable
}

// RecoverableString formats the recoverability for diagnostics
func (r *FileRecord) RecoverableString() string {
	if r.Recoverable == nil {
		return "unknown"
	}
	return strconv.Itoa(*r.Recoverable) + "%"
}

func (r FileRecord) String() string {
	parent := "none"
	if r.ParentID != nil {
		parent = strconv.FormatInt(*r.ParentID, 10)
	}
	return fmt.Sprintf("{%d %s %q parent=%s recoverable=%s %s}",
		r.ID, r.Kind, r.Name, parent, r.RecoverableString(), r.LastModified.Format("2006-01-02 15:04"))
}

// RecordStore owns the id -> record mapping. The tree builder extends it
// with synthesized parent records, so callers see every record the
// resulting forest refers to.
type RecordStore struct {
	records map[int64]*FileRecord
}

// NewRecordStore creates an empty store
func NewRecordStore() *RecordStore {
	return &RecordStore{records: make(map[int64]*FileRecord)}
}

// Put inserts or replaces a record
func (s *RecordStore) Put(r *FileRecord) {
	s.records[r.ID] = r
}

// Get returns the record with the given id
func (s *RecordStore) Get(id int64) (*FileRecord, bool) {
	r, ok := s.records[id]
	return r, ok
}

// Has reports whether a record with the given id is stored
func (s *RecordStore) Has(id int64) bool {
	_, ok := s.records[id]
	return ok
}

// Len returns the number of stored records
func (s *RecordStore) Len() int {
	return len(s.records)
}

// IDs returns every stored id in ascending order
func (s *RecordStore) IDs() []int64 {
	ids := make([]int64, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Synthesize inserts a placeholder directory for a parent id the scan
// never reported. It is parentless, named after its id and inherits the
// timestamp of the child that referenced it first.
func (s *RecordStore) Synthesize(id int64, ts time.Time) *FileRecord {
	full := FullyRecoverable
	r := &FileRecord{
		ID:           id,
		Kind:         KindDirectory,
		Name:         strconv.FormatInt(id, 10),
		Recoverable:  &full,
		LastModified: ts,
		Synthesized:  true,
	}
	s.records[id] = r
	return r
}

// Int64 returns a pointer to v, for optional record fields
func Int64(v int64) *int64 {
	return &v
}

// Percent returns a pointer to v, for optional record fields
func Percent(v int) *int {
	return &v
}
