package ntfsundelete

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"ntfsundeletetree/internal/domain"
	"ntfsundeletetree/internal/logger"
)

// Line patterns of `ntfsundelete --verbose --parent` output. All are
// anchored at the start of the line.
var (
	inodePattern       = regexp.MustCompile(`^MFT Record (\d+)`)
	typePattern        = regexp.MustCompile(`^Type: (File|Directory)`)
	filenamePattern    = regexp.MustCompile(`^Filename: \((\d*)\) (.*)`)
	parentPattern      = regexp.MustCompile(`^Parent inode: (\d+)`)
	recoverablePattern = regexp.MustCompile(`^File is (\d+)% recoverable`)
	timestampPattern   = regexp.MustCompile(`^Date(?:| C| A| M| R): (\d{4}-\d\d-\d\d \d\d:\d\d)`)
)

const (
	recordDelimiter = "____"
	timestampLayout = "2006-01-02 15:04"
)

// pending accumulates the fields of the record currently being read
type pending struct {
	id          *int64
	kind        domain.Kind
	name        *string
	parent      *int64
	recoverable *int
	latest      time.Time
}

func newPending() pending {
	return pending{latest: domain.Epoch}
}

func (p *pending) empty() bool {
	return p.id == nil
}

// record converts the accumulated fields, returning nil for blocks that
// must be dropped
func (p *pending) record() *domain.FileRecord {
	if p.id == nil {
		return nil
	}
	// Nameless, parentless file entries are separators, not objects.
	if p.kind == domain.KindFile && p.name == nil && p.parent == nil {
		return nil
	}
	if p.kind == domain.KindUnknown {
		logger.Warn("dropping record %d with no type", *p.id)
		return nil
	}
	name := domain.UnknownName
	if p.name != nil {
		name = *p.name
	}
	return &domain.FileRecord{
		ID:           *p.id,
		Kind:         p.kind,
		Name:         name,
		ParentID:     p.parent,
		Recoverable:  p.recoverable,
		LastModified: p.latest,
	}
}

// ParseScanOutput reads the verbose scan listing and returns its records.
// Of several filename lines the longest wins, the first one on ties. Of
// several date lines the most recent wins.
func ParseScanOutput(r io.Reader) (*domain.RecordStore, error) {
	store := domain.NewRecordStore()
	cur := newPending()

	flush := func() {
		if rec := cur.record(); rec != nil {
			store.Put(rec)
		}
		cur = newPending()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.HasPrefix(line, recordDelimiter) {
			flush()
			continue
		}

		if m := inodePattern.FindStringSubmatch(line); m != nil {
			id, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad MFT record number: %w", lineNo, err)
			}
			cur.id = &id
			continue
		}

		if m := typePattern.FindStringSubmatch(line); m != nil {
			cur.kind = domain.ParseKind(m[1])
			continue
		}

		if m := filenamePattern.FindStringSubmatch(line); m != nil {
			if cur.name == nil || utf8.RuneCountInString(m[2]) > utf8.RuneCountInString(*cur.name) {
				name := m[2]
				cur.name = &name
			}
			continue
		}

		if m := parentPattern.FindStringSubmatch(line); m != nil {
			parent, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad parent inode: %w", lineNo, err)
			}
			cur.parent = &parent
			continue
		}

		if m := recoverablePattern.FindStringSubmatch(line); m != nil {
			pct, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: bad recoverability: %w", lineNo, err)
			}
			cur.recoverable = &pct
			continue
		}

		if m := timestampPattern.FindStringSubmatch(line); m != nil {
			ts, err := time.ParseInLocation(timestampLayout, m[1], time.UTC)
			if err != nil {
				logger.Warn("line %d: ignoring bad date %q", lineNo, m[1])
				continue
			}
			if ts.After(cur.latest) {
				cur.latest = ts
			}
			continue
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading scan output: %w", err)
	}

	if !cur.empty() {
		flush()
	}
	return store, nil
}
