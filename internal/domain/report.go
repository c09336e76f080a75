package domain

import "time"

// Outcome is the terminal state of one node in a materialization walk
type Outcome int

const (
	OutcomeSkipped Outcome = iota
	OutcomeMaterialized
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeMaterialized:
		return "materialized"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// NodeResult records what happened to a single node
type NodeResult struct {
	ID      int64
	Kind    Kind
	Path    string
	Outcome Outcome
	Reason  string
	Err     error
}

// Report collects the per-node results of a materialization walk
type Report struct {
	Results []NodeResult
}

// Add appends a result
func (r *Report) Add(res NodeResult) {
	r.Results = append(r.Results, res)
}

// Merge appends every result of other
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Results = append(r.Results, other.Results...)
}

// Count returns how many nodes ended with the given outcome
func (r *Report) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Failures returns the results of nodes whose recovery failed
func (r *Report) Failures() []NodeResult {
	var failed []NodeResult
	for _, res := range r.Results {
		if res.Outcome == OutcomeFailed {
			failed = append(failed, res)
		}
	}
	return failed
}

// Result returns the result recorded for id
func (r *Report) Result(id int64) (NodeResult, bool) {
	for _, res := range r.Results {
		if res.ID == id {
			return res, true
		}
	}
	return NodeResult{}, false
}

// MaterializeOptions are the policy gates of a materialization walk
type MaterializeOptions struct {
	DateFloor *time.Time // files last modified before it are skipped
}

// ScanInfo describes a scan session stored in a catalog
type ScanInfo struct {
	ID          string
	Image       string
	CreatedAt   time.Time
	RecordCount int
}
