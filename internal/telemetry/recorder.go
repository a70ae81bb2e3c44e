package telemetry

import (
	"fmt"
	"strings"
	"sync"
)

// Report is a single call captured by Recorder.
type Report struct {
	Kind   string
	ID     string
	Params []any
	Count  int64
}

// Recorder implements API by keeping every report in memory, it exists so tests
// can assert that a component reported (or did not report) something.
type Recorder struct {
	mu      sync.Mutex
	reports []Report
}

func (r *Recorder) push(rep Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, rep)
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.push(Report{Kind: "broken", ID: id, Params: params})
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.push(Report{Kind: "warning", ID: id, Params: params})
}

func (r *Recorder) ReportDebug(msg string, params ...any) {
	r.push(Report{Kind: "debug", ID: msg, Params: params})
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.push(Report{Kind: "count", ID: id, Count: count})
}

// Reports returns a copy of everything reported so far.
func (r *Recorder) Reports() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Report, len(r.reports))
	copy(out, r.reports)
	return out
}

// Broken returns the ids of every ReportBroken call whose id contains `substr`.
func (r *Recorder) Broken(substr string) []string {
	var ids []string
	for _, rep := range r.Reports() {
		if rep.Kind == "broken" && strings.Contains(rep.ID, substr) {
			ids = append(ids, rep.ID)
		}
	}
	return ids
}

// LastCount returns the most recent count reported under an id ending in `suffix`.
func (r *Recorder) LastCount(suffix string) (int64, error) {
	reports := r.Reports()
	for i := len(reports) - 1; i >= 0; i-- {
		rep := reports[i]
		if rep.Kind == "count" && strings.HasSuffix(rep.ID, suffix) {
			return rep.Count, nil
		}
	}
	return 0, fmt.Errorf("no count reported for %s", suffix)
}
