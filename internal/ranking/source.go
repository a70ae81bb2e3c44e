// Package ranking defines the contract every ranking source implements: given a
// Filter it produces rows in one fixed column schema, or it fails.
package ranking

import (
	"context"
	"errors"
	"fmt"
)

// Row is one race result exactly as a source emits it, before normalization.
type Row struct {
	Rank            string
	Name            string
	Club            string
	Nationality     string
	Time            string
	Competition     string
	CompetitionDate string
}

// Columns is the fixed column order of Row, shared by every source.
var Columns = []string{"Rank", "Name", "Club", "Nationality", "Time", "Competition", "CompetitionDate"}

// Outcome is the result of a completed acquisition. An Outcome with no rows is a
// valid empty result, it is never used to signal a failure.
type Outcome struct {
	Rows []Row
}

func (o Outcome) Empty() bool {
	return len(o.Rows) == 0
}

// Source is implemented by each way of acquiring ranking rows.
type Source interface {
	// Scrape runs one acquisition, any returned error wraps ErrAcquisition.
	Scrape(ctx context.Context, filter Filter) (Outcome, error)
	// Close releases the resources owned by the source.
	Close() error
}

// ErrAcquisition is wrapped by every error a Source returns.
var ErrAcquisition = errors.New("ranking acquisition failed")

// AcquisitionError carries where an acquisition stopped and why.
type AcquisitionError struct {
	// Stage names the step that failed, ex. "navigate" or "apply AgeGroupMin".
	Stage string
	Err   error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrAcquisition.Error(), e.Stage, e.Err)
}

func (e *AcquisitionError) Unwrap() []error {
	return []error{ErrAcquisition, e.Err}
}

// Fail wraps err as an acquisition failure at stage.
func Fail(stage string, err error) error {
	return &AcquisitionError{Stage: stage, Err: err}
}
