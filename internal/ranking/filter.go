package ranking

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Filter scopes a single ranking query.
type Filter struct {
	Stroke   Stroke
	Distance Distance
	Gender   Gender
	Pool     PoolType
	// MinAge and MaxAge are integers encoded as strings because that is how
	// the remote view takes them.
	MinAge string
	MaxAge string
	Start  time.Time
	End    time.Time
}

// WireDateLayout is the format the remote page's date boxes accept:
// day/abbreviated english month/2-digit gregorian year.
const WireDateLayout = "02/Jan/06"

// FormatWireDate formats t the way the remote date boxes expect.
func FormatWireDate(t time.Time) string {
	return t.Format(WireDateLayout)
}

// Validate checks that the filter is something the remote would accept.
func (f Filter) Validate() error {
	var errs []error
	if f.Stroke.ID == "" {
		errs = append(errs, fmt.Errorf("stroke is required"))
	}
	if f.Distance.ID == "" {
		errs = append(errs, fmt.Errorf("distance is required"))
	}
	if f.Gender.ID == "" {
		errs = append(errs, fmt.Errorf("gender is required"))
	}
	if f.Pool.ID == "" {
		errs = append(errs, fmt.Errorf("pool type is required"))
	}

	minAge, minErr := strconv.Atoi(f.MinAge)
	if minErr != nil {
		errs = append(errs, fmt.Errorf("min age %q: %w", f.MinAge, minErr))
	}
	maxAge, maxErr := strconv.Atoi(f.MaxAge)
	if maxErr != nil {
		errs = append(errs, fmt.Errorf("max age %q: %w", f.MaxAge, maxErr))
	}
	if minErr == nil && maxErr == nil && minAge > maxAge {
		errs = append(errs, fmt.Errorf("min age %d is greater than max age %d", minAge, maxAge))
	}

	if f.Start.IsZero() || f.End.IsZero() {
		errs = append(errs, fmt.Errorf("start and end dates are required"))
	} else if f.Start.After(f.End) {
		errs = append(errs, fmt.Errorf("start date %s is after end date %s", f.Start.Format(time.DateOnly), f.End.Format(time.DateOnly)))
	}

	return errors.Join(errs...)
}

// AgeRange is the context column stored with every row acquired under this filter.
func (f Filter) AgeRange() string {
	return fmt.Sprintf("%s-%s", f.MinAge, f.MaxAge)
}

func (f Filter) String() string {
	return fmt.Sprintf(
		"%s %s %s %s age %s %s..%s",
		f.Gender.Name, f.Distance.Name, f.Stroke.Name, f.Pool.Name,
		f.AgeRange(),
		f.Start.Format(time.DateOnly), f.End.Format(time.DateOnly),
	)
}
