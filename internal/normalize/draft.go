// Package normalize turns annotated ranking rows into record drafts and holds
// the calendar and age conventions of the remote.
package normalize

import (
	"errors"
	"fmt"
	"strings"
	"swimrank-backend/internal/ranking"
)

// Draft is a record before identity is assigned, it carries the swimmer
// context (name and gender) the store needs to link it.
type Draft struct {
	Name            string
	Gender          string
	Age             string
	Stroke          string
	Distance        string
	Time            string
	Competition     string
	CompetitionDate string
	Club            string
	Nationality     string
}

var ErrMissingName = errors.New("row has no swimmer name")

// FromAnnotated normalizes a single row, competition dates are kept in the
// remote's own form.
func FromAnnotated(row ranking.AnnotatedRow) (Draft, error) {
	name := strings.Join(strings.Fields(row.Name), " ")
	if name == "" {
		return Draft{}, ErrMissingName
	}
	return Draft{
		Name:            name,
		Gender:          strings.TrimSpace(row.Gender),
		Age:             CollapseAge(strings.TrimSpace(row.AgeRange)),
		Stroke:          strings.TrimSpace(row.Stroke),
		Distance:        strings.TrimSpace(row.Distance),
		Time:            strings.TrimSpace(row.Time),
		Competition:     strings.TrimSpace(row.Competition),
		CompetitionDate: strings.TrimSpace(row.CompetitionDate),
		Club:            strings.TrimSpace(row.Club),
		Nationality:     strings.TrimSpace(row.Nationality),
	}, nil
}

// Drafts normalizes every row, rows that cannot be normalized are returned
// separately with the reason.
func Drafts(rows []ranking.AnnotatedRow) ([]Draft, []error) {
	drafts := make([]Draft, 0, len(rows))
	var errs []error
	for i, row := range rows {
		draft, err := FromAnnotated(row)
		if err != nil {
			errs = append(errs, fmt.Errorf("row %d: %w", i, err))
			continue
		}
		drafts = append(drafts, draft)
	}
	return drafts, errs
}
