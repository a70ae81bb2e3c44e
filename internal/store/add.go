package store

import (
	"context"
	"fmt"
	"strings"
	"swimrank-backend/internal/identity"
	"swimrank-backend/internal/normalize"
	"swimrank-backend/internal/store/db"

	"go.opentelemetry.io/otel/attribute"
)

// Add ingests drafts. Swimmers are created when absent and never overwritten,
// records are inserted when their id is absent. Drafts that cannot be stored
// are skipped. It returns how many records were newly inserted.
func (s Store) Add(ctx context.Context, drafts []normalize.Draft) (int, error) {
	ctx, span := tracer.Start(ctx, "Add")
	defer span.End()
	span.SetAttributes(attribute.Int("drafts", len(drafts)))

	tx, txqry, err := s.begin(ctx)
	if err != nil {
		return 0, fail(span, err)
	}
	defer tx.Rollback()

	inserted := 0
	for i, draft := range drafts {
		created, err := insertDraft(ctx, txqry, draft, "")
		if err != nil {
			s.tel.ReportWarning(report_store_add, fmt.Errorf("skip draft %d: %w", i, err))
			continue
		}
		if created {
			inserted++
		}
	}

	err = tx.Commit()
	if err != nil {
		return 0, fail(span, err)
	}
	s.tel.ReportCount(report_store_add, int64(inserted))
	span.SetAttributes(attribute.Int("inserted", inserted))
	return inserted, nil
}

// insertDraft creates the swimmer if absent then the record if absent,
// reporting whether the record is new.
func insertDraft(ctx context.Context, qry *db.Queries, draft normalize.Draft, school string) (bool, error) {
	swimmerID := identity.SwimmerID(draft.Name)
	if swimmerID == "" {
		return false, normalize.ErrMissingName
	}

	_, err := qry.CreateSwimmerIfAbsent(ctx, db.CreateSwimmerIfAbsentParams{
		ID:     swimmerID,
		Name:   draft.Name,
		Gender: draft.Gender,
		Club:   draft.Club,
		School: school,
	})
	if err != nil {
		return false, fmt.Errorf("create swimmer: %w", err)
	}

	count, err := qry.CreateRecordIfAbsent(ctx, db.CreateRecordIfAbsentParams{
		ID: identity.RecordID(
			swimmerID,
			draft.Competition,
			draft.CompetitionDate,
			draft.Stroke,
			draft.Distance,
			draft.Time,
		),
		SwimmerID:       swimmerID,
		Name:            draft.Name,
		Age:             draft.Age,
		Stroke:          draft.Stroke,
		Distance:        draft.Distance,
		Time:            draft.Time,
		Competition:     draft.Competition,
		CompetitionDate: draft.CompetitionDate,
		Club:            draft.Club,
		Nationality:     draft.Nationality,
	})
	if err != nil {
		return false, fmt.Errorf("create record: %w", err)
	}
	return count > 0, nil
}

// ManualEntry is a single record typed in by an operator.
type ManualEntry struct {
	Name            string `json:"name"`
	Gender          string `json:"gender"`
	Club            string `json:"club"`
	School          string `json:"school"`
	Age             string `json:"age"`
	Stroke          string `json:"stroke"`
	Distance        string `json:"distance"`
	Time            string `json:"time"`
	Competition     string `json:"competition"`
	CompetitionDate string `json:"competition_date"`
	Nationality     string `json:"nationality"`
}

// ValidationError lists the required fields a manual entry is missing.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Validate returns a *ValidationError naming every empty required field.
func (e ManualEntry) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"name", e.Name},
		{"stroke", e.Stroke},
		{"distance", e.Distance},
		{"time", e.Time},
		{"competition", e.Competition},
		{"competition_date", e.CompetitionDate},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.field)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

func (e ManualEntry) draft() normalize.Draft {
	return normalize.Draft{
		Name:            strings.Join(strings.Fields(e.Name), " "),
		Gender:          strings.TrimSpace(e.Gender),
		Age:             normalize.CollapseAge(strings.TrimSpace(e.Age)),
		Stroke:          strings.TrimSpace(e.Stroke),
		Distance:        strings.TrimSpace(e.Distance),
		Time:            strings.TrimSpace(e.Time),
		Competition:     strings.TrimSpace(e.Competition),
		CompetitionDate: strings.TrimSpace(e.CompetitionDate),
		Club:            strings.TrimSpace(e.Club),
		Nationality:     strings.TrimSpace(e.Nationality),
	}
}

// AddSingle stores one manual entry. It returns false when the record already
// existed, which is not an error.
func (s Store) AddSingle(ctx context.Context, entry ManualEntry) (bool, error) {
	ctx, span := tracer.Start(ctx, "AddSingle")
	defer span.End()

	err := entry.Validate()
	if err != nil {
		return false, fail(span, err)
	}

	tx, txqry, err := s.begin(ctx)
	if err != nil {
		return false, fail(span, err)
	}
	defer tx.Rollback()

	created, err := insertDraft(ctx, txqry, entry.draft(), strings.TrimSpace(entry.School))
	if err != nil {
		s.tel.ReportBroken(report_store_add_single, err)
		return false, fail(span, err)
	}
	err = tx.Commit()
	if err != nil {
		return false, fail(span, err)
	}
	if !created {
		s.tel.ReportDebug(report_store_add_single, "already exists", entry.Name, entry.CompetitionDate)
	}
	return created, nil
}
