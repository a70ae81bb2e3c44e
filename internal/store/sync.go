package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"swimrank-backend/internal/identity"
	"swimrank-backend/internal/normalize"
	"swimrank-backend/internal/store/db"

	"go.opentelemetry.io/otel/attribute"
)

// SyncResult reports exactly what a full swimmer sync changed.
type SyncResult struct {
	Deleted  int
	Upserted int
	// Skipped counts rows with neither an id nor a name.
	Skipped int
}

// SyncSwimmers replaces the stored swimmers with `swimmers`. Any stored
// swimmer whose id is absent from the set is deleted, absence is the only
// deletion signal. Rows without an id get one derived from their name and
// duplicate ids collapse to their first occurrence.
//
// Records of a deleted swimmer are kept, they link to the profile again if it
// is synced back.
func (s Store) SyncSwimmers(ctx context.Context, swimmers []Swimmer) (SyncResult, error) {
	ctx, span := tracer.Start(ctx, "SyncSwimmers")
	defer span.End()

	var result SyncResult
	seen := make(map[string]struct{}, len(swimmers))
	var set []Swimmer
	for _, swimmer := range swimmers {
		swimmer.ID = strings.TrimSpace(swimmer.ID)
		swimmer.Name = strings.Join(strings.Fields(swimmer.Name), " ")
		if swimmer.ID == "" {
			swimmer.ID = identity.SwimmerID(swimmer.Name)
		}
		if swimmer.ID == "" {
			result.Skipped++
			continue
		}
		if _, dup := seen[swimmer.ID]; dup {
			continue
		}
		seen[swimmer.ID] = struct{}{}
		set = append(set, swimmer)
	}

	tx, txqry, err := s.begin(ctx)
	if err != nil {
		return SyncResult{}, fail(span, err)
	}
	defer tx.Rollback()

	stored, err := txqry.ListSwimmerIDs(ctx)
	if err != nil {
		return SyncResult{}, fail(span, err)
	}
	for _, id := range stored {
		if _, keep := seen[id]; keep {
			continue
		}
		count, err := txqry.DeleteSwimmer(ctx, id)
		if err != nil {
			return SyncResult{}, fail(span, fmt.Errorf("delete swimmer %s: %w", id, err))
		}
		result.Deleted += int(count)
	}

	for _, swimmer := range set {
		var yearOfBirth sql.NullInt64
		if swimmer.YearOfBirth != nil {
			yearOfBirth = sql.NullInt64{Int64: int64(*swimmer.YearOfBirth), Valid: true}
		}
		err = txqry.UpsertSwimmer(ctx, db.UpsertSwimmerParams{
			ID:          swimmer.ID,
			Name:        swimmer.Name,
			Gender:      swimmer.Gender,
			YearOfBirth: yearOfBirth,
			Club:        swimmer.Club,
			School:      swimmer.School,
		})
		if err != nil {
			return SyncResult{}, fail(span, fmt.Errorf("upsert swimmer %s: %w", swimmer.ID, err))
		}
		result.Upserted++
	}

	err = tx.Commit()
	if err != nil {
		return SyncResult{}, fail(span, err)
	}

	span.SetAttributes(
		attribute.Int("deleted", result.Deleted),
		attribute.Int("upserted", result.Upserted),
	)
	s.tel.ReportDebug(report_store_sync_swimmers, "deleted", result.Deleted, "upserted", result.Upserted, "skipped", result.Skipped)
	return result, nil
}

// RecordEdit is a partial edit of a stored record. Only the editable fields
// exist here, nil leaves a field as it is.
type RecordEdit struct {
	ID              string  `json:"id"`
	Age             *string `json:"age,omitempty"`
	Stroke          *string `json:"stroke,omitempty"`
	Distance        *string `json:"distance,omitempty"`
	Time            *string `json:"time,omitempty"`
	Competition     *string `json:"competition,omitempty"`
	CompetitionDate *string `json:"competition_date,omitempty"`
	Club            *string `json:"club,omitempty"`
	Nationality     *string `json:"nationality,omitempty"`
}

// apply writes the edit over `record`, reporting whether anything changed.
func (e RecordEdit) apply(record *db.Record) bool {
	changed := false
	set := func(field *string, value *string) {
		if value == nil || *field == *value {
			return
		}
		*field = *value
		changed = true
	}
	if e.Age != nil {
		age := normalize.CollapseAge(strings.TrimSpace(*e.Age))
		set(&record.Age, &age)
	}
	set(&record.Stroke, e.Stroke)
	set(&record.Distance, e.Distance)
	set(&record.Time, e.Time)
	set(&record.Competition, e.Competition)
	set(&record.CompetitionDate, e.CompetitionDate)
	set(&record.Club, e.Club)
	set(&record.Nationality, e.Nationality)
	return changed
}

// SyncRecords applies edits to existing records and never inserts or deletes.
// Records absent from `edits` are untouched, edits without an id or for an id
// that is not stored are skipped. It returns how many records had at least one
// field changed.
//
// The record id is not recomputed, an edited key field keeps the old id.
func (s Store) SyncRecords(ctx context.Context, edits []RecordEdit) (int, error) {
	ctx, span := tracer.Start(ctx, "SyncRecords")
	defer span.End()

	tx, txqry, err := s.begin(ctx)
	if err != nil {
		return 0, fail(span, err)
	}
	defer tx.Rollback()

	updated := 0
	for _, edit := range edits {
		id := strings.TrimSpace(edit.ID)
		if id == "" {
			continue
		}
		record, err := txqry.GetRecord(ctx, id)
		if errors.Is(err, sql.ErrNoRows) {
			s.tel.ReportWarning(report_store_sync_records, "no record with id", id)
			continue
		}
		if err != nil {
			return 0, fail(span, fmt.Errorf("get record %s: %w", id, err))
		}
		if !edit.apply(&record) {
			continue
		}

		count, err := txqry.UpdateRecordFields(ctx, db.UpdateRecordFieldsParams{
			ID:              record.ID,
			Age:             record.Age,
			Stroke:          record.Stroke,
			Distance:        record.Distance,
			Time:            record.Time,
			Competition:     record.Competition,
			CompetitionDate: record.CompetitionDate,
			Club:            record.Club,
			Nationality:     record.Nationality,
		})
		if err != nil {
			return 0, fail(span, fmt.Errorf("update record %s: %w", id, err))
		}
		updated += int(count)
	}

	err = tx.Commit()
	if err != nil {
		return 0, fail(span, err)
	}
	s.tel.ReportCount(report_store_sync_records, int64(updated))
	return updated, nil
}

// DeleteRecords deletes the records with the given ids and returns how many
// actually existed.
func (s Store) DeleteRecords(ctx context.Context, ids []string) (int, error) {
	ctx, span := tracer.Start(ctx, "DeleteRecords")
	defer span.End()

	if len(ids) == 0 {
		return 0, nil
	}

	tx, txqry, err := s.begin(ctx)
	if err != nil {
		return 0, fail(span, err)
	}
	defer tx.Rollback()

	deleted := 0
	for _, id := range ids {
		count, err := txqry.DeleteRecord(ctx, strings.TrimSpace(id))
		if err != nil {
			return 0, fail(span, fmt.Errorf("delete record %s: %w", id, err))
		}
		deleted += int(count)
	}

	err = tx.Commit()
	if err != nil {
		return 0, fail(span, err)
	}
	s.tel.ReportCount(report_store_delete, int64(deleted))
	return deleted, nil
}
