package store

import (
	"context"
	"fmt"
	"swimrank-backend/internal/store/db"
)

// ReplaceSchools replaces every stored school with `schools`. Duplicate names
// keep their first occurrence.
func (s Store) ReplaceSchools(ctx context.Context, schools []School) (int, error) {
	ctx, span := tracer.Start(ctx, "ReplaceSchools")
	defer span.End()

	tx, txqry, err := s.begin(ctx)
	if err != nil {
		return 0, fail(span, err)
	}
	defer tx.Rollback()

	err = txqry.DeleteSchools(ctx)
	if err != nil {
		return 0, fail(span, err)
	}
	seen := make(map[string]struct{}, len(schools))
	for _, school := range schools {
		if _, dup := seen[school.Name]; dup {
			continue
		}
		seen[school.Name] = struct{}{}
		err = txqry.CreateSchool(ctx, db.CreateSchoolParams{
			Name:          school.Name,
			ThaiAbbrev:    school.ThaiAbbrev,
			EngAbbrev:     school.EngAbbrev,
			Participating: school.Participating,
		})
		if err != nil {
			return 0, fail(span, fmt.Errorf("create school %s: %w", school.Name, err))
		}
	}

	err = tx.Commit()
	if err != nil {
		return 0, fail(span, err)
	}
	s.tel.ReportCount(report_store_schools, int64(len(seen)))
	return len(seen), nil
}

func (s Store) Schools(ctx context.Context) ([]School, error) {
	rows, err := s.qry.ListSchools(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]School, len(rows))
	for i, row := range rows {
		out[i] = School{
			Name:          row.Name,
			ThaiAbbrev:    row.ThaiAbbrev,
			EngAbbrev:     row.EngAbbrev,
			Participating: row.Participating,
		}
	}
	return out, nil
}
