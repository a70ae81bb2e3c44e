package store

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"swimrank-backend/internal/normalize"
	"swimrank-backend/internal/store/db"
	"time"

	"github.com/antzucaro/matchr"
)

// SearchLimit bounds the results of SearchSwimmers and SearchCompetitions.
const SearchLimit = 10

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern is a LIKE pattern matching `query` anywhere, wildcards in
// `query` match literally.
func containsPattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}

// SearchSwimmers finds swimmers whose name contains `query` (case insensitive),
// closest names first.
func (s Store) SearchSwimmers(ctx context.Context, query string) ([]Swimmer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	rows, err := s.qry.SearchSwimmers(ctx, db.SearchSwimmersParams{
		Pattern: containsPattern(query),
		MaxRows: SearchLimit,
	})
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	similarity := make(map[string]float64, len(rows))
	out := make([]Swimmer, len(rows))
	for i, row := range rows {
		out[i] = swimmerFromRow(row)
		similarity[row.ID] = matchr.JaroWinkler(strings.ToLower(row.Name), needle, false)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return similarity[out[i].ID] > similarity[out[j].ID]
	})
	return out, nil
}

// SearchCompetitions finds distinct competition names containing `query`.
func (s Store) SearchCompetitions(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	return s.qry.SearchCompetitions(ctx, db.SearchCompetitionsParams{
		Pattern: containsPattern(query),
		MaxRows: SearchLimit,
	})
}

// GetSwimmerByName looks a swimmer up by exact name.
func (s Store) GetSwimmerByName(ctx context.Context, name string) (Swimmer, bool, error) {
	row, err := s.qry.GetSwimmerByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return Swimmer{}, false, nil
	}
	if err != nil {
		return Swimmer{}, false, err
	}
	return swimmerFromRow(row), true, nil
}

// GetCompetitionDate returns the date stored for a competition, it is used to
// prefill the date of a new record joining that competition.
func (s Store) GetCompetitionDate(ctx context.Context, competition string) (string, bool, error) {
	date, err := s.qry.GetCompetitionDate(ctx, competition)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return date, true, nil
}

func (s Store) Swimmers(ctx context.Context) ([]Swimmer, error) {
	rows, err := s.qry.ListSwimmers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Swimmer, len(rows))
	for i, row := range rows {
		out[i] = swimmerFromRow(row)
	}
	return out, nil
}

// SuggestThreshold is the lowest Jaro-Winkler similarity SuggestSwimmers returns.
const SuggestThreshold = 0.85

// SuggestSwimmers returns the stored swimmers whose name is similar to `name`
// without containing it, ex. a misspelling typed into a manual entry. Closest
// first, at most SearchLimit.
func (s Store) SuggestSwimmers(ctx context.Context, name string) ([]Swimmer, error) {
	needle := strings.ToLower(strings.Join(strings.Fields(name), " "))
	if needle == "" {
		return nil, nil
	}
	swimmers, err := s.Swimmers(ctx)
	if err != nil {
		return nil, err
	}

	type scored struct {
		swimmer    Swimmer
		similarity float64
	}
	var candidates []scored
	for _, sw := range swimmers {
		similarity := matchr.JaroWinkler(strings.ToLower(sw.Name), needle, false)
		if similarity >= SuggestThreshold {
			candidates = append(candidates, scored{swimmer: sw, similarity: similarity})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].similarity > candidates[j].similarity
	})
	if len(candidates) > SearchLimit {
		candidates = candidates[:SearchLimit]
	}

	out := make([]Swimmer, len(candidates))
	for i, c := range candidates {
		out[i] = c.swimmer
	}
	return out, nil
}

// RecordQuery narrows Records, zero fields do not filter.
type RecordQuery struct {
	Swimmer  string
	Stroke   string
	Distance string
	Gender   string
	// MinAge and MaxAge filter by overlap with the record's age interval,
	// records whose age is not an interval are excluded when either is set.
	MinAge *int
	MaxAge *int
	// Start and End are inclusive, records with an unknown competition date
	// are excluded when either is set.
	Start time.Time
	End   time.Time
}

func (q RecordQuery) matches(r RecordView) bool {
	if q.Swimmer != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(q.Swimmer)) {
		return false
	}
	if q.Stroke != "" && !strings.EqualFold(r.Stroke, q.Stroke) {
		return false
	}
	if q.Distance != "" && !strings.EqualFold(r.Distance, q.Distance) {
		return false
	}
	if q.Gender != "" && !strings.EqualFold(r.Gender, q.Gender) {
		return false
	}

	if q.MinAge != nil || q.MaxAge != nil {
		minAge, maxAge := 0, int(^uint(0)>>1)
		if q.MinAge != nil {
			minAge = *q.MinAge
		}
		if q.MaxAge != nil {
			maxAge = *q.MaxAge
		}
		if !normalize.AgeMatches(r.Age, minAge, maxAge) {
			return false
		}
	}

	if !q.Start.IsZero() || !q.End.IsZero() {
		date, ok := normalize.CompetitionTime(r.CompetitionDate)
		if !ok {
			return false
		}
		if !q.Start.IsZero() && date.Before(q.Start) {
			return false
		}
		if !q.End.IsZero() && date.After(q.End) {
			return false
		}
	}
	return true
}

// Records lists stored records joined with their swimmer's gender and school.
func (s Store) Records(ctx context.Context, query RecordQuery) ([]RecordView, error) {
	rows, err := s.qry.ListRecordsWithSwimmer(ctx)
	if err != nil {
		return nil, err
	}
	var out []RecordView
	for _, row := range rows {
		view := RecordView{
			Record: Record{
				ID:              row.ID,
				SwimmerID:       row.SwimmerID,
				Name:            row.Name,
				Age:             row.Age,
				Stroke:          row.Stroke,
				Distance:        row.Distance,
				Time:            row.Time,
				Competition:     row.Competition,
				CompetitionDate: row.CompetitionDate,
				Club:            row.Club,
				Nationality:     row.Nationality,
			},
			Gender: row.SwimmerGender.String,
			School: row.SwimmerSchool.String,
		}
		if query.matches(view) {
			out = append(out, view)
		}
	}
	return out, nil
}

// Counts returns how many swimmers and records are stored.
func (s Store) Counts(ctx context.Context) (swimmers int64, records int64, err error) {
	swimmers, err = s.qry.CountSwimmers(ctx)
	if err != nil {
		return 0, 0, err
	}
	records, err = s.qry.CountRecords(ctx)
	if err != nil {
		return 0, 0, err
	}
	return swimmers, records, nil
}

func (s Store) Record(ctx context.Context, id string) (Record, bool, error) {
	row, err := s.qry.GetRecord(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return recordFromRow(row), true, nil
}
