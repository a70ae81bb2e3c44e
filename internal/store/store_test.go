package store

import (
	"context"
	"errors"
	"swimrank-backend/internal/identity"
	"swimrank-backend/internal/normalize"
	"swimrank-backend/internal/store/db"
	"swimrank-backend/internal/telemetry"
	"swimrank-backend/internal/testutil"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (Store, *telemetry.Recorder) {
	t.Helper()
	tel := &telemetry.Recorder{}
	return New(testutil.OpenDB(t, db.Schema, db.SchemaVersion), tel), tel
}

func counts(t *testing.T, s Store) (int64, int64) {
	t.Helper()
	swimmers, records, err := s.Counts(context.Background())
	require.NoError(t, err)
	return swimmers, records
}

func strp(s string) *string {
	return &s
}

func intp(i int) *int {
	return &i
}

var testDrafts = []normalize.Draft{
	{Name: "Alice Swim", Gender: "Female", Age: "9", Stroke: "Backstroke", Distance: "50 m", Time: "00:35.10", Competition: "Age Group Championships", CompetitionDate: "15 ม.ค. 2567", Club: "Bangkok SC", Nationality: "THA"},
	{Name: "Bea Swim", Gender: "Female", Age: "9", Stroke: "Backstroke", Distance: "50 m", Time: "00:36.02", Competition: "Age Group Championships", CompetitionDate: "15 ม.ค. 2567", Club: "Chiang Mai SC", Nationality: "THA"},
	{Name: "Alice Swim", Gender: "Female", Age: "10-11", Stroke: "Freestyle", Distance: "100 m", Time: "01:10.44", Competition: "Youth Open", CompetitionDate: "2 มี.ค. 2566", Club: "Bangkok SC", Nationality: "THA"},
	{Name: "Cat Swim", Gender: "Female", Age: "11-12", Stroke: "Backstroke", Distance: "50 m", Time: "00:37.50", Competition: "Youth Open", CompetitionDate: "not announced", Club: "Phuket SC", Nationality: "THA"},
}

func TestAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	inserted, err := s.Add(ctx, testDrafts)
	require.NoError(t, err)
	require.Equal(t, 4, inserted)

	inserted, err = s.Add(ctx, testDrafts)
	require.NoError(t, err)
	require.Equal(t, 0, inserted)

	swimmers, records := counts(t, s)
	require.Equal(t, int64(3), swimmers)
	require.Equal(t, int64(4), records)
}

func TestAddSkipsMalformedRows(t *testing.T) {
	ctx := context.Background()
	s, tel := newTestStore(t)

	drafts := []normalize.Draft{
		testDrafts[0],
		{Name: "   ", Stroke: "Backstroke"},
		testDrafts[1],
		// duplicate within the batch
		testDrafts[0],
	}
	inserted, err := s.Add(ctx, drafts)
	require.NoError(t, err)
	require.Equal(t, 2, inserted)

	count, err := tel.LastCount(report_store_add)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

func TestAddNeverOverwritesSwimmer(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_, err := s.SyncSwimmers(ctx, []Swimmer{{Name: "Alice Swim", Gender: "Female", Club: "Bangkok SC", School: "Satit", YearOfBirth: intp(2014)}})
	require.NoError(t, err)

	moved := testDrafts[0]
	moved.Club = "Another Club"
	_, err = s.Add(ctx, []normalize.Draft{moved})
	require.NoError(t, err)

	swimmer, found, err := s.GetSwimmerByName(ctx, "Alice Swim")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Bangkok SC", swimmer.Club)
	require.Equal(t, "Satit", swimmer.School)
	require.Equal(t, 2014, *swimmer.YearOfBirth)
}

func TestAddSingle(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	entry := ManualEntry{
		Name:            "Dao Swim",
		Gender:          "Female",
		Club:            "Korat SC",
		School:          "Satit",
		Age:             "12-12",
		Stroke:          "Butterfly",
		Distance:        "100 m",
		Time:            "01:15.00",
		Competition:     "Youth Open",
		CompetitionDate: "2 มี.ค. 2566",
		Nationality:     "THA",
	}
	created, err := s.AddSingle(ctx, entry)
	require.NoError(t, err)
	require.True(t, created)

	created, err = s.AddSingle(ctx, entry)
	require.NoError(t, err)
	require.False(t, created)

	records, err := s.Records(ctx, RecordQuery{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "12", records[0].Age)
	require.Equal(t, "Satit", records[0].School)
	require.Equal(t, identity.SwimmerID("Dao Swim"), records[0].SwimmerID)
}

func TestAddSingleValidation(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.AddSingle(context.Background(), ManualEntry{Name: "Dao Swim", Stroke: "Butterfly", Time: " "})

	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	require.Equal(t, []string{"distance", "time", "competition", "competition_date"}, validation.Missing)

	_, records := counts(t, s)
	require.Zero(t, records)
}

func TestSyncRecordsNeverDeletes(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_, err := s.Add(ctx, testDrafts)
	require.NoError(t, err)

	before, err := s.Records(ctx, RecordQuery{})
	require.NoError(t, err)
	require.Len(t, before, 4)

	target := before[0]
	edits := []RecordEdit{
		{ID: target.ID, Time: strp("00:34.99"), Club: strp("New Club")},
		// no change
		{ID: before[1].ID, Stroke: strp(before[1].Stroke)},
		// unknown and missing ids
		{ID: "0000000000000000000000000000000000000000", Time: strp("00:01.00")},
		{Time: strp("00:01.00")},
	}
	updated, err := s.SyncRecords(ctx, edits)
	require.NoError(t, err)
	require.Equal(t, 1, updated)

	_, records := counts(t, s)
	require.Equal(t, int64(4), records)

	after, found, err := s.Record(ctx, target.ID)
	require.NoError(t, err)
	require.True(t, found)

	expected := target.Record
	expected.Time = "00:34.99"
	expected.Club = "New Club"
	if diff := cmp.Diff(expected, after); diff != "" {
		t.Fatalf("unexpected record (-want +got):\n%s", diff)
	}

	// the rest is untouched
	rest, err := s.Records(ctx, RecordQuery{})
	require.NoError(t, err)
	for _, r := range rest {
		if r.ID == target.ID {
			continue
		}
		var original RecordView
		for _, b := range before {
			if b.ID == r.ID {
				original = b
			}
		}
		require.Equal(t, original, r)
	}
}

func TestSyncRecordsCollapsesAge(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_, err := s.Add(ctx, testDrafts[:1])
	require.NoError(t, err)

	records, err := s.Records(ctx, RecordQuery{})
	require.NoError(t, err)

	updated, err := s.SyncRecords(ctx, []RecordEdit{{ID: records[0].ID, Age: strp("10-10")}})
	require.NoError(t, err)
	require.Equal(t, 1, updated)

	record, _, err := s.Record(ctx, records[0].ID)
	require.NoError(t, err)
	require.Equal(t, "10", record.Age)
}

func TestSyncSwimmersDeletesByAbsence(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_, err := s.Add(ctx, testDrafts)
	require.NoError(t, err)

	stored, err := s.Swimmers(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 3)

	// drop the first, edit the second, add a new one without an id and a duplicate
	kept := stored[1:]
	kept[0].School = "Satit"
	set := append([]Swimmer{}, kept...)
	set = append(set, Swimmer{Name: "Eve  Swim", Gender: "Female"}, kept[0])

	result, err := s.SyncSwimmers(ctx, set)
	require.NoError(t, err)
	require.Equal(t, SyncResult{Deleted: 1, Upserted: 3}, result)

	after, err := s.Swimmers(ctx)
	require.NoError(t, err)
	require.Len(t, after, 3)

	ids := make([]string, len(after))
	for i, swimmer := range after {
		ids[i] = swimmer.ID
	}
	require.ElementsMatch(t, []string{stored[1].ID, stored[2].ID, "eve_swim"}, ids)

	// records are never touched by a swimmer sync
	_, records := counts(t, s)
	require.Equal(t, int64(4), records)
}

func TestSyncSwimmersWithEmptySet(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_, err := s.Add(ctx, testDrafts)
	require.NoError(t, err)

	result, err := s.SyncSwimmers(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, 3, result.Deleted)

	swimmers, records := counts(t, s)
	require.Zero(t, swimmers)
	require.Equal(t, int64(4), records)

	// profiles come back on the next ingest and the old records link again
	_, err = s.Add(ctx, testDrafts[:1])
	require.NoError(t, err)
	views, err := s.Records(ctx, RecordQuery{Swimmer: "alice"})
	require.NoError(t, err)
	require.Len(t, views, 2)
	for _, v := range views {
		require.Equal(t, "Female", v.Gender)
	}
}

func TestDeleteRecords(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_, err := s.Add(ctx, testDrafts)
	require.NoError(t, err)

	records, err := s.Records(ctx, RecordQuery{})
	require.NoError(t, err)

	deleted, err := s.DeleteRecords(ctx, []string{records[0].ID, records[1].ID, "missing"})
	require.NoError(t, err)
	require.Equal(t, 2, deleted)

	deleted, err = s.DeleteRecords(ctx, nil)
	require.NoError(t, err)
	require.Zero(t, deleted)

	_, count := counts(t, s)
	require.Equal(t, int64(2), count)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_, err := s.Add(ctx, testDrafts)
	require.NoError(t, err)
	_, err = s.Add(ctx, []normalize.Draft{
		{Name: "Swim_Star", Competition: "100% Effort Cup", CompetitionDate: "1 ม.ค. 2567", Stroke: "Freestyle", Distance: "50 m", Time: "00:30.00"},
	})
	require.NoError(t, err)

	swimmers, err := s.SearchSwimmers(ctx, "SWIM")
	require.NoError(t, err)
	require.Len(t, swimmers, 4)

	// wildcards match literally
	swimmers, err = s.SearchSwimmers(ctx, "_")
	require.NoError(t, err)
	require.Len(t, swimmers, 1)
	require.Equal(t, "Swim_Star", swimmers[0].Name)

	swimmers, err = s.SearchSwimmers(ctx, "alice sw")
	require.NoError(t, err)
	require.Len(t, swimmers, 1)
	require.Equal(t, "alice_swim", swimmers[0].ID)

	swimmers, err = s.SearchSwimmers(ctx, "")
	require.NoError(t, err)
	require.Empty(t, swimmers)

	competitions, err := s.SearchCompetitions(ctx, "open")
	require.NoError(t, err)
	require.Equal(t, []string{"Youth Open"}, competitions)

	competitions, err = s.SearchCompetitions(ctx, "%")
	require.NoError(t, err)
	require.Equal(t, []string{"100% Effort Cup"}, competitions)
}

func TestSearchSwimmersOrdersBySimilarity(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_, err := s.SyncSwimmers(ctx, []Swimmer{
		{Name: "Annabelle Kim"},
		{Name: "Ann Kim"},
		{Name: "Joanne Kim"},
	})
	require.NoError(t, err)

	swimmers, err := s.SearchSwimmers(ctx, "ann kim")
	require.NoError(t, err)
	require.Len(t, swimmers, 1)

	swimmers, err = s.SearchSwimmers(ctx, "ann")
	require.NoError(t, err)
	require.Len(t, swimmers, 3)
	require.Equal(t, "Ann Kim", swimmers[0].Name)
}

func TestSuggestSwimmers(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_, err := s.SyncSwimmers(ctx, []Swimmer{
		{Name: "Somchai Jaidee"},
		{Name: "Somchai Jaide"},
		{Name: "Niran Wongsa"},
	})
	require.NoError(t, err)

	suggestions, err := s.SuggestSwimmers(ctx, "somchai  jaidee")
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	require.Equal(t, "Somchai Jaidee", suggestions[0].Name)
	require.Equal(t, "Somchai Jaide", suggestions[1].Name)

	suggestions, err = s.SuggestSwimmers(ctx, "   ")
	require.NoError(t, err)
	require.Empty(t, suggestions)
}

func TestSearchLimit(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	var swimmers []Swimmer
	for i := 0; i < 15; i++ {
		swimmers = append(swimmers, Swimmer{Name: "Swimmer " + string(rune('a'+i))})
	}
	_, err := s.SyncSwimmers(ctx, swimmers)
	require.NoError(t, err)

	found, err := s.SearchSwimmers(ctx, "swimmer")
	require.NoError(t, err)
	require.Len(t, found, SearchLimit)
}

func TestLookups(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_, err := s.Add(ctx, testDrafts)
	require.NoError(t, err)

	swimmer, found, err := s.GetSwimmerByName(ctx, "Bea Swim")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "bea_swim", swimmer.ID)
	require.Nil(t, swimmer.YearOfBirth)

	_, found, err = s.GetSwimmerByName(ctx, "bea swim")
	require.NoError(t, err)
	require.False(t, found)

	date, found, err := s.GetCompetitionDate(ctx, "Age Group Championships")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "15 ม.ค. 2567", date)

	_, found, err = s.GetCompetitionDate(ctx, "Olympics")
	require.NoError(t, err)
	require.False(t, found)
}

func TestRecordsQuery(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	_, err := s.Add(ctx, testDrafts)
	require.NoError(t, err)

	names := func(views []RecordView) []string {
		var out []string
		for _, v := range views {
			out = append(out, v.Name+"/"+v.Time)
		}
		return out
	}

	testCases := []struct {
		name     string
		query    RecordQuery
		expected []string
	}{
		{
			name:     "everything",
			query:    RecordQuery{},
			expected: []string{"Alice Swim/00:35.10", "Bea Swim/00:36.02", "Alice Swim/01:10.44", "Cat Swim/00:37.50"},
		},
		{
			name:     "age 10 matches 10-11 but not 11-12 or 9",
			query:    RecordQuery{MinAge: intp(10), MaxAge: intp(10)},
			expected: []string{"Alice Swim/01:10.44"},
		},
		{
			name:     "date range excludes unknown dates",
			query:    RecordQuery{Start: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)},
			expected: []string{"Alice Swim/01:10.44"},
		},
		{
			name:     "stroke and distance",
			query:    RecordQuery{Stroke: "backstroke", Distance: "50 m"},
			expected: []string{"Alice Swim/00:35.10", "Bea Swim/00:36.02", "Cat Swim/00:37.50"},
		},
		{
			name:     "gender comes from the swimmer",
			query:    RecordQuery{Gender: "Male"},
			expected: nil,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			views, err := s.Records(ctx, test.query)
			require.NoError(t, err)
			if diff := cmp.Diff(test.expected, names(views), cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
				t.Fatalf("unexpected records (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReplaceSchools(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	count, err := s.ReplaceSchools(ctx, []School{
		{Name: "สาธิตจุฬา", ThaiAbbrev: "สจ.", EngAbbrev: "CUD", Participating: true},
		{Name: "สาธิตเกษตร", ThaiAbbrev: "สก.", EngAbbrev: "KUS"},
		{Name: "สาธิตจุฬา", ThaiAbbrev: "ซ้ำ"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, count)

	_, err = s.ReplaceSchools(ctx, []School{{Name: "สาธิตปทุมวัน", EngAbbrev: "PWS", Participating: true}})
	require.NoError(t, err)

	schools, err := s.Schools(ctx)
	require.NoError(t, err)
	require.Equal(t, []School{{Name: "สาธิตปทุมวัน", EngAbbrev: "PWS", Participating: true}}, schools)
}
