// Package store reconciles normalized ranking records into the swimmer and
// record tables.
//
// The store expects a single writer, callers serialize mutations against it.
// Every mutating operation runs in its own transaction that is rolled back on
// any error path.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"swimrank-backend/internal/assert"
	"swimrank-backend/internal/config"
	"swimrank-backend/internal/store/db"
	"swimrank-backend/internal/telemetry"
	"swimrank-backend/pkg/migrations"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("swimrank/store")

const (
	report_store_add           = "store.add"
	report_store_add_single    = "store.add-single"
	report_store_sync_swimmers = "store.sync-swimmers"
	report_store_sync_records  = "store.sync-records"
	report_store_delete        = "store.delete-records"
	report_store_schools       = "store.replace-schools"
)

type Store struct {
	db  *sql.DB
	qry *db.Queries
	tel telemetry.API
}

// New wraps a database that already has the schema applied.
func New(database *sql.DB, tel telemetry.API) Store {
	assert.NotNil("database", database)
	assert.NotNil("tel", tel)
	return Store{
		db:  database,
		qry: db.New(database),
		tel: telemetry.NewScopedAPI("store", tel),
	}
}

// Open opens the configured database and applies the schema if it is new.
func Open(ctx context.Context, cfg config.Database, tel telemetry.API) (Store, error) {
	location := cfg.File
	if cfg.Url != "" {
		location = cfg.Url
	}
	database, err := migrations.Open(location, cfg.AuthToken)
	if err != nil {
		return Store{}, err
	}
	err = migrations.Migrate(ctx, database, db.Schema, db.SchemaVersion)
	if err != nil {
		database.Close()
		return Store{}, err
	}
	return New(database, tel), nil
}

func (s Store) Close() error {
	return s.db.Close()
}

// Swimmer is a swimmer profile, ID is derived from Name when empty.
type Swimmer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	YearOfBirth *int   `json:"year_of_birth,omitempty"`
	Club        string `json:"club"`
	School      string `json:"school"`
}

type Record struct {
	ID              string `json:"id"`
	SwimmerID       string `json:"swimmer_id"`
	Name            string `json:"name"`
	Age             string `json:"age"`
	Stroke          string `json:"stroke"`
	Distance        string `json:"distance"`
	Time            string `json:"time"`
	Competition     string `json:"competition"`
	CompetitionDate string `json:"competition_date"`
	Club            string `json:"club"`
	Nationality     string `json:"nationality"`
}

// RecordView is a record with the profile of the swimmer it links to. The
// swimmer columns are empty when the profile no longer exists.
type RecordView struct {
	Record
	Gender string `json:"gender"`
	School string `json:"school"`
}

type School struct {
	Name          string `json:"name"`
	ThaiAbbrev    string `json:"thai_abbrev"`
	EngAbbrev     string `json:"eng_abbrev"`
	Participating bool   `json:"participating"`
}

func swimmerFromRow(row db.Swimmer) Swimmer {
	out := Swimmer{
		ID:     row.ID,
		Name:   row.Name,
		Gender: row.Gender,
		Club:   row.Club,
		School: row.School,
	}
	if row.YearOfBirth.Valid {
		year := int(row.YearOfBirth.Int64)
		out.YearOfBirth = &year
	}
	return out
}

func recordFromRow(row db.Record) Record {
	return Record{
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
	}
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// begin starts a transaction, the returned rollback is safe to defer after a commit.
func (s Store) begin(ctx context.Context) (*sql.Tx, *db.Queries, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin tx: %w", err)
	}
	return tx, s.qry.WithTx(tx), nil
}
