package db

import (
	"database/sql"
)

type Swimmer struct {
	ID          string
	Name        string
	Gender      string
	YearOfBirth sql.NullInt64
	Club        string
	School      string
}

type Record struct {
	ID              string
	SwimmerID       string
	Name            string
	Age             string
	Stroke          string
	Distance        string
	Time            string
	Competition     string
	CompetitionDate string
	Club            string
	Nationality     string
}

type School struct {
	Name          string
	ThaiAbbrev    string
	EngAbbrev     string
	Participating bool
}
