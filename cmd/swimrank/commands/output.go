package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"swimrank-backend/internal/ranking"
	"swimrank-backend/internal/store"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	return t
}

func renderRows(rows []ranking.AnnotatedRow) {
	t := newTable()
	t.AppendHeader(table.Row{"Rank", "Name", "Club", "Nation", "Time", "Competition", "Date", "Stroke", "Distance", "Age", "Pool", "Gender"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Rank, r.Name, r.Club, r.Nationality, r.Time, r.Competition, r.CompetitionDate, r.Stroke, r.Distance, r.AgeRange, r.Pool, r.Gender})
	}
	t.Render()
}

func renderRecords(records []store.RecordView) {
	t := newTable()
	t.AppendHeader(table.Row{"ID", "Name", "Gender", "Age", "Stroke", "Distance", "Time", "Competition", "Date", "Club", "School"})
	for _, r := range records {
		t.AppendRow(table.Row{r.ID, r.Name, r.Gender, r.Age, r.Stroke, r.Distance, r.Time, r.Competition, r.CompetitionDate, r.Club, r.School})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "", "", "", "", "Total", len(records)})
	t.Render()
}

func renderSwimmers(swimmers []store.Swimmer) {
	t := newTable()
	t.AppendHeader(table.Row{"ID", "Name", "Gender", "Born", "Club", "School"})
	for _, s := range swimmers {
		born := ""
		if s.YearOfBirth != nil {
			born = fmt.Sprint(*s.YearOfBirth)
		}
		t.AppendRow(table.Row{s.ID, s.Name, s.Gender, born, s.Club, s.School})
	}
	t.Render()
}

// readJSON decodes the file at `path` into `out`, "-" reads stdin.
func readJSON(path string, out any) error {
	if path == "-" {
		return json.NewDecoder(os.Stdin).Decode(out)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(out)
}

func writeJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
