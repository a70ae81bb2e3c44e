// Package schools loads the school reference list.
//
// The list is a whitespace separated text file with a header line and the
// columns: index, school name, thai abbreviation, english abbreviation,
// participation flag ("YES" when participating).
package schools

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"swimrank-backend/internal/store"
	"unicode"
)

const columns = 5

// Parse reads the list, lines with fewer than 5 fields are skipped.
func Parse(r io.Reader) ([]store.School, error) {
	scanner := bufio.NewScanner(r)
	var out []store.School
	header := true
	for scanner.Scan() {
		if header {
			header = false
			continue
		}
		fields := splitN(scanner.Text(), columns)
		if len(fields) < columns {
			continue
		}
		out = append(out, store.School{
			Name:          fields[1],
			ThaiAbbrev:    fields[2],
			EngAbbrev:     fields[3],
			Participating: strings.EqualFold(strings.TrimSpace(fields[4]), "YES"),
		})
	}
	err := scanner.Err()
	if err != nil {
		return nil, err
	}
	return out, nil
}

// splitN splits on whitespace runs into at most n fields, the last field keeps
// the rest of the line.
func splitN(line string, n int) []string {
	var out []string
	rest := strings.TrimSpace(line)
	for rest != "" && len(out) < n-1 {
		idx := strings.IndexFunc(rest, unicode.IsSpace)
		if idx < 0 {
			break
		}
		out = append(out, rest[:idx])
		rest = strings.TrimLeftFunc(rest[idx:], unicode.IsSpace)
	}
	if rest != "" {
		out = append(out, rest)
	}
	return out
}

// Refresh replaces the stored schools with the contents of the file at `path`.
func Refresh(ctx context.Context, s store.Store, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open schools file: %w", err)
	}
	defer f.Close()

	list, err := Parse(f)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return s.ReplaceSchools(ctx, list)
}
