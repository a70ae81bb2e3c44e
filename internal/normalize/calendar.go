package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BuddhistEraOffset is added to a gregorian year to get the Buddhist era year
// the remote reports competition dates in.
const BuddhistEraOffset = 543

// thaiMonths are the abbreviated Thai month names, January first.
var thaiMonths = [12]string{
	"ม.ค.",
	"ก.พ.",
	"มี.ค.",
	"เม.ย.",
	"พ.ค.",
	"มิ.ย.",
	"ก.ค.",
	"ส.ค.",
	"ก.ย.",
	"ต.ค.",
	"พ.ย.",
	"ธ.ค.",
}

// ThaiDate is a calendar date as the remote writes it: day, abbreviated Thai
// month and Buddhist era year.
type ThaiDate struct {
	Day   int
	Month time.Month
	// Year is in the Buddhist era.
	Year int
}

func thaiMonth(abbrev string) (time.Month, bool) {
	// the trailing dot is sometimes missing
	needle := strings.TrimSuffix(strings.TrimSpace(abbrev), ".")
	for i, m := range thaiMonths {
		if strings.TrimSuffix(m, ".") == needle {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// ParseThaiDate parses "15 ม.ค. 2567" or "15/ม.ค./2567".
func ParseThaiDate(s string) (ThaiDate, bool) {
	fields := strings.Fields(strings.ReplaceAll(s, "/", " "))
	if len(fields) != 3 {
		return ThaiDate{}, false
	}
	day, err := strconv.Atoi(fields[0])
	if err != nil {
		return ThaiDate{}, false
	}
	month, ok := thaiMonth(fields[1])
	if !ok {
		return ThaiDate{}, false
	}
	year, err := strconv.Atoi(fields[2])
	if err != nil || year <= BuddhistEraOffset {
		return ThaiDate{}, false
	}

	date := ThaiDate{Day: day, Month: month, Year: year}
	// reject dates like 31 ก.พ. that time.Date would silently roll over
	g := date.Gregorian()
	if g.Day() != day || g.Month() != month {
		return ThaiDate{}, false
	}
	return date, true
}

// Gregorian returns the date at midnight UTC in the gregorian calendar.
func (d ThaiDate) Gregorian() time.Time {
	return time.Date(d.Year-BuddhistEraOffset, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// FromGregorian is the inverse of ThaiDate.Gregorian.
func FromGregorian(t time.Time) ThaiDate {
	return ThaiDate{
		Day:   t.Day(),
		Month: t.Month(),
		Year:  t.Year() + BuddhistEraOffset,
	}
}

func (d ThaiDate) String() string {
	if d.Month < time.January || d.Month > time.December {
		return fmt.Sprintf("%d ?%d? %d", d.Day, int(d.Month), d.Year)
	}
	return fmt.Sprintf("%d %s %d", d.Day, thaiMonths[d.Month-1], d.Year)
}

// UnknownDate is returned by CompetitionTime for a date that cannot be parsed.
// Such records stay in storage but never match a date range.
var UnknownDate = time.Time{}

// CompetitionTime converts a stored competition date to gregorian time.
func CompetitionTime(stored string) (time.Time, bool) {
	date, ok := ParseThaiDate(stored)
	if !ok {
		return UnknownDate, false
	}
	return date.Gregorian(), true
}
