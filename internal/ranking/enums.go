package ranking

import (
	"fmt"
	"strings"
)

// Option is one entry of a remote selector: the value the remote page expects and
// the display name stored alongside records.
type Option struct {
	ID   string
	Name string
}

type Stroke Option
type Distance Option
type Gender Option
type PoolType Option

var (
	Freestyle        = Stroke{ID: "2", Name: "Freestyle"}
	Backstroke       = Stroke{ID: "3", Name: "Backstroke"}
	Breaststroke     = Stroke{ID: "4", Name: "Breaststroke"}
	Butterfly        = Stroke{ID: "5", Name: "Butterfly"}
	IndividualMedley = Stroke{ID: "6", Name: "Individual Medley"}

	Strokes = []Stroke{Freestyle, Backstroke, Breaststroke, Butterfly, IndividualMedley}
)

var (
	Distance50   = Distance{ID: "1", Name: "50 m"}
	Distance100  = Distance{ID: "2", Name: "100 m"}
	Distance200  = Distance{ID: "3", Name: "200 m"}
	Distance400  = Distance{ID: "4", Name: "400 m"}
	Distance800  = Distance{ID: "5", Name: "800 m"}
	Distance1500 = Distance{ID: "9", Name: "1500 m"}

	Distances = []Distance{Distance50, Distance100, Distance200, Distance400, Distance800, Distance1500}
)

var (
	Male   = Gender{ID: "1", Name: "Male"}
	Female = Gender{ID: "2", Name: "Female"}

	Genders = []Gender{Male, Female}
)

var (
	LongCourse  = PoolType{ID: "1", Name: "Long Course (50m)"}
	ShortCourse = PoolType{ID: "2", Name: "Short Course (25m)"}

	PoolTypes = []PoolType{LongCourse, ShortCourse}
)

func normalizeOption(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "")
}

func lookup[T ~struct {
	ID   string
	Name string
}](kind string, options []T, text string) (T, error) {
	needle := normalizeOption(text)
	for _, o := range options {
		opt := Option(o)
		if opt.ID == text || normalizeOption(opt.Name) == needle {
			return o, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q", kind, text)
}

// ParseStroke accepts either the remote id or the display name (case and spacing insensitive).
func ParseStroke(text string) (Stroke, error) {
	return lookup("stroke", Strokes, text)
}

func ParseDistance(text string) (Distance, error) {
	d, err := lookup("distance", Distances, text)
	if err == nil {
		return d, nil
	}
	// "50" and "50m" are accepted too
	return lookup("distance", Distances, strings.TrimSuffix(strings.TrimSpace(text), "m")+" m")
}

func ParseGender(text string) (Gender, error) {
	return lookup("gender", Genders, text)
}

// ParsePoolType accepts the id, the full display name, or "long"/"short".
func ParsePoolType(text string) (PoolType, error) {
	switch normalizeOption(text) {
	case "long", "lc", "longcourse":
		return LongCourse, nil
	case "short", "sc", "shortcourse":
		return ShortCourse, nil
	}
	return lookup("pool type", PoolTypes, text)
}
