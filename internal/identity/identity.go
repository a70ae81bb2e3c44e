// Package identity derives the content based ids of swimmers and records.
package identity

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// Separator replaces whitespace runs in a swimmer id.
const Separator = "_"

// SwimmerID derives a swimmer's id from the display name alone. Two different
// people whose names normalize the same share an id, nothing disambiguates them.
func SwimmerID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), Separator)
}

// RecordID is the lower case hex SHA-1 of the concatenated key fields, it
// changes whenever any one of them does.
func RecordID(swimmerID, competition, competitionDate, stroke, distance, time string) string {
	h := sha1.New()
	for _, part := range []string{swimmerID, competition, competitionDate, stroke, distance, time} {
		h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil))
}
