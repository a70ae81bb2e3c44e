package identity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSwimmerID(t *testing.T) {
	testCases := []struct {
		name     string
		expected string
	}{
		{"Alice Swim", "alice_swim"},
		{"  Alice   Swim ", "alice_swim"},
		{"ALICE\tSWIM", "alice_swim"},
		{"สมหญิง ว่ายน้ำ", "สมหญิง_ว่ายน้ำ"},
		{"Single", "single"},
		{"", ""},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, SwimmerID(test.name), test.name)
	}

	// different people, same normalized name
	require.Equal(t, SwimmerID("Alice Swim"), SwimmerID("alice swim"))
}

func TestRecordID(t *testing.T) {
	key := []string{"alice_swim", "Age Group Championships", "15 ม.ค. 2567", "Backstroke", "50 m", "00:35.10"}
	id := RecordID(key[0], key[1], key[2], key[3], key[4], key[5])

	require.Equal(t, "48a882d64fbeb5d50764ef169a615990f4d0f862", id)
	require.Len(t, id, 40)
	require.Equal(t, id, RecordID(key[0], key[1], key[2], key[3], key[4], key[5]))

	for i := range key {
		changed := append([]string(nil), key...)
		changed[i] += "x"
		other := RecordID(changed[0], changed[1], changed[2], changed[3], changed[4], changed[5])
		require.NotEqual(t, id, other, "changing field %d must change the id", i)
	}
}
