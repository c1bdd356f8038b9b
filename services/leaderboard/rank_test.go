package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.DisplayName
	}
	return out
}

func TestSortByPointsDescending(t *testing.T) {
	entries := []Entry{
		{DisplayName: "Beta", Points: 4},
		{DisplayName: "Alpha", Points: 9},
		{DisplayName: "Gamma", Points: 6},
	}

	Sort(entries, ColumnPoints, Descending)
	assert.Equal(t, []string{"Alpha", "Gamma", "Beta"}, names(entries))
}

func TestSortIsStableOnTies(t *testing.T) {
	entries := []Entry{
		{DisplayName: "First", Points: 5, Goals: 1},
		{DisplayName: "Second", Points: 5, Goals: 3},
		{DisplayName: "Third", Points: 5, Goals: 2},
	}

	Sort(entries, ColumnPoints, Descending)
	// All tied on points: the previous order is preserved.
	assert.Equal(t, []string{"First", "Second", "Third"}, names(entries))

	Sort(entries, ColumnGoals, Descending)
	assert.Equal(t, []string{"Second", "Third", "First"}, names(entries))
}

func TestSortByNameIsCaseSensitive(t *testing.T) {
	entries := []Entry{
		{DisplayName: "alpha"},
		{DisplayName: "Beta"},
		{DisplayName: "Alpha"},
	}

	Sort(entries, ColumnName, Ascending)
	// Plain byte order: uppercase sorts before lowercase.
	assert.Equal(t, []string{"Alpha", "Beta", "alpha"}, names(entries))
}

func TestSortGoalsAgainstAverageIsInverted(t *testing.T) {
	entries := []Entry{
		{DisplayName: "Leaky", GoalsAgainstAverage: 4.5},
		{DisplayName: "Wall", GoalsAgainstAverage: 1.2},
		{DisplayName: "Solid", GoalsAgainstAverage: 2.0},
	}

	// Descending means best first, and for this column best is lowest.
	Sort(entries, ColumnGoalsAgainstAverage, Descending)
	assert.Equal(t, []string{"Wall", "Solid", "Leaky"}, names(entries))

	Sort(entries, ColumnGoalsAgainstAverage, Ascending)
	assert.Equal(t, []string{"Leaky", "Solid", "Wall"}, names(entries))
}

func TestSortUnknownColumnFallsBackToPoints(t *testing.T) {
	entries := []Entry{
		{DisplayName: "Beta", Points: 2},
		{DisplayName: "Alpha", Points: 7},
	}

	Sort(entries, "bogus", Descending)
	assert.Equal(t, []string{"Alpha", "Beta"}, names(entries))
}

func TestApplySortOnlyTouchesOwningBoard(t *testing.T) {
	boards := Leaderboards{
		Skaters: []Group{{Division: "North", Entries: []Entry{
			{DisplayName: "Beta", Points: 2},
			{DisplayName: "Alpha", Points: 7},
		}}},
		Goalies: []Group{{Division: "North", Entries: []Entry{
			{DisplayName: "Wall", SavePercentage: 0.93},
			{DisplayName: "Leaky", SavePercentage: 0.85},
		}}},
	}

	// A skater column re-sorts skaters and leaves the goalie groups in
	// their default save-percentage order.
	ApplySort(&boards, ColumnPoints, Descending)
	assert.Equal(t, []string{"Alpha", "Beta"}, names(boards.Skaters[0].Entries))
	assert.Equal(t, []string{"Wall", "Leaky"}, names(boards.Goalies[0].Entries))

	// A goalie column leaves the skaters alone.
	ApplySort(&boards, ColumnSavePercentage, Ascending)
	assert.Equal(t, []string{"Alpha", "Beta"}, names(boards.Skaters[0].Entries))
	assert.Equal(t, []string{"Leaky", "Wall"}, names(boards.Goalies[0].Entries))

	// Shared columns apply to both boards.
	ApplySort(&boards, ColumnName, Ascending)
	assert.Equal(t, []string{"Alpha", "Beta"}, names(boards.Skaters[0].Entries))
	assert.Equal(t, []string{"Leaky", "Wall"}, names(boards.Goalies[0].Entries))
}

func TestSortByPlusMinusAscending(t *testing.T) {
	entries := []Entry{
		{DisplayName: "Even", PlusMinus: 0},
		{DisplayName: "Minus", PlusMinus: -6},
		{DisplayName: "Plus", PlusMinus: 11},
	}

	Sort(entries, ColumnPlusMinus, Ascending)
	assert.Equal(t, []string{"Minus", "Even", "Plus"}, names(entries))
}
