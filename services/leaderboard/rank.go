package leaderboard

import "sort"

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Sortable columns. Unknown column names fall back to points.
const (
	ColumnName                = "name"
	ColumnTeam                = "team"
	ColumnGamesPlayed         = "gamesPlayed"
	ColumnGoals               = "goals"
	ColumnAssists             = "assists"
	ColumnPoints              = "points"
	ColumnShots               = "shots"
	ColumnHits                = "hits"
	ColumnBlockedShots        = "blockedShots"
	ColumnPenaltyMinutes      = "penaltyMinutes"
	ColumnTakeaways           = "takeaways"
	ColumnGiveaways           = "giveaways"
	ColumnFaceoffsWon         = "faceoffsWon"
	ColumnFaceoffsLost        = "faceoffsLost"
	ColumnPlusMinus           = "plusMinus"
	ColumnShotPercentage      = "shotPercentage"
	ColumnFaceoffPercentage   = "faceoffPercentage"
	ColumnSaves               = "saves"
	ColumnShotsAgainst        = "shotsAgainst"
	ColumnGoalsAgainst        = "goalsAgainst"
	ColumnShutouts            = "shutouts"
	ColumnSavePercentage      = "savePercentage"
	ColumnGoalsAgainstAverage = "goalsAgainstAverage"
)

// Columns that only mean something on one of the two boards. Shared columns
// (name, team, games played) and unknown columns apply to both.
var skaterOnlyColumns = map[string]bool{
	ColumnGoals:             true,
	ColumnAssists:           true,
	ColumnPoints:            true,
	ColumnShots:             true,
	ColumnHits:              true,
	ColumnBlockedShots:      true,
	ColumnPenaltyMinutes:    true,
	ColumnTakeaways:         true,
	ColumnGiveaways:         true,
	ColumnFaceoffsWon:       true,
	ColumnFaceoffsLost:      true,
	ColumnPlusMinus:         true,
	ColumnShotPercentage:    true,
	ColumnFaceoffPercentage: true,
}

var goalieOnlyColumns = map[string]bool{
	ColumnSaves:               true,
	ColumnShotsAgainst:        true,
	ColumnGoalsAgainst:        true,
	ColumnShutouts:            true,
	ColumnSavePercentage:      true,
	ColumnGoalsAgainstAverage: true,
}

// ApplySort re-sorts the boards by a requested column, touching only the
// board the column belongs to: asking for points leaves the goalie groups
// in their default save-percentage order instead of re-sorting them by the
// fallback column.
func ApplySort(boards *Leaderboards, column string, direction Direction) {
	if column == "" {
		return
	}
	if !goalieOnlyColumns[column] {
		for _, group := range boards.Skaters {
			Sort(group.Entries, column, direction)
		}
	}
	if !skaterOnlyColumns[column] {
		for _, group := range boards.Goalies {
			Sort(group.Entries, column, direction)
		}
	}
}

// Sort orders leaderboard entries by one column. The sort is stable, so
// sorting by a new column preserves the previous relative order among ties.
//
// Goals against average is a lower-is-better column: the descending
// direction, which every other column treats as best-first, yields ascending
// averages so the best goalie still comes out on top.
func Sort(entries []Entry, column string, direction Direction) {
	less := lessFunc(column)
	if direction != Ascending {
		inner := less
		less = func(a, b Entry) bool { return inner(b, a) }
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return less(entries[i], entries[j])
	})
}

func lessFunc(column string) func(a, b Entry) bool {
	switch column {
	case ColumnName:
		return func(a, b Entry) bool { return a.DisplayName < b.DisplayName }
	case ColumnTeam:
		return func(a, b Entry) bool { return a.Team < b.Team }
	case ColumnGamesPlayed:
		return intColumn(func(e Entry) int { return e.GamesPlayed })
	case ColumnGoals:
		return intColumn(func(e Entry) int { return e.Goals })
	case ColumnAssists:
		return intColumn(func(e Entry) int { return e.Assists })
	case ColumnShots:
		return intColumn(func(e Entry) int { return e.Shots })
	case ColumnHits:
		return intColumn(func(e Entry) int { return e.Hits })
	case ColumnBlockedShots:
		return intColumn(func(e Entry) int { return e.BlockedShots })
	case ColumnPenaltyMinutes:
		return intColumn(func(e Entry) int { return e.PenaltyMinutes })
	case ColumnTakeaways:
		return intColumn(func(e Entry) int { return e.Takeaways })
	case ColumnGiveaways:
		return intColumn(func(e Entry) int { return e.Giveaways })
	case ColumnFaceoffsWon:
		return intColumn(func(e Entry) int { return e.FaceoffsWon })
	case ColumnFaceoffsLost:
		return intColumn(func(e Entry) int { return e.FaceoffsLost })
	case ColumnPlusMinus:
		return intColumn(func(e Entry) int { return e.PlusMinus })
	case ColumnShotPercentage:
		return floatColumn(func(e Entry) float64 { return e.ShotPercentage })
	case ColumnFaceoffPercentage:
		return floatColumn(func(e Entry) float64 { return e.FaceoffPercentage })
	case ColumnSaves:
		return intColumn(func(e Entry) int { return e.Saves })
	case ColumnShotsAgainst:
		return intColumn(func(e Entry) int { return e.ShotsAgainst })
	case ColumnGoalsAgainst:
		return intColumn(func(e Entry) int { return e.GoalsAgainst })
	case ColumnShutouts:
		return intColumn(func(e Entry) int { return e.Shutouts })
	case ColumnSavePercentage:
		return floatColumn(func(e Entry) float64 { return e.SavePercentage })
	case ColumnGoalsAgainstAverage:
		// Inverted: "descending" must surface the lowest average first.
		return func(a, b Entry) bool { return a.GoalsAgainstAverage > b.GoalsAgainstAverage }
	default:
		return intColumn(func(e Entry) int { return e.Points })
	}
}

func intColumn(value func(Entry) int) func(a, b Entry) bool {
	return func(a, b Entry) bool { return value(a) < value(b) }
}

func floatColumn(value func(Entry) float64) func(a, b Entry) bool {
	return func(a, b Entry) bool { return value(a) < value(b) }
}
