package leaderboard

import (
	"sort"

	"github.com/icetilt/league-sync/pkg/identity"
	"github.com/icetilt/league-sync/services/matches"
)

// SeasonAll selects every season when used as Filter.SeasonID.
const SeasonAll = "all"

// UnassignedDivision buckets entries whose team has no division mapping.
const UnassignedDivision = "Unassigned"

// Filter selects which matches contribute to a leaderboard and how entries
// are grouped.
type Filter struct {
	SeasonID        string
	IncludePlayoffs bool
	DivisionOfTeam  map[string]string
	DivisionOrder   []string
}

// Entry is one player's accumulated line across the selected matches. The
// counter sums are exact; the rate columns are derived after summing.
type Entry struct {
	PlayerIdentity string `json:"playerIdentity"`
	DisplayName    string `json:"displayName"`
	Team           string `json:"team"`
	GamesPlayed    int    `json:"gamesPlayed"`

	Goals          int `json:"goals"`
	Assists        int `json:"assists"`
	Points         int `json:"points"`
	Shots          int `json:"shots"`
	Hits           int `json:"hits"`
	BlockedShots   int `json:"blockedShots"`
	PenaltyMinutes int `json:"penaltyMinutes"`
	Takeaways      int `json:"takeaways"`
	Giveaways      int `json:"giveaways"`
	FaceoffsWon    int `json:"faceoffsWon"`
	FaceoffsLost   int `json:"faceoffsLost"`
	PlusMinus      int `json:"plusMinus"`

	Saves        int `json:"saves"`
	ShotsAgainst int `json:"shotsAgainst"`
	GoalsAgainst int `json:"goalsAgainst"`
	Shutouts     int `json:"shutouts"`

	ShotPercentage      float64 `json:"shotPercentage"`
	FaceoffPercentage   float64 `json:"faceoffPercentage"`
	SavePercentage      float64 `json:"savePercentage"`
	GoalsAgainstAverage float64 `json:"goalsAgainstAverage"`
}

// Group is one division's leaderboard.
type Group struct {
	Division string  `json:"division"`
	Entries  []Entry `json:"entries"`
}

// Leaderboards carries the skater and goalie boards, one group per division.
type Leaderboards struct {
	Skaters []Group `json:"skaters"`
	Goalies []Group `json:"goalies"`
}

// Aggregate folds canonical matches into per-division skater and goalie
// leaderboards. A player who appears under both roles gets an independent
// line on each board; a player whose team moves divisions gets a line per
// division.
func Aggregate(matchList []matches.Match, filter Filter, aliases *identity.Table) Leaderboards {
	type key struct {
		identity string
		division string
	}

	skaters := make(map[key]*Entry)
	goalies := make(map[key]*Entry)
	var skaterOrder, goalieOrder []key

	for _, match := range matchList {
		if filter.SeasonID != SeasonAll && match.SeasonID != filter.SeasonID {
			continue
		}
		if !filter.IncludePlayoffs && match.IsPlayoffGame() {
			continue
		}

		for _, stat := range match.Players {
			division, ok := filter.DivisionOfTeam[stat.Team]
			if !ok || division == "" {
				division = UnassignedDivision
			}

			id := entryIdentity(stat, aliases)
			k := key{identity: id, division: division}

			var board map[key]*Entry
			var order *[]key
			if stat.Role == matches.RoleGoalie {
				board, order = goalies, &goalieOrder
			} else {
				board, order = skaters, &skaterOrder
			}

			entry, ok := board[k]
			if !ok {
				entry = &Entry{
					PlayerIdentity: id,
					DisplayName:    stat.DisplayName,
					Team:           stat.Team,
				}
				if canonical := aliases.DisplayName(id); canonical != "" {
					entry.DisplayName = canonical
				}
				board[k] = entry
				*order = append(*order, k)
			}
			accumulate(entry, stat)
		}
	}

	for _, entry := range skaters {
		deriveSkaterRates(entry)
	}
	for _, entry := range goalies {
		deriveGoalieRates(entry)
	}

	boards := Leaderboards{
		Skaters: groupByDivision(skaters, skaterOrder, filter.DivisionOrder, func(k key) string { return k.division }),
		Goalies: groupByDivision(goalies, goalieOrder, filter.DivisionOrder, func(k key) string { return k.division }),
	}
	for _, group := range boards.Skaters {
		Sort(group.Entries, ColumnPoints, Descending)
	}
	for _, group := range boards.Goalies {
		Sort(group.Entries, ColumnSavePercentage, Descending)
	}
	return boards
}

// entryIdentity re-resolves a stored stat line's identity at read time, so
// rows written before an alias was registered fold into the mapped player.
// Rows written after carry the canonical display name, which is usually not
// an alias key itself, so the stored identity is the fallback — never the
// raw display name when a stored identity exists.
func entryIdentity(stat matches.PlayerGameStat, aliases *identity.Table) string {
	nameKey := identity.Normalize(stat.DisplayName)
	if aliases != nil {
		if id, ok := aliases.IDByName[nameKey]; ok {
			return id
		}
		if id, ok := aliases.IDByName[stat.PlayerIdentity]; ok {
			return id
		}
	}
	if stat.PlayerIdentity != "" {
		return stat.PlayerIdentity
	}
	return nameKey
}

func accumulate(entry *Entry, stat matches.PlayerGameStat) {
	entry.GamesPlayed++
	entry.Team = stat.Team

	entry.Goals += stat.Goals
	entry.Assists += stat.Assists
	entry.Shots += stat.Shots
	entry.Hits += stat.Hits
	entry.BlockedShots += stat.BlockedShots
	entry.PenaltyMinutes += stat.PenaltyMinutes
	entry.Takeaways += stat.Takeaways
	entry.Giveaways += stat.Giveaways
	entry.FaceoffsWon += stat.FaceoffsWon
	entry.FaceoffsLost += stat.FaceoffsLost
	entry.PlusMinus += stat.PlusMinus

	entry.Saves += stat.Saves
	entry.ShotsAgainst += stat.ShotsAgainst
	entry.GoalsAgainst += stat.GoalsAgainst
	entry.Shutouts += stat.Shutouts
}

func deriveSkaterRates(entry *Entry) {
	entry.Points = entry.Goals + entry.Assists
	if entry.Shots > 0 {
		entry.ShotPercentage = float64(entry.Goals) / float64(entry.Shots) * 100
	}
	if faceoffs := entry.FaceoffsWon + entry.FaceoffsLost; faceoffs > 0 {
		entry.FaceoffPercentage = float64(entry.FaceoffsWon) / float64(faceoffs) * 100
	}
}

// deriveGoalieRates computes the goalie rate columns. Goals against average
// is per game rather than per sixty minutes: provider time-on-ice is too
// unreliable to divide by.
func deriveGoalieRates(entry *Entry) {
	if entry.ShotsAgainst > 0 {
		entry.SavePercentage = float64(entry.Saves) / float64(entry.ShotsAgainst)
	}
	if entry.GamesPlayed > 0 {
		entry.GoalsAgainstAverage = float64(entry.GoalsAgainst) / float64(entry.GamesPlayed)
	}
}

// groupByDivision emits one group per division. Divisions follow the
// configured league order, then any stragglers alphabetically, with the
// unassigned bucket always last.
func groupByDivision[K comparable](board map[K]*Entry, order []K, divisionOrder []string, divisionOf func(K) string) []Group {
	byDivision := make(map[string][]Entry)
	for _, k := range order {
		division := divisionOf(k)
		byDivision[division] = append(byDivision[division], *board[k])
	}

	seen := make(map[string]bool)
	var names []string
	for _, name := range divisionOrder {
		if _, ok := byDivision[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range byDivision {
		if !seen[name] && name != UnassignedDivision {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	names = append(names, rest...)
	if _, ok := byDivision[UnassignedDivision]; ok && !seen[UnassignedDivision] {
		names = append(names, UnassignedDivision)
	}

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		groups = append(groups, Group{Division: name, Entries: byDivision[name]})
	}
	return groups
}
