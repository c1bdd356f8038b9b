package matches

import (
	"errors"
	"sort"
	"strings"

	"github.com/icetilt/league-sync/pkg/identity"
	"github.com/icetilt/league-sync/pkg/parse"
	eashl "github.com/icetilt/league-sync/repos/eashl"
)

var (
	// ErrMissingClubMapping means no club id in a provider payload could be
	// matched to the game's home or away club.
	ErrMissingClubMapping = errors.New("no club id in payload matches the game's clubs")

	// ErrEmptyIdentity means a provider stat row has no player name. Provider
	// rows always carry one; an empty name is a structural problem, not a
	// missing counter.
	ErrEmptyIdentity = errors.New("provider stat row has no player name")

	// ErrMissingTeamNames means a manual match has no scheduled game and no
	// home/away team names to attribute rosters to.
	ErrMissingTeamNames = errors.New("manual match needs home and away team names")
)

// manualTeamContext builds the team context for a manual match that is not
// linked to a scheduled game. Both team names are required: with an empty
// name both rosters would land on the same side and the derived score would
// count every skater twice.
func manualTeamContext(req ManualStatsRequest) (TeamContext, error) {
	home := strings.TrimSpace(req.HomeTeam)
	away := strings.TrimSpace(req.AwayTeam)
	if home == "" || away == "" {
		return TeamContext{}, ErrMissingTeamNames
	}
	return TeamContext{HomeTeamName: home, AwayTeamName: away}, nil
}

// clubTeams maps every club id present in a provider payload to a league
// team name. Provider responses occasionally omit the expected away club id;
// when the home side matched, the one remaining club must be the opponent.
func clubTeams(clubIDs []string, ctx TeamContext) (map[string]string, error) {
	teams := make(map[string]string)
	homeMatched := false
	var unknown []string

	for _, id := range clubIDs {
		switch id {
		case ctx.HomeClubID:
			teams[id] = ctx.HomeTeamName
			homeMatched = true
		case ctx.AwayClubID:
			teams[id] = ctx.AwayTeamName
		default:
			unknown = append(unknown, id)
		}
	}

	if len(unknown) == 1 && homeMatched {
		teams[unknown[0]] = ctx.AwayTeamName
		unknown = nil
	}
	if len(unknown) > 0 {
		return nil, ErrMissingClubMapping
	}

	return teams, nil
}

// NormalizeProviderPlayers converts a provider payload's per-club player map
// into canonical stat lines. Missing or malformed counters default to zero;
// a missing player name or an unmappable club id is an error.
func NormalizeProviderPlayers(players map[string]map[string]eashl.FieldBag, ctx TeamContext, aliases *identity.Table) ([]PlayerGameStat, error) {
	teams, err := clubTeams(sortedKeys(players), ctx)
	if err != nil {
		return nil, err
	}

	var stats []PlayerGameStat
	for _, clubID := range sortedKeys(players) {
		team := teams[clubID]
		clubPlayers := players[clubID]
		for _, playerID := range sortedKeys(clubPlayers) {
			stat, err := providerStat(clubPlayers[playerID], team, aliases)
			if err != nil {
				return nil, err
			}
			stats = append(stats, stat)
		}
	}

	return stats, nil
}

func providerStat(bag eashl.FieldBag, team string, aliases *identity.Table) (PlayerGameStat, error) {
	name := strings.TrimSpace(parse.StringField(bag, "playername"))
	if name == "" {
		return PlayerGameStat{}, ErrEmptyIdentity
	}

	position := parse.StringField(bag, "position")
	stat := PlayerGameStat{
		PlayerIdentity: identity.Resolve(name, aliases),
		DisplayName:    name,
		Team:           team,
		JerseyNumber:   parse.CountField(bag, "jerseynum"),
		Position:       position,
		Role:           roleOf(position),
	}
	if canonical := aliases.DisplayName(stat.PlayerIdentity); canonical != "" {
		stat.DisplayName = canonical
	}

	if stat.Role == RoleGoalie {
		stat.Saves = parse.CountField(bag, "glsaves")
		stat.GoalsAgainst = parse.CountField(bag, "glga")
		// Shots-against is the one counter we derive rather than zero: the
		// provider sometimes drops it but always reports saves and goals
		// against.
		if parse.HasField(bag, "glshots") {
			stat.ShotsAgainst = parse.CountField(bag, "glshots")
		} else {
			stat.ShotsAgainst = stat.Saves + stat.GoalsAgainst
		}
		stat.Shutouts = shutouts(parse.CountField(bag, "glso"), stat.GoalsAgainst)
	} else {
		stat.Goals = parse.CountField(bag, "skgoals")
		stat.Assists = parse.CountField(bag, "skassists")
		stat.Shots = parse.CountField(bag, "skshots")
		stat.Hits = parse.CountField(bag, "skhits")
		stat.BlockedShots = parse.CountField(bag, "skblk")
		stat.PenaltyMinutes = parse.CountField(bag, "skpim")
		stat.Takeaways = parse.CountField(bag, "sktakeaways")
		stat.Giveaways = parse.CountField(bag, "skgiveaways")
		stat.FaceoffsWon = parse.CountField(bag, "skfow")
		stat.FaceoffsLost = parse.CountField(bag, "skfol")
		stat.PlusMinus = parse.IntField(bag, "skplusmin")
	}

	return stat, nil
}

// shutouts applies the provider's shutout flag when it is set, and otherwise
// infers one from a clean sheet. The inference is a heuristic: a goalie who
// played part of a clean-sheet game gets credited the same as one who played
// all of it.
func shutouts(reported, goalsAgainst int) int {
	if reported > 0 {
		return reported
	}
	if goalsAgainst == 0 {
		return 1
	}
	return 0
}

// NormalizeManual converts the manual stat-entry payload into canonical stat
// lines. Rows with an empty name are unused roster slots and are dropped,
// not errors.
func NormalizeManual(req ManualStatsRequest, ctx TeamContext, aliases *identity.Table) []PlayerGameStat {
	var stats []PlayerGameStat

	appendSkaters := func(entries []ManualSkaterEntry, team string) {
		for _, entry := range entries {
			name := strings.TrimSpace(entry.Name)
			if name == "" {
				continue
			}
			stat := PlayerGameStat{
				PlayerIdentity: identity.Resolve(name, aliases),
				DisplayName:    name,
				Team:           team,
				Role:           RoleSkater,
				Goals:          clampCount(entry.Goals),
				Assists:        clampCount(entry.Assists),
				Shots:          clampCount(entry.Shots),
				Hits:           clampCount(entry.Hits),
				BlockedShots:   clampCount(entry.BlockedShots),
				PenaltyMinutes: clampCount(entry.PenaltyMinutes),
				Takeaways:      clampCount(entry.Takeaways),
				Giveaways:      clampCount(entry.Giveaways),
				FaceoffsWon:    clampCount(entry.FaceoffsWon),
				FaceoffsLost:   clampCount(entry.FaceoffsLost),
				PlusMinus:      entry.PlusMinus,
			}
			if canonical := aliases.DisplayName(stat.PlayerIdentity); canonical != "" {
				stat.DisplayName = canonical
			}
			stats = append(stats, stat)
		}
	}

	appendGoalies := func(entries []ManualGoalieEntry, team string) {
		for _, entry := range entries {
			name := strings.TrimSpace(entry.Name)
			if name == "" {
				continue
			}
			stat := PlayerGameStat{
				PlayerIdentity: identity.Resolve(name, aliases),
				DisplayName:    name,
				Team:           team,
				Position:       "G",
				Role:           RoleGoalie,
				Saves:          clampCount(entry.Saves),
				GoalsAgainst:   clampCount(entry.GoalsAgainst),
			}
			stat.ShotsAgainst = clampCount(entry.ShotsAgainst)
			if stat.ShotsAgainst == 0 {
				stat.ShotsAgainst = stat.Saves + stat.GoalsAgainst
			}
			stat.Shutouts = shutouts(clampCount(entry.Shutouts), stat.GoalsAgainst)
			if canonical := aliases.DisplayName(stat.PlayerIdentity); canonical != "" {
				stat.DisplayName = canonical
			}
			stats = append(stats, stat)
		}
	}

	appendSkaters(req.HomeSkaters, ctx.HomeTeamName)
	appendSkaters(req.AwaySkaters, ctx.AwayTeamName)
	appendGoalies(req.HomeGoalies, ctx.HomeTeamName)
	appendGoalies(req.AwayGoalies, ctx.AwayTeamName)

	return stats
}

// SkaterGoals sums skater goals for one side of a canonical stat list.
// Goalie goal counters never contribute to a team score.
func SkaterGoals(stats []PlayerGameStat, team string) int {
	total := 0
	for _, stat := range stats {
		if stat.Team == team && stat.Role == RoleSkater {
			total += stat.Goals
		}
	}
	return total
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
