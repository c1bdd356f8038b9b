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
	// ErrInvalidMergeArity means a merge was attempted with anything other
	// than exactly two distinct provider match records.
	ErrInvalidMergeArity = errors.New("merge requires exactly two distinct provider matches")

	// ErrAlreadyMerged means one of the inputs is itself a merged record.
	// Re-merging is unsupported: the combined score assumes exactly two
	// contributing provider records.
	ErrAlreadyMerged = errors.New("provider match is already part of a merged record")
)

// MergeGames combines two provider records that represent one logical game
// (typically the two halves of a lag-out restart) into a single canonical
// match.
//
// The provider's own reported club score is not trusted here: incomplete
// games have been observed with a fixed placeholder score, so the combined
// score is recomputed by summing skater goals per side across both records.
func MergeGames(games []eashl.Match, ctx TeamContext, aliases *identity.Table) (Match, error) {
	if len(games) != 2 {
		return Match{}, ErrInvalidMergeArity
	}

	ids := []string{games[0].MatchID, games[1].MatchID}
	for _, id := range ids {
		if id == "" {
			return Match{}, ErrInvalidMergeArity
		}
		if strings.Contains(id, ProviderIDSeparator) {
			return Match{}, ErrAlreadyMerged
		}
	}
	if ids[0] == ids[1] {
		return Match{}, ErrInvalidMergeArity
	}
	sort.Strings(ids)

	score := Score{
		Home: teamGoals(games[0], ctx, true) + teamGoals(games[1], ctx, true),
		Away: teamGoals(games[0], ctx, false) + teamGoals(games[1], ctx, false),
	}

	combined, err := combinePlayers(games[0], games[1], ctx, aliases)
	if err != nil {
		return Match{}, err
	}

	// The combined per-club map goes through the same normalization path as
	// a single provider payload, so shots-against derivation and shutout
	// inference are applied once, on the combined totals.
	players, err := NormalizeProviderPlayers(combined, ctx, aliases)
	if err != nil {
		return Match{}, err
	}

	return Match{
		HomeTeam:         ctx.HomeTeamName,
		AwayTeam:         ctx.AwayTeamName,
		SourceKind:       SourceMerged,
		ProviderMatchIDs: ids,
		Score:            score,
		Players:          players,
	}, nil
}

// teamGoals computes one side's goals in one provider record by summing its
// skaters' goal counters. The home side is identified by the context club
// id; the away side is whichever other club the payload carries, since the
// expected away id is occasionally missing.
func teamGoals(game eashl.Match, ctx TeamContext, home bool) int {
	targetClubID := ""
	if home {
		targetClubID = ctx.HomeClubID
	} else {
		if _, ok := game.Players[ctx.AwayClubID]; ok {
			targetClubID = ctx.AwayClubID
		} else {
			for _, clubID := range sortedKeys(game.Players) {
				if clubID != ctx.HomeClubID {
					targetClubID = clubID
					break
				}
			}
		}
	}

	total := 0
	for _, bag := range game.Players[targetClubID] {
		if isGoalie(parse.StringField(bag, "position")) {
			continue
		}
		total += parse.CountField(bag, "skgoals")
	}
	return total
}

// combinePlayers folds both records' raw field bags into one per-club player
// map keyed by resolved player identity, summing every counter field. A
// player present in only one record keeps that record's totals. Name, jersey
// number and position come from the first appearance that has them set.
func combinePlayers(gameA, gameB eashl.Match, ctx TeamContext, aliases *identity.Table) (map[string]map[string]eashl.FieldBag, error) {
	bySide := map[string]map[string]eashl.FieldBag{
		"home": {},
		"away": {},
	}
	sideClubID := map[string]string{}

	for _, game := range []eashl.Match{gameA, gameB} {
		teams, err := clubTeams(sortedKeys(game.Players), ctx)
		if err != nil {
			return nil, err
		}
		for _, clubID := range sortedKeys(game.Players) {
			side := "away"
			if teams[clubID] == ctx.HomeTeamName {
				side = "home"
			}
			if sideClubID[side] == "" {
				sideClubID[side] = clubID
			}
			for _, playerID := range sortedKeys(game.Players[clubID]) {
				bag := game.Players[clubID][playerID]
				name := strings.TrimSpace(parse.StringField(bag, "playername"))
				if name == "" {
					return nil, ErrEmptyIdentity
				}
				key := identity.Resolve(name, aliases)
				if existing, ok := bySide[side][key]; ok {
					accumulateBag(existing, bag)
				} else {
					bySide[side][key] = newCombinedBag(bag)
				}
			}
		}
	}

	combined := make(map[string]map[string]eashl.FieldBag)
	for side, players := range bySide {
		if len(players) == 0 {
			continue
		}
		combined[sideClubID[side]] = players
	}
	return combined, nil
}

func newCombinedBag(src eashl.FieldBag) eashl.FieldBag {
	bag := eashl.FieldBag{
		"playername": parse.StringField(src, "playername"),
		"jerseynum":  parse.CountField(src, "jerseynum"),
		"position":   parse.StringField(src, "position"),
	}
	for _, field := range eashl.CounterFields {
		if parse.HasField(src, field) {
			bag[field] = parse.IntField(src, field)
		}
	}
	return bag
}

func accumulateBag(dst, src eashl.FieldBag) {
	for _, field := range eashl.CounterFields {
		if !parse.HasField(src, field) {
			continue
		}
		dst[field] = parse.IntField(dst, field) + parse.IntField(src, field)
	}
	if parse.StringField(dst, "playername") == "" {
		dst["playername"] = parse.StringField(src, "playername")
	}
	if parse.CountField(dst, "jerseynum") == 0 {
		dst["jerseynum"] = parse.CountField(src, "jerseynum")
	}
	if parse.StringField(dst, "position") == "" {
		dst["position"] = parse.StringField(src, "position")
	}
}
