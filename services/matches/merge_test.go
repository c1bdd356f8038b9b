package matches

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xorcare/pointer"

	eashl "github.com/icetilt/league-sync/repos/eashl"
)

func providerGame(matchID string, players map[string]map[string]eashl.FieldBag) eashl.Match {
	return eashl.Match{
		MatchID:   matchID,
		Timestamp: pointer.Int64(1700000000),
		Players:   players,
	}
}

func TestMergeGamesRecomputesScore(t *testing.T) {
	// Two halves of one lagged-out game. The provider's club summaries are
	// deliberately absent: the combined score must come from skater goals.
	first := providerGame("1001", map[string]map[string]eashl.FieldBag{
		"101": {
			"p1": {"playername": "Sniper99", "position": "center", "skgoals": "2", "skshots": "5"},
			"p2": {"playername": "WallTender", "position": "goalie", "glsaves": "10", "glga": "1"},
		},
		"202": {
			"p3": {"playername": "Grinder", "position": "center", "skgoals": "1"},
		},
	})
	second := providerGame("1002", map[string]map[string]eashl.FieldBag{
		"101": {
			"p1": {"playername": "Sniper99", "position": "center", "skgoals": "1", "skshots": "3"},
			"p2": {"playername": "WallTender", "position": "goalie", "glsaves": "8", "glga": "1"},
		},
		"202": {
			"p3": {"playername": "Grinder", "position": "center", "skgoals": "2"},
		},
	})

	merged, err := MergeGames([]eashl.Match{first, second}, testCtx, emptyAliases())
	require.NoError(t, err)

	assert.Equal(t, SourceMerged, merged.SourceKind)
	assert.Equal(t, []string{"1001", "1002"}, merged.ProviderMatchIDs)
	assert.Equal(t, Score{Home: 3, Away: 3}, merged.Score)

	require.Len(t, merged.Players, 3)
	sniper := merged.Players[0]
	assert.Equal(t, "sniper99", sniper.PlayerIdentity)
	assert.Equal(t, 3, sniper.Goals)
	assert.Equal(t, 8, sniper.Shots)

	tender := merged.Players[1]
	assert.Equal(t, 18, tender.Saves)
	assert.Equal(t, 2, tender.GoalsAgainst)
	// Derived once from the combined totals, not per half.
	assert.Equal(t, 20, tender.ShotsAgainst)
	assert.Equal(t, 0, tender.Shutouts)
}

func TestMergeGamesIsCommutative(t *testing.T) {
	first := providerGame("1001", map[string]map[string]eashl.FieldBag{
		"101": {"p1": {"playername": "Alpha", "position": "center", "skgoals": "1"}},
		"202": {"p2": {"playername": "Beta", "position": "center", "skgoals": "2"}},
	})
	second := providerGame("1002", map[string]map[string]eashl.FieldBag{
		"101": {"p1": {"playername": "Alpha", "position": "center", "skgoals": "2"}},
		"202": {"p2": {"playername": "Beta", "position": "center", "skgoals": "0"}},
	})

	forward, err := MergeGames([]eashl.Match{first, second}, testCtx, emptyAliases())
	require.NoError(t, err)
	reverse, err := MergeGames([]eashl.Match{second, first}, testCtx, emptyAliases())
	require.NoError(t, err)

	assert.Equal(t, forward, reverse)
}

func TestMergeGamesCaseVariantNamesCombine(t *testing.T) {
	// The same player shows up as "Ace" in one half and "ace" in the other.
	// Normalized identity folds the two rows into one line.
	first := providerGame("1001", map[string]map[string]eashl.FieldBag{
		"101": {"p1": {"playername": "Ace", "position": "center", "skgoals": "2"}},
	})
	second := providerGame("1002", map[string]map[string]eashl.FieldBag{
		"101": {"p9": {"playername": "ace", "position": "center", "skgoals": "1"}},
	})

	merged, err := MergeGames([]eashl.Match{first, second}, testCtx, emptyAliases())
	require.NoError(t, err)

	require.Len(t, merged.Players, 1)
	assert.Equal(t, "ace", merged.Players[0].PlayerIdentity)
	assert.Equal(t, 3, merged.Players[0].Goals)
	assert.Equal(t, 3, merged.Score.Home)
}

func TestMergeGamesPlayerInOneHalfOnly(t *testing.T) {
	first := providerGame("1001", map[string]map[string]eashl.FieldBag{
		"101": {
			"p1": {"playername": "Alpha", "position": "center", "skgoals": "1"},
			"p2": {"playername": "Sub", "position": "leftWing", "skgoals": "1", "skhits": "4"},
		},
	})
	second := providerGame("1002", map[string]map[string]eashl.FieldBag{
		"101": {
			"p1": {"playername": "Alpha", "position": "center", "skgoals": "0"},
		},
	})

	merged, err := MergeGames([]eashl.Match{first, second}, testCtx, emptyAliases())
	require.NoError(t, err)

	require.Len(t, merged.Players, 2)
	assert.Equal(t, "alpha", merged.Players[0].PlayerIdentity)
	sub := merged.Players[1]
	assert.Equal(t, "sub", sub.PlayerIdentity)
	assert.Equal(t, 1, sub.Goals)
	assert.Equal(t, 4, sub.Hits)
}

func TestMergeGamesArity(t *testing.T) {
	one := providerGame("1001", map[string]map[string]eashl.FieldBag{
		"101": {"p1": {"playername": "Alpha", "position": "center"}},
	})
	two := providerGame("1002", map[string]map[string]eashl.FieldBag{
		"101": {"p1": {"playername": "Alpha", "position": "center"}},
	})
	three := providerGame("1003", map[string]map[string]eashl.FieldBag{
		"101": {"p1": {"playername": "Alpha", "position": "center"}},
	})

	_, err := MergeGames([]eashl.Match{one}, testCtx, emptyAliases())
	assert.ErrorIs(t, err, ErrInvalidMergeArity)

	_, err = MergeGames([]eashl.Match{one, two, three}, testCtx, emptyAliases())
	assert.ErrorIs(t, err, ErrInvalidMergeArity)

	_, err = MergeGames([]eashl.Match{one, one}, testCtx, emptyAliases())
	assert.ErrorIs(t, err, ErrInvalidMergeArity)
}

func TestMergeGamesRejectsMergedInput(t *testing.T) {
	plain := providerGame("1001", map[string]map[string]eashl.FieldBag{
		"101": {"p1": {"playername": "Alpha", "position": "center"}},
	})
	alreadyMerged := providerGame("1002+1003", map[string]map[string]eashl.FieldBag{
		"101": {"p1": {"playername": "Alpha", "position": "center"}},
	})

	_, err := MergeGames([]eashl.Match{plain, alreadyMerged}, testCtx, emptyAliases())
	assert.ErrorIs(t, err, ErrAlreadyMerged)
}

func TestSplitProviderIDs(t *testing.T) {
	assert.Equal(t, []string{"1001", "1002"}, SplitProviderIDs("1001+1002"))
	assert.Equal(t, []string{"1001"}, SplitProviderIDs("1001"))
	assert.Nil(t, SplitProviderIDs(""))
}
