package matches

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icetilt/league-sync/pkg/identity"
	eashl "github.com/icetilt/league-sync/repos/eashl"
)

var testCtx = TeamContext{
	HomeClubID:   "101",
	AwayClubID:   "202",
	HomeTeamName: "Polar Bears",
	AwayTeamName: "Ice Hawks",
}

func emptyAliases() *identity.Table {
	return &identity.Table{
		IDByName: map[string]string{},
		NameByID: map[string]string{},
	}
}

func TestNormalizeProviderPlayers(t *testing.T) {
	payload := map[string]map[string]eashl.FieldBag{
		"101": {
			"p1": {
				"playername": "Sniper99",
				"jerseynum":  "19",
				"position":   "center",
				"skgoals":    "2",
				"skassists":  "1",
				"skshots":    "7",
				"skplusmin":  "-1",
			},
			"p2": {
				"playername": "WallTender",
				"position":   "goalie",
				"glsaves":    "30",
				"glshots":    "32",
				"glga":       "2",
			},
		},
		"202": {
			"p3": {
				"playername": "Grinder",
				"position":   "leftWing",
				"skgoals":    float64(1),
				"skhits":     float64(5),
			},
		},
	}

	stats, err := NormalizeProviderPlayers(payload, testCtx, emptyAliases())
	require.NoError(t, err)
	require.Len(t, stats, 3)

	sniper := stats[0]
	assert.Equal(t, "sniper99", sniper.PlayerIdentity)
	assert.Equal(t, "Sniper99", sniper.DisplayName)
	assert.Equal(t, "Polar Bears", sniper.Team)
	assert.Equal(t, RoleSkater, sniper.Role)
	assert.Equal(t, 19, sniper.JerseyNumber)
	assert.Equal(t, 2, sniper.Goals)
	assert.Equal(t, 1, sniper.Assists)
	assert.Equal(t, 7, sniper.Shots)
	assert.Equal(t, -1, sniper.PlusMinus)
	// Counters missing from the payload default to zero.
	assert.Equal(t, 0, sniper.Hits)

	tender := stats[1]
	assert.Equal(t, RoleGoalie, tender.Role)
	assert.Equal(t, 30, tender.Saves)
	assert.Equal(t, 32, tender.ShotsAgainst)
	assert.Equal(t, 2, tender.GoalsAgainst)
	assert.Equal(t, 0, tender.Shutouts)

	grinder := stats[2]
	assert.Equal(t, "Ice Hawks", grinder.Team)
	assert.Equal(t, 1, grinder.Goals)
	assert.Equal(t, 5, grinder.Hits)
}

func TestNormalizeProviderPlayersIsIdempotent(t *testing.T) {
	payload := map[string]map[string]eashl.FieldBag{
		"101": {
			"p1": {"playername": "Alpha", "position": "defenseMen", "skgoals": "1"},
			"p2": {"playername": "Beta", "position": "goalie", "glsaves": "10", "glga": "1"},
		},
		"202": {
			"p3": {"playername": "Gamma", "position": "center", "skgoals": "3"},
		},
	}

	first, err := NormalizeProviderPlayers(payload, testCtx, emptyAliases())
	require.NoError(t, err)
	second, err := NormalizeProviderPlayers(payload, testCtx, emptyAliases())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNormalizeProviderPlayersAwayClubFallback(t *testing.T) {
	// The away side shows up under an unexpected club id. With the home side
	// matched, the one remaining club must be the opponent.
	payload := map[string]map[string]eashl.FieldBag{
		"101": {
			"p1": {"playername": "Alpha", "position": "center", "skgoals": "1"},
		},
		"999": {
			"p2": {"playername": "Beta", "position": "center", "skgoals": "2"},
		},
	}

	stats, err := NormalizeProviderPlayers(payload, testCtx, emptyAliases())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Polar Bears", stats[0].Team)
	assert.Equal(t, "Ice Hawks", stats[1].Team)
}

func TestNormalizeProviderPlayersUnknownClubs(t *testing.T) {
	payload := map[string]map[string]eashl.FieldBag{
		"888": {
			"p1": {"playername": "Alpha", "position": "center"},
		},
		"999": {
			"p2": {"playername": "Beta", "position": "center"},
		},
	}

	_, err := NormalizeProviderPlayers(payload, testCtx, emptyAliases())
	assert.ErrorIs(t, err, ErrMissingClubMapping)
}

func TestNormalizeProviderPlayersEmptyName(t *testing.T) {
	payload := map[string]map[string]eashl.FieldBag{
		"101": {
			"p1": {"playername": "   ", "position": "center", "skgoals": "1"},
		},
	}

	_, err := NormalizeProviderPlayers(payload, testCtx, emptyAliases())
	assert.ErrorIs(t, err, ErrEmptyIdentity)
}

func TestProviderGoalieShotsAgainstDerived(t *testing.T) {
	// glshots missing entirely: shots against is derived from saves and
	// goals against instead of defaulting to zero.
	payload := map[string]map[string]eashl.FieldBag{
		"101": {
			"p1": {
				"playername": "WallTender",
				"position":   "goalie",
				"glsaves":    "28",
				"glga":       "3",
			},
		},
	}

	stats, err := NormalizeProviderPlayers(payload, testCtx, emptyAliases())
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 31, stats[0].ShotsAgainst)
}

func TestProviderGoalieShutoutInference(t *testing.T) {
	cases := []struct {
		name string
		bag  eashl.FieldBag
		want int
	}{
		{
			name: "clean sheet without flag infers a shutout",
			bag:  eashl.FieldBag{"playername": "A", "position": "goalie", "glsaves": "12", "glga": "0"},
			want: 1,
		},
		{
			name: "reported flag wins",
			bag:  eashl.FieldBag{"playername": "A", "position": "goalie", "glsaves": "12", "glga": "0", "glso": "1"},
			want: 1,
		},
		{
			name: "goals against means no shutout",
			bag:  eashl.FieldBag{"playername": "A", "position": "goalie", "glsaves": "12", "glga": "2"},
			want: 0,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			payload := map[string]map[string]eashl.FieldBag{"101": {"p1": c.bag}}
			stats, err := NormalizeProviderPlayers(payload, testCtx, emptyAliases())
			require.NoError(t, err)
			assert.Equal(t, c.want, stats[0].Shutouts)
		})
	}
}

func TestGoalieDetectionFromPositionText(t *testing.T) {
	cases := []struct {
		position string
		want     Role
	}{
		{"G", RoleGoalie},
		{"goalie", RoleGoalie},
		{"Goaltender", RoleGoalie},
		{"Goal Tender", RoleGoalie},
		{"center", RoleSkater},
		{"defenseMen", RoleSkater},
		{"", RoleSkater},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, roleOf(c.position), "position %q", c.position)
	}
}

func TestNormalizeManual(t *testing.T) {
	req := ManualStatsRequest{
		HomeSkaters: []ManualSkaterEntry{
			{Name: "Sniper99", Goals: 2, Assists: 1, Shots: -3},
			{Name: ""}, // unused roster slot
		},
		AwaySkaters: []ManualSkaterEntry{
			{Name: "Grinder", Goals: 1},
		},
		HomeGoalies: []ManualGoalieEntry{
			{Name: "WallTender", Saves: 20, GoalsAgainst: 1},
		},
	}

	stats := NormalizeManual(req, testCtx, emptyAliases())
	require.Len(t, stats, 3)

	sniper := stats[0]
	assert.Equal(t, "sniper99", sniper.PlayerIdentity)
	assert.Equal(t, 2, sniper.Goals)
	// Negative manual input clamps to zero.
	assert.Equal(t, 0, sniper.Shots)

	tender := stats[2]
	assert.Equal(t, RoleGoalie, tender.Role)
	assert.Equal(t, "G", tender.Position)
	assert.Equal(t, 21, tender.ShotsAgainst)
	assert.Equal(t, 0, tender.Shutouts)
}

func TestNormalizeAppliesAliasTable(t *testing.T) {
	aliases := &identity.Table{
		IDByName: map[string]string{
			"sniper99": "player-7",
			"xsniperx": "player-7",
		},
		NameByID: map[string]string{
			"player-7": "Sniper",
		},
	}

	payload := map[string]map[string]eashl.FieldBag{
		"101": {
			"p1": {"playername": "xSniperx", "position": "center", "skgoals": "1"},
		},
	}

	stats, err := NormalizeProviderPlayers(payload, testCtx, aliases)
	require.NoError(t, err)
	assert.Equal(t, "player-7", stats[0].PlayerIdentity)
	assert.Equal(t, "Sniper", stats[0].DisplayName)
}

func TestManualMatchWithoutGameUsesRequestTeams(t *testing.T) {
	req := ManualStatsRequest{
		HomeTeam: "Polar Bears",
		AwayTeam: "Ice Hawks",
		HomeSkaters: []ManualSkaterEntry{
			{Name: "Alpha", Goals: 2},
		},
		AwaySkaters: []ManualSkaterEntry{
			{Name: "Beta", Goals: 1},
		},
	}

	teamCtx, err := manualTeamContext(req)
	require.NoError(t, err)

	stats := NormalizeManual(req, teamCtx, emptyAliases())
	require.Len(t, stats, 2)
	assert.Equal(t, "Polar Bears", stats[0].Team)
	assert.Equal(t, "Ice Hawks", stats[1].Team)

	// Each side's score counts only its own roster.
	assert.Equal(t, 2, SkaterGoals(stats, teamCtx.HomeTeamName))
	assert.Equal(t, 1, SkaterGoals(stats, teamCtx.AwayTeamName))
}

func TestManualTeamContextRequiresBothNames(t *testing.T) {
	cases := []ManualStatsRequest{
		{},
		{HomeTeam: "Polar Bears"},
		{AwayTeam: "Ice Hawks"},
		{HomeTeam: "  ", AwayTeam: "Ice Hawks"},
	}

	for _, req := range cases {
		_, err := manualTeamContext(req)
		assert.ErrorIs(t, err, ErrMissingTeamNames)
	}
}

func TestSkaterGoalsIgnoresGoalies(t *testing.T) {
	stats := []PlayerGameStat{
		{Team: "Polar Bears", Role: RoleSkater, Goals: 2},
		{Team: "Polar Bears", Role: RoleSkater, Goals: 1},
		{Team: "Polar Bears", Role: RoleGoalie, Goals: 4},
		{Team: "Ice Hawks", Role: RoleSkater, Goals: 5},
	}

	assert.Equal(t, 3, SkaterGoals(stats, "Polar Bears"))
	assert.Equal(t, 5, SkaterGoals(stats, "Ice Hawks"))
}
