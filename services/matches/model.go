package matches

import "strings"

// Canonical match model. Every source shape (provider payload, manual entry,
// merged pair of provider records) is normalized into one of these before it
// is stored or aggregated.

type Role string

const (
	RoleSkater Role = "skater"
	RoleGoalie Role = "goalie"
)

type SourceKind string

const (
	SourceProvider SourceKind = "eashl"
	SourceManual   SourceKind = "manual"
	SourceMerged   SourceKind = "eashl-merged"
)

// ProviderIDSeparator joins the two source ids of a merged match in external
// representations, e.g. "12345+12399".
const ProviderIDSeparator = "+"

type Score struct {
	Home int `json:"home" firestore:"Home"`
	Away int `json:"away" firestore:"Away"`
}

// PlayerGameStat is one player's line in one game. Role decides which
// counter group is meaningful; the other group is always zero.
type PlayerGameStat struct {
	PlayerIdentity string `json:"playerIdentity" firestore:"PlayerIdentity"`
	DisplayName    string `json:"displayName" firestore:"DisplayName"`
	Team           string `json:"team" firestore:"Team"`
	JerseyNumber   int    `json:"jerseyNumber" firestore:"JerseyNumber"`
	Position       string `json:"position" firestore:"Position"`
	Role           Role   `json:"role" firestore:"Role"`

	Goals          int `json:"goals" firestore:"Goals"`
	Assists        int `json:"assists" firestore:"Assists"`
	Shots          int `json:"shots" firestore:"Shots"`
	Hits           int `json:"hits" firestore:"Hits"`
	BlockedShots   int `json:"blockedShots" firestore:"BlockedShots"`
	PenaltyMinutes int `json:"penaltyMinutes" firestore:"PenaltyMinutes"`
	Takeaways      int `json:"takeaways" firestore:"Takeaways"`
	Giveaways      int `json:"giveaways" firestore:"Giveaways"`
	FaceoffsWon    int `json:"faceoffsWon" firestore:"FaceoffsWon"`
	FaceoffsLost   int `json:"faceoffsLost" firestore:"FaceoffsLost"`
	PlusMinus      int `json:"plusMinus" firestore:"PlusMinus"`

	Saves        int `json:"saves" firestore:"Saves"`
	ShotsAgainst int `json:"shotsAgainst" firestore:"ShotsAgainst"`
	GoalsAgainst int `json:"goalsAgainst" firestore:"GoalsAgainst"`
	Shutouts     int `json:"shutouts" firestore:"Shutouts"`
}

// Match is one logical game. A merged match supersedes the two provider
// records named in ProviderMatchIDs; the originals are never mutated.
type Match struct {
	ID         string `json:"id" firestore:"Id"`
	Date       string `json:"date" firestore:"Date"`
	HomeTeam   string `json:"homeTeam" firestore:"HomeTeam"`
	AwayTeam   string `json:"awayTeam" firestore:"AwayTeam"`
	SeasonID   string `json:"seasonId" firestore:"SeasonId"`
	DivisionID string `json:"divisionId,omitempty" firestore:"DivisionId"`

	IsPlayoff        bool   `json:"isPlayoff" firestore:"IsPlayoff"`
	PlayoffBracketID string `json:"playoffBracketId,omitempty" firestore:"PlayoffBracketId"`
	PlayoffSeriesID  string `json:"playoffSeriesId,omitempty" firestore:"PlayoffSeriesId"`
	PlayoffRoundID   string `json:"playoffRoundId,omitempty" firestore:"PlayoffRoundId"`

	SourceKind       SourceKind `json:"sourceKind" firestore:"SourceKind"`
	ProviderMatchIDs []string   `json:"providerMatchIds" firestore:"ProviderMatchIds"`

	Score   Score            `json:"score" firestore:"Score"`
	Players []PlayerGameStat `json:"players" firestore:"Players"`
}

// IsPlayoffGame reports whether the match counts as a playoff game. The flag
// and the playoff-linkage ids are each sufficient on their own; older records
// carry only one of the two signals.
func (m Match) IsPlayoffGame() bool {
	return m.IsPlayoff ||
		m.PlayoffBracketID != "" ||
		m.PlayoffSeriesID != "" ||
		m.PlayoffRoundID != ""
}

// JoinProviderIDs renders provider match ids in the external "a+b" form.
func JoinProviderIDs(ids []string) string {
	return strings.Join(ids, ProviderIDSeparator)
}

// SplitProviderIDs parses the external "a+b" form back into ids.
func SplitProviderIDs(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ProviderIDSeparator)
}

func isGoalie(position string) bool {
	pos := strings.ReplaceAll(strings.ToLower(position), " ", "")
	return pos == "g" || pos == "goalie" || pos == "goaltender"
}

// roleOf derives the canonical role from a free-text position string.
func roleOf(position string) Role {
	if isGoalie(position) {
		return RoleGoalie
	}
	return RoleSkater
}
