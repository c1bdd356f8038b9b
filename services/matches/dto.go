package matches

// TeamContext tells the normalizer which provider club ids map to which
// league teams for one game. The caller (service layer) builds it from the
// scheduled game's club records.
type TeamContext struct {
	HomeClubID   string `json:"homeClubId"`
	AwayClubID   string `json:"awayClubId"`
	HomeTeamName string `json:"homeTeamName"`
	AwayTeamName string `json:"awayTeamName"`
}

// ManualSkaterEntry is one row of the manual stat-entry form. Field names
// are already canonical; rows with an empty name are unused roster slots.
type ManualSkaterEntry struct {
	Name           string `json:"name"`
	Goals          int    `json:"goals"`
	Assists        int    `json:"assists"`
	Shots          int    `json:"shots"`
	Hits           int    `json:"hits"`
	BlockedShots   int    `json:"blockedShots"`
	PenaltyMinutes int    `json:"penaltyMinutes"`
	Takeaways      int    `json:"takeaways"`
	Giveaways      int    `json:"giveaways"`
	FaceoffsWon    int    `json:"faceoffsWon"`
	FaceoffsLost   int    `json:"faceoffsLost"`
	PlusMinus      int    `json:"plusMinus"`
}

type ManualGoalieEntry struct {
	Name         string `json:"name"`
	Saves        int    `json:"saves"`
	ShotsAgainst int    `json:"shotsAgainst"`
	GoalsAgainst int    `json:"goalsAgainst"`
	Shutouts     int    `json:"shutouts"`
}

// ManualStatsRequest is the admin manual stat-entry payload for one game.
// GameID links to a scheduled game; without one, HomeTeam and AwayTeam are
// required so the two rosters can be told apart.
type ManualStatsRequest struct {
	GameID      string              `json:"gameId"`
	HomeTeam    string              `json:"homeTeam"`
	AwayTeam    string              `json:"awayTeam"`
	HomeSkaters []ManualSkaterEntry `json:"homeSkaters"`
	AwaySkaters []ManualSkaterEntry `json:"awaySkaters"`
	HomeGoalies []ManualGoalieEntry `json:"homeGoalies"`
	AwayGoalies []ManualGoalieEntry `json:"awayGoalies"`
}

// LinkRequest attaches one provider match record to a scheduled game.
type LinkRequest struct {
	ProviderMatchID string `json:"providerMatchId"`
}

// MergeRequest combines two provider match records, typically the two halves
// of a game that had to be restarted after a lag-out.
type MergeRequest struct {
	ProviderMatchIDs []string `json:"providerMatchIds"`
}

// MergeResponse reports the canonical match that was written and the two
// provider records it supersedes, so the caller can archive them.
type MergeResponse struct {
	Match         Match    `json:"match"`
	SupersededIDs []string `json:"supersededIds"`
}

// Game is the scheduled league game document the admin links stats to.
type Game struct {
	ID               string `firestore:"Id"`
	Date             string `firestore:"Date"`
	SeasonID         string `firestore:"SeasonId"`
	DivisionID       string `firestore:"DivisionId"`
	HomeTeam         string `firestore:"HomeTeam"`
	AwayTeam         string `firestore:"AwayTeam"`
	HomeClubID       string `firestore:"HomeClubId"`
	AwayClubID       string `firestore:"AwayClubId"`
	IsPlayoff        bool   `firestore:"IsPlayoff"`
	PlayoffBracketID string `firestore:"PlayoffBracketId"`
	PlayoffSeriesID  string `firestore:"PlayoffSeriesId"`
	PlayoffRoundID   string `firestore:"PlayoffRoundId"`
	Status           string `firestore:"Status"`
	EashlMatchID     string `firestore:"EashlMatchId"`
}
