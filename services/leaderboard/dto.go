package leaderboard

// Firestore document shapes for the league structure the leaderboard needs:
// which teams play in which division, and which seasons exist.

type Division struct {
	ID       string   `firestore:"Id"`
	Name     string   `firestore:"Name"`
	SeasonID string   `firestore:"SeasonId"`
	Order    int      `firestore:"Order"`
	Teams    []string `firestore:"Teams"`
}

type Season struct {
	ID        string `json:"id" firestore:"Id"`
	Name      string `json:"name" firestore:"Name"`
	StartDate string `json:"startDate" firestore:"StartDate"`
	EndDate   string `json:"endDate" firestore:"EndDate"`
}

// LeaderboardRequest captures the query parameters of a leaderboard read.
type LeaderboardRequest struct {
	SeasonID        string
	IncludePlayoffs bool
	SortColumn      string
	SortDirection   Direction
}
