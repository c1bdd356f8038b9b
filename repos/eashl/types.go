package eashl

// Raw shapes returned by the EA Pro Clubs NHL API. Counters arrive as
// strings on current-gen payloads and as numbers on older ones, so player
// rows are kept as loosely typed field bags and every numeric read goes
// through pkg/parse.

type FieldBag map[string]any

// Skater and goalie counter fields as the provider names them. Used when
// two partial game records are combined field by field.
var CounterFields = []string{
	"skgoals",
	"skassists",
	"skshots",
	"skhits",
	"skblk",
	"skpim",
	"sktakeaways",
	"skgiveaways",
	"skfow",
	"skfol",
	"skplusmin",
	"sktoi",
	"glsaves",
	"glshots",
	"glga",
	"glso",
}

type ClubDetails struct {
	Name string `json:"name" firestore:"Name"`
}

// ClubSummary is one side's view of a match. The provider reports the
// opposing club's id and score on each club's own record.
type ClubSummary struct {
	Score          string       `json:"score" firestore:"Score"`
	OpponentClubID string       `json:"opponentClubId" firestore:"OpponentClubId"`
	OpponentScore  string       `json:"opponentScore" firestore:"OpponentScore"`
	Details        *ClubDetails `json:"details" firestore:"Details"`
}

type TimeAgo struct {
	Number int    `json:"number" firestore:"Number"`
	Unit   string `json:"unit" firestore:"Unit"`
}

// Match is one raw provider match record: per-club summaries plus per-club,
// per-player stat bags keyed by the provider's own ids.
type Match struct {
	MatchID   string                         `json:"matchId" firestore:"MatchId"`
	Timestamp *int64                         `json:"timestamp" firestore:"Timestamp"`
	TimeAgo   *TimeAgo                       `json:"timeAgo" firestore:"TimeAgo"`
	Clubs     map[string]ClubSummary         `json:"clubs" firestore:"Clubs"`
	Players   map[string]map[string]FieldBag `json:"players" firestore:"Players"`

	// Set once the record has been folded into a merged canonical match.
	SupersededBy string `json:"supersededBy,omitempty" firestore:"SupersededBy"`
}
