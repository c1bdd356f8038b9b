package matches

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"

	"github.com/samborkent/uuidv7"
	"golang.org/x/xerrors"

	"github.com/icetilt/league-sync/pkg/identity"
	"github.com/icetilt/league-sync/pkg/parse"
	timehelper "github.com/icetilt/league-sync/pkg/timeHelper"
	eashl "github.com/icetilt/league-sync/repos/eashl"
)

type MatchesService struct {
	firestoreClient *firestore.Client
	firebaseApp     *firebase.App
	eashlService    *eashl.Service
}

func NewMatchesService(firestoreClient *firestore.Client, firebaseApp *firebase.App, eashlService *eashl.Service) *MatchesService {
	return &MatchesService{
		firestoreClient: firestoreClient,
		firebaseApp:     firebaseApp,
		eashlService:    eashlService,
	}
}

// LinkProviderGame attaches one raw provider record to a scheduled game and
// stores the canonical match built from it.
func (s *MatchesService) LinkProviderGame(ctx context.Context, gameID, providerMatchID string) (*Match, error) {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	raw, err := s.eashlService.GetMatch(ctx, providerMatchID)
	if err != nil {
		return nil, err
	}
	if raw.SupersededBy != "" {
		return nil, eashl.ErrSuperseded
	}

	aliases, err := s.loadAliases(ctx)
	if err != nil {
		return nil, err
	}

	teamCtx := gameTeamContext(game)
	players, err := NormalizeProviderPlayers(raw.Players, teamCtx, aliases)
	if err != nil {
		return nil, err
	}

	match := matchFromGame(game)
	match.SourceKind = SourceProvider
	match.ProviderMatchIDs = []string{providerMatchID}
	match.Players = players
	match.Score = providerScore(raw, teamCtx, players)

	if err := s.storeMatch(ctx, match); err != nil {
		return nil, err
	}
	if err := s.markGameCompleted(ctx, gameID, providerMatchID); err != nil {
		return nil, err
	}

	return &match, nil
}

// SubmitManualStats stores a canonical match built from the manual
// stat-entry form. The score is derived from the entered skater goals.
func (s *MatchesService) SubmitManualStats(ctx context.Context, req ManualStatsRequest) (*Match, error) {
	var match Match
	var teamCtx TeamContext

	if req.GameID != "" {
		game, err := s.getGame(ctx, req.GameID)
		if err != nil {
			return nil, err
		}
		teamCtx = gameTeamContext(game)
		match = matchFromGame(game)
	} else {
		var err error
		teamCtx, err = manualTeamContext(req)
		if err != nil {
			return nil, err
		}
		match = Match{
			ID:       uuidv7.New().String(),
			Date:     timehelper.NowString(),
			HomeTeam: teamCtx.HomeTeamName,
			AwayTeam: teamCtx.AwayTeamName,
		}
	}

	aliases, err := s.loadAliases(ctx)
	if err != nil {
		return nil, err
	}

	match.SourceKind = SourceManual
	match.Players = NormalizeManual(req, teamCtx, aliases)
	match.Score = Score{
		Home: SkaterGoals(match.Players, teamCtx.HomeTeamName),
		Away: SkaterGoals(match.Players, teamCtx.AwayTeamName),
	}

	if err := s.storeMatch(ctx, match); err != nil {
		return nil, err
	}
	if req.GameID != "" {
		if err := s.markGameCompleted(ctx, req.GameID, ""); err != nil {
			return nil, err
		}
	}

	return &match, nil
}

// MergeProviderGames combines two provider records for one scheduled game
// into a single canonical match and marks both source records superseded.
func (s *MatchesService) MergeProviderGames(ctx context.Context, gameID string, providerMatchIDs []string) (*MergeResponse, error) {
	if len(providerMatchIDs) != 2 {
		return nil, ErrInvalidMergeArity
	}

	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	var raws []eashl.Match
	for _, id := range providerMatchIDs {
		raw, err := s.eashlService.GetMatch(ctx, id)
		if err != nil {
			return nil, err
		}
		if raw.SupersededBy != "" {
			return nil, ErrAlreadyMerged
		}
		raws = append(raws, *raw)
	}

	aliases, err := s.loadAliases(ctx)
	if err != nil {
		return nil, err
	}

	teamCtx := gameTeamContext(game)
	merged, err := MergeGames(raws, teamCtx, aliases)
	if err != nil {
		return nil, err
	}

	match := matchFromGame(game)
	match.SourceKind = merged.SourceKind
	match.ProviderMatchIDs = merged.ProviderMatchIDs
	match.Score = merged.Score
	match.Players = merged.Players

	if err := s.storeMatch(ctx, match); err != nil {
		return nil, err
	}
	joined := JoinProviderIDs(match.ProviderMatchIDs)
	for _, id := range match.ProviderMatchIDs {
		if err := s.eashlService.MarkSuperseded(ctx, id, match.ID); err != nil {
			return nil, err
		}
	}
	if err := s.markGameCompleted(ctx, gameID, joined); err != nil {
		return nil, err
	}

	return &MergeResponse{
		Match:         match,
		SupersededIDs: match.ProviderMatchIDs,
	}, nil
}

func (s *MatchesService) getGame(ctx context.Context, gameID string) (*Game, error) {
	doc, err := s.firestoreClient.Collection("Games").Doc(gameID).Get(ctx)
	if err != nil {
		log.Printf("Failed to get game from Firestore: %v\n", err)
		return nil, err
	}

	var game Game
	if err := doc.DataTo(&game); err != nil {
		// If this fails, we have an inconsistency error as we control both the data written to
		// Firestore and the shape of our struct.
		return nil, xerrors.Errorf(
			"consistency error. Converting %+v to internal integration struct failed: %w",
			doc,
			err,
		)
	}
	game.ID = gameID

	return &game, nil
}

func (s *MatchesService) storeMatch(ctx context.Context, match Match) error {
	_, err := s.firestoreClient.Collection("Matches").Doc(match.ID).Set(ctx, match)
	if err != nil {
		log.Printf("Failed to write match to Firestore: %v\n", err)
		return err
	}
	return nil
}

func (s *MatchesService) markGameCompleted(ctx context.Context, gameID, eashlMatchID string) error {
	updates := []firestore.Update{
		{Path: "Status", Value: "completed"},
	}
	if eashlMatchID != "" {
		updates = append(updates, firestore.Update{Path: "EashlMatchId", Value: eashlMatchID})
	}

	_, err := s.firestoreClient.Collection("Games").Doc(gameID).Update(ctx, updates)
	if err != nil {
		log.Printf("Failed to update game in Firestore: %v\n", err)
		return err
	}
	return nil
}

// loadAliases reads the username alias table. The table is passed explicitly
// into the pure normalization code so it never depends on ambient state.
func (s *MatchesService) loadAliases(ctx context.Context) (*identity.Table, error) {
	table := &identity.Table{
		IDByName: make(map[string]string),
		NameByID: make(map[string]string),
	}

	iter := s.firestoreClient.Collection("UsernameAliases").Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			log.Printf("Failed to get alias document: %v\n", err)
			return nil, err
		}

		var alias aliasDoc
		if err := doc.DataTo(&alias); err != nil {
			return nil, xerrors.Errorf(
				"consistency error. Converting %+v to internal integration struct failed: %w",
				doc,
				err,
			)
		}
		if alias.Gamertag == "" || alias.PlayerID == "" {
			continue
		}
		table.IDByName[identity.Normalize(alias.Gamertag)] = alias.PlayerID
		if alias.DisplayName != "" {
			table.NameByID[alias.PlayerID] = alias.DisplayName
		}
	}

	return table, nil
}

type aliasDoc struct {
	Gamertag    string `firestore:"Gamertag"`
	PlayerID    string `firestore:"PlayerId"`
	DisplayName string `firestore:"DisplayName"`
}

func gameTeamContext(game *Game) TeamContext {
	return TeamContext{
		HomeClubID:   game.HomeClubID,
		AwayClubID:   game.AwayClubID,
		HomeTeamName: game.HomeTeam,
		AwayTeamName: game.AwayTeam,
	}
}

func matchFromGame(game *Game) Match {
	return Match{
		ID:               game.ID,
		Date:             game.Date,
		HomeTeam:         game.HomeTeam,
		AwayTeam:         game.AwayTeam,
		SeasonID:         game.SeasonID,
		DivisionID:       game.DivisionID,
		IsPlayoff:        game.IsPlayoff,
		PlayoffBracketID: game.PlayoffBracketID,
		PlayoffSeriesID:  game.PlayoffSeriesID,
		PlayoffRoundID:   game.PlayoffRoundID,
	}
}

// providerScore reads the score for a single, unmerged provider record. The
// provider reports the opponent's score on the home club's own summary; when
// the summary is missing the score falls back to summed skater goals.
func providerScore(raw *eashl.Match, ctx TeamContext, players []PlayerGameStat) Score {
	if club, ok := raw.Clubs[ctx.HomeClubID]; ok {
		return Score{
			Home: parse.Count(club.Score),
			Away: parse.Count(club.OpponentScore),
		}
	}
	return Score{
		Home: SkaterGoals(players, ctx.HomeTeamName),
		Away: SkaterGoals(players, ctx.AwayTeamName),
	}
}
