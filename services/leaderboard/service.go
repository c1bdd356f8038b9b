package leaderboard

import (
	"context"
	"log"
	"sort"

	"cloud.google.com/go/firestore"
	"golang.org/x/xerrors"
	"google.golang.org/api/iterator"

	"github.com/icetilt/league-sync/pkg/identity"
	"github.com/icetilt/league-sync/services/matches"
)

type LeaderboardService struct {
	firestoreClient *firestore.Client
}

func NewLeaderboardService(firestoreClient *firestore.Client) *LeaderboardService {
	return &LeaderboardService{
		firestoreClient: firestoreClient,
	}
}

// GetLeaderboards reads every canonical match and folds the selected ones
// into skater and goalie boards, optionally re-sorted by a requested column.
func (s *LeaderboardService) GetLeaderboards(ctx context.Context, req LeaderboardRequest) (*Leaderboards, error) {
	matchList, err := s.loadMatches(ctx)
	if err != nil {
		return nil, err
	}

	divisionOfTeam, divisionOrder, err := s.loadDivisions(ctx, req.SeasonID)
	if err != nil {
		return nil, err
	}

	aliases, err := s.loadAliases(ctx)
	if err != nil {
		return nil, err
	}

	seasonID := req.SeasonID
	if seasonID == "" {
		seasonID = SeasonAll
	}
	boards := Aggregate(matchList, Filter{
		SeasonID:        seasonID,
		IncludePlayoffs: req.IncludePlayoffs,
		DivisionOfTeam:  divisionOfTeam,
		DivisionOrder:   divisionOrder,
	}, aliases)

	ApplySort(&boards, req.SortColumn, req.SortDirection)

	return &boards, nil
}

// ListSeasons returns every season, newest first.
func (s *LeaderboardService) ListSeasons(ctx context.Context) ([]Season, error) {
	iter := s.firestoreClient.Collection("Seasons").Documents(ctx)
	defer iter.Stop()

	var seasons []Season
	for {
		doc, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			log.Printf("Failed to get season document: %v\n", err)
			return nil, err
		}

		var season Season
		if err := doc.DataTo(&season); err != nil {
			return nil, xerrors.Errorf(
				"consistency error. Converting %+v to internal integration struct failed: %w",
				doc,
				err,
			)
		}
		season.ID = doc.Ref.ID
		seasons = append(seasons, season)
	}

	sort.SliceStable(seasons, func(i, j int) bool {
		return seasons[i].EndDate > seasons[j].EndDate
	})
	return seasons, nil
}

func (s *LeaderboardService) loadMatches(ctx context.Context) ([]matches.Match, error) {
	iter := s.firestoreClient.Collection("Matches").Documents(ctx)
	defer iter.Stop()

	var matchList []matches.Match
	for {
		doc, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			log.Printf("Failed to get match document: %v\n", err)
			return nil, err
		}

		var match matches.Match
		if err := doc.DataTo(&match); err != nil {
			return nil, xerrors.Errorf(
				"consistency error. Converting %+v to internal integration struct failed: %w",
				doc,
				err,
			)
		}
		matchList = append(matchList, match)
	}

	return matchList, nil
}

// loadDivisions builds the team-to-division map and the league's configured
// division display order. When a season is given, only that season's
// divisions are mapped; matches from other seasons were filtered out anyway.
func (s *LeaderboardService) loadDivisions(ctx context.Context, seasonID string) (map[string]string, []string, error) {
	iter := s.firestoreClient.Collection("Divisions").Documents(ctx)
	defer iter.Stop()

	var divisions []Division
	for {
		doc, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			log.Printf("Failed to get division document: %v\n", err)
			return nil, nil, err
		}

		var division Division
		if err := doc.DataTo(&division); err != nil {
			return nil, nil, xerrors.Errorf(
				"consistency error. Converting %+v to internal integration struct failed: %w",
				doc,
				err,
			)
		}
		if seasonID != "" && seasonID != SeasonAll && division.SeasonID != seasonID {
			continue
		}
		divisions = append(divisions, division)
	}

	sort.SliceStable(divisions, func(i, j int) bool {
		return divisions[i].Order < divisions[j].Order
	})

	divisionOfTeam := make(map[string]string)
	var divisionOrder []string
	for _, division := range divisions {
		divisionOrder = append(divisionOrder, division.Name)
		for _, team := range division.Teams {
			if _, ok := divisionOfTeam[team]; !ok {
				divisionOfTeam[team] = division.Name
			}
		}
	}
	return divisionOfTeam, divisionOrder, nil
}

func (s *LeaderboardService) loadAliases(ctx context.Context) (*identity.Table, error) {
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

		data := doc.Data()
		gamertag, _ := data["Gamertag"].(string)
		playerID, _ := data["PlayerId"].(string)
		displayName, _ := data["DisplayName"].(string)
		if gamertag == "" || playerID == "" {
			continue
		}
		table.IDByName[identity.Normalize(gamertag)] = playerID
		if displayName != "" {
			table.NameByID[playerID] = displayName
		}
	}

	return table, nil
}
