package eashl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"

	"cloud.google.com/go/firestore"
	"golang.org/x/xerrors"
)

var ErrSuperseded = errors.New("provider match already superseded")

const defaultAPIURL = "https://proclubs.ea.com/api/nhl"

// Service is the EASHL provider repo: it fetches raw match records from the
// EA Pro Clubs API and keeps a copy of every record in Firestore so merges
// and re-links do not depend on the provider's short retention window.
type Service struct {
	Client *firestore.Client
}

// NewService creates a new empty service.
func NewService(client *firestore.Client) *Service {
	return &Service{
		Client: client,
	}
}

func apiURL() string {
	if url := os.Getenv("EASHL_API_URL"); url != "" {
		return url
	}
	return defaultAPIURL
}

// FetchClubMatches pulls a club's recent matches from the provider. The API
// rejects requests without browser-ish headers, so we send the same ones the
// site does.
func (s Service) FetchClubMatches(ctx context.Context, clubID, platform string) ([]Match, error) {
	requestURL := fmt.Sprintf("%s/clubs/matches?clubIds=%s&platform=%s&matchType=club_private", apiURL(), clubID, platform)

	httpClient := &http.Client{}

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		log.Printf("Failed to create HTTP request: %v\n", err)
		return nil, err
	}
	req.Header.Set("Referer", "https://proclubs.ea.com/")
	req.Header.Set("Accept", "application/json")

	response, err := httpClient.Do(req)
	if err != nil {
		log.Printf("API request failed: %v\n", err)
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d for club %s", response.StatusCode, clubID)
	}

	var matches []Match
	if err := json.NewDecoder(response.Body).Decode(&matches); err != nil {
		log.Printf("Failed to parse API response for club %s: %v\n", clubID, err)
		return nil, err
	}

	return matches, nil
}

// StoreMatches writes raw provider records to the EashlMatches collection,
// one goroutine per record, updating records that already exist.
func (s Service) StoreMatches(ctx context.Context, matches []Match) {
	var wg sync.WaitGroup

	matchCh := make(chan Match)

	for _, match := range matches {
		wg.Add(1)
		go s.processMatch(ctx, match, matchCh, &wg)
	}

	go func() {
		wg.Wait()
		close(matchCh)
	}()

	for match := range matchCh {
		log.Printf("Stored provider match: %s\n", match.MatchID)
	}
}

func (s Service) processMatch(ctx context.Context, match Match, matchCh chan<- Match, wg *sync.WaitGroup) {
	defer wg.Done()

	if match.MatchID == "" {
		return
	}

	docRef := s.Client.Collection("EashlMatches").Doc(match.MatchID)

	doc, _ := docRef.Get(ctx)

	if doc.Exists() {
		updates := createMatchUpdates(&match)

		_, err := docRef.Update(ctx, updates)
		if err != nil {
			log.Printf("Failed to update provider match in Firestore: %v\n", err)
			return
		}
	} else {
		_, err := docRef.Set(ctx, match)
		if err != nil {
			log.Printf("Failed to write provider match to Firestore: %v\n", err)
			return
		}
	}

	matchCh <- match
}

// GetMatch loads one stored raw provider record.
func (s Service) GetMatch(ctx context.Context, matchID string) (*Match, error) {
	doc, err := s.Client.Collection("EashlMatches").Doc(matchID).Get(ctx)
	if err != nil {
		log.Printf("Failed to get provider match from Firestore: %v\n", err)
		return nil, err
	}

	var match Match
	if err := doc.DataTo(&match); err != nil {
		// If this fails, we have an inconsistency error as we control both the data written to
		// Firestore and the shape of our struct.
		return nil, xerrors.Errorf(
			"consistency error. Converting %+v to internal integration struct failed: %w",
			doc,
			err,
		)
	}

	return &match, nil
}

// MarkSuperseded records that a raw provider record has been folded into the
// canonical match replacedBy and must not be merged again.
func (s Service) MarkSuperseded(ctx context.Context, matchID, replacedBy string) error {
	_, err := s.Client.Collection("EashlMatches").Doc(matchID).Update(ctx, []firestore.Update{
		{
			Path:  "SupersededBy",
			Value: replacedBy,
		},
	})
	if err != nil {
		log.Printf("Failed to mark provider match superseded: %v\n", err)
		return err
	}
	return nil
}

func (s Service) GetLastSynced(ctx context.Context, clubSlug string) string {
	return s.getClubField(ctx, clubSlug, "LastSynced")
}

func (s Service) GetLastRequest(ctx context.Context, clubSlug string) string {
	return s.getClubField(ctx, clubSlug, "LastRequest")
}

func (s Service) getClubField(ctx context.Context, clubSlug, field string) string {
	doc, err := s.Client.Collection("Clubs").Doc(clubSlug).Get(ctx)
	if err != nil {
		log.Printf("Failed to get club from Firestore: %v\n", err)
		return ""
	}

	data := doc.Data()
	fieldValue, ok := data[field]
	if !ok {
		log.Printf("Field %s does not exist in the document.", field)
	}

	fieldValueStr, ok := fieldValue.(string)
	if !ok {
		log.Printf("Failed to convert field value to string.")
	}

	return fieldValueStr
}

func (s Service) SetLastSynced(ctx context.Context, clubSlug string, lastSynced string) error {
	return s.setClubField(ctx, clubSlug, "LastSynced", lastSynced)
}

func (s Service) SetLastRequest(ctx context.Context, clubSlug string, lastRequest string) error {
	return s.setClubField(ctx, clubSlug, "LastRequest", lastRequest)
}

func (s Service) setClubField(ctx context.Context, clubSlug, field, value string) error {
	_, err := s.Client.Collection("Clubs").Doc(clubSlug).Update(ctx, []firestore.Update{
		{
			Path:  field,
			Value: value,
		},
	})
	if err != nil {
		log.Printf("An error has occurred: %v", err)
	}
	return nil
}

func createMatchUpdates(match *Match) []firestore.Update {
	var updates []firestore.Update

	updates = append(updates, firestore.Update{Path: "MatchId", Value: match.MatchID})
	if match.Timestamp != nil {
		updates = append(updates, firestore.Update{Path: "Timestamp", Value: *match.Timestamp})
	}
	if match.TimeAgo != nil {
		updates = append(updates, firestore.Update{Path: "TimeAgo", Value: match.TimeAgo})
	}
	if match.Clubs != nil {
		updates = append(updates, firestore.Update{Path: "Clubs", Value: match.Clubs})
	}
	if match.Players != nil {
		updates = append(updates, firestore.Update{Path: "Players", Value: match.Players})
	}

	return updates
}
