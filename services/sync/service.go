package sync

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"

	timehelper "github.com/icetilt/league-sync/pkg/timeHelper"
	eashl "github.com/icetilt/league-sync/repos/eashl"
)

type SyncService struct {
	firestoreClient *firestore.Client
	firebaseApp     *firebase.App
	eashlService    *eashl.Service
}

func NewSyncService(firestoreClient *firestore.Client, firebaseApp *firebase.App, eashlService *eashl.Service) *SyncService {
	return &SyncService{
		firestoreClient: firestoreClient,
		firebaseApp:     firebaseApp,
		eashlService:    eashlService,
	}
}

// SyncClubMatches pulls a club's recent provider matches in the background.
// Requests are throttled per club so a page of users refreshing does not
// hammer the provider; force skips the throttle.
func (s *SyncService) SyncClubMatches(c *gin.Context, clubSlug, clubID, platform string, force bool) error {
	now := time.Now().Format(timehelper.DateTimeLayout)

	ctx := context.Background()
	if clubID == "" {
		doc, err := s.firestoreClient.Collection("Clubs").Doc(clubSlug).Get(ctx)
		if err != nil {
			log.Printf("Failed to get club from Firestore: %v\n", err)
			return err
		}
		data := doc.Data()
		clubID, _ = data["EashlClubId"].(string)
		if p, ok := data["Platform"].(string); ok && p != "" {
			platform = p
		}
	}

	lastReq := s.eashlService.GetLastRequest(ctx, clubSlug)
	if lastReq == "" {
		lastReq = timehelper.DateTimeLayout
	}
	lastRequestTime, err := time.Parse(timehelper.DateTimeLayout, lastReq)
	if err != nil {
		fmt.Println(err)
	}
	diff := time.Since(lastRequestTime)

	log.Printf("Since last req: %s\n", diff)

	if diff < 30*time.Second && !force {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Seconds since last req: %s", diff),
		})
		return nil
	}

	s.eashlService.SetLastRequest(ctx, clubSlug, now)
	go s.fetchAndStore(ctx, clubSlug, clubID, platform, now)

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Async function started sync for club: %s", clubSlug),
	})
	return nil
}

func (s *SyncService) fetchAndStore(ctx context.Context, clubSlug, clubID, platform, now string) {
	matches, err := s.eashlService.FetchClubMatches(ctx, clubID, platform)
	if err != nil {
		log.Printf("Failed to fetch provider matches for club %s: %v\n", clubSlug, err)
		return
	}

	s.eashlService.StoreMatches(ctx, matches)
	s.eashlService.SetLastSynced(ctx, clubSlug, now)
}
