package main

import (
	"context"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"

	eashl "github.com/icetilt/league-sync/repos/eashl"
	resend "github.com/icetilt/league-sync/repos/resend"

	auth "github.com/icetilt/league-sync/pkg/auth"

	admin "github.com/icetilt/league-sync/services/admin"
	leaderboard "github.com/icetilt/league-sync/services/leaderboard"
	matches "github.com/icetilt/league-sync/services/matches"
	sync "github.com/icetilt/league-sync/services/sync"
)

func main() {
	ctx := context.Background()

	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	credentialsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	port := os.Getenv("PORT")
	allowOrigins := os.Getenv("CORS_HOSTS")
	hostURL := os.Getenv("HOST_URL")

	credentialsOption := option.WithCredentialsJSON([]byte(credentialsJSON))

	firestoreClient, err := firestore.NewClient(ctx, projectID, credentialsOption)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	firebaseApp, err := firebase.NewApp(ctx, nil, credentialsOption)
	if err != nil {
		log.Fatalf("error initializing app: %v\n", err)
	}

	eashlService := eashl.NewService(firestoreClient)
	resendService := resend.NewService(firestoreClient, hostURL)

	adminService := admin.NewAdminService(firestoreClient, firebaseApp, resendService)
	syncService := sync.NewSyncService(firestoreClient, firebaseApp, eashlService)
	matchesService := matches.NewMatchesService(firestoreClient, firebaseApp, eashlService)
	leaderboardService := leaderboard.NewLeaderboardService(firestoreClient)

	config := cors.DefaultConfig()
	config.AllowOrigins = strings.Split(allowOrigins, ",")
	config.AllowCredentials = true
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Access-Control-Allow-Origin"}

	router := gin.Default()
	router.Use(cors.New(config))

	adminRouter := router.Group("/admin/v1")
	adminRouter.Use(auth.AuthMiddleware(firebaseApp)) // Apply the middleware here

	matchesRouter := router.Group("/matches/v1")
	matchesRouter.Use(auth.AuthMiddleware(firebaseApp)) // Apply the middleware here

	syncRouter := router.Group("/sync/v1")

	leaderboardRouter := router.Group("/leaderboard/v1")

	admin.NewHTTPHandler(admin.HTTPOptions{
		Service: adminService,
		Router:  adminRouter,
	})

	matches.NewHTTPHandler(matches.HTTPOptions{
		Service: matchesService,
		Router:  matchesRouter,
	})

	sync.NewHTTPHandler(sync.HTTPOptions{
		Service: syncService,
		Router:  syncRouter,
	})

	leaderboard.NewHTTPHandler(leaderboard.HTTPOptions{
		Service: leaderboardService,
		Router:  leaderboardRouter,
	})

	log.Fatal(router.Run(":" + port))
}
