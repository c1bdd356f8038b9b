package resend

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	resend "github.com/resend/resend-go/v2"
)

// Service mails club-access codes and records which users have been granted
// management access to a club.
type Service struct {
	firestoreClient *firestore.Client
	resendClient    *resend.Client
	hostURL         string
}

// NewService creates a new empty service.
func NewService(firestoreClient *firestore.Client, hostURL string) *Service {
	resendKey := os.Getenv("RESEND_KEY")
	return &Service{
		firestoreClient: firestoreClient,
		resendClient:    resend.NewClient(resendKey),
		hostURL:         hostURL,
	}
}

func (s Service) SendMail(ctx context.Context, request AccessRequest, accessCode string) error {
	body := getEmailTemplate(fmt.Sprintf("%s/get-access/%s", s.hostURL, accessCode))
	params := &resend.SendEmailRequest{
		From:    "noreply@icetilt.net",
		To:      []string{request.Email},
		Subject: "Your club management access",
		Html:    body,
	}

	_, err := s.resendClient.Emails.Send(params)
	if err != nil {
		log.Printf("Failed to send mail request: %v", err)
		return err
	}
	return nil
}

func (s Service) GrantAccess(ctx context.Context, slug, userID string) error {
	docRef := s.firestoreClient.Collection("ClubSecrets").Doc(slug)

	err := grantAccessToDoc(ctx, s, docRef, userID)
	if err != nil {
		log.Printf("Failed to update document: %v", err)
		return err
	}

	return nil
}

func grantAccessToDoc(ctx context.Context, s Service, docRef *firestore.DocumentRef, userID string) error {
	err := s.firestoreClient.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			return err
		}

		var allowedUsers []string
		if data, err := doc.DataAt("allowedUsers"); err == nil {
			if users, ok := data.([]interface{}); ok {
				for _, user := range users {
					if userStr, ok := user.(string); ok {
						allowedUsers = append(allowedUsers, userStr)
					}
				}
			}
		}

		for _, user := range allowedUsers {
			if user == userID {
				// User already has access, no update needed
				return nil
			}
		}

		updatedUsers := append(allowedUsers, userID)
		return tx.Update(docRef, []firestore.Update{
			{Path: "allowedUsers", Value: updatedUsers},
		})
	})
	return err
}

func getEmailTemplate(url string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: Arial, sans-serif;
            background-color: #f4f4f4;
            margin: 0;
            padding: 20px;
        }
        .container {
            background-color: #ffffff;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            border-radius: 4px;
        }
        .button {
            display: inline-block;
            padding: 10px 20px;
            background-color: #1a4d8f;
            color: #ffffff;
            text-decoration: none;
            border-radius: 4px;
        }
    </style>
</head>
<body>
    <div class="container">
        <h2>Club management access</h2>
        <p>Use the link below to claim management access for your club.</p>
        <p><a class="button" href="%s">Claim access</a></p>
        <p>If you did not request this, you can ignore this mail.</p>
    </div>
</body>
</html>`, url)
}
