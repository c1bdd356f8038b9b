package resend

// AccessRequest is a club manager asking for management access to their
// club's stat entry pages.
type AccessRequest struct {
	Slug   string `json:"slug"`
	ClubID int    `json:"clubID"`
	Email  string `json:"email"`
}
