package models

import "time"

// Session is the server-side record behind a session token. Deleting the
// row revokes the token even before it expires.
type Session struct {
	ID        string
	UserID    string
	UserAgent *string
	IPAddress *string
	ExpiresAt time.Time
	CreatedAt time.Time
}
