package api

import "time"

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the credential returned by signup and login.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

type Job struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Company           string     `json:"company"`
	URL               *string    `json:"url"`
	Status            string     `json:"status"`
	Relevance         int        `json:"relevance"`
	Notes             *string    `json:"notes"`
	AppliedAt         *time.Time `json:"appliedAt"`
	ApplicationSource string     `json:"applicationSource"`
	Location          *string    `json:"location"`
	ContactName       *string    `json:"contactName"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// JobInput is the body of create and update requests.
type JobInput struct {
	Title             string  `json:"title"`
	Company           string  `json:"company"`
	URL               *string `json:"url,omitempty"`
	Status            string  `json:"status"`
	Relevance         int     `json:"relevance"`
	Notes             *string `json:"notes,omitempty"`
	AppliedAt         *string `json:"appliedAt,omitempty"`
	ApplicationSource *string `json:"applicationSource,omitempty"`
	Location          *string `json:"location,omitempty"`
	ContactName       *string `json:"contactName,omitempty"`
}

// ListParams are the job list query parameters. Empty values are omitted
// and the API applies its defaults.
type ListParams struct {
	Sort string
	Dir  string
	Q    string
	Tab  string
}

// Stats maps every status to the number of jobs in it.
type Stats map[string]int
