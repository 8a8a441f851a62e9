package models

import "time"

// Job is a tracked job application owned by exactly one user.
type Job struct {
	ID                string
	UserID            string
	Title             string
	Company           string
	URL               *string
	Status            string
	Relevance         int
	Notes             *string
	AppliedAt         *time.Time
	ApplicationSource string
	Location          *string
	ContactName       *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
