package rest

import (
	"time"

	"github.com/dmitrijs2005/loggy/internal/server/models"
	"github.com/dmitrijs2005/loggy/internal/validation"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email}
}

type jobRequest struct {
	Title             string  `json:"title"`
	Company           string  `json:"company"`
	URL               *string `json:"url"`
	Status            string  `json:"status"`
	Relevance         int     `json:"relevance"`
	Notes             *string `json:"notes"`
	AppliedAt         *string `json:"appliedAt"`
	ApplicationSource *string `json:"applicationSource"`
	Location          *string `json:"location"`
	ContactName       *string `json:"contactName"`
}

func (r jobRequest) input() validation.JobInput {
	return validation.JobInput{
		Title:             r.Title,
		Company:           r.Company,
		URL:               r.URL,
		Status:            r.Status,
		Relevance:         r.Relevance,
		Notes:             r.Notes,
		AppliedAt:         r.AppliedAt,
		ApplicationSource: r.ApplicationSource,
		Location:          r.Location,
		ContactName:       r.ContactName,
	}
}

type jobResponse struct {
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

func toJobResponse(j *models.Job) jobResponse {
	return jobResponse{
		ID:                j.ID,
		Title:             j.Title,
		Company:           j.Company,
		URL:               j.URL,
		Status:            j.Status,
		Relevance:         j.Relevance,
		Notes:             j.Notes,
		AppliedAt:         j.AppliedAt,
		ApplicationSource: j.ApplicationSource,
		Location:          j.Location,
		ContactName:       j.ContactName,
		CreatedAt:         j.CreatedAt,
		UpdatedAt:         j.UpdatedAt,
	}
}
