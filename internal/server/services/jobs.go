package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/loggy/internal/server/models"
	"github.com/dmitrijs2005/loggy/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/loggy/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/loggy/internal/validation"
)

// JobService applies validation before every write and scopes every call to
// the owner id it is given.
type JobService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewJobService(db *sql.DB, m repomanager.RepositoryManager) *JobService {
	return &JobService{db: db, repomanager: m}
}

func (s *JobService) Create(ctx context.Context, ownerID string, in validation.JobInput) (*models.Job, error) {
	normalized, errs := validation.ValidateJob(in)
	if errs != nil {
		return nil, errs
	}

	job, err := s.repomanager.Jobs(s.db).Create(ctx, ownerID, toModel(normalized))
	if err != nil {
		return nil, fmt.Errorf("error creating job: %w", err)
	}
	return job, nil
}

func (s *JobService) List(ctx context.Context, ownerID string, q validation.ListQuery) ([]*models.Job, error) {
	return s.repomanager.Jobs(s.db).List(ctx, ownerID, jobs.ListFilter{
		Tab:     q.Tab,
		Search:  q.Search,
		SortKey: q.SortKey,
		SortDir: q.SortDir,
	})
}

func (s *JobService) Get(ctx context.Context, ownerID, id string) (*models.Job, error) {
	return s.repomanager.Jobs(s.db).Get(ctx, ownerID, id)
}

// Update replaces every mutable field of the job.
func (s *JobService) Update(ctx context.Context, ownerID, id string, in validation.JobInput) (*models.Job, error) {
	normalized, errs := validation.ValidateJob(in)
	if errs != nil {
		return nil, errs
	}

	return s.repomanager.Jobs(s.db).Update(ctx, ownerID, id, toModel(normalized))
}

func (s *JobService) Delete(ctx context.Context, ownerID, id string) error {
	return s.repomanager.Jobs(s.db).Delete(ctx, ownerID, id)
}

// Stats counts the owner's jobs per status.
func (s *JobService) Stats(ctx context.Context, ownerID string) (map[string]int, error) {
	return s.repomanager.Jobs(s.db).CountByStatus(ctx, ownerID)
}

func toModel(n validation.NormalizedJob) *models.Job {
	return &models.Job{
		Title:             n.Title,
		Company:           n.Company,
		URL:               n.URL,
		Status:            n.Status,
		Relevance:         n.Relevance,
		Notes:             n.Notes,
		AppliedAt:         n.AppliedAt,
		ApplicationSource: n.ApplicationSource,
		Location:          n.Location,
		ContactName:       n.ContactName,
	}
}
