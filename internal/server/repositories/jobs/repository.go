// Package jobs stores job applications. Every operation is scoped to an
// owner id passed in by the caller; a job that belongs to someone else
// behaves exactly like a job that does not exist.
package jobs

import (
	"context"
	"slices"
	"unicode/utf8"

	"github.com/dmitrijs2005/loggy/internal/common"
	"github.com/dmitrijs2005/loggy/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, ownerID string, job *models.Job) (*models.Job, error)
	List(ctx context.Context, ownerID string, filter ListFilter) ([]*models.Job, error)
	Get(ctx context.Context, ownerID string, id string) (*models.Job, error)
	Update(ctx context.Context, ownerID string, id string, job *models.Job) (*models.Job, error)
	Delete(ctx context.Context, ownerID string, id string) error
	CountByStatus(ctx context.Context, ownerID string) (map[string]int, error)
}

// ListFilter selects and orders a job list. Values are expected to be
// normalized already (lower-case, trimmed); anything else is rejected.
type ListFilter struct {
	Tab     string // "", "all" or a status
	Search  string
	SortKey string // createdat, title, company, relevance
	SortDir string // asc, desc
}

var sortColumns = map[string]string{
	"createdat": "created_at",
	"title":     "title",
	"company":   "company",
	"relevance": "relevance",
}

// Validate returns a *common.FilterError, which matches
// common.ErrInvalidFilter, when any field is outside its whitelist.
func (f ListFilter) Validate() error {
	if _, ok := sortColumns[f.SortKey]; !ok {
		return &common.FilterError{Param: "sort"}
	}
	if f.SortDir != "asc" && f.SortDir != "desc" {
		return &common.FilterError{Param: "dir"}
	}
	if f.Tab != "" && f.Tab != "all" && !slices.Contains(common.Statuses, f.Tab) {
		return &common.FilterError{Param: "tab"}
	}
	if utf8.RuneCountInString(f.Search) > common.MaxSearchLength {
		return &common.FilterError{Param: "q"}
	}
	return nil
}
