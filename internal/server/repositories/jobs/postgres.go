package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/loggy/internal/common"
	"github.com/dmitrijs2005/loggy/internal/dbx"
	"github.com/dmitrijs2005/loggy/internal/server/models"
	"github.com/google/uuid"
)

const columns = `id, user_id, title, company, url, status, relevance, notes, applied_at,
		 application_source, location, contact_name, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (*models.Job, error) {
	j := &models.Job{}
	err := row.Scan(&j.ID, &j.UserID, &j.Title, &j.Company, &j.URL, &j.Status, &j.Relevance,
		&j.Notes, &j.AppliedAt, &j.ApplicationSource, &j.Location, &j.ContactName,
		&j.CreatedAt, &j.UpdatedAt)
	return j, err
}

// Create stores job under ownerID with a fresh id. Both timestamps come from
// the same now() call, so CreatedAt equals UpdatedAt.
func (r *PostgresRepository) Create(ctx context.Context, ownerID string, job *models.Job) (*models.Job, error) {
	query :=
		`INSERT INTO jobs (id, user_id, title, company, url, status, relevance, notes, applied_at,
		 application_source, location, contact_name)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING ` + columns

	row := r.db.QueryRowContext(ctx, query,
		uuid.NewString(), ownerID, job.Title, job.Company, job.URL, job.Status, job.Relevance,
		job.Notes, job.AppliedAt, job.ApplicationSource, job.Location, job.ContactName)

	created, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

// EscapeLike escapes the LIKE metacharacters in s (backslash first) so that
// it matches literally with ESCAPE '\'.
func EscapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// List returns the owner's jobs matching filter, ordered by the requested
// column with id as a tie-break in the same direction. An invalid filter
// fails before any query runs.
func (r *PostgresRepository) List(ctx context.Context, ownerID string, filter ListFilter) ([]*models.Job, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var sb strings.Builder
	args := []any{ownerID}

	sb.WriteString(`SELECT ` + columns + `
		 FROM jobs
		 WHERE user_id = $1`)

	if filter.Tab != "" && filter.Tab != "all" {
		args = append(args, filter.Tab)
		sb.WriteString(` AND status = $` + strconv.Itoa(len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+EscapeLike(filter.Search)+"%")
		sb.WriteString(` AND (title || ' ' || company || ' ' || status) ILIKE $` + strconv.Itoa(len(args)) + ` ESCAPE '\'`)
	}

	// column and direction come from the whitelist above, never from input
	dir := strings.ToUpper(filter.SortDir)
	sb.WriteString(` ORDER BY ` + sortColumns[filter.SortKey] + ` ` + dir + `, id ` + dir)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, ownerID string, id string) (*models.Job, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	query :=
		`SELECT ` + columns + `
		 FROM jobs
		 WHERE id = $1 AND user_id = $2
		 `

	j, err := scanJob(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return j, nil
}

// Update overwrites every mutable field and bumps updated_at.
func (r *PostgresRepository) Update(ctx context.Context, ownerID string, id string, job *models.Job) (*models.Job, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	query :=
		`UPDATE jobs SET title = $3, company = $4, url = $5, status = $6, relevance = $7, notes = $8,
		 applied_at = $9, application_source = $10, location = $11, contact_name = $12, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING ` + columns

	row := r.db.QueryRowContext(ctx, query,
		id, ownerID, job.Title, job.Company, job.URL, job.Status, job.Relevance,
		job.Notes, job.AppliedAt, job.ApplicationSource, job.Location, job.ContactName)

	updated, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID string, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}

	query :=
		`DELETE FROM jobs
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// CountByStatus returns the number of the owner's jobs per status. Every
// status is present in the map, zero when unused.
func (r *PostgresRepository) CountByStatus(ctx context.Context, ownerID string) (map[string]int, error) {
	query :=
		`SELECT status, count(*)
		 FROM jobs
		 WHERE user_id = $1
		 GROUP BY status
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int, len(common.Statuses))
	for _, s := range common.Statuses {
		counts[s] = 0
	}

	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return counts, nil
}
