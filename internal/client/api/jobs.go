package api

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) ListJobs(ctx context.Context, session string, p ListParams) ([]Job, error) {
	q := url.Values{}
	for k, v := range map[string]string{"sort": p.Sort, "dir": p.Dir, "q": p.Q, "tab": p.Tab} {
		if v != "" {
			q.Set(k, v)
		}
	}

	var jobs []Job
	if _, err := c.do(ctx, http.MethodGet, "/jobs", q, session, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) JobStats(ctx context.Context, session string) (Stats, error) {
	var s Stats
	if _, err := c.do(ctx, http.MethodGet, "/jobs/stats", nil, session, nil, &s); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *Client) GetJob(ctx context.Context, session, id string) (*Job, error) {
	var j Job
	if _, err := c.do(ctx, http.MethodGet, "/jobs/"+url.PathEscape(id), nil, session, nil, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

func (c *Client) CreateJob(ctx context.Context, session string, in JobInput) (*Job, error) {
	var j Job
	if _, err := c.do(ctx, http.MethodPost, "/jobs", nil, session, in, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

// UpdateJob replaces every field of the job.
func (c *Client) UpdateJob(ctx context.Context, session, id string, in JobInput) (*Job, error) {
	var j Job
	if _, err := c.do(ctx, http.MethodPut, "/jobs/"+url.PathEscape(id), nil, session, in, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

func (c *Client) DeleteJob(ctx context.Context, session, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/jobs/"+url.PathEscape(id), nil, session, nil, nil)
	return err
}
