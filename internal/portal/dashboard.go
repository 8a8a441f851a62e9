package portal

import (
	"net/http"

	"github.com/dmitrijs2005/loggy/internal/client/api"
	"github.com/dmitrijs2005/loggy/internal/common"
	"github.com/dmitrijs2005/loggy/internal/validation"
	"golang.org/x/sync/errgroup"
)

// statsOrder is the stats row order, pipeline first and outcomes last.
var statsOrder = []string{
	common.StatusWishlist, common.StatusApplied, common.StatusInterview,
	common.StatusOffer, common.StatusRejected,
}

var sortLabels = map[string]string{
	"createdat": "Added",
	"title":     "Title",
	"company":   "Company",
	"relevance": "Relevance",
}

type statCard struct {
	Label string
	Count int
}

type navLink struct {
	Label  string
	Href   string
	Active bool
}

type sortColumn struct {
	navLink
	Dir string
}

type jobRow struct {
	api.Job
	EditHref string
}

type dashboardView struct {
	User    *api.User
	Stats   []statCard
	Tabs    []navLink
	Columns []sortColumn
	Query   validation.ListQuery
	Jobs    []jobRow
	Form    *jobForm
	Error   string
	NewHref string
	Return  string
	Sources []string
	States  []string
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()
	q := listQueryFrom(v)

	var form *jobForm
	var pageErr string
	switch {
	case v.Get("new") == "1":
		form = newJobForm()
	case v.Get("edit") != "":
		j, err := s.api.GetJob(ctx, sessionFrom(ctx), v.Get("edit"))
		switch {
		case err == nil:
			form = editJobForm(j)
		case api.IsUnauthorized(err):
			s.expire(w, r)
			return
		case api.StatusOf(err) == http.StatusNotFound:
			pageErr = "Job not found"
		default:
			pageErr = s.apiMessage(ctx, err)
		}
	}

	s.renderDashboard(w, r, http.StatusOK, q, form, pageErr)
}

// renderDashboard fetches the user, the stats and the list concurrently and
// renders the page. A 401 from any of them ends the session.
func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request, status int, q validation.ListQuery, form *jobForm, pageErr string) {
	session := sessionFrom(r.Context())

	var (
		user  *api.User
		stats api.Stats
		jobs  []api.Job
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		user, err = s.api.Me(ctx, session)
		return err
	})
	g.Go(func() (err error) {
		stats, err = s.api.JobStats(ctx, session)
		return err
	})
	g.Go(func() (err error) {
		jobs, err = s.api.ListJobs(ctx, session, listParams(q))
		return err
	})
	if err := g.Wait(); err != nil {
		if api.IsUnauthorized(err) {
			s.expire(w, r)
			return
		}
		s.renderError(w, r, statusFor(err), s.apiMessage(r.Context(), err))
		return
	}

	view := dashboardView{
		User:    user,
		Stats:   make([]statCard, 0, len(statsOrder)),
		Query:   q,
		Jobs:    make([]jobRow, 0, len(jobs)),
		Form:    form,
		Error:   pageErr,
		NewHref: withParam(q, "new", "1"),
		Return:  listURL(q),
		Sources: common.ApplicationSources,
		States:  common.Statuses,
	}
	for _, j := range jobs {
		view.Jobs = append(view.Jobs, jobRow{Job: j, EditHref: withParam(q, "edit", j.ID)})
	}
	for _, st := range statsOrder {
		view.Stats = append(view.Stats, statCard{Label: statusLabel(st), Count: stats[st]})
	}

	for _, tab := range append([]string{"all"}, common.Statuses...) {
		next := q
		next.Tab = tab
		view.Tabs = append(view.Tabs, navLink{Label: statusLabel(tab), Href: listURL(next), Active: q.Tab == tab})
	}

	for _, key := range validation.SortKeys {
		next := q
		next.SortKey = key
		col := sortColumn{navLink: navLink{Label: sortLabels[key]}}
		if q.SortKey == key {
			col.Active = true
			col.Dir = q.SortDir
			next.SortDir = flip(q.SortDir)
		}
		col.Href = listURL(next)
		view.Columns = append(view.Columns, col)
	}

	s.render(w, r, status, "dashboard", view)
}

// expire drops a session the API no longer accepts.
func (s *Server) expire(w http.ResponseWriter, r *http.Request) {
	s.clearSession(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func withParam(q validation.ListQuery, key, value string) string {
	v := listValues(q)
	v.Set(key, value)
	return "/?" + v.Encode()
}

func flip(dir string) string {
	if dir == "asc" {
		return "desc"
	}
	return "asc"
}

// returnTo is the list a write came from, carried in the form's hidden
// fields.
func returnTo(r *http.Request) validation.ListQuery {
	_ = r.ParseForm()
	return listQueryFrom(r.PostForm)
}
