package portal

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/loggy/internal/client/api"
	"github.com/dmitrijs2005/loggy/internal/common"
	"github.com/dmitrijs2005/loggy/internal/validation"
	"github.com/gorilla/mux"
)

// jobForm holds the create or edit form as the user last saw it.
type jobForm struct {
	Action    string
	Editing   bool
	Title     string
	Company   string
	URL       string
	Status    string
	Relevance string
	Notes     string
	AppliedAt string
	Source    string
	Location  string
	Contact   string
	Error     string
	Field     string
}

func newJobForm() *jobForm {
	return &jobForm{
		Action:    "/jobs",
		Status:    common.StatusWishlist,
		Relevance: "3",
		Source:    common.DefaultApplicationSource,
	}
}

func editJobForm(j *api.Job) *jobForm {
	f := &jobForm{
		Action:    "/jobs/" + j.ID,
		Editing:   true,
		Title:     j.Title,
		Company:   j.Company,
		URL:       deref(j.URL),
		Status:    j.Status,
		Relevance: strconv.Itoa(j.Relevance),
		Notes:     deref(j.Notes),
		Source:    j.ApplicationSource,
		Location:  deref(j.Location),
		Contact:   deref(j.ContactName),
	}
	if j.AppliedAt != nil {
		f.AppliedAt = j.AppliedAt.UTC().Format(time.RFC3339)
	}
	return f
}

func jobFormFrom(r *http.Request) *jobForm {
	return &jobForm{
		Title:     r.PostFormValue("title"),
		Company:   r.PostFormValue("company"),
		URL:       r.PostFormValue("url"),
		Status:    r.PostFormValue("status"),
		Relevance: r.PostFormValue("relevance"),
		Notes:     r.PostFormValue("notes"),
		AppliedAt: r.PostFormValue("appliedAt"),
		Source:    r.PostFormValue("applicationSource"),
		Location:  r.PostFormValue("location"),
		Contact:   r.PostFormValue("contactName"),
	}
}

// input converts the form to a request body. A relevance that is not a
// number becomes 0 and fails the 1-5 rule.
func (f *jobForm) input() api.JobInput {
	rel, _ := strconv.Atoi(strings.TrimSpace(f.Relevance))
	return api.JobInput{
		Title:             f.Title,
		Company:           f.Company,
		URL:               nonBlank(f.URL),
		Status:            f.Status,
		Relevance:         rel,
		Notes:             nonBlank(f.Notes),
		AppliedAt:         nonBlank(f.AppliedAt),
		ApplicationSource: nonBlank(f.Source),
		Location:          nonBlank(f.Location),
		ContactName:       nonBlank(f.Contact),
	}
}

func (f *jobForm) validate() bool {
	in := f.input()
	_, errs := validation.ValidateJob(validation.JobInput{
		Title:             in.Title,
		Company:           in.Company,
		URL:               in.URL,
		Status:            in.Status,
		Relevance:         in.Relevance,
		Notes:             in.Notes,
		AppliedAt:         in.AppliedAt,
		ApplicationSource: in.ApplicationSource,
		Location:          in.Location,
		ContactName:       in.ContactName,
	})
	if errs != nil {
		first := errs.First()
		f.Error, f.Field = first.Message, first.Field
		return false
	}
	return true
}

func (s *Server) createJob(w http.ResponseWriter, r *http.Request) {
	form := jobFormFrom(r)
	form.Action = "/jobs"
	s.saveJob(w, r, form, func() error {
		_, err := s.api.CreateJob(r.Context(), sessionFrom(r.Context()), form.input())
		return err
	})
}

func (s *Server) updateJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	form := jobFormFrom(r)
	form.Action = "/jobs/" + id
	form.Editing = true
	s.saveJob(w, r, form, func() error {
		_, err := s.api.UpdateJob(r.Context(), sessionFrom(r.Context()), id, form.input())
		return err
	})
}

// saveJob validates form, runs call and redirects back to the list the
// user came from. Failures re-render the dashboard with the form open.
func (s *Server) saveJob(w http.ResponseWriter, r *http.Request, form *jobForm, call func() error) {
	q := returnTo(r)

	if !form.validate() {
		s.renderDashboard(w, r, http.StatusBadRequest, q, form, "")
		return
	}

	if err := call(); err != nil {
		if api.IsUnauthorized(err) {
			s.expire(w, r)
			return
		}
		form.Error, form.Field = s.apiMessage(r.Context(), err), ""
		var e *api.Error
		if errors.As(err, &e) {
			form.Field = e.Field
		}
		s.renderDashboard(w, r, statusFor(err), q, form, "")
		return
	}

	http.Redirect(w, r, listURL(q), http.StatusSeeOther)
}

func (s *Server) deleteJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := returnTo(r)

	err := s.api.DeleteJob(ctx, sessionFrom(ctx), mux.Vars(r)["id"])
	switch {
	case err == nil, api.StatusOf(err) == http.StatusNotFound:
		http.Redirect(w, r, listURL(q), http.StatusSeeOther)
	case api.IsUnauthorized(err):
		s.expire(w, r)
	default:
		s.renderDashboard(w, r, statusFor(err), q, nil, s.apiMessage(ctx, err))
	}
}

func nonBlank(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
