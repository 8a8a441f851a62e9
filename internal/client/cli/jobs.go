package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/loggy/internal/client/api"
	"github.com/dmitrijs2005/loggy/internal/common"
	"github.com/dmitrijs2005/loggy/internal/validation"
)

// List prints the user's jobs. args are key=value pairs among tab, q, sort
// and dir.
func (a *App) List(ctx context.Context, args []string) error {
	p, err := parseListArgs(args)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}

	jobs, err := a.api.ListJobs(ctx, a.session, p)
	if err != nil {
		return a.handleAPIError(err)
	}

	if len(jobs) == 0 {
		printlnFn("No jobs")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tSTATUS\tRELEVANCE\tCREATED")
	for _, j := range jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			j.ID, j.Title, j.Company, j.Status, j.Relevance, j.CreatedAt.Local().Format("2006-01-02"))
	}
	return tw.Flush()
}

func parseListArgs(args []string) (api.ListParams, error) {
	var p api.ListParams
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			return p, fmt.Errorf("expected key=value, got %q", arg)
		}
		switch strings.ToLower(k) {
		case "tab":
			p.Tab = v
		case "q":
			p.Q = validation.ClampSearch(v)
		case "sort":
			p.Sort = v
		case "dir":
			p.Dir = v
		default:
			return p, fmt.Errorf("unknown list option %q", k)
		}
	}
	return p, nil
}

// Stats prints the number of jobs per status.
func (a *App) Stats(ctx context.Context) error {
	stats, err := a.api.JobStats(ctx, a.session)
	if err != nil {
		return a.handleAPIError(err)
	}

	parts := make([]string, 0, len(common.Statuses))
	for _, s := range common.Statuses {
		parts = append(parts, fmt.Sprintf("%s: %d", s, stats[s]))
	}
	printlnFn(strings.Join(parts, "  "))
	return nil
}

// Add prompts for a job, validates it locally and creates it.
func (a *App) Add(ctx context.Context) error {
	in, ok, err := a.promptJob(nil)
	if err != nil || !ok {
		return err
	}

	j, err := a.api.CreateJob(ctx, a.session, in)
	if err != nil {
		return a.handleAPIError(err)
	}
	printlnFn("Created", j.ID)
	return nil
}

// Edit prompts for new values, showing the current ones. Every field is
// sent, so the update replaces the job.
func (a *App) Edit(ctx context.Context, id string) error {
	cur, err := a.api.GetJob(ctx, a.session, id)
	if err != nil {
		return a.handleAPIError(err)
	}

	in, ok, err := a.promptJob(cur)
	if err != nil || !ok {
		return err
	}

	if _, err := a.api.UpdateJob(ctx, a.session, id, in); err != nil {
		return a.handleAPIError(err)
	}
	printlnFn("Updated", id)
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.api.DeleteJob(ctx, a.session, id); err != nil {
		return a.handleAPIError(err)
	}
	printlnFn("Deleted", id)
	return nil
}

// promptJob asks for every job field. With cur set, an empty answer keeps
// the current value and "-" clears an optional one. ok is false when local
// validation failed; the reason has been printed.
func (a *App) promptJob(cur *api.Job) (in api.JobInput, ok bool, err error) {
	def := jobDefaults(cur)

	ask := func(label, current string) (string, error) {
		prompt := label
		if current != "" {
			prompt += " [" + current + "]"
		}
		v, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return "", err
		}
		if v == "" {
			return current, nil
		}
		if v == "-" {
			return "", nil
		}
		return v, nil
	}

	var relevance string
	steps := []struct {
		label string
		dst   *string
		cur   string
	}{
		{"Title", &in.Title, def.title},
		{"Company", &in.Company, def.company},
		{"Status (" + strings.Join(common.Statuses, ", ") + ")", &in.Status, def.status},
		{"Relevance (1-5)", &relevance, def.relevance},
	}
	for _, s := range steps {
		if *s.dst, err = ask(s.label, s.cur); err != nil {
			return in, false, err
		}
	}

	optional := []struct {
		label string
		dst   **string
		cur   string
	}{
		{"URL", &in.URL, def.url},
		{"Source (" + strings.Join(common.ApplicationSources, ", ") + ")", &in.ApplicationSource, def.source},
		{"Location", &in.Location, def.location},
		{"Contact name", &in.ContactName, def.contact},
		{"Applied at (YYYY-MM-DD)", &in.AppliedAt, def.appliedAt},
	}
	for _, o := range optional {
		v, err := ask(o.label, o.cur)
		if err != nil {
			return in, false, err
		}
		if v != "" {
			*o.dst = &v
		}
	}

	notesPrompt := "Notes"
	if def.notes != "" {
		notesPrompt += " [" + def.notes + "]"
	}
	notes, err := getMultiline(a.reader, notesPrompt, a.out)
	if err != nil {
		return in, false, err
	}
	switch notes {
	case "":
		notes = def.notes
	case "-":
		notes = ""
	}
	if notes != "" {
		in.Notes = &notes
	}

	if in.Relevance, err = strconv.Atoi(relevance); err != nil {
		printlnFn("Relevance must be 1-5")
		return in, false, nil
	}

	if _, errs := validation.ValidateJob(toValidationInput(in)); errs != nil {
		printlnFn(errs.First().Message)
		return in, false, nil
	}
	return in, true, nil
}

type jobFormDefaults struct {
	title, company, status, relevance                string
	url, source, location, contact, appliedAt, notes string
}

func jobDefaults(cur *api.Job) jobFormDefaults {
	if cur == nil {
		return jobFormDefaults{status: common.StatusWishlist, relevance: "3", source: common.DefaultApplicationSource}
	}
	d := jobFormDefaults{
		title:     cur.Title,
		company:   cur.Company,
		status:    cur.Status,
		relevance: strconv.Itoa(cur.Relevance),
		source:    cur.ApplicationSource,
		url:       deref(cur.URL),
		location:  deref(cur.Location),
		contact:   deref(cur.ContactName),
		notes:     deref(cur.Notes),
	}
	if cur.AppliedAt != nil {
		d.appliedAt = cur.AppliedAt.UTC().Format(time.RFC3339)
	}
	return d
}

func toValidationInput(in api.JobInput) validation.JobInput {
	return validation.JobInput{
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
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
