package validation

import (
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/loggy/internal/common"
)

// Field limits, in characters.
const (
	MaxTitleLength       = 200
	MaxCompanyLength     = 200
	MaxURLLength         = 2048
	MaxNotesLength       = 1000
	MaxLocationLength    = 200
	MaxContactNameLength = 120
)

var (
	statusTag = "oneof=" + strings.Join(common.Statuses, " ")
	sourceTag = "oneof=" + strings.Join(common.ApplicationSources, " ")
)

// JobInput is a job as submitted by a client, before normalization.
type JobInput struct {
	Title             string
	Company           string
	URL               *string
	Status            string
	Relevance         int
	Notes             *string
	AppliedAt         *string
	ApplicationSource *string
	Location          *string
	ContactName       *string
}

// NormalizedJob is a job whose every field passed validation.
type NormalizedJob struct {
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
}

// Accepted appliedAt layouts. Values without a zone are taken as UTC.
var appliedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ValidateJob trims and normalizes in, then checks it rule by rule:
// required fields, enum membership, numeric range, length caps, URL form and
// finally the appliedAt timestamp. Every failure is returned, in that order.
func ValidateJob(in JobInput) (NormalizedJob, FieldErrors) {
	out := NormalizedJob{
		Title:             strings.TrimSpace(in.Title),
		Company:           strings.TrimSpace(in.Company),
		URL:               optional(in.URL),
		Status:            strings.ToLower(strings.TrimSpace(in.Status)),
		Relevance:         in.Relevance,
		Notes:             optional(in.Notes),
		ApplicationSource: common.DefaultApplicationSource,
		Location:          optional(in.Location),
		ContactName:       optional(in.ContactName),
	}
	if src := optional(in.ApplicationSource); src != nil {
		out.ApplicationSource = strings.ToLower(*src)
	}

	var errs FieldErrors
	fail := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Message: msg})
	}

	if !check(out.Title, "required") {
		fail("title", "Title is required")
	}
	if !check(out.Company, "required") {
		fail("company", "Company is required")
	}

	if !check(out.Status, statusTag) {
		fail("status", "Invalid status")
	}
	if !check(out.ApplicationSource, sourceTag) {
		fail("applicationSource", "Invalid applicationSource")
	}

	if !check(out.Relevance, "min=1,max=5") {
		fail("relevance", "Relevance must be 1-5")
	}

	if !check(out.Title, maxLen(MaxTitleLength)) {
		fail("title", "Title too long")
	}
	if !check(out.Company, maxLen(MaxCompanyLength)) {
		fail("company", "Company too long")
	}
	if out.URL != nil && !check(*out.URL, maxLen(MaxURLLength)) {
		fail("url", "Url too long")
	}
	if out.Notes != nil && !check(*out.Notes, maxLen(MaxNotesLength)) {
		fail("notes", "Notes too long")
	}
	if out.Location != nil && !check(*out.Location, maxLen(MaxLocationLength)) {
		fail("location", "Location too long")
	}
	if out.ContactName != nil && !check(*out.ContactName, maxLen(MaxContactNameLength)) {
		fail("contactName", "ContactName too long")
	}

	if out.URL != nil && !check(*out.URL, "http_url") {
		fail("url", "Invalid url")
	}

	if raw := optional(in.AppliedAt); raw != nil {
		ts, ok := parseAppliedAt(*raw)
		if !ok {
			fail("appliedAt", "Invalid appliedAt")
		} else {
			out.AppliedAt = &ts
		}
	}

	if len(errs) > 0 {
		return NormalizedJob{}, errs
	}
	return out, nil
}

func maxLen(n int) string {
	return "max=" + strconv.Itoa(n)
}

func parseAppliedAt(s string) (time.Time, bool) {
	for _, layout := range appliedAtLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}

// optional trims s and maps blank values to nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
