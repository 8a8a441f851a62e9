package validation

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/loggy/internal/common"
)

const (
	DefaultSortKey = "createdat"
	DefaultSortDir = "desc"
)

// ListQuery is a job list request after boundary normalization. It may still
// carry unsupported values; the repository rejects those.
type ListQuery struct {
	Tab     string
	Search  string
	SortKey string
	SortDir string
}

// NormalizeListQuery trims and lower-cases the raw sort, dir and tab values,
// applies the createdAt/desc defaults and clamps q to MaxSearchLength
// characters.
func NormalizeListQuery(sort, dir, q, tab string) ListQuery {
	lq := ListQuery{
		Tab:     strings.ToLower(strings.TrimSpace(tab)),
		Search:  ClampSearch(q),
		SortKey: strings.ToLower(strings.TrimSpace(sort)),
		SortDir: strings.ToLower(strings.TrimSpace(dir)),
	}
	if lq.SortKey == "" {
		lq.SortKey = DefaultSortKey
	}
	if lq.SortDir == "" {
		lq.SortDir = DefaultSortDir
	}
	return lq
}

// ClampSearch trims q and cuts it to MaxSearchLength characters.
func ClampSearch(q string) string {
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) <= common.MaxSearchLength {
		return q
	}
	return string([]rune(q)[:common.MaxSearchLength])
}

// SortKeys lists the accepted sort keys in dashboard column order.
var SortKeys = []string{"createdat", "title", "company", "relevance"}

// Sanitize returns q with every unsupported value replaced by its default,
// so that a hand-edited dashboard URL still renders a list.
func (q ListQuery) Sanitize() ListQuery {
	if !slices.Contains(SortKeys, q.SortKey) {
		q.SortKey = DefaultSortKey
	}
	if q.SortDir != "asc" && q.SortDir != "desc" {
		q.SortDir = DefaultSortDir
	}
	if q.Tab != "all" && !slices.Contains(common.Statuses, q.Tab) {
		q.Tab = "all"
	}
	return q
}
