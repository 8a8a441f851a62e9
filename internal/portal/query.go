package portal

import (
	"net/url"

	"github.com/dmitrijs2005/loggy/internal/client/api"
	"github.com/dmitrijs2005/loggy/internal/validation"
)

// listQueryFrom reads sort, dir, q and tab from v, normalized and with
// unsupported values reset to their defaults.
func listQueryFrom(v url.Values) validation.ListQuery {
	return validation.NormalizeListQuery(v.Get("sort"), v.Get("dir"), v.Get("q"), v.Get("tab")).Sanitize()
}

// listValues encodes q the way the dashboard links do: q and tab only when
// they narrow the list, sort and dir always.
func listValues(q validation.ListQuery) url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Tab != "" && q.Tab != "all" {
		v.Set("tab", q.Tab)
	}
	v.Set("sort", q.SortKey)
	v.Set("dir", q.SortDir)
	return v
}

func listURL(q validation.ListQuery) string {
	return "/?" + listValues(q).Encode()
}

func listParams(q validation.ListQuery) api.ListParams {
	return api.ListParams{Sort: q.SortKey, Dir: q.SortDir, Q: q.Search, Tab: q.Tab}
}
