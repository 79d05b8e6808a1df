package middlewares

import (
	"net/http"
	"slices"
)

// HPPOptions controls query parameter filtering. Parameters outside Whitelist
// are dropped; repeated parameters collapse to their first value unless
// listed in Multi.
type HPPOptions struct {
	Whitelist []string
	Multi     []string
}

func HPP(opts HPPOptions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.RawQuery != "" {
				filterQueryParams(r, opts)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func filterQueryParams(r *http.Request, opts HPPOptions) {
	query := r.URL.Query()
	for k, v := range query {
		if !slices.Contains(opts.Whitelist, k) {
			query.Del(k)
			continue
		}
		if len(v) > 1 && !slices.Contains(opts.Multi, k) {
			query.Set(k, v[0])
		}
	}
	r.URL.RawQuery = query.Encode()
}

// DefaultHPPOptions covers the list endpoints' parameters.
func DefaultHPPOptions() HPPOptions {
	return HPPOptions{
		Whitelist: []string{"page", "size", "sort", "ageLessThan"},
		Multi:     []string{"sort"},
	}
}
