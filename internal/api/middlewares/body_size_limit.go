package middlewares

import "net/http"

const DefaultMaxBodySize int64 = 1 << 20

// BodySizeLimit caps request bodies of write methods at limit bytes
// (DefaultMaxBodySize when limit <= 0).
func BodySizeLimit(limit int64) Middleware {
	if limit <= 0 {
		limit = DefaultMaxBodySize
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch:
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
