package middleware

import (
	"net/http"
	"regexp"
	"strings"
)

// CORS allows cross-origin requests from origins matching one of the
// patterns and advertises methods in preflight responses. Preflight requests
// are answered directly with 204; a disallowed origin gets no CORS headers and
// the browser blocks the response. Method and path matching stay with the
// router.
func CORS(patterns []*regexp.Regexp, methods ...string) func(http.Handler) http.Handler {
	if len(methods) == 0 {
		methods = []string{http.MethodPost, http.MethodOptions}
	}
	allowMethods := strings.Join(methods, ",")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && originAllowed(patterns, origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
				w.Header().Set("Access-Control-Allow-Methods", allowMethods)
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(patterns []*regexp.Regexp, origin string) bool {
	for _, re := range patterns {
		if re.MatchString(origin) {
			return true
		}
	}
	return false
}
